// Package lfo provides a low-frequency oscillator for modulating delay times
// and other slowly varying parameters.
//
// The oscillator is a phase accumulator in [0, 1). Besides the periodic
// shapes it offers two held shapes, Random and SampleHold, whose value only
// changes when the phase wraps.
package lfo
