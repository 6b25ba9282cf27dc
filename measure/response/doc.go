// Package response captures and analyzes impulse responses of stereo block
// processors.
//
// It provides:
//
//   - Capture: feed an impulse through a BlockProcessor and collect the output
//   - Magnitude: FFT magnitude response of a captured impulse response
//   - Echoes: discrete echo detection (position and level of each repeat)
//   - DecayTime: RT60-style decay time from the Schroeder backward integral
//
// # Usage
//
//	left, right, err := response.Capture(proc, 48000, 1, 0)
//	a := response.NewAnalyzer(48000)
//	echoes, err := a.Echoes(left, 0.01, 32)
package response
