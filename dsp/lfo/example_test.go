package lfo_test

import (
	"fmt"

	"github.com/ptablas/ECHO-CHAOS/dsp/lfo"
)

func ExampleOscillator_Output() {
	osc, err := lfo.New(8, lfo.WithWaveform(lfo.Triangle))
	if err != nil {
		panic(err)
	}

	// 1 Hz at 8 samples per second: one cycle, depth of 10 samples.
	for range 8 {
		fmt.Printf("%g ", osc.Output(1, 10, 0))
	}
	fmt.Println()
	// Output:
	// 0 5 10 5 0 -5 -10 -5
}
