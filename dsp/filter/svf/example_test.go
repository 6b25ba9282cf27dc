package svf_test

import (
	"fmt"
	"math"

	"github.com/ptablas/ECHO-CHAOS/dsp/filter/svf"
)

func ExampleFilter_ProcessSample() {
	for _, mode := range []svf.Mode{svf.Lowpass, svf.Bandpass, svf.Highpass} {
		f, err := svf.New(48000, svf.WithCutoffHz(1000), svf.WithMode(mode))
		if err != nil {
			panic(err)
		}

		// Settle on a DC input: only the low-pass output passes it.
		y := 0.0
		for range 48000 {
			y = f.ProcessSample(1)
		}

		fmt.Printf("%s %.2f\n", mode, math.Abs(y))
	}
	// Output:
	// lowpass 1.00
	// bandpass 0.00
	// highpass 0.00
}
