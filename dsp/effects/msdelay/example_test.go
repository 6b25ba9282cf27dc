package msdelay_test

import (
	"fmt"
	"math"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
	"github.com/ptablas/ECHO-CHAOS/dsp/effects/msdelay"
)

func ExampleLookup() {
	info, ok := msdelay.Lookup("feedbackmid")
	if !ok {
		panic("missing parameter")
	}

	fmt.Printf("%s [%g, %g] default %g ramped=%v\n", info.Name, info.Min, info.Max, info.Default, info.Ramped)
	// Output:
	// feedbackmid [0, 0.9] default 0.0001 ramped=false
}

func ExampleProcessor_ProcessBlock() {
	p, err := msdelay.New()
	if err != nil {
		panic(err)
	}

	// Mid/side in and out, mid channel fully wet with a 100-sample echo.
	p.SetParameter("input", 1)
	p.SetParameter("output", 1)
	p.SetParameter("cutoffmid", 20000)
	p.SetParameter("sendmid", 1)
	p.SetParameter("feedbackmid", 0.9)
	p.SetParameter("timemid", 100)

	if err := p.Prepare(core.ApplyProcessorOptions(core.WithSampleRate(48000))); err != nil {
		panic(err)
	}

	mid := make([]float64, 400)
	side := make([]float64, 400)
	mid[0] = 1
	p.ProcessBlock(mid, side)

	peak := func(buf []float64) float64 {
		m := 0.0
		for _, v := range buf {
			m = math.Max(m, math.Abs(v))
		}
		return m
	}

	first := peak(mid[100:200])
	fmt.Printf("echo 2: %.3f\n", peak(mid[200:300])/first)
	fmt.Printf("echo 3: %.3f\n", peak(mid[300:400])/first)
	// Output:
	// echo 2: 0.900
	// echo 3: 0.810
}
