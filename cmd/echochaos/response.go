package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ptablas/ECHO-CHAOS/measure/response"
)

var bandCenters = []float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

func runResponse(args []string) error {
	var params paramFlag

	fs := flag.NewFlagSet("response", flag.ContinueOnError)
	sampleRate := fs.Float64("sr", 48000, "sample rate in Hz")
	length := fs.Float64("len", 1, "captured response length in seconds")
	block := fs.Int("block", 512, "processing block size in frames")
	seed := fs.Int64("seed", 1, "random LFO seed")
	interpName := fs.String("interp", "lagrange", "delay interpolation: lagrange, hermite, linear")
	threshold := fs.Float64("threshold", 0.01, "echo detection threshold relative to the peak")
	spacing := fs.Float64("spacing", 0.002, "minimum echo spacing in seconds")
	impulseL := fs.Float64("l", 1, "left impulse amplitude")
	impulseR := fs.Float64("r", 0, "right impulse amplitude")
	fs.Var(&params, "set", "parameter assignment name=value (repeatable)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: echochaos response [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := newProcessor(*seed, *interpName, params, *sampleRate, *block)
	if err != nil {
		return err
	}

	n := int(*length * *sampleRate)
	left, right, err := response.Capture(p, n, *impulseL, *impulseR)
	if err != nil {
		return err
	}

	a := response.NewAnalyzer(*sampleRate)
	minSpacing := int(*spacing * *sampleRate)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, ch := range []struct {
		name string
		ir   []float64
	}{
		{"left", left},
		{"right", right},
	} {
		if err := report(tw, a, ch.name, ch.ir, *threshold, minSpacing); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func report(tw *tabwriter.Writer, a *response.Analyzer, name string, ir []float64, threshold float64, minSpacing int) error {
	echoes, err := a.Echoes(ir, threshold, minSpacing)
	if err != nil {
		return err
	}
	rt, err := a.DecayTime(ir)
	if err != nil {
		return err
	}
	mag, err := a.Magnitude(ir)
	if err != nil {
		return err
	}

	fmt.Fprintf(tw, "== %s ==\n", name)
	fmt.Fprintf(tw, "decay (RT60)\t%.3f s\n", rt)
	fmt.Fprintf(tw, "echoes\t%d\n", len(echoes))
	fmt.Fprintf(tw, "#\tFrame\tTime [ms]\tLevel [dB]\n")
	for i, e := range echoes {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\n", i, e.Index, 1000*e.Time, response.ToDB([]float64{e.Level})[0])
	}

	fmt.Fprintf(tw, "Band [Hz]\tLevel [dB]\n")
	for _, f := range bandCenters {
		if f >= a.SampleRate/2 {
			break
		}
		db, err := a.LevelAt(mag, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%g\t%.2f\n", f, db)
	}
	_, err = fmt.Fprintln(tw)
	return err
}
