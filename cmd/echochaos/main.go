// Command echochaos renders and plays audio through the mid/side modulated
// delay and analyzes its impulse response.
//
// Usage:
//
//	echochaos render [flags]
//	echochaos response [flags]
//	echochaos play [flags]
//	echochaos params
//
// Build with -tags headless to drop the audio device dependency; play then
// reports an error.
//
// Examples:
//
//	echochaos render -in dry.wav -out wet.wav -set sendmid=0.5 -set timemid=4800
//	echochaos render -source noise -dur 2 -out noise.wav -set stereowidth=2
//	echochaos render -in dry.wav -out wet.wav -event timemid=9600@48000
//	echochaos response -set sendmid=1 -set feedbackmid=0.6 -set timemid=2400
//	echochaos play -source noise -loop -set sendmid=0.5 -set timemid=9600
//	echochaos params
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ptablas/ECHO-CHAOS/dsp/effects/msdelay"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:])
	case "response":
		err = runResponse(os.Args[2:])
	case "play":
		err = runPlay(os.Args[2:])
	case "params":
		err = printParams()
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: echochaos <command> [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  render    process a WAV file or generated source and write a WAV file\n")
	fmt.Fprintf(os.Stderr, "  response  print echo, decay and magnitude analysis of the impulse response\n")
	fmt.Fprintf(os.Stderr, "  play      play through the audio device with live key controls\n")
	fmt.Fprintf(os.Stderr, "  params    list parameter names, ranges and defaults\n\n")
	fmt.Fprintf(os.Stderr, "Run 'echochaos <command> -h' for command flags.\n")
}

func printParams() error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Name\tMin\tMax\tDefault\tRamped\tChoices\n"); err != nil {
		return err
	}
	for _, p := range msdelay.Params() {
		if _, err := fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%v\t%s\n",
			p.Name, p.Min, p.Max, p.Default, p.Ramped, strings.Join(p.Choices, ", ")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
