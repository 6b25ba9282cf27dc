package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	ossignal "os/signal"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/ptablas/ECHO-CHAOS/internal/playback"
)

const statusInterval = 250 * time.Millisecond

func runPlay(args []string) error {
	var cfg renderConfig
	var loop bool

	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.StringVar(&cfg.in, "in", "", "input WAV file (mono or stereo); empty uses -source")
	fs.StringVar(&cfg.source, "source", "sine", "generated source when -in is empty: sine, noise, impulse")
	fs.Float64Var(&cfg.freq, "freq", 440, "sine source frequency in Hz")
	fs.Float64Var(&cfg.dur, "dur", 2, "generated source duration in seconds")
	fs.IntVar(&cfg.sampleRate, "sr", 48000, "generated source sample rate")
	fs.IntVar(&cfg.block, "block", 512, "processing block size in frames")
	fs.Int64Var(&cfg.seed, "seed", 1, "random LFO and noise seed")
	fs.StringVar(&cfg.interp, "interp", "lagrange", "delay interpolation: lagrange, hermite, linear")
	fs.Float64Var(&cfg.tail, "tail", 2, "seconds of silence after the source")
	fs.BoolVar(&loop, "loop", false, "loop the source until interrupted")
	fs.Var(&cfg.params, "set", "parameter assignment name=value (repeatable)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: echochaos play [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays through the default audio device. On a terminal, keys change\n")
		fmt.Fprintf(os.Stderr, "parameters live (q quits):\n%s\nFlags:\n", playback.Help(playback.DefaultBindings))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	left, right, sr, err := loadSource(cfg)
	if err != nil {
		return err
	}

	p, err := newProcessor(cfg.seed, cfg.interp, cfg.params, float64(sr), cfg.block)
	if err != nil {
		return err
	}

	ctrl, err := playback.NewController(p, playback.DefaultBindings)
	if err != nil {
		return err
	}
	for _, v := range cfg.params {
		ctrl.Set(v.name, v.value)
	}

	stream := playback.NewStream(p, left, right,
		playback.WithLoop(loop),
		playback.WithTail(int(math.Round(cfg.tail*float64(sr)))),
		playback.WithBlockSize(cfg.block),
	)

	out, err := playback.Open(sr, stream)
	if err != nil {
		return err
	}
	defer out.Close()

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan byte)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer func() { _ = term.Restore(fd, state) }()
		go readKeys(ctx, os.Stdin, keys)
	}

	out.Play()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if err := out.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return control(ctx, ctrl, keys, cancel)
	})
	g.Go(func() error {
		return status(ctx, stream, sr)
	})

	err = g.Wait()
	fmt.Print("\r\n")
	return err
}

// readKeys forwards single bytes from r until the read fails or ctx is done.
func readKeys(ctx context.Context, r io.Reader, keys chan<- byte) {
	b := make([]byte, 1)
	for {
		if _, err := r.Read(b); err != nil {
			return
		}
		select {
		case keys <- b[0]:
		case <-ctx.Done():
			return
		}
	}
}

func control(ctx context.Context, ctrl *playback.Controller, keys <-chan byte, quit context.CancelFunc) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case k := <-keys:
			if k == 'q' || k == 3 { // q or Ctrl-C in raw mode
				quit()
				return nil
			}
			if name, v, ok := ctrl.Handle(k); ok {
				fmt.Printf("\r\n%s = %g\r\n", name, v)
			}
		}
	}
}

func status(ctx context.Context, stream *playback.Stream, sampleRate int) error {
	t := time.NewTicker(statusInterval)
	defer t.Stop()

	total := stream.Length()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			pos := float64(stream.Frames()) / float64(sampleRate)
			if total < 0 {
				fmt.Printf("\r%7.2f s (looping)", pos)
			} else {
				fmt.Printf("\r%7.2f / %.2f s", pos, float64(total)/float64(sampleRate))
			}
		}
	}
}
