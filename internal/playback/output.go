//go:build !headless

package playback

import (
	"context"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	outputBuffer = 50 * time.Millisecond
	pollInterval = 20 * time.Millisecond
)

// Output plays a float32 stereo stream on the default audio device.
type Output struct {
	ctx    *oto.Context
	player *oto.Player
}

// Open creates the audio context and a player reading from r. Only one
// Output may exist per process.
func Open(sampleRate int, r io.Reader) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   outputBuffer,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &Output{ctx: ctx, player: ctx.NewPlayer(r)}, nil
}

// Play starts playback.
func (o *Output) Play() {
	o.player.Play()
}

// Wait blocks until the stream is drained or ctx is done.
func (o *Output) Wait(ctx context.Context) error {
	t := time.NewTicker(pollInterval)
	defer t.Stop()

	for o.player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

// Close stops playback.
func (o *Output) Close() error {
	return o.player.Close()
}
