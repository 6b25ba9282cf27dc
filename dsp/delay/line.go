package delay

import (
	"fmt"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
	"github.com/ptablas/ECHO-CHAOS/dsp/interp"
)

// interpMargin is the number of slots a fractional read needs beyond its
// integer delay: one newer neighbor and two older points.
const interpMargin = 3

// Option configures a Line.
type Option func(*Line) error

// WithMode selects the fractional interpolation kernel.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) error {
		if !mode.Valid() {
			return fmt.Errorf("delay: invalid interpolation mode: %d", mode)
		}
		d.mode = mode
		return nil
	}
}

// Line is a fixed-capacity circular delay line.
//
// Push writes at the cursor and advances it. Read and Pop address samples by
// how many pushes ago they were written: a delay of 1 is the most recent
// sample.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// New returns a delay line of fixed size. Fractional reads default to
// 3rd-order Lagrange interpolation.
func New(size int, opts ...Option) (*Line, error) {
	if size < interpMargin+1 {
		return nil, fmt.Errorf("delay: size must be >= %d: %d", interpMargin+1, size)
	}

	d := &Line{
		buffer: make([]float64, size),
		mode:   interp.ModeLagrange,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation kernel used by Pop.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// MaxDelay returns the largest delay Pop will honor; larger requests are
// clamped to it.
func (d *Line) MaxDelay() float64 {
	return float64(len(d.buffer) - interpMargin)
}

// Push writes one sample and advances the cursor.
func (d *Line) Push(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay pushes ago. The delay is wrapped into
// the buffer, so callers wanting bounds must clamp first.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - delay) % size
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Pop reads at a fractional delay in samples. The delay is clamped into
// [1, MaxDelay()]; NaN reads as the minimum delay.
func (d *Line) Pop(delay float64) float64 {
	maxDelay := d.MaxDelay()
	if !(delay >= 1) {
		delay = 1
	} else if delay > maxDelay {
		delay = maxDelay
	}

	p := int(delay)
	t := delay - float64(p)
	if t == 0 {
		return d.Read(p)
	}

	xm1 := d.Read(max(1, p-1))
	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	x2 := d.Read(p + 2)
	return d.mode.Interpolate(t, xm1, x0, x1, x2)
}

// Reset clears line state without reallocating.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}

