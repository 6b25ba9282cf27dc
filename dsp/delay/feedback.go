package delay

import (
	"fmt"
	"math"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
	"github.com/ptablas/ECHO-CHAOS/dsp/interp"
)

// DefaultCapacity is the per-channel buffer size in samples used when none is
// given.
const DefaultCapacity = 30000

// FeedbackOption mutates feedback delay construction parameters.
type FeedbackOption func(*feedbackConfig) error

type feedbackConfig struct {
	capacity int
	mode     interp.Mode
	feedback float64
	send     float64
}

func defaultFeedbackConfig() feedbackConfig {
	return feedbackConfig{
		capacity: DefaultCapacity,
		mode:     interp.ModeLagrange,
	}
}

// WithCapacity sets the buffer size in samples.
func WithCapacity(samples int) FeedbackOption {
	return func(cfg *feedbackConfig) error {
		if samples < interpMargin+1 {
			return fmt.Errorf("delay: capacity must be >= %d: %d", interpMargin+1, samples)
		}
		cfg.capacity = samples
		return nil
	}
}

// WithInterpolation selects the fractional read kernel.
func WithInterpolation(mode interp.Mode) FeedbackOption {
	return func(cfg *feedbackConfig) error {
		if !mode.Valid() {
			return fmt.Errorf("delay: invalid interpolation mode: %d", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// WithFeedbackLevel sets the initial feedback gain.
func WithFeedbackLevel(level float64) FeedbackOption {
	return func(cfg *feedbackConfig) error {
		if !core.IsFinite(level) {
			return fmt.Errorf("delay: feedback must be finite: %f", level)
		}
		cfg.feedback = level
		return nil
	}
}

// WithSendLevel sets the initial send (wet) level.
func WithSendLevel(level float64) FeedbackOption {
	return func(cfg *feedbackConfig) error {
		if !core.IsFinite(level) {
			return fmt.Errorf("delay: send must be finite: %f", level)
		}
		cfg.send = level
		return nil
	}
}

// Feedback is a modulated feedback delay with a send-controlled dry/wet mix.
//
// Each sample reads the line at |delay| samples, writes the input plus
// feedback times the delayed value, and returns
//
//	dry*(send-1) + wet*send
//
// At send 0 the result is the dry signal with inverted polarity, not a
// bypass. The feedback gain is not limited here; values >= 1 grow without
// bound, so callers keep it below 1.
type Feedback struct {
	line     *Line
	feedback float64
	send     float64
}

// NewFeedback creates a feedback delay with an empty line.
func NewFeedback(opts ...FeedbackOption) (*Feedback, error) {
	cfg := defaultFeedbackConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	line, err := New(cfg.capacity, WithMode(cfg.mode))
	if err != nil {
		return nil, err
	}

	return &Feedback{
		line:     line,
		feedback: cfg.feedback,
		send:     cfg.send,
	}, nil
}

// SetFeedback sets the feedback gain. Non-finite values are ignored.
func (f *Feedback) SetFeedback(level float64) {
	if core.IsFinite(level) {
		f.feedback = level
	}
}

// SetSend sets the send level. Non-finite values are ignored.
func (f *Feedback) SetSend(level float64) {
	if core.IsFinite(level) {
		f.send = level
	}
}

// Feedback returns the feedback gain.
func (f *Feedback) Feedback() float64 { return f.feedback }

// Send returns the send level.
func (f *Feedback) Send() float64 { return f.send }

// Line exposes the underlying buffer.
func (f *Feedback) Line() *Line { return f.line }

// Reset clears the buffer.
func (f *Feedback) Reset() {
	f.line.Reset()
}

// Process runs one sample through the delay. A negative delay is folded to
// its absolute value before the read.
func (f *Feedback) Process(dry, delay float64) float64 {
	wet := f.line.Pop(math.Abs(delay))
	f.line.Push(core.FlushDenormals(dry + wet*f.feedback))
	return dry*(f.send-1) + wet*f.send
}

// ProcessInPlace runs buf through the delay at a fixed delay time.
func (f *Feedback) ProcessInPlace(buf []float64, delay float64) {
	for i := range buf {
		buf[i] = f.Process(buf[i], delay)
	}
}
