// Package ramp provides linear per-sample parameter smoothing.
//
// A [Linear] ramp turns discrete target updates into a sequence of values
// that reaches the target after a fixed duration, removing the audible steps
// ("zipper noise") a hard parameter jump would cause.
package ramp

import (
	"math"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
)

// DefaultSeconds is the ramp duration used by the processors in this module.
const DefaultSeconds = 0.02

// Linear moves from its current value to a target in equal increments over a
// fixed number of samples.
//
// The zero value holds 0 and jumps immediately to any target until Reset
// configures a duration.
type Linear struct {
	current   float64
	target    float64
	step      float64
	remaining int
	steps     int
}

// NewLinear returns a ramp resting at initial, configured for sampleRate and
// a ramp duration in seconds.
func NewLinear(initial, sampleRate, seconds float64) *Linear {
	l := &Linear{}
	l.SetCurrentAndTarget(initial)
	l.Reset(sampleRate, seconds)
	return l
}

// Reset recomputes the number of steps per ramp for a sample rate and
// duration, and snaps the current value to the target. A non-positive sample
// rate or duration makes every later target change immediate.
func (l *Linear) Reset(sampleRate, seconds float64) {
	steps := 0
	if sampleRate > 0 && seconds > 0 && core.IsFinite(sampleRate*seconds) {
		steps = int(math.Floor(sampleRate * seconds))
	}
	l.steps = steps
	l.SetCurrentAndTarget(l.target)
}

// SetTarget starts a ramp from the current value towards target. Calling it
// during a ramp re-bases from the in-flight value. Repeating the current
// target or passing a non-finite value does nothing.
func (l *Linear) SetTarget(target float64) {
	if !core.IsFinite(target) || target == l.target {
		return
	}

	if l.steps <= 0 {
		l.SetCurrentAndTarget(target)
		return
	}

	l.target = target
	l.remaining = l.steps
	l.step = (l.target - l.current) / float64(l.remaining)
}

// SetCurrentAndTarget jumps to v without ramping.
func (l *Linear) SetCurrentAndTarget(v float64) {
	if !core.IsFinite(v) {
		return
	}
	l.current = v
	l.target = v
	l.step = 0
	l.remaining = 0
}

// Next advances one sample and returns the new value. The final step lands on
// the target exactly.
func (l *Linear) Next() float64 {
	if l.remaining <= 0 {
		return l.target
	}

	l.remaining--
	if l.remaining > 0 {
		l.current += l.step
	} else {
		l.current = l.target
	}

	return l.current
}

// Skip advances n samples at once and returns the resulting value.
func (l *Linear) Skip(n int) float64 {
	if n <= 0 || l.remaining <= 0 {
		return l.current
	}

	if n >= l.remaining {
		l.SetCurrentAndTarget(l.target)
		return l.current
	}

	l.current += l.step * float64(n)
	l.remaining -= n
	return l.current
}

// Current returns the most recent value produced.
func (l *Linear) Current() float64 { return l.current }

// Target returns the value the ramp is heading to.
func (l *Linear) Target() float64 { return l.target }

// IsRamping reports whether more steps remain before the target.
func (l *Linear) IsRamping() bool { return l.remaining > 0 }

// Steps returns the number of samples a full ramp takes.
func (l *Linear) Steps() int { return l.steps }
