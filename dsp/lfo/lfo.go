package lfo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
)

const defaultSeed = 1

// Waveform selects the oscillator shape.
type Waveform int

const (
	// Sine is sin(2*pi*phase).
	Sine Waveform = iota
	// Triangle starts at 0, peaks at +1 at phase 0.25 and -1 at phase 0.75.
	Triangle
	// Sawtooth rises linearly from -1 to +1 over one cycle.
	Sawtooth
	// Square is -1 for the first half cycle and +1 for the second.
	Square
	// Random holds a uniform draw in [-1, 1] for one cycle.
	Random
	// SampleHold holds the input sample captured at the last cycle start.
	SampleHold
)

var waveformNames = [...]string{
	Sine:       "sine",
	Triangle:   "triangle",
	Sawtooth:   "sawtooth",
	Square:     "square",
	Random:     "random",
	SampleHold: "samplehold",
}

func (w Waveform) String() string {
	if !w.Valid() {
		return "unknown"
	}
	return waveformNames[w]
}

// Valid reports whether w names a known shape.
func (w Waveform) Valid() bool {
	return w >= Sine && w <= SampleHold
}

// ParseWaveform returns the Waveform named by s.
func ParseWaveform(s string) (Waveform, error) {
	for i, name := range waveformNames {
		if name == s {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("lfo: unknown waveform %q", s)
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	waveform Waveform
	seed     int64
}

// WithWaveform selects the initial shape.
func WithWaveform(w Waveform) Option {
	return func(cfg *config) error {
		if !w.Valid() {
			return fmt.Errorf("lfo: invalid waveform: %d", w)
		}
		cfg.waveform = w
		return nil
	}
}

// WithSeed sets the seed of the Random shape's generator.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// Oscillator is a phase-accumulator LFO.
type Oscillator struct {
	sampleRate float64
	waveform   Waveform
	phase      float64
	held       float64

	seed int64
	rng  *rand.Rand
}

// New creates an oscillator. A non-positive sample rate is accepted; the
// oscillator then outputs 0 until SetSampleRate is called with a valid rate.
func New(sampleRate float64, opts ...Option) (*Oscillator, error) {
	cfg := config{waveform: Sine, seed: defaultSeed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	o := &Oscillator{
		waveform: cfg.waveform,
		seed:     cfg.seed,
		rng:      rand.New(rand.NewSource(cfg.seed)),
	}
	o.SetSampleRate(sampleRate)
	o.Reset()

	return o, nil
}

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Waveform returns the selected shape.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Held returns the value held by the Random and SampleHold shapes.
func (o *Oscillator) Held() float64 { return o.held }

// SetSampleRate updates the sample rate. Non-finite values are stored as 0,
// which silences the oscillator.
func (o *Oscillator) SetSampleRate(sampleRate float64) {
	if !core.IsFinite(sampleRate) {
		sampleRate = 0
	}
	o.sampleRate = sampleRate
}

// SetWaveform switches the shape without touching the phase. Switching to
// Random draws a fresh held value, as Reset does; other switches keep the
// held value. Unknown shapes are ignored.
func (o *Oscillator) SetWaveform(w Waveform) {
	if !w.Valid() || w == o.waveform {
		return
	}
	o.waveform = w
	if w == Random {
		o.held = o.draw()
	}
}

// Reset rewinds the phase and the random generator. The Random shape draws its
// first held value here; SampleHold starts from 0.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.rng.Seed(o.seed)
	o.held = 0
	if o.waveform == Random {
		o.held = o.draw()
	}
}

// Output returns depth times the shape value at the current phase, then
// advances the phase by freqHz/sampleRate. freqHz is clamped to
// [0, sampleRate/2]. hold is the sample captured by SampleHold when the phase
// wraps.
func (o *Oscillator) Output(freqHz, depth, hold float64) float64 {
	if o.sampleRate <= 0 {
		return 0
	}

	v := o.value()
	o.advance(freqHz, hold)

	if depth == 0 {
		return 0
	}
	return depth * v
}

func (o *Oscillator) value() float64 {
	p := o.phase
	switch o.waveform {
	case Triangle:
		switch {
		case p < 0.25:
			return 4 * p
		case p < 0.75:
			return 2 - 4*p
		default:
			return 4*p - 4
		}
	case Sawtooth:
		return 2*p - 1
	case Square:
		if p < 0.5 {
			return -1
		}
		return 1
	case Random, SampleHold:
		return o.held
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

func (o *Oscillator) advance(freqHz, hold float64) {
	if !core.IsFinite(freqHz) {
		return
	}

	inc := core.Clamp(freqHz, 0, 0.5*o.sampleRate) / o.sampleRate
	o.phase += inc
	if o.phase < 1 {
		return
	}

	o.phase -= 1
	switch o.waveform {
	case Random:
		o.held = o.draw()
	case SampleHold:
		if core.IsFinite(hold) {
			o.held = hold
		}
	}
}

func (o *Oscillator) draw() float64 {
	return 2*o.rng.Float64() - 1
}
