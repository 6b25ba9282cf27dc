package svf

import (
	"fmt"
	"math"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
)

const (
	defaultCutoffHz  = 1000.0
	defaultResonance = 1 / math.Sqrt2

	minCutoffHz    = 20.0
	maxCutoffRatio = 0.49
	minResonance   = 0.01
	maxResonance   = 20.0
)

// Mode selects the filter output.
type Mode int

const (
	// Lowpass passes content below the cutoff.
	Lowpass Mode = iota
	// Bandpass passes content around the cutoff.
	Bandpass
	// Highpass passes content above the cutoff.
	Highpass
)

func (m Mode) String() string {
	switch m {
	case Lowpass:
		return "lowpass"
	case Bandpass:
		return "bandpass"
	case Highpass:
		return "highpass"
	default:
		return "unknown"
	}
}

// Valid reports whether m names a known output.
func (m Mode) Valid() bool {
	return m >= Lowpass && m <= Highpass
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	mode      Mode
	cutoffHz  float64
	resonance float64
}

func defaultConfig() config {
	return config{
		mode:      Lowpass,
		cutoffHz:  defaultCutoffHz,
		resonance: defaultResonance,
	}
}

// WithMode selects the initial output.
func WithMode(mode Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("svf: invalid mode: %d", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithCutoffHz sets the initial cutoff. Must be finite and > 0; the value is
// clamped against the sample rate afterwards.
func WithCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(cutoffHz) || cutoffHz <= 0 {
			return fmt.Errorf("svf: cutoff must be > 0 and finite: %f", cutoffHz)
		}

		cfg.cutoffHz = cutoffHz

		return nil
	}
}

// WithResonance sets the initial resonance (Q). Must be finite and > 0.
func WithResonance(q float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(q) || q <= 0 {
			return fmt.Errorf("svf: resonance must be > 0 and finite: %f", q)
		}

		cfg.resonance = q

		return nil
	}
}

// Filter is a TPT state-variable filter.
//
// Per sample, with g = tan(pi*fc/fs), R2 = 1/Q and h = 1/(1 + R2*g + g*g):
//
//	hp = h*(x - s1*(g+R2) - s2)
//	bp = hp*g + s1;  s1 = hp*g + bp
//	lp = bp*g + s2;  s2 = bp*g + lp
type Filter struct {
	sampleRate float64
	mode       Mode

	cutoffHz  float64 // as requested
	resonance float64 // as requested

	g, r2, h float64
	s1, s2   float64
}

// New constructs a filter for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("svf: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		sampleRate: sampleRate,
		mode:       cfg.mode,
		cutoffHz:   cfg.cutoffHz,
		resonance:  cfg.resonance,
	}
	f.update()

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Mode returns the selected output.
func (f *Filter) Mode() Mode { return f.mode }

// CutoffHz returns the effective cutoff after clamping.
func (f *Filter) CutoffHz() float64 {
	return clampCutoff(f.cutoffHz, f.sampleRate)
}

// Resonance returns the effective resonance after clamping.
func (f *Filter) Resonance() float64 {
	return core.Clamp(f.resonance, minResonance, maxResonance)
}

// SetSampleRate updates the sample rate and re-clamps the cutoff. Integrator
// state is kept.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("svf: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.update()

	return nil
}

// SetMode switches the output. Unknown modes are ignored.
func (f *Filter) SetMode(mode Mode) {
	if mode.Valid() {
		f.mode = mode
	}
}

// SetCutoffHz updates the cutoff. Non-finite values are ignored.
func (f *Filter) SetCutoffHz(cutoffHz float64) {
	if !core.IsFinite(cutoffHz) || cutoffHz == f.cutoffHz {
		return
	}

	f.cutoffHz = cutoffHz
	f.update()
}

// SetResonance updates Q. Non-finite values are ignored.
func (f *Filter) SetResonance(q float64) {
	if !core.IsFinite(q) || q == f.resonance {
		return
	}

	f.resonance = q
	f.update()
}

// Reset clears the integrators.
func (f *Filter) Reset() {
	f.s1 = 0
	f.s2 = 0
}

// State returns the two integrator states.
func (f *Filter) State() (s1, s2 float64) {
	return f.s1, f.s2
}

// ProcessSample filters one sample and returns the selected output.
func (f *Filter) ProcessSample(x float64) float64 {
	hp := f.h * (x - f.s1*(f.g+f.r2) - f.s2)

	v := hp * f.g
	bp := v + f.s1
	f.s1 = core.FlushDenormals(v + bp)

	v = bp * f.g
	lp := v + f.s2
	f.s2 = core.FlushDenormals(v + lp)

	switch f.mode {
	case Bandpass:
		return bp
	case Highpass:
		return hp
	default:
		return lp
	}
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

func (f *Filter) update() {
	fc := clampCutoff(f.cutoffHz, f.sampleRate)
	q := core.Clamp(f.resonance, minResonance, maxResonance)

	f.g = math.Tan(math.Pi * fc / f.sampleRate)
	f.r2 = 1 / q
	f.h = 1 / (1 + f.r2*f.g + f.g*f.g)
}

func clampCutoff(cutoffHz, sampleRate float64) float64 {
	hi := maxCutoffRatio * sampleRate
	lo := min(minCutoffHz, hi)
	return core.Clamp(cutoffHz, lo, hi)
}
