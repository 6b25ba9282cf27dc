package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a signal generator from processor options (sample
// rate) and signal options (seed).
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func (g *Generator) sine(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return out, nil
}

func (g *Generator) noise(seed int64, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Impulse generates a single sample of the given amplitude at pos.
func (g *Generator) Impulse(amplitude float64, samples, pos int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("impulse position must be in [0,%d): %d", samples, pos)
	}
	out := make([]float64, samples)
	out[pos] = amplitude
	return out, nil
}

// StereoSine generates a left/right sine pair. The right channel is shifted
// by phase radians, so a phase of pi gives a pure side signal.
func (g *Generator) StereoSine(freqHz, amplitude, phase float64, samples int) (left, right []float64, err error) {
	left, err = g.sine(freqHz, amplitude, 0, samples)
	if err != nil {
		return nil, nil, err
	}
	right, err = g.sine(freqHz, amplitude, phase, samples)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// StereoNoise generates uncorrelated left/right noise. The right channel
// uses seed+1.
func (g *Generator) StereoNoise(amplitude float64, samples int) (left, right []float64, err error) {
	left, err = g.noise(g.seed, amplitude, samples)
	if err != nil {
		return nil, nil, err
	}
	right, err = g.noise(g.seed+1, amplitude, samples)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// NormalizeStereo scales a left/right pair in place by a common factor so
// the louder channel peaks at targetPeak. Silent input is left as is.
func NormalizeStereo(left, right []float64, targetPeak float64) error {
	if targetPeak < 0 {
		return fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	maxAbs := max(Peak(left), Peak(right))
	if maxAbs == 0 {
		return nil
	}

	scale := targetPeak / maxAbs
	vecmath.ScaleBlock(left, left, scale)
	vecmath.ScaleBlock(right, right, scale)
	return nil
}

// Peak returns the largest absolute sample value.
func Peak(data []float64) float64 {
	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	return maxAbs
}
