package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
)

// Errors returned by analysis functions.
var (
	ErrEmpty             = errors.New("response: input is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

const floorDB = -200.0

// BlockProcessor processes planar stereo buffers in place.
type BlockProcessor interface {
	ProcessBlock(left, right []float64)
}

// Capture runs a stereo impulse of the given channel amplitudes through p and
// returns the processed buffers.
func Capture(p BlockProcessor, samples int, left, right float64) ([]float64, []float64, error) {
	if samples <= 0 {
		return nil, nil, fmt.Errorf("response: samples must be > 0: %d", samples)
	}

	outL := make([]float64, samples)
	outR := make([]float64, samples)
	outL[0] = left
	outR[0] = right
	p.ProcessBlock(outL, outR)

	return outL, outR, nil
}

// Echo is one detected repeat in an impulse response.
type Echo struct {
	Index int     // sample index of the local peak
	Time  float64 // Index in seconds
	Level float64 // absolute peak value
}

// Analyzer computes response metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
	// FFTSize fixes the transform length. Zero picks the next power of two
	// that holds the whole response.
	FFTSize int
}

// NewAnalyzer creates an analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Magnitude returns |H(k)| for bins 0..N/2 of the zero-padded response.
func (a *Analyzer) Magnitude(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmpty
	}

	n := a.fftSize(len(ir))

	in := make([]complex128, n)
	for i, v := range ir[:min(len(ir), n)] {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

// BinHz returns the bin spacing for a magnitude slice of the given length.
func (a *Analyzer) BinHz(bins int) float64 {
	if bins < 2 {
		return 0
	}
	return a.SampleRate / float64(2*(bins-1))
}

// LevelAt returns the magnitude in dB of the bin nearest to freqHz.
func (a *Analyzer) LevelAt(mag []float64, freqHz float64) (float64, error) {
	if len(mag) == 0 {
		return 0, ErrEmpty
	}
	if a.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	k := int(math.Round(freqHz / a.BinHz(len(mag))))
	k = min(max(k, 0), len(mag)-1)

	return toDB(mag[k]), nil
}

// ToDB converts linear magnitudes to dB. Zero maps to -200 dB.
func ToDB(mag []float64) []float64 {
	out := make([]float64, len(mag))
	for i, m := range mag {
		out[i] = toDB(m)
	}
	return out
}

func toDB(m float64) float64 {
	if m <= 0 {
		return floorDB
	}
	return core.LinearToDB(m)
}

// Echoes returns the local peaks of |ir| that reach threshold times the
// global peak. Peaks closer than minSpacing samples to a louder one are
// merged into it.
func (a *Analyzer) Echoes(ir []float64, threshold float64, minSpacing int) ([]Echo, error) {
	if len(ir) == 0 {
		return nil, ErrEmpty
	}
	if a.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	peak := 0.0
	for _, v := range ir {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return nil, nil
	}

	limit := threshold * peak
	minSpacing = max(minSpacing, 1)

	var echoes []Echo
	for i, v := range ir {
		level := math.Abs(v)
		if level < limit || level == 0 || !isLocalPeak(ir, i) {
			continue
		}

		if n := len(echoes); n > 0 && i-echoes[n-1].Index < minSpacing {
			if level > echoes[n-1].Level {
				echoes[n-1] = a.echo(i, level)
			}
			continue
		}

		echoes = append(echoes, a.echo(i, level))
	}

	return echoes, nil
}

func (a *Analyzer) echo(i int, level float64) Echo {
	return Echo{Index: i, Time: float64(i) / a.SampleRate, Level: level}
}

func isLocalPeak(ir []float64, i int) bool {
	v := math.Abs(ir[i])
	if i > 0 && math.Abs(ir[i-1]) > v {
		return false
	}
	if i+1 < len(ir) && math.Abs(ir[i+1]) >= v {
		return false
	}
	return true
}

// DecayTime estimates the time for the response energy to fall by 60 dB.
// It fits a line to the Schroeder backward integral between -5 and -25 dB
// and extrapolates. It returns 0 when the response does not decay that far.
func (a *Analyzer) DecayTime(ir []float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmpty
	}
	if a.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	curve := schroeder(ir)

	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= -5 {
			start = i
		}
		if start >= 0 && v <= -25 {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0, nil
	}

	slope := fitSlope(curve[start : end+1])
	if slope >= 0 {
		return 0, nil
	}

	return -60 / (slope * a.SampleRate), nil
}

// schroeder returns the backward-integrated energy of ir in dB relative to
// the total.
func schroeder(ir []float64) []float64 {
	out := make([]float64, len(ir))

	var sum float64
	for i := len(ir) - 1; i >= 0; i-- {
		sum += ir[i] * ir[i]
		out[i] = sum
	}

	total := out[0]
	for i, e := range out {
		if total <= 0 || e <= 0 {
			out[i] = floorDB
			continue
		}
		out[i] = 10 * math.Log10(e/total)
	}

	return out
}

// fitSlope returns the least-squares slope of y over its index.
func fitSlope(y []float64) float64 {
	n := float64(len(y))
	if n < 2 {
		return 0
	}

	var sx, sy, sxx, sxy float64
	for i, v := range y {
		x := float64(i)
		sx += x
		sy += v
		sxx += x * x
		sxy += x * v
	}

	d := n*sxx - sx*sx
	if d == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / d
}

func (a *Analyzer) fftSize(length int) int {
	if a.FFTSize > 0 {
		return a.FFTSize
	}
	n := 2
	for n < length {
		n <<= 1
	}
	return n
}
