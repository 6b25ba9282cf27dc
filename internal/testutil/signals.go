package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// StereoNoise generates uncorrelated left/right noise. The right channel uses
// seed+1.
func StereoNoise(seed int64, amplitude float64, length int) (left, right []float64) {
	return DeterministicNoise(seed, amplitude, length), DeterministicNoise(seed+1, amplitude, length)
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// CloneStereo returns independent copies of a stereo pair.
func CloneStereo(left, right []float64) ([]float64, []float64) {
	return append([]float64(nil), left...), append([]float64(nil), right...)
}
