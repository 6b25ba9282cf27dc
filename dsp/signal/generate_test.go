package signal

import (
	"math"
	"testing"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
)

func TestStereoSineLength(t *testing.T) {
	g := NewGenerator([]core.ProcessorOption{core.WithSampleRate(48000)})
	left, right, err := g.StereoSine(1000, 1, 0, 64)
	if err != nil {
		t.Fatalf("StereoSine() error = %v", err)
	}
	if len(left) != 64 || len(right) != 64 {
		t.Fatalf("len = %d/%d, want 64", len(left), len(right))
	}

	if _, _, err := g.StereoSine(1000, 1, 0, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestStereoNoiseDeterministic(t *testing.T) {
	g1 := NewGenerator(nil, WithSeed(42))
	g2 := NewGenerator(nil, WithSeed(42))

	l1, r1, err := g1.StereoNoise(1, 16)
	if err != nil {
		t.Fatalf("StereoNoise() error = %v", err)
	}
	l2, r2, err := g2.StereoNoise(1, 16)
	if err != nil {
		t.Fatalf("StereoNoise() error = %v", err)
	}

	for i := range l1 {
		if l1[i] != l2[i] || r1[i] != r2[i] {
			t.Fatalf("noise mismatch at %d", i)
		}
		if math.Abs(l1[i]) > 1 || math.Abs(r1[i]) > 1 {
			t.Fatalf("noise[%d] = %v/%v outside [-1,1]", i, l1[i], r1[i])
		}
	}

	if _, _, err := g1.StereoNoise(-1, 16); err == nil {
		t.Fatal("expected error for negative amplitude")
	}
}

func TestStereoNoiseSeeds(t *testing.T) {
	a, _, err := NewGenerator(nil, WithSeed(99)).StereoNoise(1, 8)
	if err != nil {
		t.Fatalf("StereoNoise() error = %v", err)
	}
	b, _, err := NewGenerator(nil, WithSeed(100)).StereoNoise(1, 8)
	if err != nil {
		t.Fatalf("StereoNoise() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different noise")
	}
}

func TestImpulse(t *testing.T) {
	g := NewGenerator(nil)
	out, err := g.Impulse(0.75, 8, 3)
	if err != nil {
		t.Fatalf("Impulse() error = %v", err)
	}
	for i, v := range out {
		want := 0.0
		if i == 3 {
			want = 0.75
		}
		if v != want {
			t.Fatalf("out[%d]=%v, want %v", i, v, want)
		}
	}

	if _, err := g.Impulse(1, 8, 8); err == nil {
		t.Fatal("expected error for position out of range")
	}
}

func TestStereoSineAntiphase(t *testing.T) {
	g := NewGenerator([]core.ProcessorOption{core.WithSampleRate(48000)})
	left, right, err := g.StereoSine(440, 0.5, math.Pi, 256)
	if err != nil {
		t.Fatalf("StereoSine() error = %v", err)
	}

	for i := range left {
		if math.Abs(left[i]+right[i]) > 1e-12 {
			t.Fatalf("sample %d: left=%g right=%g are not in antiphase", i, left[i], right[i])
		}
	}
}

func TestStereoNoiseUncorrelated(t *testing.T) {
	g := NewGenerator(nil, WithSeed(5))
	left, right, err := g.StereoNoise(1, 4096)
	if err != nil {
		t.Fatalf("StereoNoise() error = %v", err)
	}

	var dot, el, er float64
	for i := range left {
		dot += left[i] * right[i]
		el += left[i] * left[i]
		er += right[i] * right[i]
	}
	if corr := dot / math.Sqrt(el*er); math.Abs(corr) > 0.1 {
		t.Fatalf("correlation=%g, want near 0", corr)
	}
}

func TestNormalizeStereo(t *testing.T) {
	left := []float64{0.1, -0.2}
	right := []float64{0.4, 0.05}
	if err := NormalizeStereo(left, right, 1); err != nil {
		t.Fatalf("NormalizeStereo() error = %v", err)
	}

	if math.Abs(right[0]-1) > 1e-12 || math.Abs(left[1]+0.5) > 1e-12 {
		t.Fatalf("unexpected result: left=%v right=%v", left, right)
	}

	if err := NormalizeStereo(left, right, -1); err == nil {
		t.Fatal("expected error for negative target")
	}
}

func TestPeak(t *testing.T) {
	if got := Peak([]float64{0.25, -0.75, 0.5}); got != 0.75 {
		t.Fatalf("Peak()=%g want=0.75", got)
	}
	if got := Peak(nil); got != 0 {
		t.Fatalf("Peak(nil)=%g want=0", got)
	}
}
