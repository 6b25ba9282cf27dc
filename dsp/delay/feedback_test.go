package delay

import (
	"math"
	"testing"

	"github.com/ptablas/ECHO-CHAOS/internal/testutil"
)

func TestFeedbackValidation(t *testing.T) {
	if _, err := NewFeedback(WithCapacity(2)); err == nil {
		t.Fatal("NewFeedback() expected error for tiny capacity")
	}
	if _, err := NewFeedback(WithFeedbackLevel(math.NaN())); err == nil {
		t.Fatal("NewFeedback() expected error for NaN feedback")
	}
	if _, err := NewFeedback(WithSendLevel(math.Inf(1))); err == nil {
		t.Fatal("NewFeedback() expected error for Inf send")
	}
	if _, err := NewFeedback(WithInterpolation(-1)); err == nil {
		t.Fatal("NewFeedback() expected error for invalid mode")
	}
}

func TestFeedbackDefaults(t *testing.T) {
	f, err := NewFeedback()
	if err != nil {
		t.Fatalf("NewFeedback() error = %v", err)
	}
	if f.Line().Len() != DefaultCapacity {
		t.Fatalf("capacity = %d, want %d", f.Line().Len(), DefaultCapacity)
	}
	if f.Feedback() != 0 || f.Send() != 0 {
		t.Fatalf("defaults feedback=%g send=%g, want 0 0", f.Feedback(), f.Send())
	}
}

func TestFeedbackEchoesDecayGeometrically(t *testing.T) {
	const (
		delaySamples = 10
		level        = 0.5
	)

	f, err := NewFeedback(WithCapacity(64), WithFeedbackLevel(level), WithSendLevel(1))
	if err != nil {
		t.Fatalf("NewFeedback() error = %v", err)
	}

	out := testutil.Impulse(60, 0)
	f.ProcessInPlace(out, delaySamples)

	for i, v := range out {
		want := 0.0
		if i > 0 && i%delaySamples == 0 {
			want = math.Pow(level, float64(i/delaySamples-1))
		}
		if !approxEqual(v, want, 1e-12) {
			t.Fatalf("sample %d = %g, want %g", i, v, want)
		}
	}
}

func TestFeedbackZeroSendInvertsDry(t *testing.T) {
	f, err := NewFeedback(WithCapacity(64), WithFeedbackLevel(0.7))
	if err != nil {
		t.Fatalf("NewFeedback() error = %v", err)
	}

	in := testutil.DeterministicNoise(3, 1, 200)
	for i, x := range in {
		if got := f.Process(x, 17.3); got != -x {
			t.Fatalf("sample %d = %g, want %g", i, got, -x)
		}
	}
}

func TestFeedbackNegativeDelayFolds(t *testing.T) {
	a, err := NewFeedback(WithCapacity(128), WithFeedbackLevel(0.3), WithSendLevel(0.6))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewFeedback(WithCapacity(128), WithFeedbackLevel(0.3), WithSendLevel(0.6))
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicSine(440, 48000, 0.8, 300)
	for i, x := range in {
		ya := a.Process(x, 23.4)
		yb := b.Process(x, -23.4)
		if ya != yb {
			t.Fatalf("sample %d: delay 23.4 -> %g, delay -23.4 -> %g", i, ya, yb)
		}
	}
}

func TestFeedbackResetRestoresState(t *testing.T) {
	f, err := NewFeedback(WithCapacity(64), WithFeedbackLevel(0.4), WithSendLevel(0.5))
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.Impulse(96, 0)
	out1 := make([]float64, len(in))
	copy(out1, in)
	f.ProcessInPlace(out1, 7.5)

	f.Reset()

	out2 := make([]float64, len(in))
	copy(out2, in)
	f.ProcessInPlace(out2, 7.5)

	testutil.RequireSliceNearlyEqual(t, out2, out1, 1e-12)
}

func TestFeedbackSettersIgnoreNonFinite(t *testing.T) {
	f, err := NewFeedback(WithFeedbackLevel(0.2), WithSendLevel(0.3))
	if err != nil {
		t.Fatal(err)
	}
	f.SetFeedback(math.NaN())
	f.SetSend(math.Inf(-1))
	if f.Feedback() != 0.2 || f.Send() != 0.3 {
		t.Fatalf("non-finite setters changed state: feedback=%g send=%g", f.Feedback(), f.Send())
	}
}
