package ramp

import (
	"math"
	"testing"
)

func TestLinearReachesTargetAfterRampDuration(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		seconds    float64
		from, to   float64
	}{
		{name: "up 48k", sampleRate: 48000, seconds: 0.02, from: 0, to: 1},
		{name: "down 44.1k", sampleRate: 44100, seconds: 0.02, from: 20000, to: 100},
		{name: "negative 96k", sampleRate: 96000, seconds: 0.005, from: 3, to: -7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLinear(tt.from, tt.sampleRate, tt.seconds)
			l.SetTarget(tt.to)

			steps := int(math.Floor(tt.sampleRate * tt.seconds))
			if l.Steps() != steps {
				t.Fatalf("Steps() = %d, want %d", l.Steps(), steps)
			}

			prev := tt.from
			dir := math.Copysign(1, tt.to-tt.from)
			for i := range steps {
				v := l.Next()
				if (v-prev)*dir < 0 {
					t.Fatalf("step %d moved away from target: prev=%g got=%g", i, prev, v)
				}
				if (v-tt.to)*dir > 0 {
					t.Fatalf("step %d overshot target: got=%g target=%g", i, v, tt.to)
				}
				if i < steps-1 && !l.IsRamping() {
					t.Fatalf("ramp finished early at step %d", i)
				}
				prev = v
			}

			if prev != tt.to {
				t.Fatalf("value after %d steps = %g, want exactly %g", steps, prev, tt.to)
			}
			if l.IsRamping() {
				t.Fatal("ramp still active after full duration")
			}
			if got := l.Next(); got != tt.to {
				t.Fatalf("Next() after ramp = %g, want %g", got, tt.to)
			}
		})
	}
}

func TestLinearRetargetRebasesFromCurrentValue(t *testing.T) {
	l := NewLinear(0, 1000, 0.01) // 10 steps
	l.SetTarget(10)
	for range 5 {
		l.Next()
	}
	mid := l.Current()
	if math.Abs(mid-5) > 1e-12 {
		t.Fatalf("halfway value = %g, want 5", mid)
	}

	l.SetTarget(0)
	first := l.Next()
	if math.Abs(first-4.5) > 1e-12 {
		t.Fatalf("first value after retarget = %g, want 4.5", first)
	}

	for range 9 {
		l.Next()
	}
	if l.Current() != 0 {
		t.Fatalf("value after retargeted ramp = %g, want 0", l.Current())
	}
}

func TestLinearSameTargetDoesNotRestart(t *testing.T) {
	l := NewLinear(0, 1000, 0.01)
	l.SetTarget(1)
	for range 3 {
		l.Next()
	}
	before := l.Current()
	l.SetTarget(1)
	if got := l.Next(); math.Abs(got-(before+0.1)) > 1e-12 {
		t.Fatalf("repeated target restarted the ramp: got=%g want=%g", got, before+0.1)
	}
}

func TestLinearWithoutDurationJumps(t *testing.T) {
	var l Linear
	l.SetTarget(3)
	if got := l.Next(); got != 3 {
		t.Fatalf("zero-value ramp Next() = %g, want 3", got)
	}

	l.Reset(0, 0.02)
	l.SetTarget(-1)
	if got := l.Next(); got != -1 {
		t.Fatalf("unconfigured ramp Next() = %g, want -1", got)
	}
}

func TestLinearResetSnapsToTarget(t *testing.T) {
	l := NewLinear(0, 48000, 0.02)
	l.SetTarget(2)
	l.Next()
	l.Reset(96000, 0.02)

	if l.IsRamping() {
		t.Fatal("Reset left the ramp active")
	}
	if l.Current() != 2 {
		t.Fatalf("Current() after Reset = %g, want 2", l.Current())
	}
	if l.Steps() != 1920 {
		t.Fatalf("Steps() after Reset = %d, want 1920", l.Steps())
	}
}

func TestLinearIgnoresNonFiniteTargets(t *testing.T) {
	l := NewLinear(1, 48000, 0.02)
	l.SetTarget(math.NaN())
	l.SetTarget(math.Inf(1))
	if l.Target() != 1 || l.IsRamping() {
		t.Fatalf("non-finite target changed state: target=%g ramping=%v", l.Target(), l.IsRamping())
	}
}

func TestLinearSkip(t *testing.T) {
	a := NewLinear(0, 1000, 0.01)
	b := NewLinear(0, 1000, 0.01)
	a.SetTarget(1)
	b.SetTarget(1)

	for range 4 {
		a.Next()
	}
	if got := b.Skip(4); math.Abs(got-a.Current()) > 1e-12 {
		t.Fatalf("Skip(4) = %g, want %g", got, a.Current())
	}
	if got := b.Skip(100); got != 1 {
		t.Fatalf("Skip past end = %g, want 1", got)
	}
}

func BenchmarkLinearNext(b *testing.B) {
	l := NewLinear(0, 48000, DefaultSeconds)
	for i := range b.N {
		if i%960 == 0 {
			l.SetTarget(float64(i % 7))
		}
		_ = l.Next()
	}
}
