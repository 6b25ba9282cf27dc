package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireStereoNearlyEqual applies RequireSliceNearlyEqual to both channels
// and reports which channel differs.
func RequireStereoNearlyEqual(t *testing.T, gotL, gotR, wantL, wantR []float64, eps float64) {
	t.Helper()
	for _, ch := range []struct {
		name      string
		got, want []float64
	}{
		{"left", gotL, wantL},
		{"right", gotR, wantR},
	} {
		if d, err := MaxAbsDiff(ch.got, ch.want); err != nil {
			t.Fatalf("%s: %v", ch.name, err)
		} else if d > eps {
			i := firstDiff(ch.got, ch.want, eps)
			t.Fatalf("%s index %d: got %v, want %v (max diff %v > eps %v)", ch.name, i, ch.got[i], ch.want[i], d, eps)
		}
	}
}

func firstDiff(a, b []float64, eps float64) int {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return i
		}
	}
	return -1
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
