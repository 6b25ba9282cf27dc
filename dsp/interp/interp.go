package interp

import "fmt"

// Mode selects a 4-point fractional interpolation kernel.
type Mode int

const (
	// ModeLagrange is 3rd-order (4-point) Lagrange interpolation.
	ModeLagrange Mode = iota
	// ModeHermite is 4-point cubic Hermite interpolation.
	ModeHermite
	// ModeLinear is 2-point linear interpolation; the outer points are ignored.
	ModeLinear
)

func (m Mode) String() string {
	switch m {
	case ModeLagrange:
		return "lagrange"
	case ModeHermite:
		return "hermite"
	case ModeLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "lagrange", "lagrange3":
		return ModeLagrange, nil
	case "hermite":
		return ModeHermite, nil
	case "linear":
		return ModeLinear, nil
	default:
		return 0, fmt.Errorf("interp: unknown mode %q", s)
	}
}

// Valid reports whether m names a known kernel.
func (m Mode) Valid() bool {
	return m >= ModeLagrange && m <= ModeLinear
}

// Interpolate evaluates the kernel between x0 (t=0) and x1 (t=1) using the
// neighbors xm1 and x2.
func (m Mode) Interpolate(t, xm1, x0, x1, x2 float64) float64 {
	switch m {
	case ModeHermite:
		return Hermite4(t, xm1, x0, x1, x2)
	case ModeLinear:
		return Linear2(t, x0, x1)
	default:
		return Lagrange4(t, xm1, x0, x1, x2)
	}
}

// Linear2 interpolates linearly from x0 to x1.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Lagrange4 evaluates the cubic Lagrange polynomial through the points
// (-1, xm1), (0, x0), (1, x1), (2, x2) at t. At t = 0 and t = 1 it returns
// x0 and x1 exactly.
func Lagrange4(t, xm1, x0, x1, x2 float64) float64 {
	tp1 := t + 1
	tm1 := t - 1
	tm2 := t - 2

	return -t*tm1*tm2/6*xm1 +
		tp1*tm1*tm2/2*x0 -
		tp1*t*tm2/2*x1 +
		tp1*t*tm1/6*x2
}
