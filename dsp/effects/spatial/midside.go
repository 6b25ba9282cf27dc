package spatial

import (
	"fmt"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
)

const (
	// Trim line values at width 0. The wide line is only used above width 1.
	narrowTrimDB = -6.0
	wideTrimDB   = 4.0
)

// Format identifies how a channel pair is laid out.
type Format int

const (
	// Stereo is a left/right pair.
	Stereo Format = iota
	// MidSide is a mid/side pair.
	MidSide
)

func (f Format) String() string {
	switch f {
	case Stereo:
		return "stereo"
	case MidSide:
		return "midside"
	default:
		return "unknown"
	}
}

// Valid reports whether f names a known layout.
func (f Format) Valid() bool {
	return f == Stereo || f == MidSide
}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "stereo", "lr":
		return Stereo, nil
	case "midside", "ms":
		return MidSide, nil
	default:
		return 0, fmt.Errorf("spatial: unknown format %q", s)
	}
}

// Encode converts the pair (a, b) into width-weighted mid and side.
//
// For Stereo input, mid = 0.5*(2-width)*(a+b) and side = 0.5*width*(a-b).
// For MidSide input the pair is taken as mid and side directly and weighted
// the same way. Width 1 is neutral, 0 removes the side and 2 removes the mid.
func Encode(a, b, width float64, in Format) (mid, side float64) {
	if in == MidSide {
		return 0.5 * a * (2 - width), 0.5 * b * width
	}
	return 0.5 * (2 - width) * (a + b), 0.5 * width * (a - b)
}

// Decode converts mid and side into the requested output layout. Stereo
// output is mid+side and mid-side; when the input was Stereo as well the pair
// is scaled by WidthTrimGain(width). MidSide output passes mid and side
// through.
func Decode(mid, side, width float64, in, out Format) (a, b float64) {
	if out == MidSide {
		return mid, side
	}

	a, b = Split(mid, side)
	if in == Stereo {
		g := WidthTrimGain(width)
		a *= g
		b *= g
	}
	return a, b
}

// Split returns mid+side and mid-side with no trim.
func Split(mid, side float64) (left, right float64) {
	return mid + side, mid - side
}

// WidthTrimDB returns the loudness trim for a Stereo to Stereo pass. It is
// 0 dB at width 1, falls linearly to -6 dB at width 0, and above width 1
// follows the line through (1, 0 dB) and (0, +4 dB), reaching -4 dB at
// width 2.
func WidthTrimDB(width float64) float64 {
	if width <= 1 {
		return core.MapRange(width, 1, 0, 0, narrowTrimDB)
	}
	return core.MapRange(width, 1, 0, 0, wideTrimDB)
}

// WidthTrimGain returns WidthTrimDB as a linear amplitude factor.
func WidthTrimGain(width float64) float64 {
	return dbToGain(WidthTrimDB(width))
}

// Codec is a width-only mid/side round trip with fixed input and output
// layouts. With nothing processed between encode and decode it behaves as a
// stereo width control.
type Codec struct {
	width float64
	in    Format
	out   Format
}

// NewCodec creates a codec. Width must be finite and >= 0.
func NewCodec(width float64, in, out Format) (*Codec, error) {
	if !core.IsFinite(width) || width < 0 {
		return nil, fmt.Errorf("spatial: width must be >= 0 and finite: %f", width)
	}
	if !in.Valid() || !out.Valid() {
		return nil, fmt.Errorf("spatial: invalid format pair: %d -> %d", in, out)
	}

	return &Codec{width: width, in: in, out: out}, nil
}

// Width returns the width factor.
func (c *Codec) Width() float64 { return c.width }

// SetWidth updates the width factor. Negative or non-finite values are
// ignored.
func (c *Codec) SetWidth(width float64) {
	if core.IsFinite(width) && width >= 0 {
		c.width = width
	}
}

// ProcessStereo runs one pair through Encode and Decode.
func (c *Codec) ProcessStereo(a, b float64) (float64, float64) {
	mid, side := Encode(a, b, c.width, c.in)
	return Decode(mid, side, c.width, c.in, c.out)
}

// ProcessStereoInPlace processes paired buffers in place. Both buffers must
// have the same length.
func (c *Codec) ProcessStereoInPlace(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("spatial: buffers must have equal length: %d != %d", len(a), len(b))
	}

	for i := range a {
		a[i], b[i] = c.ProcessStereo(a[i], b[i])
	}

	return nil
}

// ProcessInterleavedInPlace processes an interleaved pair buffer in place.
// The buffer length must be even.
func (c *Codec) ProcessInterleavedInPlace(buf []float64) error {
	if len(buf)%2 != 0 {
		return fmt.Errorf("spatial: interleaved buffer length must be even: %d", len(buf))
	}

	for i := 0; i < len(buf); i += 2 {
		buf[i], buf[i+1] = c.ProcessStereo(buf[i], buf[i+1])
	}

	return nil
}
