package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
	"github.com/ptablas/ECHO-CHAOS/dsp/effects/msdelay"
)

// scaler multiplies left by 2 and negates right, and counts calls.
type scaler struct{ calls int }

func (s *scaler) ProcessBlock(left, right []float64) {
	s.calls++
	for i := range left {
		left[i] *= 2
		right[i] = -right[i]
	}
}

func decode(t *testing.T, b []byte) (left, right []float64) {
	t.Helper()
	if len(b)%bytesPerFrame != 0 {
		t.Fatalf("byte count %d is not a whole number of frames", len(b))
	}
	for i := 0; i < len(b); i += bytesPerFrame {
		left = append(left, float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i:]))))
		right = append(right, float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i+4:]))))
	}
	return left, right
}

func TestStreamEncodesProcessedFrames(t *testing.T) {
	proc := &scaler{}
	s := NewStream(proc, []float64{0.25, 0.5, -0.125}, []float64{0.5, 0, 1}, WithBlockSize(2), WithTail(1))

	if got := s.Length(); got != 4 {
		t.Fatalf("Length: got=%d want=4", got)
	}

	b, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	left, right := decode(t, b)
	wantL := []float64{0.5, 1, -0.25, 0}
	wantR := []float64{-0.5, 0, -1, 0}
	for i := range wantL {
		if left[i] != wantL[i] || right[i] != wantR[i] {
			t.Fatalf("frame %d: got=(%g, %g) want=(%g, %g)", i, left[i], right[i], wantL[i], wantR[i])
		}
	}
	if len(left) != 4 {
		t.Fatalf("frames: got=%d want=4", len(left))
	}
	if proc.calls != 2 {
		t.Fatalf("ProcessBlock calls: got=%d want=2", proc.calls)
	}
	if got := s.Frames(); got != 4 {
		t.Fatalf("Frames: got=%d want=4", got)
	}
}

func TestStreamOddReadSizes(t *testing.T) {
	left := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	right := []float64{-0.1, -0.2, -0.3, -0.4, -0.5}

	whole, err := io.ReadAll(NewStream(&scaler{}, left, right, WithBlockSize(3)))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	s := NewStream(&scaler{}, left, right, WithBlockSize(3))
	var pieces []byte
	p := make([]byte, 5)
	for {
		n, err := s.Read(p)
		pieces = append(pieces, p[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}

	if string(pieces) != string(whole) {
		t.Fatalf("odd-sized reads differ from a single read (%d vs %d bytes)", len(pieces), len(whole))
	}
}

func TestStreamLoops(t *testing.T) {
	s := NewStream(&scaler{}, []float64{1, 2, 3}, []float64{0, 0, 0}, WithLoop(true), WithBlockSize(2), WithTail(10))

	if got := s.Length(); got != -1 {
		t.Fatalf("Length: got=%d want=-1", got)
	}

	b := make([]byte, 7*bytesPerFrame)
	if _, err := io.ReadFull(s, b); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}

	left, _ := decode(t, b)
	want := []float64{2, 4, 6, 2, 4, 6, 2}
	for i := range want {
		if left[i] != want[i] {
			t.Fatalf("frame %d: got=%g want=%g", i, left[i], want[i])
		}
	}
}

func TestStreamEmptySource(t *testing.T) {
	s := NewStream(&scaler{}, nil, nil, WithLoop(true))
	if n, err := s.Read(make([]byte, 16)); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("Read: got n=%d err=%v want 0, EOF", n, err)
	}
}

func TestStreamThroughProcessor(t *testing.T) {
	p, err := msdelay.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	p.SetParameter("input", 1)
	p.SetParameter("output", 1)
	p.SetParameter("cutoffmid", 20000)
	p.SetParameter("sendmid", 1)
	p.SetParameter("timemid", 10)
	if err := p.Prepare(core.ProcessorConfig{SampleRate: 48000, BlockSize: 16}); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	mid := make([]float64, 4)
	mid[0] = 1
	b, err := io.ReadAll(NewStream(p, mid, make([]float64, 4), WithTail(60), WithBlockSize(16)))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	left, _ := decode(t, b)
	if len(left) != 64 {
		t.Fatalf("frames: got=%d want=64", len(left))
	}
	peak := 0
	for i, v := range left {
		if math.Abs(v) > math.Abs(left[peak]) {
			peak = i
		}
	}
	if peak < 9 || peak > 12 {
		t.Fatalf("echo peak at frame %d, want near 10", peak)
	}
}

func BenchmarkStreamRead(b *testing.B) {
	left := make([]float64, 48000)
	right := make([]float64, 48000)
	s := NewStream(&scaler{}, left, right, WithLoop(true))
	buf := make([]byte, 4096)

	b.ReportAllocs()
	for range b.N {
		_, _ = s.Read(buf)
	}
}
