// Package playback streams processed audio to the sound card and maps key
// presses to live parameter changes.
package playback

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
)

const bytesPerFrame = 8 // two float32 channels

// BlockProcessor processes planar stereo buffers in place.
type BlockProcessor interface {
	ProcessBlock(left, right []float64)
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithLoop restarts the source when it ends.
func WithLoop(loop bool) StreamOption {
	return func(s *Stream) { s.loop = loop }
}

// WithTail appends frames of silence after the source so echoes can ring
// out. Ignored when looping.
func WithTail(frames int) StreamOption {
	return func(s *Stream) { s.tail = max(frames, 0) }
}

// WithBlockSize sets the number of frames processed per refill.
func WithBlockSize(frames int) StreamOption {
	return func(s *Stream) {
		if frames > 0 {
			s.blockSize = frames
		}
	}
}

// Stream is an io.Reader producing interleaved little-endian float32 stereo
// frames from a source run through a BlockProcessor.
//
// Read must be called from a single goroutine. Frames may be read from any
// goroutine.
type Stream struct {
	proc        BlockProcessor
	left, right []float64

	loop      bool
	tail      int
	blockSize int

	pos    int // frames consumed from source and tail
	frames atomic.Int64

	blockL, blockR []float64
	buf            []byte
	off            int
}

// NewStream creates a stream over the given source. Extra frames in the
// longer channel are ignored.
func NewStream(proc BlockProcessor, left, right []float64, opts ...StreamOption) *Stream {
	n := min(len(left), len(right))
	s := &Stream{
		proc:      proc,
		left:      left[:n],
		right:     right[:n],
		blockSize: 512,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.loop {
		s.tail = 0
	}

	s.blockL = make([]float64, s.blockSize)
	s.blockR = make([]float64, s.blockSize)
	s.buf = make([]byte, 0, s.blockSize*bytesPerFrame)
	return s
}

// Frames returns the number of frames produced so far.
func (s *Stream) Frames() int64 {
	return s.frames.Load()
}

// Length returns the total frames the stream produces, or -1 when looping.
func (s *Stream) Length() int {
	if s.loop && len(s.left) > 0 {
		return -1
	}
	return len(s.left) + s.tail
}

// Read fills p with processed audio. It returns io.EOF once source and tail
// are exhausted.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if s.off == len(s.buf) && !s.refill() {
			break
		}
		c := copy(p[n:], s.buf[s.off:])
		s.off += c
		n += c
	}

	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// refill processes the next block. It reports false at end of stream.
func (s *Stream) refill() bool {
	frames := s.nextBlock()
	if frames == 0 {
		return false
	}

	l, r := s.blockL[:frames], s.blockR[:frames]
	s.proc.ProcessBlock(l, r)

	s.buf = s.buf[:frames*bytesPerFrame]
	for i := range frames {
		binary.LittleEndian.PutUint32(s.buf[i*bytesPerFrame:], math.Float32bits(float32(l[i])))
		binary.LittleEndian.PutUint32(s.buf[i*bytesPerFrame+4:], math.Float32bits(float32(r[i])))
	}
	s.off = 0
	s.frames.Add(int64(frames))

	return true
}

// nextBlock copies up to one block of source, or tail silence, into the
// block buffers and returns the frame count.
func (s *Stream) nextBlock() int {
	src := len(s.left)
	if s.loop && src > 0 {
		for i := range s.blockSize {
			s.blockL[i] = s.left[s.pos]
			s.blockR[i] = s.right[s.pos]
			s.pos = (s.pos + 1) % src
		}
		return s.blockSize
	}

	remaining := src + s.tail - s.pos
	frames := min(s.blockSize, remaining)
	if frames <= 0 {
		return 0
	}

	copied := 0
	if s.pos < src {
		copied = copy(s.blockL[:frames], s.left[s.pos:])
		copy(s.blockR[:frames], s.right[s.pos:])
	}
	core.Zero(s.blockL[copied:frames])
	core.Zero(s.blockR[copied:frames])

	s.pos += frames
	return frames
}
