package msdelay

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
	"github.com/ptablas/ECHO-CHAOS/dsp/delay"
	"github.com/ptablas/ECHO-CHAOS/dsp/effects/spatial"
	"github.com/ptablas/ECHO-CHAOS/dsp/interp"
	"github.com/ptablas/ECHO-CHAOS/dsp/ramp"
)

var (
	// ErrInvalidSampleRate is returned by Prepare for a sample rate that is
	// not > 0 and finite.
	ErrInvalidSampleRate = core.ErrInvalidSampleRate
	// ErrInvalidBlockSize is returned by Prepare for a block size <= 0.
	ErrInvalidBlockSize = core.ErrInvalidBlockSize
)

const defaultSeed = 1

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	capacity      int
	rampSeconds   float64
	seed          int64
	interpolation interp.Mode
}

func defaultConfig() config {
	return config{
		capacity:      delay.DefaultCapacity,
		rampSeconds:   ramp.DefaultSeconds,
		seed:          defaultSeed,
		interpolation: interp.ModeLagrange,
	}
}

// WithDelayCapacity sets the per-channel delay buffer size in samples.
func WithDelayCapacity(samples int) Option {
	return func(cfg *config) error {
		if samples < 4 {
			return fmt.Errorf("msdelay: delay capacity must be >= 4: %d", samples)
		}
		cfg.capacity = samples
		return nil
	}
}

// WithRampSeconds sets the duration of ramped parameter changes. Zero makes
// every change immediate.
func WithRampSeconds(seconds float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(seconds) || seconds < 0 {
			return fmt.Errorf("msdelay: ramp seconds must be >= 0 and finite: %f", seconds)
		}
		cfg.rampSeconds = seconds
		return nil
	}
}

// WithSeed seeds the Random LFO shapes. The side channel uses seed+1.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithInterpolation selects the fractional delay read kernel.
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("msdelay: invalid interpolation mode: %d", mode)
		}
		cfg.interpolation = mode
		return nil
	}
}

// Event is a parameter change at a frame offset inside a block.
type Event struct {
	Offset int
	Param  ParamID
	Value  float64
}

// Processor is the mid/side modulated delay.
//
// Input frames are encoded to mid and side with the current width, each
// derived channel runs through its own Channel, and the result is decoded to
// the output format. Stereo to Stereo passes get a width-dependent loudness
// trim.
//
// Process methods must be called from a single goroutine. SetParameter and
// Set may be called from any goroutine at any time; the values are picked up
// at the start of the next block. Prepare and Reset must not run
// concurrently with processing.
type Processor struct {
	cfg config

	prepared   bool
	sampleRate float64
	blockSize  int

	width   *ramp.Linear
	in, out spatial.Format

	channels [2]*Channel

	slots  slotTable
	values [numParams]float64

	// trim gain cache, keyed by width
	trimWidth float64
	trimGain  float64

	gain        []float64
	left, right []float64
}

// New allocates a processor with every parameter at its default. It passes
// audio through until Prepare succeeds.
func New(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	stream := core.DefaultProcessorConfig()

	p := &Processor{
		cfg:       cfg,
		width:     ramp.NewLinear(1, stream.SampleRate, cfg.rampSeconds),
		trimWidth: -1,
	}

	for ch := range p.channels {
		c, err := newChannel(stream.SampleRate, cfg, cfg.seed+int64(ch))
		if err != nil {
			return nil, err
		}
		p.channels[ch] = c
	}

	for _, info := range paramTable {
		p.apply(info.ID, info.Default, true)
	}

	return p, nil
}

// Prepare configures the stream, applies pending parameter values without
// ramping and resets all processing state. On error the processor is left
// unprepared and passes audio through.
func (p *Processor) Prepare(stream core.ProcessorConfig) error {
	p.prepared = false

	if err := stream.Validate(); err != nil {
		return fmt.Errorf("msdelay: %w", err)
	}

	p.sampleRate = stream.SampleRate
	p.blockSize = stream.BlockSize

	p.width.Reset(stream.SampleRate, p.cfg.rampSeconds)
	for _, c := range p.channels {
		if err := c.setSampleRate(stream.SampleRate, p.cfg.rampSeconds); err != nil {
			return fmt.Errorf("msdelay: %w", err)
		}
	}

	p.drain(true)

	p.gain = core.EnsureLen(p.gain, p.blockSize)
	p.left = core.EnsureLen(p.left, p.blockSize)
	p.right = core.EnsureLen(p.right, p.blockSize)

	p.Reset()
	p.prepared = true

	return nil
}

// Prepared reports whether Prepare has succeeded.
func (p *Processor) Prepared() bool { return p.prepared }

// SampleRate returns the prepared sample rate, or 0.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// BlockSize returns the prepared maximum block size, or 0.
func (p *Processor) BlockSize() int { return p.blockSize }

// Channel returns the mid (0) or side (1) pipeline.
func (p *Processor) Channel(ch int) *Channel {
	if ch < 0 || ch >= len(p.channels) {
		return nil
	}
	return p.channels[ch]
}

// Value returns the value most recently applied to id on the audio side.
func (p *Processor) Value(id ParamID) float64 {
	if !id.Valid() {
		return 0
	}
	return p.values[id]
}

// SetParameter queues a change by symbolic name. It reports whether the name
// is known; unknown names are ignored.
func (p *Processor) SetParameter(name string, value float64) bool {
	info, ok := Lookup(name)
	if !ok {
		return false
	}
	p.Set(info.ID, value)
	return true
}

// Set queues a change for id. Unknown IDs and non-finite values are ignored.
func (p *Processor) Set(id ParamID, value float64) {
	if !id.Valid() || !core.IsFinite(value) {
		return
	}
	p.slots.slots[id].store(value)
}

// Reset clears filter, delay and oscillator state and completes ramps in
// flight. Parameter values are kept.
func (p *Processor) Reset() {
	p.width.SetCurrentAndTarget(p.width.Target())
	for _, c := range p.channels {
		c.Reset()
	}
}

// ProcessBlock processes planar buffers in place. Both buffers should have
// the same length; extra frames in the longer one are left untouched.
func (p *Processor) ProcessBlock(left, right []float64) {
	if !p.prepared {
		return
	}

	n := min(len(left), len(right))
	for start := 0; start < n; start += p.blockSize {
		end := min(n, start+p.blockSize)
		p.drain(false)
		p.process(left[start:end], right[start:end])
	}
}

// ProcessBlockEvents processes planar buffers in place and applies events at
// their frame offsets. Events are expected in offset order; an event whose
// offset lies before an earlier one is applied at the earlier offset.
func (p *Processor) ProcessBlockEvents(left, right []float64, events []Event) {
	if !p.prepared {
		return
	}

	n := min(len(left), len(right))
	p.drain(false)

	pos := 0
	for _, ev := range events {
		off := min(max(ev.Offset, pos), n)
		p.run(left[pos:off], right[pos:off])
		pos = off

		if ev.Param.Valid() && core.IsFinite(ev.Value) {
			p.apply(ev.Param, ev.Value, false)
		}
	}
	p.run(left[pos:n], right[pos:n])
}

// ProcessInterleaved processes an interleaved buffer (L, R, L, R, ...) in
// place. A trailing odd sample is left untouched.
func (p *Processor) ProcessInterleaved(buf []float64) {
	if !p.prepared {
		return
	}

	frames := len(buf) / 2
	for start := 0; start < frames; start += p.blockSize {
		end := min(frames, start+p.blockSize)
		chunk := buf[2*start : 2*end]

		m := core.Deinterleave(p.left, p.right, chunk)
		p.drain(false)
		p.process(p.left[:m], p.right[:m])
		core.Interleave(chunk, p.left[:m], p.right[:m])
	}
}

// run processes buffers of any length in chunks of at most blockSize without
// draining slots.
func (p *Processor) run(left, right []float64) {
	for start := 0; start < len(left); start += p.blockSize {
		end := min(len(left), start+p.blockSize)
		p.process(left[start:end], right[start:end])
	}
}

// process handles at most blockSize frames.
func (p *Processor) process(left, right []float64) {
	mid, side := p.channels[Mid], p.channels[Side]
	trim := p.in == spatial.Stereo && p.out == spatial.Stereo
	gain := p.gain[:len(left)]

	for i := range left {
		w := p.width.Next()

		m, s := spatial.Encode(left[i], right[i], w, p.in)
		m = mid.ProcessSample(m)
		s = side.ProcessSample(s)

		if p.out == spatial.MidSide {
			left[i], right[i] = m, s
			continue
		}

		left[i], right[i] = spatial.Split(m, s)
		if trim {
			gain[i] = p.widthTrim(w)
		}
	}

	if trim {
		vecmath.MulBlockInPlace(left, gain)
		vecmath.MulBlockInPlace(right, gain)
	}
}

func (p *Processor) widthTrim(w float64) float64 {
	if w != p.trimWidth {
		p.trimWidth = w
		p.trimGain = spatial.WidthTrimGain(w)
	}
	return p.trimGain
}

// drain applies every value queued through Set since the previous drain.
func (p *Processor) drain(snap bool) {
	for id := range numParams {
		if v, ok := p.slots.pending(id); ok {
			p.apply(id, v, snap)
		}
	}
}

// apply clamps v into the range of id and routes it to its destination.
func (p *Processor) apply(id ParamID, v float64, snap bool) {
	info, ok := id.Info()
	if !ok || !core.IsFinite(v) {
		return
	}

	v = info.Clamp(v)
	p.values[id] = v

	switch id {
	case ParamWidth:
		setRamp(p.width, v, snap)
	case ParamInput:
		p.in = spatial.Format(v)
	case ParamOutput:
		p.out = spatial.Format(v)
	default:
		if ch, cp, ok := channelOf(id); ok {
			p.channels[ch].set(cp, v, snap)
		}
	}
}
