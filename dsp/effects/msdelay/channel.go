package msdelay

import (
	"math"

	"github.com/ptablas/ECHO-CHAOS/dsp/delay"
	"github.com/ptablas/ECHO-CHAOS/dsp/filter/svf"
	"github.com/ptablas/ECHO-CHAOS/dsp/lfo"
	"github.com/ptablas/ECHO-CHAOS/dsp/ramp"
)

// Channel is the processing chain of one derived channel: a multimode
// filter followed by an LFO-modulated feedback delay with dry/wet mix.
//
// Per sample:
//
//	filtered = filter(x)
//	mod      = lfo(speed, depth, x)
//	time     = |timeRamp + mod|
//	y        = delay(filtered, time)
//
// Sample & Hold captures the unfiltered input x.
type Channel struct {
	filter *svf.Filter
	delay  *delay.Feedback
	lfo    *lfo.Oscillator

	time  *ramp.Linear
	speed *ramp.Linear
	depth *ramp.Linear
}

func newChannel(sampleRate float64, cfg config, seed int64) (*Channel, error) {
	f, err := svf.New(sampleRate)
	if err != nil {
		return nil, err
	}

	d, err := delay.NewFeedback(
		delay.WithCapacity(cfg.capacity),
		delay.WithInterpolation(cfg.interpolation),
	)
	if err != nil {
		return nil, err
	}

	o, err := lfo.New(sampleRate, lfo.WithSeed(seed))
	if err != nil {
		return nil, err
	}

	return &Channel{
		filter: f,
		delay:  d,
		lfo:    o,
		time:   ramp.NewLinear(0, sampleRate, cfg.rampSeconds),
		speed:  ramp.NewLinear(0, sampleRate, cfg.rampSeconds),
		depth:  ramp.NewLinear(0, sampleRate, cfg.rampSeconds),
	}, nil
}

// Filter exposes the channel filter.
func (c *Channel) Filter() *svf.Filter { return c.filter }

// Delay exposes the channel feedback delay.
func (c *Channel) Delay() *delay.Feedback { return c.delay }

// LFO exposes the channel oscillator.
func (c *Channel) LFO() *lfo.Oscillator { return c.lfo }

// ProcessSample runs one sample through the chain.
func (c *Channel) ProcessSample(x float64) float64 {
	filtered := c.filter.ProcessSample(x)
	mod := c.lfo.Output(c.speed.Next(), c.depth.Next(), x)
	t := math.Abs(c.time.Next() + mod)
	return c.delay.Process(filtered, t)
}

// ProcessInPlace runs buf through the chain.
func (c *Channel) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// Reset clears filter, delay and oscillator state and completes any ramp in
// flight.
func (c *Channel) Reset() {
	c.filter.Reset()
	c.delay.Reset()
	c.lfo.Reset()
	c.time.SetCurrentAndTarget(c.time.Target())
	c.speed.SetCurrentAndTarget(c.speed.Target())
	c.depth.SetCurrentAndTarget(c.depth.Target())
}

func (c *Channel) setSampleRate(sampleRate, rampSeconds float64) error {
	if err := c.filter.SetSampleRate(sampleRate); err != nil {
		return err
	}
	c.lfo.SetSampleRate(sampleRate)
	c.time.Reset(sampleRate, rampSeconds)
	c.speed.Reset(sampleRate, rampSeconds)
	c.depth.Reset(sampleRate, rampSeconds)
	return nil
}

// set applies an already clamped value. snap skips ramping.
func (c *Channel) set(p ChannelParam, v float64, snap bool) {
	switch p {
	case Cutoff:
		c.filter.SetCutoffHz(v)
	case Resonance:
		c.filter.SetResonance(v)
	case Mode:
		c.filter.SetMode(svf.Mode(v))
	case Send:
		c.delay.SetSend(v)
	case Feedback:
		c.delay.SetFeedback(v)
	case Waveform:
		c.lfo.SetWaveform(lfo.Waveform(v))
	case Time:
		setRamp(c.time, v, snap)
	case LFOSpeed:
		setRamp(c.speed, v, snap)
	case LFODepth:
		setRamp(c.depth, v, snap)
	}
}

func setRamp(r *ramp.Linear, v float64, snap bool) {
	if snap {
		r.SetCurrentAndTarget(v)
		return
	}
	r.SetTarget(v)
}
