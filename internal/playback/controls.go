package playback

import (
	"fmt"
	"math"
	"strings"

	"github.com/ptablas/ECHO-CHAOS/dsp/effects/msdelay"
)

// Binding maps a key to a step on one parameter.
type Binding struct {
	Key   byte
	Param string
	Step  float64
}

// DefaultBindings nudges the most audible parameters. Lower case steps
// down, upper case steps up.
var DefaultBindings = []Binding{
	{'w', "stereowidth", -0.1}, {'W', "stereowidth", 0.1},
	{'s', "sendmid", -0.05}, {'S', "sendmid", 0.05},
	{'f', "feedbackmid", -0.05}, {'F', "feedbackmid", 0.05},
	{'t', "timemid", -480}, {'T', "timemid", 480},
	{'c', "cutoffmid", -250}, {'C', "cutoffmid", 250},
	{'l', "lfodepthmid", -50}, {'L', "lfodepthmid", 50},
	{'x', "sendside", -0.05}, {'X', "sendside", 0.05},
	{'y', "timeside", -480}, {'Y', "timeside", 480},
}

// Setter receives parameter changes by symbolic name.
type Setter interface {
	SetParameter(name string, value float64) bool
}

// Controller turns key presses into parameter changes. It keeps its own copy
// of every value so it never reads processor state from outside the audio
// goroutine.
type Controller struct {
	target   Setter
	bindings map[byte]Binding
	values   map[string]float64
}

// NewController creates a controller for target. Values start at the
// parameter defaults; use Set to mirror values applied elsewhere.
func NewController(target Setter, bindings []Binding) (*Controller, error) {
	c := &Controller{
		target:   target,
		bindings: make(map[byte]Binding, len(bindings)),
		values:   make(map[string]float64),
	}
	for _, p := range msdelay.Params() {
		c.values[p.Name] = p.Default
	}
	for _, b := range bindings {
		if _, ok := msdelay.Lookup(b.Param); !ok {
			return nil, fmt.Errorf("playback: unknown parameter %q for key %q", b.Param, b.Key)
		}
		c.bindings[b.Key] = b
	}
	return c, nil
}

// Set clamps and forwards a value, and records it.
func (c *Controller) Set(name string, value float64) (float64, bool) {
	info, ok := msdelay.Lookup(name)
	if !ok {
		return 0, false
	}
	value = info.Clamp(value)
	c.values[name] = value
	c.target.SetParameter(name, value)
	return value, true
}

// Value returns the last value sent for name.
func (c *Controller) Value(name string) float64 {
	return c.values[name]
}

// Handle applies the binding for key. It returns the parameter name and new
// value, or ok=false for unbound keys.
func (c *Controller) Handle(key byte) (name string, value float64, ok bool) {
	b, ok := c.bindings[key]
	if !ok {
		return "", 0, false
	}
	value, _ = c.Set(b.Param, c.values[b.Param]+b.Step)
	return b.Param, value, true
}

// Help lists bindings, one per line.
func Help(bindings []Binding) string {
	var sb strings.Builder
	for _, b := range bindings {
		dir := "+"
		if b.Step < 0 {
			dir = "-"
		}
		fmt.Fprintf(&sb, "  %c  %s %s%g\n", b.Key, b.Param, dir, math.Abs(b.Step))
	}
	return sb.String()
}
