package msdelay

import (
	"math"

	"github.com/ptablas/ECHO-CHAOS/dsp/core"
)

// ParamID identifies a processor parameter.
type ParamID int

// Global parameters come first, followed by one block of channel parameters
// for mid and one for side, in ChannelParam order.
const (
	ParamWidth ParamID = iota
	ParamInput
	ParamOutput

	ParamMidCutoff
	ParamMidResonance
	ParamMidMode
	ParamMidSend
	ParamMidTime
	ParamMidFeedback
	ParamMidLFOSpeed
	ParamMidLFODepth
	ParamMidWaveform

	ParamSideCutoff
	ParamSideResonance
	ParamSideMode
	ParamSideSend
	ParamSideTime
	ParamSideFeedback
	ParamSideLFOSpeed
	ParamSideLFODepth
	ParamSideWaveform

	numParams
)

// ChannelParam identifies a parameter of one channel pipeline.
type ChannelParam int

const (
	Cutoff ChannelParam = iota
	Resonance
	Mode
	Send
	Time
	Feedback
	LFOSpeed
	LFODepth
	Waveform

	numChannelParams
)

// Channel indices.
const (
	Mid  = 0
	Side = 1
)

// Kind tells continuous parameters from choice parameters.
type Kind int

const (
	// Continuous values are clamped into [Min, Max].
	Continuous Kind = iota
	// Choice values are rounded to the nearest index in [0, len(Choices)-1].
	Choice
)

// ParamInfo describes one parameter: its symbolic name, range, default and
// whether changes are ramped.
type ParamInfo struct {
	ID      ParamID
	Name    string
	Min     float64
	Max     float64
	Default float64
	Kind    Kind
	Choices []string
	Ramped  bool
}

// Clamp limits v to the parameter range. Choice values are rounded to an
// index.
func (p ParamInfo) Clamp(v float64) float64 {
	v = core.Clamp(v, p.Min, p.Max)
	if p.Kind == Choice {
		v = math.Round(v)
	}
	return v
}

var (
	formatChoices   = []string{"Stereo", "Mid/Side"}
	modeChoices     = []string{"LPF", "BPF", "HPF"}
	waveformChoices = []string{"Sine", "Triangle", "Sawtooth", "Square", "Random", "S&H"}
)

type channelParamInfo struct {
	name    string
	min     float64
	max     float64
	def     float64
	choices []string
	ramped  bool
}

var channelParamTable = [numChannelParams]channelParamInfo{
	Cutoff:    {name: "cutoff", min: 20, max: 20000, def: 200},
	Resonance: {name: "resonance", min: 0.1, max: 0.7, def: 0.7},
	Mode:      {name: "mode", choices: modeChoices},
	Send:      {name: "send", min: 0, max: 1, def: 0},
	Time:      {name: "time", min: 0, max: 20000, def: 0, ramped: true},
	Feedback:  {name: "feedback", min: 0, max: 0.9, def: 0.0001},
	LFOSpeed:  {name: "lfospeed", min: 0, max: 10, def: 0, ramped: true},
	LFODepth:  {name: "lfodepth", min: 0, max: 10000, def: 0, ramped: true},
	Waveform:  {name: "waveform", choices: waveformChoices},
}

var channelSuffix = [2]string{Mid: "mid", Side: "side"}

var (
	paramTable  = buildParamTable()
	paramByName = func() map[string]ParamID {
		m := make(map[string]ParamID, len(paramTable))
		for _, p := range paramTable {
			m[p.Name] = p.ID
		}
		return m
	}()
)

func buildParamTable() [numParams]ParamInfo {
	var t [numParams]ParamInfo

	t[ParamWidth] = ParamInfo{ID: ParamWidth, Name: "stereowidth", Min: 0, Max: 2, Default: 1, Ramped: true}
	t[ParamInput] = choiceInfo(ParamInput, "input", formatChoices)
	t[ParamOutput] = choiceInfo(ParamOutput, "output", formatChoices)

	for ch, suffix := range channelSuffix {
		for p, c := range channelParamTable {
			id := channelParamID(ch, ChannelParam(p))
			if c.choices != nil {
				t[id] = choiceInfo(id, c.name+suffix, c.choices)
				continue
			}
			t[id] = ParamInfo{
				ID:      id,
				Name:    c.name + suffix,
				Min:     c.min,
				Max:     c.max,
				Default: c.def,
				Ramped:  c.ramped,
			}
		}
	}

	return t
}

func choiceInfo(id ParamID, name string, choices []string) ParamInfo {
	return ParamInfo{
		ID:      id,
		Name:    name,
		Min:     0,
		Max:     float64(len(choices) - 1),
		Kind:    Choice,
		Choices: choices,
	}
}

func channelParamID(ch int, p ChannelParam) ParamID {
	return ParamMidCutoff + ParamID(ch)*ParamID(numChannelParams) + ParamID(p)
}

// channelOf splits a channel parameter ID into its channel index and
// ChannelParam. ok is false for global parameters.
func channelOf(id ParamID) (ch int, p ChannelParam, ok bool) {
	if id < ParamMidCutoff || id >= numParams {
		return 0, 0, false
	}
	off := int(id - ParamMidCutoff)
	return off / int(numChannelParams), ChannelParam(off % int(numChannelParams)), true
}

// Valid reports whether id names a known parameter.
func (id ParamID) Valid() bool {
	return id >= 0 && id < numParams
}

func (id ParamID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return paramTable[id].Name
}

// Info returns the description of id.
func (id ParamID) Info() (ParamInfo, bool) {
	if !id.Valid() {
		return ParamInfo{}, false
	}
	return paramTable[id], true
}

// Lookup returns the parameter with the given symbolic name.
func Lookup(name string) (ParamInfo, bool) {
	id, ok := paramByName[name]
	if !ok {
		return ParamInfo{}, false
	}
	return paramTable[id], true
}

// Params returns all parameters in ID order.
func Params() []ParamInfo {
	out := make([]ParamInfo, len(paramTable))
	copy(out, paramTable[:])
	return out
}
