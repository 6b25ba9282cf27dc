package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ptablas/ECHO-CHAOS/dsp/effects/msdelay"
)

// paramFlag collects repeated name=value assignments.
type paramFlag []paramValue

type paramValue struct {
	name  string
	value float64
}

func (f *paramFlag) String() string {
	parts := make([]string, len(*f))
	for i, p := range *f {
		parts[i] = fmt.Sprintf("%s=%g", p.name, p.value)
	}
	return strings.Join(parts, ",")
}

func (f *paramFlag) Set(s string) error {
	p, err := parseAssignment(s)
	if err != nil {
		return err
	}
	*f = append(*f, p)
	return nil
}

// apply writes every assignment to p in order.
func (f paramFlag) apply(p *msdelay.Processor) {
	for _, v := range f {
		p.SetParameter(v.name, v.value)
	}
}

// eventFlag collects repeated name=value@frame events.
type eventFlag []msdelay.Event

func (f *eventFlag) String() string {
	parts := make([]string, len(*f))
	for i, e := range *f {
		parts[i] = fmt.Sprintf("%s=%g@%d", e.Param, e.Value, e.Offset)
	}
	return strings.Join(parts, ",")
}

func (f *eventFlag) Set(s string) error {
	assign, at, ok := strings.Cut(s, "@")
	if !ok {
		return fmt.Errorf("event %q: want name=value@frame", s)
	}

	p, err := parseAssignment(assign)
	if err != nil {
		return err
	}
	info, _ := msdelay.Lookup(p.name)

	offset, err := strconv.Atoi(strings.TrimSpace(at))
	if err != nil || offset < 0 {
		return fmt.Errorf("event %q: invalid frame %q", s, at)
	}

	*f = append(*f, msdelay.Event{Offset: offset, Param: info.ID, Value: p.value})
	return nil
}

func parseAssignment(s string) (paramValue, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return paramValue{}, fmt.Errorf("parameter %q: want name=value", s)
	}

	name = strings.ToLower(strings.TrimSpace(name))
	info, ok := msdelay.Lookup(name)
	if !ok {
		return paramValue{}, fmt.Errorf("unknown parameter %q (use 'echochaos params' to list)", name)
	}

	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		idx, ok := choiceIndex(info, raw)
		if !ok {
			return paramValue{}, fmt.Errorf("parameter %q: invalid value %q", name, raw)
		}
		v = float64(idx)
	}

	return paramValue{name: name, value: v}, nil
}

// choiceIndex resolves a choice label such as "HPF" or "s&h".
func choiceIndex(info msdelay.ParamInfo, label string) (int, bool) {
	if info.Kind != msdelay.Choice {
		return 0, false
	}
	for i, c := range info.Choices {
		if strings.EqualFold(c, label) {
			return i, true
		}
	}
	return 0, false
}
