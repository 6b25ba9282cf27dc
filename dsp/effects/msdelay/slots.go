package msdelay

import (
	"math"
	"sync/atomic"
)

// slot carries the latest value written for one parameter from a control
// goroutine to the audio goroutine. The writer stores the value bits before
// bumping seq, so a reader that observes a new seq also observes a value at
// least that new.
type slot struct {
	bits atomic.Uint64
	seq  atomic.Uint64
}

func (s *slot) store(v float64) {
	s.bits.Store(math.Float64bits(v))
	s.seq.Add(1)
}

func (s *slot) load() (float64, uint64) {
	seq := s.seq.Load()
	return math.Float64frombits(s.bits.Load()), seq
}

// slotTable is the set of slots of a processor together with the audio
// side's record of the last sequence it applied per slot.
type slotTable struct {
	slots [numParams]slot
	seen  [numParams]uint64
}

// pending returns the latest value stored for id if it was written since
// the previous call.
func (t *slotTable) pending(id ParamID) (float64, bool) {
	v, seq := t.slots[id].load()
	if seq == t.seen[id] {
		return 0, false
	}
	t.seen[id] = seq
	return v, true
}
