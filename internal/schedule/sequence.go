// Package schedule merges independent per-key sampling schedules into
// one ordered, drainable event stream.
package schedule

import "sort"

// Event is a group of sampler keys all due at the same propagation
// coordinate. Keys are sorted so event processing is deterministic.
type Event struct {
	P    float64
	Keys []string
}

// Sequence multiplexes per-key due-value queues. Each key's own queue
// must be monotonically non-decreasing as supplied; the sequence merges
// across keys but never reorders within one. Popped entries are gone
// for good.
type Sequence struct {
	pending map[string][]float64
	keys    []string
}

func New(schedules map[string][]float64) *Sequence {
	s := &Sequence{pending: make(map[string][]float64, len(schedules))}
	for key, values := range schedules {
		s.pending[key] = append([]float64(nil), values...)
		s.keys = append(s.keys, key)
	}
	sort.Strings(s.keys)
	return s
}

// PopEventsUntil removes and returns every still-pending due value <= p
// across all keys, in ascending order, with equal values across keys
// merged into a single event.
func (s *Sequence) PopEventsUntil(p float64) []Event {
	var events []Event
	for {
		due := false
		var next float64
		for _, key := range s.keys {
			q := s.pending[key]
			if len(q) == 0 || q[0] > p {
				continue
			}
			if !due || q[0] < next {
				next = q[0]
				due = true
			}
		}
		if !due {
			return events
		}

		ev := Event{P: next}
		for _, key := range s.keys {
			q := s.pending[key]
			if len(q) > 0 && q[0] == next {
				s.pending[key] = q[1:]
				ev.Keys = append(ev.Keys, key)
			}
		}
		events = append(events, ev)
	}
}

// Empty reports whether every key's queue has been fully drained.
func (s *Sequence) Empty() bool {
	for _, q := range s.pending {
		if len(q) > 0 {
			return false
		}
	}
	return true
}
