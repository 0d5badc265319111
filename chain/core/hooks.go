package core

import "time"

// StageEvent describes one completed pipeline operation.
type StageEvent struct {
	Op      string        // operation name, e.g. "select_pos"
	In      int           // number of input elements
	Out     int           // number of output elements, 0 on failure
	Elapsed time.Duration // time spent in the operation
	Err     error         // non-nil when the operation failed
}

// Hooks holds observation callbacks for pipeline stages.
// All fields are optional - nil means no observation for that event.
// Hooks are invoked synchronously after each operation, so they
// should be fast.
type Hooks struct {
	OnStage func(StageEvent)          // every transformation
	OnError func(op string, err error) // operations that failed
}

// HookSet composes several Hooks in FIFO order: hooks added earlier are
// invoked before hooks added later. The zero value is ready to use.
type HookSet struct {
	sets []Hooks
}

// With returns a new HookSet with h appended. The receiver is unchanged.
func (s HookSet) With(h Hooks) HookSet {
	sets := make([]Hooks, len(s.sets), len(s.sets)+1)
	copy(sets, s.sets)
	return HookSet{sets: append(sets, h)}
}

// Len returns the number of registered hook sets.
func (s HookSet) Len() int { return len(s.sets) }

// Fire invokes every registered callback for ev.
func (s HookSet) Fire(ev StageEvent) {
	for _, h := range s.sets {
		if h.OnStage != nil {
			h.OnStage(ev)
		}
		if ev.Err != nil && h.OnError != nil {
			h.OnError(ev.Op, ev.Err)
		}
	}
}
