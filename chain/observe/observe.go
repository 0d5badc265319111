// Package observe provides core.Hooks implementations for watching pipeline
// stages: in-process counters, a stage recorder, zerolog tracing and
// OpenTelemetry instruments.
//
// Hooks are attached with chain.WithHooks:
//
//	var c observe.Counter
//	p := chain.New(rows, chain.WithHooks(c.Hooks()))
package observe

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lguimbarda/min-chain/chain/core"
)

// Counter accumulates stage statistics. It is safe for concurrent use; the
// zero value is ready to use.
type Counter struct {
	stages  atomic.Int64
	errors  atomic.Int64
	rowsIn  atomic.Int64
	rowsOut atomic.Int64
	elapsed atomic.Int64 // nanoseconds
}

// Stages returns the number of operations observed.
func (c *Counter) Stages() int64 { return c.stages.Load() }

// Errors returns the number of failed operations.
func (c *Counter) Errors() int64 { return c.errors.Load() }

// RowsIn returns the total number of input elements across operations.
func (c *Counter) RowsIn() int64 { return c.rowsIn.Load() }

// RowsOut returns the total number of output elements across operations.
func (c *Counter) RowsOut() int64 { return c.rowsOut.Load() }

// Elapsed returns the total time spent in observed operations.
func (c *Counter) Elapsed() time.Duration { return time.Duration(c.elapsed.Load()) }

// Hooks returns hooks that feed c.
func (c *Counter) Hooks() core.Hooks {
	return core.Hooks{
		OnStage: func(ev core.StageEvent) {
			c.stages.Add(1)
			c.rowsIn.Add(int64(ev.In))
			c.rowsOut.Add(int64(ev.Out))
			c.elapsed.Add(int64(ev.Elapsed))
		},
		OnError: func(string, error) {
			c.errors.Add(1)
		},
	}
}

// Recorder keeps every observed StageEvent in order.
type Recorder struct {
	mu     sync.Mutex
	events []core.StageEvent
}

// Hooks returns hooks that append to r.
func (r *Recorder) Hooks() core.Hooks {
	return core.Hooks{
		OnStage: func(ev core.StageEvent) {
			r.mu.Lock()
			r.events = append(r.events, ev)
			r.mu.Unlock()
		},
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []core.StageEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.StageEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, len(r.events))
	for i, ev := range r.events {
		ops[i] = ev.Op
	}
	return ops
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Histogram tracks the distribution of values.
type Histogram[T comparable] struct {
	mu     sync.RWMutex
	counts map[T]int64
	total  int64
}

// NewHistogram creates a new histogram.
func NewHistogram[T comparable]() *Histogram[T] {
	return &Histogram[T]{
		counts: make(map[T]int64),
	}
}

// Add records a value.
func (h *Histogram[T]) Add(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[value]++
	h.total++
}

// Count returns the count for a specific value.
func (h *Histogram[T]) Count(value T) int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.counts[value]
}

// Total returns the total count.
func (h *Histogram[T]) Total() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Counts returns a copy of all counts.
func (h *Histogram[T]) Counts() map[T]int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make(map[T]int64, len(h.counts))
	for k, v := range h.counts {
		result[k] = v
	}
	return result
}

// OpHistogram returns hooks that count operations by name in h.
func OpHistogram(h *Histogram[string]) core.Hooks {
	return core.Hooks{
		OnStage: func(ev core.StageEvent) { h.Add(ev.Op) },
	}
}

// Combine merges several hooks into one. Callbacks run in argument order.
func Combine(hooks ...core.Hooks) core.Hooks {
	var set core.HookSet
	for _, h := range hooks {
		set = set.With(h)
	}
	return core.Hooks{
		OnStage: set.Fire,
	}
}
