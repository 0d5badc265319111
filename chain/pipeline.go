package chain

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/row"
)

// Pipeline holds one ordered sequence of elements. The zero value is an
// empty Pipeline.
type Pipeline struct {
	rows []any
	err  error
	opts *options
}

// New creates a Pipeline over a copy of rows. A nil slice gives an empty
// Pipeline with its own backing slice.
func New(rows []any, opts ...Option) Pipeline {
	cp := make([]any, len(rows))
	copy(cp, rows)
	return Pipeline{rows: cp, opts: newOptions(nil, opts)}
}

// Of creates a Pipeline from its arguments.
func Of(values ...any) Pipeline {
	return New(values)
}

// From creates a Pipeline from a typed slice.
func From[T any](items []T, opts ...Option) Pipeline {
	rows := make([]any, len(items))
	for i, item := range items {
		rows[i] = item
	}
	return Pipeline{rows: rows, opts: newOptions(nil, opts)}
}

// Fail creates a failed Pipeline carrying err. Sources use it to report
// errors that happen before any row exists.
func Fail(err error, opts ...Option) Pipeline {
	if err == nil {
		panic("Fail: error cannot be nil")
	}
	return Pipeline{err: err, opts: newOptions(nil, opts)}
}

// With returns a copy of p observed with additional options.
func (p Pipeline) With(opts ...Option) Pipeline {
	return Pipeline{rows: p.rows, err: p.err, opts: newOptions(p.opts, opts)}
}

// Err returns the failure carried by p, if any.
func (p Pipeline) Err() error {
	return p.err
}

// Rows returns a copy of the underlying sequence together with the failure
// carried by p. A failed Pipeline has no rows.
func (p Pipeline) Rows() ([]any, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([]any, len(p.rows))
	copy(out, p.rows)
	return out, nil
}

// At returns the element at position i. Negative positions count from the
// end. Positions outside the sequence return core.ErrRange.
func (p Pipeline) At(i int) (any, error) {
	if p.err != nil {
		return nil, p.err
	}
	j, ok := row.Resolve(len(p.rows), i)
	if !ok {
		return nil, core.Errorf("at", -1, core.ErrRange, "index %d, length %d", i, len(p.rows))
	}
	return p.rows[j], nil
}

// Contains reports whether an element equal to v occurs in p.
func (p Pipeline) Contains(v any) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	return lo.ContainsBy(p.rows, func(x any) bool { return core.Equal(x, v) }), nil
}

// Count returns the number of elements.
func (p Pipeline) Count() (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	return len(p.rows), nil
}

// IsEmpty reports whether p has no elements.
func (p Pipeline) IsEmpty() (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	return len(p.rows) == 0, nil
}

// String renders p as "Pipeline : [...]".
func (p Pipeline) String() string {
	if p.err != nil {
		return "Pipeline : error: " + p.err.Error()
	}
	return "Pipeline : " + core.Repr(core.List(p.rows))
}

// GoString renders p the same way as String.
func (p Pipeline) GoString() string {
	return p.String()
}

func (p Pipeline) options() *options {
	if p.opts == nil {
		return defaultOptions
	}
	return p.opts
}

// transform runs fn over the rows of p and wraps its result in a new
// Pipeline. A failed receiver is returned unchanged.
func (p Pipeline) transform(op string, fn func(rows []any) ([]any, error)) Pipeline {
	if p.err != nil {
		return p
	}
	start := time.Now()
	rows, err := protect(op, func() ([]any, error) { return fn(p.rows) })
	out := Pipeline{rows: rows, err: err, opts: p.opts}
	if err != nil {
		out.rows = nil
	}
	p.observe(op, start, len(out.rows), err)
	return out
}

// eachRow builds a transformation that maps every element through fn.
func eachRow(op string, fn func(i int, v any) (any, error)) func([]any) ([]any, error) {
	return func(rows []any) ([]any, error) {
		out := make([]any, len(rows))
		for i, v := range rows {
			r, err := fn(i, v)
			if err != nil {
				return nil, wrap(op, i, err)
			}
			out[i] = r
		}
		return out, nil
	}
}

// observe reports a finished operation to the logger and hooks.
func (p Pipeline) observe(op string, start time.Time, out int, err error) {
	o := p.options()
	if o.hooks.Len() == 0 && o.logger.GetLevel() == zerolog.Disabled {
		return
	}
	ev := core.StageEvent{
		Op:      op,
		In:      len(p.rows),
		Out:     out,
		Elapsed: time.Since(start),
		Err:     err,
	}
	o.logger.Debug().
		Str("op", ev.Op).
		Int("in", ev.In).
		Int("out", ev.Out).
		Dur("elapsed", ev.Elapsed).
		Err(ev.Err).
		Msg("pipeline stage")
	o.hooks.Fire(ev)
}

// protect converts a panic raised inside fn into an error.
func protect(op string, fn func() ([]any, error)) (rows []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, &core.OpError{Op: op, Index: -1, Err: core.NewPanicError(r)}
		}
	}()
	rows, err = fn()
	if err != nil {
		err = wrap(op, -1, err)
	}
	return rows, err
}

// wrap attaches op and index to err, replacing the operation name of an
// existing *core.OpError. A known element index is kept.
func wrap(op string, index int, err error) error {
	var oe *core.OpError
	if errors.As(err, &oe) {
		if oe.Op == op && (index < 0 || oe.Index == index) {
			return oe
		}
		if index < 0 {
			index = oe.Index
		}
		return &core.OpError{Op: op, Index: index, Err: oe.Err}
	}
	return &core.OpError{Op: op, Index: index, Err: err}
}

// typeError reports an element lacking the capability op needs.
func typeError(op string, index int, v any, want string) error {
	return core.Errorf(op, index, core.ErrType, "%s is not %s", core.KindOf(v), want)
}

// sequence returns v as a row or an ErrType failure.
func sequence(op string, index int, v any) (core.Sequence, error) {
	seq, ok := core.AsSequence(v)
	if !ok {
		return nil, typeError(op, index, v, "a sequence")
	}
	return seq, nil
}

// str returns v as a string or an ErrType failure.
func str(op string, index int, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeError(op, index, v, "a string")
	}
	return s, nil
}
