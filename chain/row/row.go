// Package row provides the positional-record helpers used by the pipeline.
//
// A row is any core.Sequence. Helpers that change a row never touch the
// original: they allocate a copy of the same row kind (core.Fixed rows stay
// tuples, everything else becomes a core.List) and modify the copy.
package row

import (
	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/hof"
)

// Resolve maps position i onto a row of length n. Negative positions count
// from the end. The result is false when the position is outside the row.
func Resolve(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// Project returns the value at position i, or core.Missing when the row has
// no such position. Negative positions count from the end. It never fails.
func Project(r core.Sequence, i int) any {
	j, ok := Resolve(r.Len(), i)
	if !ok {
		return core.Missing
	}
	return r.At(j)
}

// Replace returns a copy of r whose position i holds f applied to the
// original value. Negative positions count from the end. The position must
// exist; otherwise core.ErrRange is returned.
func Replace(r core.Sequence, i int, f func(any) any) (core.Sequence, error) {
	if f == nil {
		panic("Replace: function cannot be nil")
	}
	j, ok := Resolve(r.Len(), i)
	if !ok {
		return nil, core.Errorf("replace", -1, core.ErrRange, "position %d, row length %d", i, r.Len())
	}
	vals := core.Values(r)
	vals[j] = f(r.At(j))
	return core.MakeRow(core.KindOfRow(r), vals), nil
}

// Append returns a copy of r with v added at the end.
func Append(r core.Sequence, v any) core.Sequence {
	vals := make([]any, r.Len(), r.Len()+1)
	for i := range vals {
		vals[i] = r.At(i)
	}
	return core.MakeRow(core.KindOfRow(r), append(vals, v))
}

// Flatten removes exactly one level of nesting: every element of rows must
// be a sequence, and its items are emitted in order.
func Flatten(rows []any) ([]any, error) {
	inner := make([][]any, len(rows))
	for i, r := range rows {
		seq, ok := core.AsSequence(r)
		if !ok {
			return nil, core.Errorf("flatten", i, core.ErrType, "%s is not a sequence", core.KindOf(r))
		}
		inner[i] = core.Values(seq)
	}
	return hof.Flatten(inner), nil
}
