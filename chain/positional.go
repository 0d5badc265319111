package chain

import (
	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/hof"
	"github.com/lguimbarda/min-chain/chain/row"
)

// SelectPos projects every row to its value at position i. Negative
// positions count from the end. Rows without that position give
// core.Missing.
func (p Pipeline) SelectPos(i int) Pipeline {
	const op = "select_pos"
	return p.transform(op, eachRow(op, func(k int, v any) (any, error) {
		seq, err := sequence(op, k, v)
		if err != nil {
			return nil, err
		}
		return row.Project(seq, i), nil
	}))
}

// AppendPos adds v at the end of every row. Tuples stay tuples.
func (p Pipeline) AppendPos(v any) Pipeline {
	const op = "append_pos"
	return p.transform(op, eachRow(op, func(k int, r any) (any, error) {
		seq, err := sequence(op, k, r)
		if err != nil {
			return nil, err
		}
		return row.Append(seq, v), nil
	}))
}

// UpdatePos replaces the value at position i of every row with fn applied
// to it. Negative positions count from the end. Every row must have a
// value at i.
func (p Pipeline) UpdatePos(fn func(any) any, i int) Pipeline {
	if fn == nil {
		panic("UpdatePos: function cannot be nil")
	}
	const op = "update_pos"
	return p.transform(op, eachRow(op, func(k int, r any) (any, error) {
		seq, err := sequence(op, k, r)
		if err != nil {
			return nil, err
		}
		return row.Replace(seq, i, fn)
	}))
}

// Flat removes one level of nesting.
func (p Pipeline) Flat() Pipeline {
	return p.transform("flat", row.Flatten)
}

// Transpose turns rows into columns. Each column is a core.Tuple. All rows
// must have the same length.
func (p Pipeline) Transpose() Pipeline {
	const op = "transpose"
	return p.transform(op, func(rows []any) ([]any, error) {
		grid := make([][]any, len(rows))
		for i, r := range rows {
			seq, err := sequence(op, i, r)
			if err != nil {
				return nil, err
			}
			grid[i] = core.Values(seq)
		}
		cols, err := hof.Transpose(grid)
		if err != nil {
			return nil, err
		}
		return hof.Map(cols, func(c []any) any { return core.Tuple(c) }), nil
	})
}

// Enumerate pairs every element with its position as core.Tuple{i, v}.
func (p Pipeline) Enumerate() Pipeline {
	return p.transform("enumerate", eachRow("enumerate", func(i int, v any) (any, error) {
		return core.Tuple{i, v}, nil
	}))
}

// ToDict turns every row into a core.Record keyed by fields. Pairing stops
// at the shorter of fields and the row.
func (p Pipeline) ToDict(fields ...string) Pipeline {
	const op = "to_dict"
	names := append([]string(nil), fields...)
	return p.transform(op, eachRow(op, func(k int, r any) (any, error) {
		seq, err := sequence(op, k, r)
		if err != nil {
			return nil, err
		}
		pairs := hof.Zip(names, core.Values(seq))
		keys := make([]string, len(pairs))
		vals := make([]any, len(pairs))
		for i, pr := range pairs {
			keys[i], vals[i] = pr.A, pr.B
		}
		return core.NewRecord(keys, vals), nil
	}))
}

// Get reads the named attribute of every element. See hof.Getter for the
// lookup rules.
func (p Pipeline) Get(attr string) Pipeline {
	const op = "get"
	get := hof.Getter(attr)
	return p.transform(op, eachRow(op, func(_ int, v any) (any, error) {
		return get(v)
	}))
}
