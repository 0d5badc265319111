// Package chain provides Pipeline, a fluent and immutable wrapper around an
// in-memory sequence of rows.
//
// A row is any ordered, position-addressed sequence (core.List, core.Tuple,
// or any Go slice or array) whose elements may have different types. A
// Pipeline can be filtered, projected, reshaped and reduced through chained
// calls. Every transformation returns a new Pipeline backed by a new slice;
// the receiver is never modified, so a Pipeline may be shared freely,
// including between goroutines.
//
// Example:
//
//	p := chain.Of(
//		core.List{"233", "a", "b"},
//		core.List{"4343", "y", "o"},
//		core.List{"44", "p", "k"},
//	)
//
//	p.SelectPos(0)        // Pipeline : ['233', '4343', '44']
//	p.SelectPos(3)        // Pipeline : [None, None, None]
//	p.Flat()              // Pipeline : ['233', 'a', 'b', '4343', 'y', 'o', '44', 'p', 'k']
//	total, err := p.SelectPos(0).ToInt().Sum() // 4620, nil
//
// # Failures
//
// Lenient conditions never fail: positions past the end of a row read as
// core.Missing, Take and Drop clamp their bounds, and Find reports a miss
// through its boolean result.
//
// Capability mismatches do fail: a string operation on a number, arithmetic
// on text, sorting values without a common order, parsing text that is not
// a number, or writing to a position that does not exist. The failing call
// returns a Pipeline that holds the error instead of rows. Every later
// transformation passes the failure through unchanged, and Err, Rows and
// every terminal query report it, so a chain needs a single check at its end:
//
//	rows, err := p.UpdatePos(halve, 0).SelectByPos(positive, 0).Rows()
//
// Panics raised by caller-supplied functions inside a transformation are
// recovered and reported the same way, as core.ErrPanic.
//
// # Observation
//
// WithLogger attaches a zerolog logger that receives one debug event per
// operation; WithHooks attaches callbacks. The observe package builds hooks
// for OpenTelemetry metrics and in-process counters.
package chain
