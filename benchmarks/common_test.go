// Package benchmarks compares min-chain pipelines against popular Go
// collection libraries and a plain loop.
package benchmarks

import (
	"strconv"

	"github.com/lguimbarda/min-chain/chain/core"
)

// Test data sizes
const (
	SmallSize  = 100
	MediumSize = 1_000
	LargeSize  = 10_000
)

// generateInts creates a slice of integers for benchmarking.
func generateInts(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

// generateRows creates n positional rows of (id, name, amount-as-text).
func generateRows(n int) []any {
	rows := make([]any, n)
	for i := range rows {
		rows[i] = core.Tuple{i, "item" + strconv.Itoa(i), strconv.Itoa(i % 97)}
	}
	return rows
}

// square returns the square of an integer.
func square(x int) int {
	return x * x
}

// isEven returns true if the number is even.
func isEven(x int) bool {
	return x%2 == 0
}

// add returns the sum of two integers.
func add(a, b int) int {
	return a + b
}

// squareAny and isEvenAny adapt square and isEven to pipeline elements.
func squareAny(v any) any { return square(v.(int)) }

func isEvenAny(v any) bool { return isEven(v.(int)) }
