package hof_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lguimbarda/min-chain/chain/core"
	"github.com/lguimbarda/min-chain/chain/hof"
)

func equalInts(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func isEven(n int) bool { return n%2 == 0 }

func TestMapFilterReject(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}

	equalInts(t, hof.Map(in, func(n int) int { return n * n }), []int{1, 4, 9, 16, 25})
	equalInts(t, hof.Filter(in, isEven), []int{2, 4})
	equalInts(t, hof.Reject(in, isEven), []int{1, 3, 5})
	equalInts(t, in, []int{1, 2, 3, 4, 5})
}

func TestPartitionCallsPredicateOnce(t *testing.T) {
	calls := 0
	matched, rest := hof.Partition([]int{1, 2, 3, 4}, func(n int) bool {
		calls++
		return isEven(n)
	})
	if calls != 4 {
		t.Errorf("predicate called %d times, want 4", calls)
	}
	equalInts(t, matched, []int{2, 4})
	equalInts(t, rest, []int{1, 3})

	matched, rest = hof.Partition([]int{}, isEven)
	if matched == nil || rest == nil {
		t.Errorf("expected empty non-nil halves, got %v %v", matched, rest)
	}
}

func TestReduce(t *testing.T) {
	got := hof.Reduce([]string{"a", "b", "c"}, "", func(acc, s string) string { return acc + s })
	if got != "abc" {
		t.Errorf("got %q, want abc", got)
	}
}

func TestFindAndFindIndex(t *testing.T) {
	in := []int{1, 3, 4, 6}

	v, ok := hof.Find(in, isEven)
	if !ok || v != 4 {
		t.Errorf("Find = %v, %v; want 4, true", v, ok)
	}
	if i := hof.FindIndex(in, isEven); i != 2 {
		t.Errorf("FindIndex = %d, want 2", i)
	}
	if _, ok := hof.Find(in, func(n int) bool { return n > 10 }); ok {
		t.Error("expected no match")
	}
	if i := hof.FindIndex(in, func(n int) bool { return n > 10 }); i != -1 {
		t.Errorf("FindIndex = %d, want -1", i)
	}
}

func TestAnyAll(t *testing.T) {
	if !hof.Any([]int{1, 2}, isEven) {
		t.Error("Any should be true")
	}
	if hof.All([]int{1, 2}, isEven) {
		t.Error("All should be false")
	}
	if hof.Any([]int{}, isEven) {
		t.Error("Any on empty should be false")
	}
	if !hof.All([]int{}, isEven) {
		t.Error("All on empty should be true")
	}
}

func TestUnique(t *testing.T) {
	equalInts(t, hof.Unique([]int{3, 1, 3, 2, 1}), []int{3, 1, 2})

	words := hof.UniqueBy([]string{"Go", "go", "Rust", "GO"}, strings.ToLower)
	if len(words) != 2 || words[0] != "Go" || words[1] != "Rust" {
		t.Errorf("got %v", words)
	}
}

func TestZipStopsAtShorter(t *testing.T) {
	pairs := hof.Zip([]string{"a", "b", "c"}, []int{1, 2})
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[1].A != "b" || pairs[1].B != 2 {
		t.Errorf("got %v", pairs[1])
	}
}

func TestZipKeepsNilElements(t *testing.T) {
	pairs := hof.Zip([]any{nil, 1}, []any{"x", nil})
	if len(pairs) != 2 || pairs[0].A != nil || pairs[1].B != nil {
		t.Errorf("got %v", pairs)
	}
}

func TestSort(t *testing.T) {
	got, err := hof.Sort([]any{3, 1.5, 2}, core.Compare)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{1.5, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSortIncomparable(t *testing.T) {
	_, err := hof.Sort([]any{1, "a", 2}, core.Compare)
	if !errors.Is(err, core.ErrNotComparable) {
		t.Fatalf("expected ErrNotComparable, got %v", err)
	}
	if !errors.Is(err, core.ErrType) {
		t.Fatalf("expected ErrType in chain, got %v", err)
	}
}

func TestTranspose(t *testing.T) {
	cols, err := hof.Transpose([][]int{{0, 1, 2}, {2, 3, 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("got %v", cols)
	}
	equalInts(t, cols[0], []int{0, 2})
	equalInts(t, cols[2], []int{2, 4})

	if _, err := hof.Transpose([][]int{{1, 2}, {3}}); !errors.Is(err, core.ErrRagged) {
		t.Fatalf("expected ErrRagged, got %v", err)
	}

	empty, err := hof.Transpose[int](nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("got %v, %v", empty, err)
	}
}

type file struct {
	Name string
	Size int64
	mode string
}

func (f file) Ext() string {
	if i := strings.LastIndex(f.Name, "."); i >= 0 {
		return f.Name[i:]
	}
	return ""
}

func TestGetter(t *testing.T) {
	tests := []struct {
		name    string
		element any
		attr    string
		want    any
		wantErr bool
	}{
		{name: "record", element: core.NewRecord([]string{"id"}, []any{7}), attr: "id", want: 7},
		{name: "map", element: map[string]any{"id": 8}, attr: "id", want: 8},
		{name: "typed map", element: map[string]int{"id": 9}, attr: "id", want: 9},
		{name: "struct field", element: file{Name: "a.txt", Size: 3}, attr: "Size", want: int64(3)},
		{name: "pointer field", element: &file{Name: "b.go"}, attr: "Name", want: "b.go"},
		{name: "method", element: file{Name: "c.csv"}, attr: "Ext", want: ".csv"},
		{name: "unexported", element: file{mode: "rw"}, attr: "mode", wantErr: true},
		{name: "missing key", element: map[string]any{}, attr: "id", wantErr: true},
		{name: "scalar", element: 42, attr: "id", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hof.Getter(tt.attr)(tt.element)
			if tt.wantErr {
				if !errors.Is(err, core.ErrAttribute) {
					t.Fatalf("expected ErrAttribute, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestNilFunctionPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil || !strings.Contains(fmt.Sprint(r), "Filter") {
			t.Fatalf("expected Filter panic, got %v", r)
		}
	}()
	hof.Filter[int]([]int{1}, nil)
}
