package core

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Compare orders a against b. Numbers compare with numbers, strings with
// strings, booleans with booleans (false first) and sequences
// lexicographically. Any other pairing returns ErrNotComparable.
func Compare(a, b any) (int, error) {
	if ai, ok := AsInt(a); ok {
		if bi, ok := AsInt(b); ok {
			return cmp.Compare(ai, bi), nil
		}
	}
	if af, ok := AsFloat(a); ok {
		if bf, ok := AsFloat(b); ok {
			return cmp.Compare(af, bf), nil
		}
		return 0, notComparable(a, b)
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0, nil
			case !x:
				return -1, nil
			default:
				return 1, nil
			}
		}
	default:
		sa, okA := AsSequence(a)
		sb, okB := AsSequence(b)
		if okA && okB {
			return compareSequences(sa, sb)
		}
	}
	return 0, notComparable(a, b)
}

func compareSequences(a, b Sequence) (int, error) {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		c, err := Compare(a.At(i), b.At(i))
		if err != nil || c != 0 {
			return c, err
		}
	}
	return cmp.Compare(a.Len(), b.Len()), nil
}

func notComparable(a, b any) error {
	return fmt.Errorf("%w (%s and %s)", ErrNotComparable, KindOf(a), KindOf(b))
}

// Equal reports whether a and b hold the same value. Integers equal floats
// of the same value, tuples never equal lists, and records compare by
// content regardless of field order.
func Equal(a, b any) bool {
	return Key(a) == Key(b)
}

// Key returns a canonical string for v such that Equal values share a key.
// It is suitable as a map key for de-duplication.
func Key(v any) string {
	var sb strings.Builder
	writeKey(&sb, v)
	return sb.String()
}

func writeKey(sb *strings.Builder, v any) {
	if i, ok := AsInt(v); ok {
		sb.WriteString("n:" + strconv.Itoa(i))
		return
	}
	switch x := v.(type) {
	case nil, MissingValue:
		sb.WriteString("m")
		return
	case float32, float64:
		f, _ := AsFloat(x)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			sb.WriteString("n:" + strconv.Itoa(int(f)))
		} else {
			sb.WriteString("n:" + strconv.FormatFloat(f, 'g', -1, 64))
		}
		return
	case string:
		sb.WriteString("s:" + strconv.Quote(x))
		return
	case bool:
		sb.WriteString("b:" + strconv.FormatBool(x))
		return
	case Record:
		writeRecordKey(sb, x)
		return
	case *Record:
		writeRecordKey(sb, *x)
		return
	}
	if seq, ok := AsSequence(v); ok {
		open, closing := "l[", "]"
		if KindOf(v) == KindTuple {
			open, closing = "t(", ")"
		}
		sb.WriteString(open)
		for i := 0; i < seq.Len(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeKey(sb, seq.At(i))
		}
		sb.WriteString(closing)
		return
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Map {
		keys := rv.MapKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = Key(k.Interface()) + "=" + Key(rv.MapIndex(k).Interface())
		}
		sort.Strings(parts)
		sb.WriteString("d{" + strings.Join(parts, ",") + "}")
		return
	}
	fmt.Fprintf(sb, "o:%T:%#v", v, v)
}

func writeRecordKey(sb *strings.Builder, r Record) {
	keys := r.Keys()
	sort.Strings(keys)
	sb.WriteString("d{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(Key(k) + "=" + Key(r.vals[k]))
	}
	sb.WriteByte('}')
}
