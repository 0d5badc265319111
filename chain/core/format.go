package core

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Str returns the plain string form of v: strings as-is, everything else as
// rendered by Repr.
func Str(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return Repr(v)
}

// Repr renders v as a literal: quoted strings, bracketed lists,
// parenthesised tuples and braced records.
func Repr(v any) string {
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case nil, MissingValue:
		sb.WriteString("None")
	case string:
		sb.WriteString(quote(x))
	case bool:
		if x {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case float32:
		sb.WriteString(formatFloat(float64(x)))
	case float64:
		sb.WriteString(formatFloat(x))
	case Tuple:
		writeTuple(sb, x)
	case Record:
		sb.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(quote(k))
			sb.WriteString(": ")
			writeRepr(sb, x.vals[k])
		}
		sb.WriteByte('}')
	case *Record:
		writeRepr(sb, *x)
	case fmt.Stringer:
		sb.WriteString(x.String())
	case Sequence:
		writeItems(sb, x, "[", "]")
	default:
		writeReflect(sb, v)
	}
}

func writeItems(sb *strings.Builder, seq Sequence, open, closing string) {
	sb.WriteString(open)
	for i := 0; i < seq.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeRepr(sb, seq.At(i))
	}
	sb.WriteString(closing)
}

// writeTuple keeps the trailing comma of one-element tuples.
func writeTuple(sb *strings.Builder, seq Sequence) {
	if seq.Len() != 1 {
		writeItems(sb, seq, "(", ")")
		return
	}
	sb.WriteByte('(')
	writeRepr(sb, seq.At(0))
	sb.WriteString(",)")
}

func writeReflect(sb *strings.Builder, v any) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		writeItems(sb, sliceView{v: rv}, "[", "]")
	case reflect.Array:
		writeTuple(sb, sliceView{v: rv})
	case reflect.Map:
		keys := rv.MapKeys()
		rendered := make([]string, len(keys))
		for i, k := range keys {
			rendered[i] = Repr(k.Interface()) + ": " + Repr(rv.MapIndex(k).Interface())
		}
		sort.Strings(rendered)
		sb.WriteString("{" + strings.Join(rendered, ", ") + "}")
	default:
		fmt.Fprint(sb, v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// quote wraps s in single quotes unless it contains a single quote and no
// double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range s {
		switch {
		case r == rune(q) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
