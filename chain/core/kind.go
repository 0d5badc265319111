package core

import "reflect"

// Kind is the runtime category of a pipeline element.
type Kind int

const (
	KindOther Kind = iota
	KindMissing
	KindBool
	KindInt
	KindFloat
	KindString
	KindTuple
	KindList
	KindRecord
	KindMap
	KindStruct
)

var kindNames = map[Kind]string{
	KindOther:   "other",
	KindMissing: "none",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "str",
	KindTuple:   "tuple",
	KindList:    "list",
	KindRecord:  "record",
	KindMap:     "map",
	KindStruct:  "struct",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindOther, false
}

// KindOf returns the runtime category of v. Go slices other than Tuple are
// lists and Go arrays are tuples.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil, MissingValue:
		return KindMissing
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case Tuple:
		return KindTuple
	case List, []any:
		return KindList
	case Record, *Record:
		return KindRecord
	}
	if _, ok := v.(Sequence); ok {
		return KindList
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return KindList
	case reflect.Array:
		return KindTuple
	case reflect.Map:
		return KindMap
	case reflect.Struct:
		return KindStruct
	case reflect.Pointer:
		if rv.Elem().Kind() == reflect.Struct {
			return KindStruct
		}
	}
	return KindOther
}
