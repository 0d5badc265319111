package hof

import (
	"reflect"

	"github.com/lguimbarda/min-chain/chain/core"
)

func attribute(v any, name string) (any, bool) {
	switch x := v.(type) {
	case core.Record:
		return x.Get(name)
	case *core.Record:
		if x == nil {
			return nil, false
		}
		return x.Get(name)
	case map[string]any:
		out, ok := x[name]
		return out, ok
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	if m := rv.MethodByName(name); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() >= 1 {
		return m.Call(nil)[0].Interface(), true
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return nil, false
		}
		return rv.FieldByIndex(f.Index).Interface(), true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	}
	return nil, false
}
