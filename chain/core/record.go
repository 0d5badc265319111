package core

import (
	"bytes"
	"encoding/json"
)

// Record maps field names to values, keeping the order in which fields were
// first supplied. A Record is never modified after construction; With
// returns a copy.
type Record struct {
	keys []string
	vals map[string]any
}

// NewRecord zips fields against values positionally, stopping at the
// shorter of the two. A repeated field keeps its first position and takes
// the last value paired with it.
func NewRecord(fields []string, values []any) Record {
	n := min(len(fields), len(values))
	r := Record{
		keys: make([]string, 0, n),
		vals: make(map[string]any, n),
	}
	for i := 0; i < n; i++ {
		if _, seen := r.vals[fields[i]]; !seen {
			r.keys = append(r.keys, fields[i])
		}
		r.vals[fields[i]] = values[i]
	}
	return r
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.keys) }

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Values returns the field values in key order.
func (r Record) Values() []any {
	out := make([]any, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.vals[k]
	}
	return out
}

// Map returns an unordered copy of the record.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.vals))
	for k, v := range r.vals {
		out[k] = v
	}
	return out
}

// With returns a copy of r with key set to v. New keys go last.
func (r Record) With(key string, v any) Record {
	out := Record{
		keys: make([]string, len(r.keys), len(r.keys)+1),
		vals: r.Map(),
	}
	copy(out.keys, r.keys)
	if _, ok := out.vals[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.vals[key] = v
	return out
}

// MarshalJSON encodes the record as a JSON object with fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the record like a dictionary literal.
func (r Record) String() string {
	return Repr(r)
}
