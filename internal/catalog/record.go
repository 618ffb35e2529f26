package catalog

// Ref identifies one record in a store. Both a raw Key and a previously
// returned *Record satisfy it, so call sites can pass records around without
// re-extracting the key. This replaces the original duck-typed
// "key-or-record" arguments with an explicit sum type.
type Ref interface {
	recordKey() string
}

// Key is a record key derived from a source filename (basename minus
// extension).
type Key string

func (k Key) recordKey() string { return string(k) }

// Record is the parsed, immutable result of extracting one source file.
// Field order follows the store's declared index; values are scalars.
type Record struct {
	key    string
	fields []string
	values map[string]any
}

func (r *Record) recordKey() string { return r.key }

// Key returns the record's canonical key.
func (r *Record) Key() string { return r.key }

// Fields returns the declared field names in index order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Value returns the value stored under field, and whether the field exists.
func (r *Record) Value(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Float returns the field as a float64, or 0 if absent or not numeric.
func (r *Record) Float(field string) float64 {
	switch v := r.values[field].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// String returns the field as a string, or "" if absent or not a string.
func (r *Record) String(field string) string {
	s, _ := r.values[field].(string)
	return s
}

// Values returns a copy of the full field→value mapping.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// clone returns an independent copy. Values are scalars, so copying the map
// is a deep copy.
func (r *Record) clone() *Record {
	cp := &Record{
		key:    r.key,
		fields: make([]string, len(r.fields)),
		values: make(map[string]any, len(r.values)),
	}
	copy(cp.fields, r.fields)
	for k, v := range r.values {
		cp.values[k] = v
	}
	return cp
}
