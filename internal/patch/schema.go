package patch

import "time"

// Schema is the set of patchable fields of one resource kind.
type Schema struct {
	fields []Field
	byName map[string]Field
	loc    *time.Location
}

// NewSchema creates a schema from field descriptors, in display order.
func NewSchema(fields ...Field) Schema {
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	return Schema{fields: fields, byName: byName}
}

// WithLocation returns a copy whose date fields resolve in loc instead of
// the local zone.
func (s Schema) WithLocation(loc *time.Location) Schema {
	s.loc = loc
	return s
}

// Fields returns the descriptors in display order.
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup finds a field by wire name.
func (s Schema) Lookup(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Build coerces raw for the named field and returns a replace operation.
// Nothing is returned unless the value is well formed.
func (s Schema) Build(name, raw string) (Operation, error) {
	f, ok := s.byName[name]
	if !ok {
		return Operation{}, &ValidationError{Field: name, Reason: "not a patchable field"}
	}
	value, err := Coerce(f, raw, s.loc)
	if err != nil {
		return Operation{}, err
	}
	return Replace(f.Name, value), nil
}
