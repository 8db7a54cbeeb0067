// Package patch builds single-field JSON Patch documents for partial updates.
package patch

// OpReplace is the only operation this package emits.
const OpReplace = "replace"

// Operation is one JSON Patch entry. Value is always serialized, so a nil
// Value clears the field on the remote record.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// Replace returns a replace operation targeting a top-level field.
func Replace(field string, value any) Operation {
	return Operation{Op: OpReplace, Path: "/" + field, Value: value}
}

// Field returns the top-level field name the operation targets.
func (o Operation) Field() string {
	if len(o.Path) > 0 && o.Path[0] == '/' {
		return o.Path[1:]
	}
	return o.Path
}
