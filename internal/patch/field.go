package patch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind selects how raw input is coerced for a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBoolean
	KindDate
	KindInteger
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindInteger:
		return "integer"
	default:
		return "unknown"
	}
}

// Field describes a patchable field of a resource. Min bounds integer
// fields from below when set.
type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Kind     Kind   `json:"kind"`
	Nullable bool   `json:"nullable"`
	Min      *int64 `json:"min,omitempty"`
}

// AtLeast returns a lower bound for Field.Min.
func AtLeast(n int64) *int64 {
	return &n
}

// MarshalText lets Kind render as its name in JSON field listings.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// InstantLayout is the wire format for date fields: a UTC instant with
// millisecond precision.
const InstantLayout = "2006-01-02T15:04:05.000Z"

const (
	dateLayout      = "2006-01-02"
	localTimeLayout = "2006-01-02T15:04:05"
)

// Coerce converts raw input to the JSON value for f. Blank input yields nil
// for nullable fields and a ValidationError otherwise.
func Coerce(f Field, raw string, loc *time.Location) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if f.Nullable {
			return nil, nil
		}
		return nil, &ValidationError{Field: f.Name, Reason: "a value is required"}
	}

	switch f.Kind {
	case KindNumber:
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, &ValidationError{Field: f.Name, Input: raw, Reason: "not a number"}
		}
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n), nil
		}
		return n, nil
	case KindInteger:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, &ValidationError{Field: f.Name, Input: raw, Reason: "not a whole number"}
		}
		if f.Min != nil && n < *f.Min {
			return nil, &ValidationError{Field: f.Name, Input: raw, Reason: fmt.Sprintf("must be at least %d", *f.Min)}
		}
		return n, nil
	case KindBoolean:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, &ValidationError{Field: f.Name, Input: raw, Reason: "not a boolean"}
		}
		return b, nil
	case KindDate:
		s, err := NormalizeDate(trimmed, loc)
		if err != nil {
			return nil, &ValidationError{Field: f.Name, Input: raw, Reason: "not a date (want YYYY-MM-DD)"}
		}
		return s, nil
	default:
		return raw, nil
	}
}

// NormalizeDate turns a calendar date into midnight in loc, serialized as a
// UTC instant. RFC 3339 input is re-serialized in UTC and a timestamp
// without an offset is read in loc.
func NormalizeDate(s string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
	}
	if err != nil {
		t, err = time.ParseInLocation(localTimeLayout, s, loc)
	}
	if err != nil {
		return "", err
	}
	return t.UTC().Format(InstantLayout), nil
}
