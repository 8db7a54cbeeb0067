package outbreak

import (
	"fmt"
	"strings"
)

// Status filters outbreaks by their active flag.
type Status string

const (
	StatusAll      Status = "all"
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

// ParseStatus validates a status filter. Empty means all.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive:
		return StatusActive, nil
	case StatusResolved:
		return StatusResolved, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// ListFilter narrows an already-fetched outbreak list.
type ListFilter struct {
	Query  string
	Status Status
}

// Filter returns the items whose facility name or outbreak type contains
// the query (case-insensitive) and whose active flag matches the status.
func Filter(items []ListItem, f ListFilter) []ListItem {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]ListItem, 0, len(items))
	for _, item := range items {
		if !matchesStatus(item, f.Status) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.FacilityName), query) &&
			!strings.Contains(strings.ToLower(item.OutbreakType), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesStatus(item ListItem, s Status) bool {
	switch s {
	case StatusActive:
		return item.IsActive
	case StatusResolved:
		return !item.IsActive
	default:
		return true
	}
}
