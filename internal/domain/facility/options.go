package facility

import "strings"

// Filter returns the facilities whose name, address or setting contains the
// query, ignoring case. A blank query keeps everything.
func Filter(items []Facility, query string) []Facility {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Facility, 0, len(items))
	for _, f := range items {
		haystack := strings.ToLower(strings.Join([]string{f.Name, f.Address, f.Setting}, " "))
		if query == "" || strings.Contains(haystack, query) {
			out = append(out, f)
		}
	}
	return out
}
