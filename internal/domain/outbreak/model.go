package outbreak

// ListItem is the list shape returned by GET /api/outbreaks.
type ListItem struct {
	ID           int64  `json:"outbreakId"`
	FacilityName string `json:"facilityName"`
	OutbreakType string `json:"outbreakType"`
	IsActive     bool   `json:"isActive"`
}

// Detail is the full record returned by GET /api/outbreaks/{id}.
type Detail struct {
	ListItem
	CausativeAgent1  *string `json:"causativeAgent1"`
	CausativeAgent2  *string `json:"causativeAgent2"`
	DateBegan        string  `json:"dateBegan"`
	DateDeclaredOver *string `json:"dateDeclaredOver"`
}

// Payload is the body of create and replace requests. Optional fields are
// sent as null when absent.
type Payload struct {
	FacilityID       int64   `json:"facilityId"`
	OutbreakType     string  `json:"outbreakType"`
	CausativeAgent1  *string `json:"causativeAgent1"`
	CausativeAgent2  *string `json:"causativeAgent2"`
	DateBegan        string  `json:"dateBegan"`
	DateDeclaredOver *string `json:"dateDeclaredOver"`
	IsActive         bool    `json:"isActive"`
}

// Ongoing reports whether the outbreak has not been declared over.
func (d Detail) Ongoing() bool {
	return d.DateDeclaredOver == nil
}

// Agents returns the causative agents that are present.
func (d Detail) Agents() []string {
	var agents []string
	for _, a := range []*string{d.CausativeAgent1, d.CausativeAgent2} {
		if a != nil && *a != "" {
			agents = append(agents, *a)
		}
	}
	return agents
}
