package facility

// Facility is both the list and detail shape of a facility record.
type Facility struct {
	ID      int64  `json:"facilityId"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Setting string `json:"setting"`
}

// Payload is the body of create and replace requests.
type Payload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Setting string `json:"setting"`
}
