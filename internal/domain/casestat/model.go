package casestat

// CaseStat is both the list and detail shape of a case-statistic record.
type CaseStat struct {
	ID            int64 `json:"caseStatId"`
	OutbreakID    int64 `json:"outbreakId"`
	ResidentCases int   `json:"residentCases"`
	StaffCases    int   `json:"staffCases"`
	Deaths        int   `json:"deaths"`
}

// Payload is the body of create and replace requests.
type Payload struct {
	OutbreakID    int64 `json:"outbreakId"`
	ResidentCases int   `json:"residentCases"`
	StaffCases    int   `json:"staffCases"`
	Deaths        int   `json:"deaths"`
}

// Selector picks one count from a record.
type Selector func(CaseStat) int

// Selectors for the summed count fields.
var (
	ResidentCases Selector = func(s CaseStat) int { return s.ResidentCases }
	StaffCases    Selector = func(s CaseStat) int { return s.StaffCases }
	Deaths        Selector = func(s CaseStat) int { return s.Deaths }
)

// TotalCases is resident plus staff cases.
func (s CaseStat) TotalCases() int {
	return s.ResidentCases + s.StaffCases
}
