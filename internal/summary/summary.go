// Package summary computes dashboard figures from already-fetched lists.
// Every function is pure and returns zero values for empty input.
package summary

import (
	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
)

// Overview is the set of headline figures shown on the dashboard.
type Overview struct {
	TotalOutbreaks     int `json:"totalOutbreaks"`
	ActiveOutbreaks    int `json:"activeOutbreaks"`
	ResolvedOutbreaks  int `json:"resolvedOutbreaks"`
	ImpactedFacilities int `json:"impactedFacilities"`
	TotalFacilities    int `json:"totalFacilities"`
	TotalResidentCases int `json:"totalResidentCases"`
	TotalStaffCases    int `json:"totalStaffCases"`
	Fatalities         int `json:"fatalities"`
}

// CountActive counts outbreaks with the active flag set.
func CountActive(outbreaks []outbreak.ListItem) int {
	n := 0
	for _, o := range outbreaks {
		if o.IsActive {
			n++
		}
	}
	return n
}

// CountResolved counts outbreaks with the active flag cleared.
func CountResolved(outbreaks []outbreak.ListItem) int {
	return len(outbreaks) - CountActive(outbreaks)
}

// DistinctImpactedFacilities counts distinct facility names among active
// outbreaks.
func DistinctImpactedFacilities(outbreaks []outbreak.ListItem) int {
	seen := make(map[string]struct{})
	for _, o := range outbreaks {
		if o.IsActive {
			seen[o.FacilityName] = struct{}{}
		}
	}
	return len(seen)
}

// SumField totals one count across case statistics.
func SumField(stats []casestat.CaseStat, field casestat.Selector) int {
	total := 0
	for _, s := range stats {
		total += field(s)
	}
	return total
}

// TotalCasesForOutbreak returns resident plus staff cases from the first
// case statistic of the outbreak. ok is false when the outbreak has none.
func TotalCasesForOutbreak(stats []casestat.CaseStat, outbreakID int64) (total int, ok bool) {
	for _, s := range stats {
		if s.OutbreakID == outbreakID {
			return s.TotalCases(), true
		}
	}
	return 0, false
}

// Compute derives the overview from the three collections.
func Compute(outbreaks []outbreak.ListItem, facilities []facility.Facility, stats []casestat.CaseStat) Overview {
	active := CountActive(outbreaks)
	return Overview{
		TotalOutbreaks:     len(outbreaks),
		ActiveOutbreaks:    active,
		ResolvedOutbreaks:  len(outbreaks) - active,
		ImpactedFacilities: DistinctImpactedFacilities(outbreaks),
		TotalFacilities:    len(facilities),
		TotalResidentCases: SumField(stats, casestat.ResidentCases),
		TotalStaffCases:    SumField(stats, casestat.StaffCases),
		Fatalities:         SumField(stats, casestat.Deaths),
	}
}
