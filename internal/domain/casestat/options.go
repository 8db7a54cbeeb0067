package casestat

// ForOutbreak returns the records that belong to one outbreak.
func ForOutbreak(stats []CaseStat, outbreakID int64) []CaseStat {
	out := make([]CaseStat, 0)
	for _, s := range stats {
		if s.OutbreakID == outbreakID {
			out = append(out, s)
		}
	}
	return out
}
