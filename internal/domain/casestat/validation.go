package casestat

import "fmt"

// Validate checks the outbreak reference and that counts are not negative.
func (p Payload) Validate() error {
	if p.OutbreakID <= 0 {
		return fmt.Errorf("%w: outbreakId must be positive", ErrInvalidInput)
	}
	if p.ResidentCases < 0 || p.StaffCases < 0 || p.Deaths < 0 {
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidInput)
	}
	return nil
}
