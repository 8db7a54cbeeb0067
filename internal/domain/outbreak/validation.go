package outbreak

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/outbreakwatch/internal/patch"
)

// Normalize returns a copy of p ready for the wire: blank causative agents
// become absent and dates become UTC instants, calendar dates resolving to
// midnight in loc (time.Local when nil).
func (p Payload) Normalize(loc *time.Location) (Payload, error) {
	p.CausativeAgent1 = optionalText(p.CausativeAgent1)
	p.CausativeAgent2 = optionalText(p.CausativeAgent2)

	began, err := normalizeDate(p.DateBegan, loc)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: dateBegan: %v", ErrInvalidInput, err)
	}
	p.DateBegan = began

	if p.DateDeclaredOver != nil {
		over := strings.TrimSpace(*p.DateDeclaredOver)
		if over == "" {
			p.DateDeclaredOver = nil
		} else {
			over, err = normalizeDate(over, loc)
			if err != nil {
				return Payload{}, fmt.Errorf("%w: dateDeclaredOver: %v", ErrInvalidInput, err)
			}
			p.DateDeclaredOver = &over
		}
	}
	return p, nil
}

// Validate checks the fields the API requires.
func (p Payload) Validate() error {
	if p.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityId must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(p.OutbreakType) == "" {
		return fmt.Errorf("%w: outbreakType is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.DateBegan) == "" {
		return fmt.Errorf("%w: dateBegan is required", ErrInvalidInput)
	}
	return nil
}

func optionalText(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func normalizeDate(s string, loc *time.Location) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	return patch.NormalizeDate(s, loc)
}
