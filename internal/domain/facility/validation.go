package facility

import (
	"fmt"
	"strings"
)

// Validate checks that every field is present.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Setting) == "" {
		return fmt.Errorf("%w: setting is required", ErrInvalidInput)
	}
	return nil
}
