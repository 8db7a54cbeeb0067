package mcp

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/rpggio/outbreakwatch/internal/apiclient"
	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/resource"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps client errors to MCP error codes. It returns nil for nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validation *patch.ValidationError
	if errors.As(err, &validation) {
		return &APIError{
			Code:         "VALIDATION_FAILED",
			Message:      validation.Error(),
			Details:      map[string]string{"field": validation.Field, "input": validation.Input},
			RecoveryHint: "Correct the value; nothing was sent",
		}
	}

	var reqErr *apiclient.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.StatusCode == 404 {
			return &APIError{
				Code:         "NOT_FOUND",
				Message:      reqErr.Message,
				Details:      map[string]int{"status": reqErr.StatusCode},
				RecoveryHint: "Check the id with a list tool",
			}
		}
		return &APIError{
			Code:    "REQUEST_FAILED",
			Message: reqErr.Error(),
			Details: map[string]int{"status": reqErr.StatusCode},
		}
	}

	switch {
	case errors.Is(err, resource.ErrInvalidID),
		errors.Is(err, resource.ErrEmptyPatch),
		errors.Is(err, outbreak.ErrInvalidInput),
		errors.Is(err, outbreak.ErrInvalidStatus),
		errors.Is(err, facility.ErrInvalidInput),
		errors.Is(err, casestat.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Fix the arguments; nothing was sent"}
	}

	var netErr *url.Error
	if errors.As(err, &netErr) {
		return &APIError{Code: "REQUEST_FAILED", Message: err.Error(), RecoveryHint: "Check that the API is reachable"}
	}

	return nil
}

// toolError returns the mapped error, or err unchanged when it has no code.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
