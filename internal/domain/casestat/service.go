package casestat

import (
	"context"

	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/resource"
)

// Path is the case-statistic collection path relative to the API base.
const Path = "api/casestats"

// Service is the typed client for case-statistic records.
type Service struct {
	*resource.Collection[CaseStat, CaseStat, Payload]
}

// NewService creates a case-statistic client over req.
func NewService(req resource.Requester) *Service {
	return &Service{
		Collection: resource.NewCollection[CaseStat, CaseStat, Payload](req, Path),
	}
}

// Fields returns the patchable field schema.
func (s *Service) Fields() patch.Schema {
	return PatchFields
}

// Create validates the payload, then posts it.
func (s *Service) Create(ctx context.Context, payload Payload) (*CaseStat, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return s.Collection.Create(ctx, payload)
}

// Replace validates the payload, then overwrites the record.
func (s *Service) Replace(ctx context.Context, id int64, payload Payload) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	return s.Collection.Replace(ctx, id, payload)
}

// PatchField builds and sends a replace operation for one count field.
// Non-numeric input returns a *patch.ValidationError without a request.
func (s *Service) PatchField(ctx context.Context, id int64, field, raw string) (patch.Operation, error) {
	op, err := PatchFields.Build(field, raw)
	if err != nil {
		return patch.Operation{}, err
	}
	if err := s.Patch(ctx, id, []patch.Operation{op}); err != nil {
		return patch.Operation{}, err
	}
	return op, nil
}
