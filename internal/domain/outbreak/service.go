package outbreak

import (
	"context"
	"time"

	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/resource"
)

// Path is the outbreak collection path relative to the API base.
const Path = "api/outbreaks"

// Service is the typed client for outbreak records.
type Service struct {
	*resource.Collection[ListItem, Detail, Payload]
	fields patch.Schema
	loc    *time.Location
}

// NewService creates an outbreak client over req.
func NewService(req resource.Requester) *Service {
	return &Service{
		Collection: resource.NewCollection[ListItem, Detail, Payload](req, Path),
		fields:     PatchFields,
	}
}

// WithLocation returns a copy that resolves calendar dates in loc.
func (s *Service) WithLocation(loc *time.Location) *Service {
	cp := *s
	cp.loc = loc
	cp.fields = s.fields.WithLocation(loc)
	return &cp
}

// Fields returns the patchable field schema.
func (s *Service) Fields() patch.Schema {
	return s.fields
}

// Create normalizes and validates the payload, then posts it.
func (s *Service) Create(ctx context.Context, payload Payload) (*Detail, error) {
	p, err := s.prepare(payload)
	if err != nil {
		return nil, err
	}
	return s.Collection.Create(ctx, p)
}

// Replace normalizes and validates the payload, then overwrites the record.
func (s *Service) Replace(ctx context.Context, id int64, payload Payload) error {
	p, err := s.prepare(payload)
	if err != nil {
		return err
	}
	return s.Collection.Replace(ctx, id, p)
}

// PatchField builds a replace operation for one field from raw input and
// sends it. Input that cannot be coerced returns a *patch.ValidationError
// and no request is made.
func (s *Service) PatchField(ctx context.Context, id int64, field, raw string) (patch.Operation, error) {
	op, err := s.fields.Build(field, raw)
	if err != nil {
		return patch.Operation{}, err
	}
	if err := s.Patch(ctx, id, []patch.Operation{op}); err != nil {
		return patch.Operation{}, err
	}
	return op, nil
}

func (s *Service) prepare(payload Payload) (Payload, error) {
	p, err := payload.Normalize(s.loc)
	if err != nil {
		return Payload{}, err
	}
	if err := p.Validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}
