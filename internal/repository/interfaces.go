package repository

import (
	"context"

	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
)

// Repository persists one resource kind. L is the list shape, D the detail
// shape and P the create and replace payload.
type Repository[L, D, P any] interface {
	List(ctx context.Context) ([]L, error)
	Get(ctx context.Context, id int64) (*D, error)
	Create(ctx context.Context, payload P) (*D, error)
	Replace(ctx context.Context, id int64, payload P) error
	Delete(ctx context.Context, id int64) error
	// Payload returns the stored record in payload shape, the document a
	// JSON Patch is applied to.
	Payload(ctx context.Context, id int64) (*P, error)
}

// OutbreakRepository manages outbreak persistence
type OutbreakRepository = Repository[outbreak.ListItem, outbreak.Detail, outbreak.Payload]

// FacilityRepository manages facility persistence
type FacilityRepository = Repository[facility.Facility, facility.Facility, facility.Payload]

// CaseStatRepository manages case statistic persistence
type CaseStatRepository = Repository[casestat.CaseStat, casestat.CaseStat, casestat.Payload]

// APIKeyRepository stores the keys the sandbox API accepts.
type APIKeyRepository interface {
	Add(ctx context.Context, key, description string) error
	Verify(ctx context.Context, key string) error
}
