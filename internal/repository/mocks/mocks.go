package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Repository is a mock for repository.Repository.
type Repository[L, D, P any] struct {
	mock.Mock
}

func (m *Repository[L, D, P]) List(ctx context.Context) ([]L, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]L); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository[L, D, P]) Get(ctx context.Context, id int64) (*D, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*D); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository[L, D, P]) Create(ctx context.Context, payload P) (*D, error) {
	args := m.Called(ctx, payload)
	if d, ok := args.Get(0).(*D); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository[L, D, P]) Replace(ctx context.Context, id int64, payload P) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

func (m *Repository[L, D, P]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Repository[L, D, P]) Payload(ctx context.Context, id int64) (*P, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*P); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// APIKeyRepository is a mock for repository.APIKeyRepository.
type APIKeyRepository struct {
	mock.Mock
}

func (m *APIKeyRepository) Add(ctx context.Context, key, description string) error {
	args := m.Called(ctx, key, description)
	return args.Error(0)
}

func (m *APIKeyRepository) Verify(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
