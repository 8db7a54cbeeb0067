package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/outbreakwatch/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "secret", "test key"))
	require.NoError(t, repo.Verify(ctx, "secret"))
	require.ErrorIs(t, repo.Verify(ctx, "other"), repository.ErrUnknownKey)

	require.ErrorIs(t, repo.Add(ctx, "secret", "dup"), repository.ErrInvalidInput)
	require.ErrorIs(t, repo.Add(ctx, "", "empty"), repository.ErrInvalidInput)

	var stored string
	require.NoError(t, db.QueryRow(`SELECT key_hash FROM api_keys`).Scan(&stored))
	require.NotEqual(t, "secret", stored)
	require.Len(t, stored, 64)
}
