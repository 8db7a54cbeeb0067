package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rpggio/outbreakwatch/internal/repository"
)

// APIKeyRepository implements repository.APIKeyRepository for SQLite. Only
// a SHA-256 hash of each key is stored.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Add registers a key
func (r *APIKeyRepository) Add(ctx context.Context, key, description string) error {
	if key == "" {
		return fmt.Errorf("%w: empty api key", repository.ErrInvalidInput)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, created_at, description) VALUES (?, ?, ?)`,
		hashKey(key), time.Now().UTC(), description,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: api key already registered", repository.ErrInvalidInput)
	}
	if err != nil {
		return fmt.Errorf("failed to add api key: %w", err)
	}

	return nil
}

// Verify checks that key is registered and records its use
func (r *APIKeyRepository) Verify(ctx context.Context, key string) error {
	hash := hashKey(key)

	var found string
	err := r.db.QueryRowContext(ctx, `SELECT key_hash FROM api_keys WHERE key_hash = ?`, hash).Scan(&found)
	if err == sql.ErrNoRows {
		return repository.ErrUnknownKey
	}
	if err != nil {
		return fmt.Errorf("failed to verify api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now().UTC(), hash); err != nil {
		return fmt.Errorf("failed to record api key use: %w", err)
	}

	return nil
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
