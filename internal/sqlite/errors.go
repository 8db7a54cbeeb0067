package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/outbreakwatch/internal/repository"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// mapWriteError translates constraint failures into repository errors.
func mapWriteError(action string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", action, repository.ErrForeignKeyViolation)
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w", action, repository.ErrInvalidInput)
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db *DB, action, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(action, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullableArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
