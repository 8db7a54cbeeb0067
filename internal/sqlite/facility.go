package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/repository"
)

// FacilityRepository implements repository.FacilityRepository for SQLite
type FacilityRepository struct {
	db *DB
}

// NewFacilityRepository creates a new FacilityRepository
func NewFacilityRepository(db *DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

// List returns every facility ordered by id
func (r *FacilityRepository) List(ctx context.Context) ([]facility.Facility, error) {
	query := `
		SELECT facility_id, name, address, setting
		FROM facilities
		ORDER BY facility_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer rows.Close()

	facilities := []facility.Facility{}
	for rows.Next() {
		var f facility.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Address, &f.Setting); err != nil {
			return nil, fmt.Errorf("failed to scan facility: %w", err)
		}
		facilities = append(facilities, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating facility rows: %w", err)
	}

	return facilities, nil
}

// Get retrieves a facility by ID
func (r *FacilityRepository) Get(ctx context.Context, id int64) (*facility.Facility, error) {
	query := `
		SELECT facility_id, name, address, setting
		FROM facilities
		WHERE facility_id = ?
	`

	var f facility.Facility
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.Address, &f.Setting)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get facility: %w", err)
	}

	return &f, nil
}

// Create inserts a facility and returns it with its assigned id
func (r *FacilityRepository) Create(ctx context.Context, p facility.Payload) (*facility.Facility, error) {
	query := `
		INSERT INTO facilities (name, address, setting)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Address, p.Setting)
	if err != nil {
		return nil, mapWriteError("create facility", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get facility id: %w", err)
	}

	return r.Get(ctx, id)
}

// Replace overwrites every field of a facility
func (r *FacilityRepository) Replace(ctx context.Context, id int64, p facility.Payload) error {
	query := `
		UPDATE facilities
		SET name = ?, address = ?, setting = ?
		WHERE facility_id = ?
	`
	return execOne(ctx, r.db, "replace facility", query, p.Name, p.Address, p.Setting, id)
}

// Delete removes a facility. Facilities referenced by outbreaks cannot be
// deleted.
func (r *FacilityRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete facility", `DELETE FROM facilities WHERE facility_id = ?`, id)
}

// Payload returns the facility in payload shape
func (r *FacilityRepository) Payload(ctx context.Context, id int64) (*facility.Payload, error) {
	f, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &facility.Payload{Name: f.Name, Address: f.Address, Setting: f.Setting}, nil
}
