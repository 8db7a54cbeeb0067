package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/rpggio/outbreakwatch/internal/repository"
)

// OutbreakRepository implements repository.OutbreakRepository for SQLite
type OutbreakRepository struct {
	db *DB
}

// NewOutbreakRepository creates a new OutbreakRepository
func NewOutbreakRepository(db *DB) *OutbreakRepository {
	return &OutbreakRepository{db: db}
}

// List returns every outbreak in list shape, newest first
func (r *OutbreakRepository) List(ctx context.Context) ([]outbreak.ListItem, error) {
	query := `
		SELECT o.outbreak_id, f.name, o.outbreak_type, o.is_active
		FROM outbreaks o
		JOIN facilities f ON f.facility_id = o.facility_id
		ORDER BY o.date_began DESC, o.outbreak_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbreaks: %w", err)
	}
	defer rows.Close()

	items := []outbreak.ListItem{}
	for rows.Next() {
		var item outbreak.ListItem
		err := rows.Scan(
			&item.ID,
			&item.FacilityName,
			&item.OutbreakType,
			&item.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbreak: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outbreak rows: %w", err)
	}

	return items, nil
}

// Get retrieves an outbreak with its facility name
func (r *OutbreakRepository) Get(ctx context.Context, id int64) (*outbreak.Detail, error) {
	query := `
		SELECT o.outbreak_id, f.name, o.outbreak_type, o.is_active,
			o.causative_agent_1, o.causative_agent_2, o.date_began, o.date_declared_over
		FROM outbreaks o
		JOIN facilities f ON f.facility_id = o.facility_id
		WHERE o.outbreak_id = ?
	`

	var (
		d            outbreak.Detail
		agent1       sql.NullString
		agent2       sql.NullString
		declaredOver sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.FacilityName,
		&d.OutbreakType,
		&d.IsActive,
		&agent1,
		&agent2,
		&d.DateBegan,
		&declaredOver,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outbreak: %w", err)
	}

	d.CausativeAgent1 = nullableString(agent1)
	d.CausativeAgent2 = nullableString(agent2)
	d.DateDeclaredOver = nullableString(declaredOver)
	return &d, nil
}

// Create inserts an outbreak. The facility must exist.
func (r *OutbreakRepository) Create(ctx context.Context, p outbreak.Payload) (*outbreak.Detail, error) {
	query := `
		INSERT INTO outbreaks (facility_id, outbreak_type, causative_agent_1, causative_agent_2,
			date_began, date_declared_over, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.FacilityID,
		p.OutbreakType,
		nullableArg(p.CausativeAgent1),
		nullableArg(p.CausativeAgent2),
		p.DateBegan,
		nullableArg(p.DateDeclaredOver),
		p.IsActive,
	)
	if err != nil {
		return nil, mapWriteError("create outbreak", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbreak id: %w", err)
	}

	return r.Get(ctx, id)
}

// Replace overwrites every field of an outbreak
func (r *OutbreakRepository) Replace(ctx context.Context, id int64, p outbreak.Payload) error {
	query := `
		UPDATE outbreaks
		SET facility_id = ?, outbreak_type = ?, causative_agent_1 = ?, causative_agent_2 = ?,
			date_began = ?, date_declared_over = ?, is_active = ?
		WHERE outbreak_id = ?
	`
	return execOne(ctx, r.db, "replace outbreak", query,
		p.FacilityID,
		p.OutbreakType,
		nullableArg(p.CausativeAgent1),
		nullableArg(p.CausativeAgent2),
		p.DateBegan,
		nullableArg(p.DateDeclaredOver),
		p.IsActive,
		id,
	)
}

// Delete removes an outbreak. Outbreaks with case statistics cannot be
// deleted.
func (r *OutbreakRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete outbreak", `DELETE FROM outbreaks WHERE outbreak_id = ?`, id)
}

// Payload returns the outbreak in payload shape
func (r *OutbreakRepository) Payload(ctx context.Context, id int64) (*outbreak.Payload, error) {
	query := `
		SELECT facility_id, outbreak_type, causative_agent_1, causative_agent_2,
			date_began, date_declared_over, is_active
		FROM outbreaks
		WHERE outbreak_id = ?
	`

	var (
		p            outbreak.Payload
		agent1       sql.NullString
		agent2       sql.NullString
		declaredOver sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.FacilityID,
		&p.OutbreakType,
		&agent1,
		&agent2,
		&p.DateBegan,
		&declaredOver,
		&p.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outbreak payload: %w", err)
	}

	p.CausativeAgent1 = nullableString(agent1)
	p.CausativeAgent2 = nullableString(agent2)
	p.DateDeclaredOver = nullableString(declaredOver)
	return &p, nil
}
