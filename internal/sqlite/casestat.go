package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/repository"
)

// CaseStatRepository implements repository.CaseStatRepository for SQLite
type CaseStatRepository struct {
	db *DB
}

// NewCaseStatRepository creates a new CaseStatRepository
func NewCaseStatRepository(db *DB) *CaseStatRepository {
	return &CaseStatRepository{db: db}
}

// List returns every case statistic ordered by id
func (r *CaseStatRepository) List(ctx context.Context) ([]casestat.CaseStat, error) {
	query := `
		SELECT case_stat_id, outbreak_id, resident_cases, staff_cases, deaths
		FROM case_stats
		ORDER BY case_stat_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list case stats: %w", err)
	}
	defer rows.Close()

	stats := []casestat.CaseStat{}
	for rows.Next() {
		var s casestat.CaseStat
		err := rows.Scan(&s.ID, &s.OutbreakID, &s.ResidentCases, &s.StaffCases, &s.Deaths)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case stat: %w", err)
		}
		stats = append(stats, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating case stat rows: %w", err)
	}

	return stats, nil
}

// Get retrieves a case statistic by ID
func (r *CaseStatRepository) Get(ctx context.Context, id int64) (*casestat.CaseStat, error) {
	query := `
		SELECT case_stat_id, outbreak_id, resident_cases, staff_cases, deaths
		FROM case_stats
		WHERE case_stat_id = ?
	`

	var s casestat.CaseStat
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.OutbreakID, &s.ResidentCases, &s.StaffCases, &s.Deaths)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case stat: %w", err)
	}

	return &s, nil
}

// Create inserts a case statistic. The outbreak must exist.
func (r *CaseStatRepository) Create(ctx context.Context, p casestat.Payload) (*casestat.CaseStat, error) {
	query := `
		INSERT INTO case_stats (outbreak_id, resident_cases, staff_cases, deaths)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, p.OutbreakID, p.ResidentCases, p.StaffCases, p.Deaths)
	if err != nil {
		return nil, mapWriteError("create case stat", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get case stat id: %w", err)
	}

	return r.Get(ctx, id)
}

// Replace overwrites every field of a case statistic
func (r *CaseStatRepository) Replace(ctx context.Context, id int64, p casestat.Payload) error {
	query := `
		UPDATE case_stats
		SET outbreak_id = ?, resident_cases = ?, staff_cases = ?, deaths = ?
		WHERE case_stat_id = ?
	`
	return execOne(ctx, r.db, "replace case stat", query, p.OutbreakID, p.ResidentCases, p.StaffCases, p.Deaths, id)
}

// Delete removes a case statistic
func (r *CaseStatRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete case stat", `DELETE FROM case_stats WHERE case_stat_id = ?`, id)
}

// Payload returns the case statistic in payload shape
func (r *CaseStatRepository) Payload(ctx context.Context, id int64) (*casestat.Payload, error) {
	s, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &casestat.Payload{
		OutbreakID:    s.OutbreakID,
		ResidentCases: s.ResidentCases,
		StaffCases:    s.StaffCases,
		Deaths:        s.Deaths,
	}, nil
}
