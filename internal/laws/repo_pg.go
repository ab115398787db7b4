package laws

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const selectColumns = `SELECT id, act, section, title, state, citation, summary, tags, risk_level, metadata FROM legal_units`

// PGRepo implements Repo and Importer using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// List returns units matching the filter ordered by id.
func (r *PGRepo) List(ctx context.Context, f Filter) ([]LegalUnit, error) {
	where, args := f.where()
	rows, err := r.DB.QueryContext(ctx, selectColumns+" "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("query legal units: %w", err)
	}
	defer rows.Close()

	units := []LegalUnit{}
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legal units: %w", err)
	}
	return units, nil
}

// GetByID returns the unit with the given id or ErrNotFound.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (LegalUnit, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+" WHERE id = $1", id)
	u, err := scanUnit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LegalUnit{}, ErrNotFound
		}
		return LegalUnit{}, err
	}
	return u, nil
}

// InsertMany inserts units in one transaction, skipping ids that already exist.
func (r *PGRepo) InsertMany(ctx context.Context, units []LegalUnit) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO legal_units (id, act, section, title, state, citation, summary, tags, risk_level, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, u := range units {
		res, err := stmt.ExecContext(ctx,
			u.ID,
			nullString(u.Act),
			nullString(u.Section),
			u.Title,
			nullString(u.State),
			nullString(u.Citation),
			nullString(u.Summary),
			nullString(u.Tags),
			nullString(u.RiskLevel),
			nullString(u.RawMetadata),
		)
		if err != nil {
			return 0, fmt.Errorf("insert unit %d: %w", u.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(row rowScanner) (LegalUnit, error) {
	var (
		u                                                 LegalUnit
		act, section, state, citation, summary, tags, lvl sql.NullString
		metadata                                          sql.NullString
	)
	if err := row.Scan(&u.ID, &act, &section, &u.Title, &state, &citation, &summary, &tags, &lvl, &metadata); err != nil {
		return LegalUnit{}, err
	}
	u.Act = act.String
	u.Section = section.String
	u.State = state.String
	u.Citation = citation.String
	u.Summary = summary.String
	u.Tags = tags.String
	u.RiskLevel = lvl.String
	u.RawMetadata = metadata.String
	return u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
