package repository

import (
	"context"
	"errors"

	"timer_diary/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DateRepository struct {
	db *pgxpool.Pool
}

func NewDateRepository(db *pgxpool.Pool) *DateRepository {
	return &DateRepository{db: db}
}

// List returns every date row. Ordering is left to the client.
func (r *DateRepository) List(ctx context.Context) ([]*domain.DateRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT id, date FROM date_table`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.DateRecord
	for rows.Next() {
		var d domain.DateRecord
		if err := rows.Scan(&d.ID, &d.Date); err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	return result, rows.Err()
}

// GetByDate returns the row for an exact date string, or (nil, nil) when
// the date has never been logged.
func (r *DateRepository) GetByDate(ctx context.Context, date string) (*domain.DateRecord, error) {
	var d domain.DateRecord
	err := r.db.QueryRow(ctx,
		`SELECT id, date FROM date_table WHERE date = $1`,
		date,
	).Scan(&d.ID, &d.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetOrCreate upserts the date row in a single statement so that concurrent
// first submissions for a new date cannot race into duplicates.
func (r *DateRepository) GetOrCreate(ctx context.Context, date string) (*domain.DateRecord, error) {
	var d domain.DateRecord
	err := r.db.QueryRow(ctx,
		`INSERT INTO date_table (date) VALUES ($1)
		 ON CONFLICT (date) DO UPDATE SET date = EXCLUDED.date
		 RETURNING id, date`,
		date,
	).Scan(&d.ID, &d.Date)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a date row; logs cascade via the schema.
func (r *DateRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM date_table WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
