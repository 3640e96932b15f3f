package repository

import (
	"context"
	"fmt"

	"timer_diary/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LogRepository struct {
	db *pgxpool.Pool
}

func NewLogRepository(db *pgxpool.Pool) *LogRepository {
	return &LogRepository{db: db}
}

// ListByDateID returns all log entries for a date row, tasks decoded.
func (r *LogRepository) ListByDateID(ctx context.Context, dateID int64) ([]*domain.LogEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, date_id, session_duration, description, title, tasks, created_at
		 FROM logs_table
		 WHERE date_id = $1`,
		dateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		var rawTasks *string
		err := rows.Scan(&e.ID, &e.DateID, &e.SessionDuration, &e.Description,
			&e.Title, &rawTasks, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		e.Tasks = domain.DecodeTasks(rawTasks)
		result = append(result, &e)
	}
	return result, rows.Err()
}

// Create inserts a log entry, encoding tasks into the JSON column.
// ID and CreatedAt are filled in from the database.
func (r *LogRepository) Create(ctx context.Context, e *domain.LogEntry) error {
	encoded, err := domain.EncodeTasks(e.Tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO logs_table (date_id, session_duration, description, title, tasks)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.DateID, e.SessionDuration, e.Description, e.Title, encoded,
	).Scan(&e.ID, &e.CreatedAt)
}

// Update applies a partial update; nil fields are left untouched.
// Returns false when no row matched the id.
func (r *LogRepository) Update(ctx context.Context, id int64, tasks []domain.Task, description *string) (bool, error) {
	var encoded *string
	if tasks != nil {
		s, err := domain.EncodeTasks(tasks)
		if err != nil {
			return false, fmt.Errorf("encode tasks: %w", err)
		}
		encoded = &s
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE logs_table
		 SET tasks = COALESCE($1::json, tasks), description = COALESCE($2, description)
		 WHERE id = $3`,
		encoded, description, id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a log entry by id. Returns false when no row matched.
func (r *LogRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM logs_table WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
