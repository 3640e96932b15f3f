package domain

// DateRecord - one row per calendar date that has at least one log.
// Created implicitly on first log submission, never updated.
type DateRecord struct {
	ID   int64  `db:"id" json:"id"`
	Date string `db:"date" json:"date"` // YYYY-MM-DD
}
