package domain

import (
	"encoding/json"
	"time"
)

// Task - one checklist item inside a log entry
type Task struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// LogEntry - a finished timer session persisted under a date
type LogEntry struct {
	ID              int64     `db:"id" json:"id"`
	DateID          int64     `db:"date_id" json:"date_id"`
	SessionDuration string    `db:"session_duration" json:"session_duration"` // HH:MM:SS
	Description     string    `db:"description" json:"description"`
	Title           string    `db:"title" json:"title"`
	Tasks           []Task    `json:"tasks"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// EncodeTasks serializes a task list for the tasks JSON column.
// The single write-side boundary: every insert/update goes through here.
func EncodeTasks(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeTasks parses the stored tasks column back into a task list.
// NULL, empty or unparseable values decode to an empty list, never nil.
func DecodeTasks(raw *string) []Task {
	if raw == nil || *raw == "" {
		return []Task{}
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(*raw), &tasks); err != nil {
		return []Task{}
	}
	if tasks == nil {
		return []Task{}
	}
	return tasks
}
