// Package client is the data layer between a front-end and the diary API.
// All network calls go through here; results are held in an explicit query
// cache that mutations keep consistent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"timer_diary/internal/domain"
)

var ErrNotFound = errors.New("not found")

type Client struct {
	baseURL string
	http    *http.Client
	cache   *queryCache

	// synthetic ids for optimistic placeholders, always negative
	placeholderID atomic.Int64
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   newQueryCache(),
	}
}

// Dates returns all diary dates sorted descending, newest first.
func (c *Client) Dates(ctx context.Context) ([]domain.DateRecord, error) {
	if v, ok := c.cache.get(keyDates); ok {
		return v.([]domain.DateRecord), nil
	}

	var dates []domain.DateRecord
	if err := c.doJSON(ctx, http.MethodGet, "/dates", nil, http.StatusOK, &dates); err != nil {
		return nil, err
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Date > dates[j].Date
	})

	c.cache.set(keyDates, dates)
	return dates, nil
}

// Logs returns the entries for one date. A date the server has never seen
// comes back as an empty list, not an error.
func (c *Client) Logs(ctx context.Context, date string) ([]domain.LogEntry, error) {
	key := keyLogs(date)
	if v, ok := c.cache.get(key); ok {
		return v.([]domain.LogEntry), nil
	}

	var logs []domain.LogEntry
	path := "/logs?date=" + date
	if err := c.doJSON(ctx, http.MethodGet, path, nil, http.StatusOK, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []domain.LogEntry{}
	}

	c.cache.set(key, logs)
	return logs, nil
}

// CreateLogParams carries a finished timer session to the server.
type CreateLogParams struct {
	Date            string        `json:"date"`
	SessionDuration string        `json:"session_duration"`
	Description     string        `json:"description"`
	Title           string        `json:"title"`
	Tasks           []domain.Task `json:"tasks"`
}

// CreateLog submits a new entry. The date's cached list gets an optimistic
// placeholder first; on success both affected keys are invalidated so the
// server's rows become authoritative, on failure the placeholder is rolled
// back.
func (c *Client) CreateLog(ctx context.Context, p CreateLogParams) (*domain.LogEntry, error) {
	if p.Tasks == nil {
		p.Tasks = []domain.Task{}
	}

	key := keyLogs(p.Date)
	placeholder := domain.LogEntry{
		ID:              c.placeholderID.Add(-1),
		SessionDuration: p.SessionDuration,
		Description:     p.Description,
		Title:           p.Title,
		Tasks:           p.Tasks,
		CreatedAt:       time.Now(),
	}

	var hadCache bool
	var prior []domain.LogEntry
	if v, ok := c.cache.get(key); ok {
		hadCache = true
		prior = v.([]domain.LogEntry)
		c.cache.set(key, append(append([]domain.LogEntry{}, prior...), placeholder))
	}

	var created domain.LogEntry
	err := c.doJSON(ctx, http.MethodPost, "/logs/create", p, http.StatusCreated, &created)
	if err != nil {
		if hadCache {
			c.cache.set(key, prior)
		}
		return nil, err
	}

	c.cache.invalidate(key, keyDates)
	return &created, nil
}

// UpdateLogParams is a partial update: nil fields are not sent.
type UpdateLogParams struct {
	Tasks       *[]domain.Task `json:"tasks,omitempty"`
	Description *string        `json:"description,omitempty"`
}

// UpdateLog PATCHes only the changed fields and invalidates the date's
// cached list so the next read refetches the server's value.
func (c *Client) UpdateLog(ctx context.Context, id int64, date string, p UpdateLogParams) error {
	if p.Tasks == nil && p.Description == nil {
		return errors.New("no fields to update")
	}

	path := "/logs/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodPatch, path, p, http.StatusOK, nil); err != nil {
		return err
	}

	c.cache.invalidate(keyLogs(date))
	return nil
}

// ToggleTask flips one checklist item and PATCHes the full task list.
func (c *Client) ToggleTask(ctx context.Context, id int64, date string, taskIndex int) error {
	logs, err := c.Logs(ctx, date)
	if err != nil {
		return err
	}

	var entry *domain.LogEntry
	for i := range logs {
		if logs[i].ID == id {
			entry = &logs[i]
			break
		}
	}
	if entry == nil {
		return ErrNotFound
	}
	if taskIndex < 0 || taskIndex >= len(entry.Tasks) {
		return fmt.Errorf("task index %d out of range", taskIndex)
	}

	tasks := append([]domain.Task{}, entry.Tasks...)
	tasks[taskIndex].Checked = !tasks[taskIndex].Checked
	return c.UpdateLog(ctx, id, date, UpdateLogParams{Tasks: &tasks})
}

// DeleteLog removes an entry. On a confirmed 204 the cached list is
// reconciled in place; no refetch.
func (c *Client) DeleteLog(ctx context.Context, id int64, date string) error {
	path := "/logs/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, http.StatusNoContent, nil); err != nil {
		return err
	}

	key := keyLogs(date)
	if v, ok := c.cache.get(key); ok {
		logs := v.([]domain.LogEntry)
		kept := make([]domain.LogEntry, 0, len(logs))
		for _, l := range logs {
			if l.ID != id {
				kept = append(kept, l)
			}
		}
		c.cache.set(key, kept)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode != wantStatus {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := ""
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil {
			msg = apiErr.Error
			if msg == "" {
				msg = apiErr.Message
			}
		}
		if msg == "" {
			msg = res.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, msg)
	}

	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}
