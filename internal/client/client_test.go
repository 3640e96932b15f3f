package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"timer_diary/internal/domain"
)

func TestDatesSortedAndCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dates" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		calls.Add(1)
		json.NewEncoder(w).Encode([]domain.DateRecord{
			{ID: 1, Date: "2024-01-01"},
			{ID: 3, Date: "2024-03-01"},
			{ID: 2, Date: "2024-02-01"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	dates, err := c.Dates(ctx)
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	if len(dates) != 3 || dates[0].Date != "2024-03-01" || dates[2].Date != "2024-01-01" {
		t.Fatalf("dates not sorted descending: %+v", dates)
	}

	// second read comes from cache
	if _, err := c.Dates(ctx); err != nil {
		t.Fatalf("cached dates: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 server call, got %d", calls.Load())
	}
}

func TestLogsUnknownDateIsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2024-06-01" {
			t.Errorf("date query = %q", got)
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	logs, err := New(srv.URL).Logs(context.Background(), "2024-06-01")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if logs == nil || len(logs) != 0 {
		t.Fatalf("expected empty list, got %v", logs)
	}
}

func TestCreateLogInvalidatesCaches(t *testing.T) {
	var logsCalls, datesCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/dates", func(w http.ResponseWriter, r *http.Request) {
		datesCalls.Add(1)
		w.Write([]byte("[]"))
	})
	mux.HandleFunc("/logs", func(w http.ResponseWriter, r *http.Request) {
		logsCalls.Add(1)
		w.Write([]byte("[]"))
	})
	mux.HandleFunc("/logs/create", func(w http.ResponseWriter, r *http.Request) {
		var req CreateLogParams
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode create body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.LogEntry{ID: 42, Title: req.Title, Tasks: req.Tasks})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	// warm both caches
	if _, err := c.Dates(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Logs(ctx, "2024-01-01"); err != nil {
		t.Fatal(err)
	}

	created, err := c.CreateLog(ctx, CreateLogParams{
		Date:            "2024-01-01",
		SessionDuration: "00:10:00",
		Description:     "Wrote tests",
		Title:           "Testing",
		Tasks:           []domain.Task{{Text: "write spec"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("created id = %d", created.ID)
	}

	// both keys were invalidated, so reads refetch
	if _, err := c.Dates(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Logs(ctx, "2024-01-01"); err != nil {
		t.Fatal(err)
	}
	if datesCalls.Load() != 2 || logsCalls.Load() != 2 {
		t.Fatalf("expected refetch after create, got dates=%d logs=%d", datesCalls.Load(), logsCalls.Load())
	}
}

func TestCreateLogRollsBackOptimisticEntry(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/logs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.LogEntry{{ID: 1, Title: "existing"}})
	})
	mux.HandleFunc("/logs/create", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	if _, err := c.Logs(ctx, "2024-01-01"); err != nil {
		t.Fatal(err)
	}

	_, err := c.CreateLog(ctx, CreateLogParams{
		Date:            "2024-01-01",
		SessionDuration: "00:01:00",
		Description:     "d",
		Title:           "t",
	})
	if err == nil {
		t.Fatal("expected create to fail")
	}

	// cached list must not contain the placeholder
	logs, err := c.Logs(ctx, "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].ID != 1 {
		t.Fatalf("cache not rolled back: %+v", logs)
	}
}

func TestDeleteLogReconcilesCache(t *testing.T) {
	var logsCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/logs", func(w http.ResponseWriter, r *http.Request) {
		logsCalls.Add(1)
		json.NewEncoder(w).Encode([]domain.LogEntry{{ID: 1}, {ID: 2}})
	})
	mux.HandleFunc("/logs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	if _, err := c.Logs(ctx, "2024-01-01"); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteLog(ctx, 1, "2024-01-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// entry removed in place, no refetch
	logs, err := c.Logs(ctx, "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].ID != 2 {
		t.Fatalf("cache after delete = %+v", logs)
	}
	if logsCalls.Load() != 1 {
		t.Fatalf("expected no refetch, got %d calls", logsCalls.Load())
	}
}

func TestDeleteLogNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"log not found"}`))
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteLog(context.Background(), 99, "2024-01-01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleTaskPatchesFullList(t *testing.T) {
	var patched UpdateLogParams
	mux := http.NewServeMux()
	mux.HandleFunc("/logs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.LogEntry{
			{ID: 5, Tasks: []domain.Task{
				{Text: "write spec", Checked: false},
				{Text: "review", Checked: true},
			}},
		})
	})
	mux.HandleFunc("/logs/5", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&patched); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "log updated successfully"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	if err := c.ToggleTask(context.Background(), 5, "2024-01-01", 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if patched.Tasks == nil {
		t.Fatal("patch did not carry tasks")
	}
	tasks := *patched.Tasks
	if len(tasks) != 2 || !tasks[0].Checked || !tasks[1].Checked {
		t.Fatalf("patched tasks = %+v", tasks)
	}
	if patched.Description != nil {
		t.Fatal("patch carried description it should not have")
	}
}

func TestUpdateLogRequiresFields(t *testing.T) {
	c := New("http://unused")
	if err := c.UpdateLog(context.Background(), 1, "2024-01-01", UpdateLogParams{}); err == nil {
		t.Fatal("expected error for empty update")
	}
}
