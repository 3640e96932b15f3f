package timer

import (
	"testing"
	"time"

	"timer_diary/internal/domain"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{10 * time.Minute, "00:10:00"},
		{time.Hour + 23*time.Minute + 45*time.Second, "01:23:45"},
		{-time.Second, "00:00:00"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	var gotDuration, gotTitle, gotDesc string
	var gotTasks []domain.Task
	s := NewSession(func(duration, title, description string, tasks []domain.Task) {
		gotDuration = duration
		gotTitle = title
		gotDesc = description
		gotTasks = tasks
	})

	if s.State() != StateConfiguring {
		t.Fatalf("new session state = %v, want configuring", s.State())
	}

	if err := s.Configure(0, 10, 0, "Testing", "Wrote tests"); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := s.AddTask("write spec"); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.State() != StateRunning {
		t.Fatalf("state after start = %v, want running", s.State())
	}

	// checklist is locked for editing once running
	if err := s.AddTask("late"); err == nil {
		t.Fatal("expected AddTask to fail while running")
	}

	// run 3 minutes down
	for i := 0; i < 180; i++ {
		s.Tick()
	}
	if s.Remaining() != "00:07:00" {
		t.Fatalf("remaining = %q, want 00:07:00", s.Remaining())
	}

	// pause freezes the countdown
	s.Pause()
	if s.State() != StatePaused {
		t.Fatalf("state after pause = %v, want paused", s.State())
	}
	s.Tick()
	if s.Remaining() != "00:07:00" {
		t.Fatalf("tick while paused changed remaining to %q", s.Remaining())
	}
	s.Resume()
	if s.State() != StateRunning {
		t.Fatalf("state after resume = %v, want running", s.State())
	}

	if err := s.CheckTask(0); err != nil {
		t.Fatalf("check task: %v", err)
	}

	duration, err := s.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if duration != "00:03:00" {
		t.Fatalf("finish duration = %q, want 00:03:00", duration)
	}

	if gotDuration != "00:03:00" || gotTitle != "Testing" || gotDesc != "Wrote tests" {
		t.Fatalf("callback got (%q, %q, %q)", gotDuration, gotTitle, gotDesc)
	}
	if len(gotTasks) != 1 || !gotTasks[0].Checked {
		t.Fatalf("callback tasks = %+v, want one checked task", gotTasks)
	}

	// finish resets to a clean configuring state
	if s.State() != StateConfiguring {
		t.Fatalf("state after finish = %v, want configuring", s.State())
	}
	if s.Title() != "" || s.Description() != "" || len(s.Tasks()) != 0 {
		t.Fatal("session fields not cleared after finish")
	}
}

func TestSessionExpiry(t *testing.T) {
	s := NewSession(nil)
	if err := s.Configure(0, 0, 2, "short", "sprint"); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	s.Tick()
	if s.Expired() {
		t.Fatal("expired after 1 of 2 seconds")
	}
	s.Tick()
	if !s.Expired() {
		t.Fatal("not expired at zero")
	}

	// expiry does not auto-finish
	if s.State() != StateRunning {
		t.Fatalf("state at expiry = %v, want running", s.State())
	}

	// extra ticks are harmless
	s.Tick()
	if s.Remaining() != "00:00:00" {
		t.Fatalf("remaining after expiry = %q", s.Remaining())
	}

	duration, err := s.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if duration != "00:00:02" {
		t.Fatalf("duration = %q, want 00:00:02", duration)
	}
}

func TestSessionConfigureValidation(t *testing.T) {
	s := NewSession(nil)

	if err := s.Configure(0, 0, 0, "t", "d"); err == nil {
		t.Fatal("expected error for zero duration")
	}
	if err := s.Start(); err == nil {
		t.Fatal("expected error starting unconfigured session")
	}
	if _, err := s.Finish(); err == nil {
		t.Fatal("expected error finishing unstarted session")
	}
	if err := s.CheckTask(0); err == nil {
		t.Fatal("expected error checking task before start")
	}
}

func TestSessionRemoveTask(t *testing.T) {
	s := NewSession(nil)
	_ = s.AddTask("a")
	_ = s.AddTask("b")
	_ = s.AddTask("c")

	if err := s.RemoveTask(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].Text != "a" || tasks[1].Text != "c" {
		t.Fatalf("tasks after remove = %+v", tasks)
	}

	if err := s.RemoveTask(5); err == nil {
		t.Fatal("expected error for out of range index")
	}
}
