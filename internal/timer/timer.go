// Package timer implements the countdown session workflow: configure a
// duration, title, description and checklist, run the countdown with
// pause/resume, and on finish hand the elapsed time to a completion
// callback for persistence.
package timer

import (
	"errors"
	"fmt"
	"time"

	"timer_diary/internal/domain"
)

type State int

const (
	StateConfiguring State = iota
	StateRunning
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

var (
	ErrNotConfiguring = errors.New("timer already started")
	ErrNotStarted     = errors.New("timer not started")
	ErrZeroDuration   = errors.New("duration must be positive")
)

// FinishFunc receives the finished session: elapsed duration formatted
// HH:MM:SS, title, description and the checklist as it stands.
type FinishFunc func(duration, title, description string, tasks []domain.Task)

// Session is a single timer session. Ticking is cooperative: the owner
// calls Tick once per second while the session is running.
type Session struct {
	state       State
	configured  time.Duration
	remaining   time.Duration
	expired     bool
	title       string
	description string
	tasks       []domain.Task
	onFinish    FinishFunc
}

func NewSession(onFinish FinishFunc) *Session {
	return &Session{
		state:    StateConfiguring,
		onFinish: onFinish,
		tasks:    []domain.Task{},
	}
}

func (s *Session) State() State         { return s.state }
func (s *Session) Title() string        { return s.title }
func (s *Session) Description() string  { return s.description }
func (s *Session) Tasks() []domain.Task { return append([]domain.Task{}, s.tasks...) }
func (s *Session) Expired() bool        { return s.expired }

// Configure sets duration and metadata. Only valid before Start.
func (s *Session) Configure(hours, minutes, seconds int, title, description string) error {
	if s.state != StateConfiguring {
		return ErrNotConfiguring
	}
	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
	if d <= 0 {
		return ErrZeroDuration
	}
	s.configured = d
	s.title = title
	s.description = description
	return nil
}

// AddTask appends a checklist item. Items are editable only while
// configuring; once running they can only be checked off.
func (s *Session) AddTask(text string) error {
	if s.state != StateConfiguring {
		return ErrNotConfiguring
	}
	s.tasks = append(s.tasks, domain.Task{Text: text})
	return nil
}

func (s *Session) RemoveTask(index int) error {
	if s.state != StateConfiguring {
		return ErrNotConfiguring
	}
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("task index %d out of range", index)
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return nil
}

// CheckTask toggles a checklist item. Meaningful once the session runs.
func (s *Session) CheckTask(index int) error {
	if s.state != StateRunning && s.state != StatePaused {
		return ErrNotStarted
	}
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("task index %d out of range", index)
	}
	s.tasks[index].Checked = !s.tasks[index].Checked
	return nil
}

// Start begins the countdown from the configured duration.
func (s *Session) Start() error {
	if s.state != StateConfiguring {
		return ErrNotConfiguring
	}
	if s.configured <= 0 {
		return ErrZeroDuration
	}
	s.remaining = s.configured
	s.expired = false
	s.state = StateRunning
	return nil
}

// Pause stops ticking without resetting elapsed time.
func (s *Session) Pause() {
	if s.state == StateRunning {
		s.state = StatePaused
	}
}

// Resume continues a paused countdown.
func (s *Session) Resume() {
	if s.state == StatePaused {
		s.state = StateRunning
	}
}

// Tick advances the countdown by one second. At zero the session marks
// itself expired but does not finish; the owner must call Finish.
func (s *Session) Tick() {
	if s.state != StateRunning || s.remaining <= 0 {
		return
	}
	s.remaining -= time.Second
	if s.remaining <= 0 {
		s.remaining = 0
		s.expired = true
	}
}

// Remaining renders the time left as HH:MM:SS.
func (s *Session) Remaining() string {
	return FormatDuration(s.remaining)
}

// Finish computes elapsed time as configured minus remaining, emits the
// completion callback and resets to a fresh configuring state.
func (s *Session) Finish() (string, error) {
	if s.state != StateRunning && s.state != StatePaused {
		return "", ErrNotStarted
	}
	s.state = StateFinished

	elapsed := FormatDuration(s.configured - s.remaining)
	if s.onFinish != nil {
		s.onFinish(elapsed, s.title, s.description, s.Tasks())
	}

	// back to a clean slate
	s.configured = 0
	s.remaining = 0
	s.expired = false
	s.title = ""
	s.description = ""
	s.tasks = []domain.Task{}
	s.state = StateConfiguring

	return elapsed, nil
}

// FormatDuration renders a duration as zero-padded HH:MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
