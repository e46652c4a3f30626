// Package tracker runs the foreground check-in loop: it brackets a working
// day with marker rows, prompts on an interval for what was worked on, and
// closes the day with an end-of-day summary.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// ErrEndSession is returned by a Prompter to end the day cleanly
var ErrEndSession = errors.New("end of session requested")

// TaskLog is the slice of the storage repository the tracker needs
type TaskLog interface {
	LogTask(ctx context.Context, task *types.Task) error
	TasksSince(ctx context.Context, since time.Time) ([]*types.Task, error)
}

// Summarizer produces the AI Summary column and the end-of-day row. May be
// nil; the tracker then logs tasks without summaries.
type Summarizer interface {
	SummarizeTask(ctx context.Context, description, ticket string) (string, error)
	EndOfDayOrFallback(ctx context.Context, tasks []*types.Task) (string, bool)
}

// Checkin is one answered prompt
type Checkin struct {
	Description string
	Ticket      string
	Resolved    bool
}

// Prompter asks the user what they worked on since the last check-in.
// Returning nil with no error means the check-in was skipped; returning
// ErrEndSession ends the day.
type Prompter interface {
	Checkin(ctx context.Context) (*Checkin, error)
}

// Notifier receives session events for display. Any method may be a no-op.
type Notifier interface {
	SessionStarted(sessionID string, interval time.Duration)
	TaskLogged(task *types.Task)
	CheckinSkipped()
	SessionEnded(summary string, fromLLM bool)
}

// Config holds tracker configuration
type Config struct {
	Log      TaskLog
	Prompter Prompter

	// Summarizer may be nil (no AI summaries)
	Summarizer Summarizer
	// Notifier may be nil
	Notifier Notifier

	// Interval between check-in prompts
	// Default: 1 hour
	Interval time.Duration

	// SystemInfo is recorded on every logged task
	SystemInfo string
}

// Session is one tracked working day
type Session struct {
	cfg       Config
	id        string
	startedAt time.Time
	lastTick  time.Time
}

// New creates a tracking session with a fresh session ID
func New(cfg Config) (*Session, error) {
	if cfg.Log == nil {
		return nil, fmt.Errorf("task log is required")
	}
	if cfg.Prompter == nil {
		return nil, fmt.Errorf("prompter is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Session{cfg: cfg, id: uuid.New().String()}, nil
}

// ID returns the session identifier carried by this session's marker rows
func (s *Session) ID() string {
	return s.id
}

// markerInfo is the System Info value for marker rows
func (s *Session) markerInfo() string {
	return strings.TrimSpace(fmt.Sprintf("%s session=%s", s.cfg.SystemInfo, s.id))
}

// logMarker writes a zero-duration marker row
func (s *Session) logMarker(ctx context.Context, title, summary string) error {
	now := time.Now()
	return s.cfg.Log.LogTask(ctx, &types.Task{
		StartTime:  now,
		EndTime:    now,
		Title:      title,
		SystemInfo: s.markerInfo(),
		AISummary:  summary,
	})
}

// Run drives the check-in loop until the context is cancelled or the
// prompter requests the end of the session. The DAY ENDED marker and the
// end-of-day summary are written on the way out even when ctx is already
// cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.startedAt = time.Now()
	s.lastTick = s.startedAt

	if err := s.logMarker(ctx, types.MarkerDayStarted, ""); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	if s.cfg.Notifier != nil {
		s.cfg.Notifier.SessionStarted(s.id, s.cfg.Interval)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			if err := s.checkin(ctx); err != nil {
				if errors.Is(err, ErrEndSession) {
					break loop
				}
				runErr = err
				break loop
			}
		}
	}

	if err := s.finish(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// checkin runs one prompt cycle and logs the answer
func (s *Session) checkin(ctx context.Context) error {
	answer, err := s.cfg.Prompter.Checkin(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	start := s.lastTick
	s.lastTick = now

	if answer == nil || strings.TrimSpace(answer.Description) == "" {
		if s.cfg.Notifier != nil {
			s.cfg.Notifier.CheckinSkipped()
		}
		return nil
	}

	task := &types.Task{
		StartTime:       start,
		EndTime:         now,
		DurationMinutes: now.Sub(start).Minutes(),
		Ticket:          strings.TrimSpace(answer.Ticket),
		Title:           strings.TrimSpace(answer.Description),
		SystemInfo:      s.cfg.SystemInfo,
		Resolved:        answer.Resolved,
	}
	if s.cfg.Summarizer != nil {
		if summary, err := s.cfg.Summarizer.SummarizeTask(ctx, task.Title, task.Ticket); err == nil {
			task.AISummary = summary
		}
	}

	if err := s.cfg.Log.LogTask(ctx, task); err != nil {
		return fmt.Errorf("failed to log task: %w", err)
	}
	if s.cfg.Notifier != nil {
		s.cfg.Notifier.TaskLogged(task)
	}
	return nil
}

// finish writes the closing markers. Uses a fresh context so shutdown still
// writes the DAY ENDED row after the run context is cancelled.
func (s *Session) finish() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.logMarker(ctx, types.MarkerDayEnded, ""); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	tasks, err := s.cfg.Log.TasksSince(ctx, s.startedAt)
	if err != nil {
		return fmt.Errorf("failed to read session tasks: %w", err)
	}
	var worked []*types.Task
	for _, t := range tasks {
		if !t.IsMarker() {
			worked = append(worked, t)
		}
	}
	if len(worked) == 0 {
		if s.cfg.Notifier != nil {
			s.cfg.Notifier.SessionEnded("No tasks logged.", false)
		}
		return nil
	}

	summary := ""
	fromLLM := false
	if s.cfg.Summarizer != nil {
		summary, fromLLM = s.cfg.Summarizer.EndOfDayOrFallback(ctx, worked)
	}
	if err := s.logMarker(ctx, types.MarkerEndOfDay, summary); err != nil {
		return fmt.Errorf("failed to write end-of-day summary: %w", err)
	}
	if s.cfg.Notifier != nil {
		s.cfg.Notifier.SessionEnded(summary, fromLLM)
	}
	return nil
}
