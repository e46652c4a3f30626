// Package report generates ad hoc progress updates for managers: a
// date-range roll-up of the work log, written by the LLM when it's
// reachable and by a deterministic Markdown renderer when it isn't.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// TaskSource is the slice of the storage repository the builder needs
type TaskSource interface {
	TasksByDate(ctx context.Context, date time.Time) ([]*types.Task, error)
}

// Generator is the LLM call used for the polished report text
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Builder generates manager update reports
type Builder struct {
	source TaskSource
	gen    Generator
	model  string
}

// Config holds report builder configuration
type Config struct {
	Source TaskSource
	// Generator may be nil; the builder then always renders the plain report
	Generator Generator
	Model     string
}

// New creates a report Builder
func New(cfg *Config) (*Builder, error) {
	if cfg == nil || cfg.Source == nil {
		return nil, fmt.Errorf("task source is required")
	}
	return &Builder{source: cfg.Source, gen: cfg.Generator, model: cfg.Model}, nil
}

// ParseRange parses and validates a from/to date pair in YYYY-MM-DD form
func ParseRange(fromStr, toStr string) (from, to time.Time, err error) {
	from, err = time.ParseInLocation(types.DateLayout, strings.TrimSpace(fromStr), time.Local)
	if err != nil {
		return from, to, fmt.Errorf("'from' date must be in YYYY-MM-DD format (got %q)", fromStr)
	}
	to, err = time.ParseInLocation(types.DateLayout, strings.TrimSpace(toStr), time.Local)
	if err != nil {
		return from, to, fmt.Errorf("'to' date must be in YYYY-MM-DD format (got %q)", toStr)
	}
	if from.After(to) {
		return from, to, fmt.Errorf("'from' date must be on or before 'to' date")
	}
	return from, to, nil
}

// CollectTasks gathers all non-marker tasks between from and to (inclusive)
func (b *Builder) CollectTasks(ctx context.Context, from, to time.Time) ([]*types.Task, error) {
	var tasks []*types.Task
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayTasks, err := b.source.TasksByDate(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("failed to read tasks for %s: %w", day.Format(types.DateLayout), err)
		}
		for _, t := range dayTasks {
			if !t.IsMarker() {
				tasks = append(tasks, t)
			}
		}
	}
	return tasks, nil
}

// formatRange renders a date range for headings ("2026-08-24" or
// "2026-08-24 to 2026-08-28")
func formatRange(from, to time.Time) string {
	if from.Equal(to) {
		return from.Format(types.DateLayout)
	}
	return from.Format(types.DateLayout) + " to " + to.Format(types.DateLayout)
}

// BuildPlain renders the deterministic Markdown report
func BuildPlain(tasks []*types.Task, from, to time.Time) string {
	lines := []string{fmt.Sprintf("# Work Update - %s\n", formatRange(from, to))}

	ticketSet := make(map[string]struct{})
	for _, t := range tasks {
		if ticket := strings.TrimSpace(t.Ticket); ticket != "" {
			ticketSet[ticket] = struct{}{}
		}
	}
	if len(ticketSet) > 0 {
		tickets := make([]string, 0, len(ticketSet))
		for ticket := range ticketSet {
			tickets = append(tickets, ticket)
		}
		sort.Strings(tickets)
		lines = append(lines, fmt.Sprintf("**Tickets:** %s\n", strings.Join(tickets, ", ")))
	}

	lines = append(lines, "## Tasks Completed\n")
	for _, t := range tasks {
		line := "- " + strings.TrimSpace(t.Title)
		if ticket := strings.TrimSpace(t.Ticket); ticket != "" {
			line += fmt.Sprintf(" [%s]", ticket)
		}
		line += fmt.Sprintf(" - %.0f min", t.DurationMinutes)
		if t.Resolved {
			line += " (resolved)"
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// buildPrompt builds the LLM prompt for a manager update
func buildPrompt(tasks []*types.Task, from, to time.Time) string {
	var taskLines []string
	for _, t := range tasks {
		ticket := strings.TrimSpace(t.Ticket)
		if ticket == "" {
			ticket = "N/A"
		}
		taskLines = append(taskLines, fmt.Sprintf("- %s (Ticket: %s, %.0f min, Resolved: %s)",
			strings.TrimSpace(t.Title), ticket, t.DurationMinutes, t.ResolvedString()))
	}

	return fmt.Sprintf(`Create a professional manager update for the period %s.

Work completed:
%s

Write a concise, professional update that:
1. Summarises the key work accomplished
2. Highlights any resolved issues
3. Mentions the tickets/references worked on
Format in Markdown. Keep it brief and suitable for sharing with a manager.`,
		formatRange(from, to), strings.Join(taskLines, "\n"))
}

// Result is a generated report
type Result struct {
	Text string
	// FromLLM is true when the model wrote the body (as opposed to the
	// plain fallback renderer)
	FromLLM bool
	// TaskCount is the number of tasks the report covers
	TaskCount int
}

// Generate builds the report for the range. An unreachable LLM degrades to
// the plain report; an empty range yields a friendly placeholder.
func (b *Builder) Generate(ctx context.Context, from, to time.Time) (*Result, error) {
	tasks, err := b.CollectTasks(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return &Result{Text: "No tasks found for the selected date range."}, nil
	}

	if b.gen != nil {
		if body, err := b.gen.Generate(ctx, b.model, buildPrompt(tasks, from, to)); err == nil && strings.TrimSpace(body) != "" {
			text := fmt.Sprintf("# Work Update - %s\n\n%s", formatRange(from, to), strings.TrimSpace(body))
			return &Result{Text: text, FromLLM: true, TaskCount: len(tasks)}, nil
		}
	}
	return &Result{Text: BuildPlain(tasks, from, to), TaskCount: len(tasks)}, nil
}

// DefaultFilename returns the default report file name for today
func DefaultFilename() string {
	return fmt.Sprintf("manager_update_%s.md", time.Now().Format(types.DateLayout))
}

// Save writes a report to path, creating parent directories as needed
func Save(path, text string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
