// Package summarizer turns logged tasks into prose summaries using the
// local LLM, with a deterministic plain-text rendering as the fallback when
// the engine is unreachable.
package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// Generator is the LLM call the summarizer depends on. *ollama.Client
// satisfies it; tests use a fake.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Summarizer generates work summaries
type Summarizer struct {
	gen     Generator
	model   string
	limiter *rate.Limiter
}

// Config holds summarizer configuration
type Config struct {
	Generator Generator
	Model     string

	// Limiter throttles LLM calls so a burst (end-of-day summary plus a
	// report) doesn't saturate the local engine. Nil gets a default of one
	// call per 2s with a burst of 3.
	Limiter *rate.Limiter
}

// New creates a Summarizer
func New(cfg *Config) (*Summarizer, error) {
	if cfg == nil || cfg.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(2*time.Second), 3)
	}
	return &Summarizer{
		gen:     cfg.Generator,
		model:   cfg.Model,
		limiter: limiter,
	}, nil
}

// call waits for a rate-limiter slot then runs the generator
func (s *Summarizer) call(ctx context.Context, prompt string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}
	text, err := s.gen.Generate(ctx, s.model, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("model returned an empty summary")
	}
	return text, nil
}

// SummarizeTask produces a one-paragraph summary of a single check-in
// description. Used to fill the AI Summary column when a task is logged.
func (s *Summarizer) SummarizeTask(ctx context.Context, description, ticket string) (string, error) {
	return s.call(ctx, buildTaskPrompt(description, ticket))
}

// SummarizeTasks produces an hourly-style summary over a batch of tasks
func (s *Summarizer) SummarizeTasks(ctx context.Context, tasks []*types.Task) (string, error) {
	if len(tasks) == 0 {
		return "", fmt.Errorf("no tasks to summarize")
	}
	return s.call(ctx, buildBatchPrompt(tasks, "the last hour"))
}

// EndOfDaySummary produces a summary across a whole day of work
func (s *Summarizer) EndOfDaySummary(ctx context.Context, tasks []*types.Task) (string, error) {
	if len(tasks) == 0 {
		return "", fmt.Errorf("no tasks to summarize")
	}
	return s.call(ctx, buildBatchPrompt(tasks, "today"))
}

// SummarizeTasksOrFallback tries the LLM and falls back to the plain
// rendering when the engine is unreachable. The bool reports whether the
// text came from the model.
func (s *Summarizer) SummarizeTasksOrFallback(ctx context.Context, tasks []*types.Task) (string, bool) {
	if text, err := s.SummarizeTasks(ctx, tasks); err == nil {
		return text, true
	}
	return PlainSummary(tasks), false
}

// EndOfDayOrFallback is EndOfDaySummary with the plain fallback
func (s *Summarizer) EndOfDayOrFallback(ctx context.Context, tasks []*types.Task) (string, bool) {
	if text, err := s.EndOfDaySummary(ctx, tasks); err == nil {
		return text, true
	}
	return PlainSummary(tasks), false
}

// PlainSummary is the deterministic no-LLM rendering of a task batch
func PlainSummary(tasks []*types.Task) string {
	if len(tasks) == 0 {
		return "No tasks logged."
	}
	var b strings.Builder
	total := 0.0
	for _, t := range tasks {
		line := "- " + strings.TrimSpace(t.Title)
		if t.Ticket != "" {
			line += fmt.Sprintf(" [%s]", t.Ticket)
		}
		line += fmt.Sprintf(" (%.0f min)", t.DurationMinutes)
		if t.Resolved {
			line += " [resolved]"
		}
		b.WriteString(line + "\n")
		total += t.DurationMinutes
	}
	fmt.Fprintf(&b, "Total: %d task(s), %.0f minutes.", len(tasks), total)
	return b.String()
}
