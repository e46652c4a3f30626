package summarizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// fakeGenerator records prompts and returns a canned response or error
type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func sampleTasks() []*types.Task {
	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	return []*types.Task{
		{StartTime: start, Title: "Fixed login redirect", Ticket: "WEB-12", DurationMinutes: 40, Resolved: true},
		{StartTime: start.Add(time.Hour), Title: "Triage flaky CI job", DurationMinutes: 20},
	}
}

func newTestSummarizer(t *testing.T, gen Generator) *Summarizer {
	t.Helper()
	s, err := New(&Config{
		Generator: gen,
		Model:     "qwen2.5:3b",
		Limiter:   rate.NewLimiter(rate.Inf, 1),
	})
	require.NoError(t, err)
	return s
}

func TestNewRequiresGenerator(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
	_, err = New(&Config{})
	assert.Error(t, err)
}

func TestSummarizeTasks(t *testing.T) {
	gen := &fakeGenerator{response: "Fixed the login redirect and triaged CI."}
	s := newTestSummarizer(t, gen)

	text, err := s.SummarizeTasks(context.Background(), sampleTasks())
	require.NoError(t, err)
	assert.Equal(t, "Fixed the login redirect and triaged CI.", text)

	// Prompt carries the task details
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Fixed login redirect")
	assert.Contains(t, gen.prompts[0], "WEB-12")
	assert.Contains(t, gen.prompts[0], "Resolved: Yes")
	assert.Contains(t, gen.prompts[0], "the last hour")
}

func TestSummarizeTasksEmptyBatch(t *testing.T) {
	s := newTestSummarizer(t, &fakeGenerator{response: "x"})
	_, err := s.SummarizeTasks(context.Background(), nil)
	assert.Error(t, err)
}

func TestEmptyModelResponseIsAnError(t *testing.T) {
	s := newTestSummarizer(t, &fakeGenerator{response: "   "})
	_, err := s.SummarizeTasks(context.Background(), sampleTasks())
	assert.Error(t, err)
}

func TestSummarizeTaskPrompt(t *testing.T) {
	gen := &fakeGenerator{response: "Rotated the prod certs."}
	s := newTestSummarizer(t, gen)

	_, err := s.SummarizeTask(context.Background(), "rotated certs on prod", "OPS-9")
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "rotated certs on prod")
	assert.Contains(t, gen.prompts[0], "OPS-9")
}

func TestFallbackWhenEngineDown(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	s := newTestSummarizer(t, gen)

	text, ai := s.SummarizeTasksOrFallback(context.Background(), sampleTasks())
	assert.False(t, ai)
	assert.Contains(t, text, "- Fixed login redirect [WEB-12] (40 min) [resolved]")
	assert.Contains(t, text, "Total: 2 task(s), 60 minutes.")

	text, ai = s.EndOfDayOrFallback(context.Background(), sampleTasks())
	assert.False(t, ai)
	assert.Contains(t, text, "Triage flaky CI job")
}

func TestEndOfDayPromptPeriod(t *testing.T) {
	gen := &fakeGenerator{response: "A productive day."}
	s := newTestSummarizer(t, gen)

	_, err := s.EndOfDaySummary(context.Background(), sampleTasks())
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "today")
}

func TestPlainSummaryEmpty(t *testing.T) {
	assert.Equal(t, "No tasks logged.", PlainSummary(nil))
}
