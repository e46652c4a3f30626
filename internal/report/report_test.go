package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// fakeSource serves canned tasks keyed by date string
type fakeSource struct {
	byDate map[string][]*types.Task
	err    error
}

func (f *fakeSource) TasksByDate(ctx context.Context, date time.Time) ([]*types.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate[date.Format(types.DateLayout)], nil
}

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func day(s string) time.Time {
	d, err := time.ParseInLocation(types.DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return d
}

func twoDaySource() *fakeSource {
	return &fakeSource{byDate: map[string][]*types.Task{
		"2026-08-24": {
			{StartTime: day("2026-08-24").Add(8 * time.Hour), Title: types.MarkerDayStarted},
			{StartTime: day("2026-08-24").Add(9 * time.Hour), Title: "Fixed login redirect", Ticket: "WEB-12", DurationMinutes: 40, Resolved: true},
		},
		"2026-08-25": {
			{StartTime: day("2026-08-25").Add(10 * time.Hour), Title: "Triage flaky CI job", DurationMinutes: 20},
		},
	}}
}

func TestParseRange(t *testing.T) {
	from, to, err := ParseRange("2026-08-24", "2026-08-25")
	require.NoError(t, err)
	assert.True(t, from.Before(to))

	_, _, err = ParseRange("24/08/2026", "2026-08-25")
	assert.Error(t, err)

	_, _, err = ParseRange("2026-08-25", "2026-08-24")
	assert.Error(t, err)

	// single day range is fine
	_, _, err = ParseRange("2026-08-24", "2026-08-24")
	assert.NoError(t, err)
}

func TestCollectTasksExcludesMarkers(t *testing.T) {
	b, err := New(&Config{Source: twoDaySource()})
	require.NoError(t, err)

	tasks, err := b.CollectTasks(context.Background(), day("2026-08-24"), day("2026-08-25"))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Fixed login redirect", tasks[0].Title)
	assert.Equal(t, "Triage flaky CI job", tasks[1].Title)
}

func TestGenerateUsesLLM(t *testing.T) {
	gen := &fakeGenerator{response: "Shipped the login fix and kept CI green."}
	b, err := New(&Config{Source: twoDaySource(), Generator: gen, Model: "qwen2.5:3b"})
	require.NoError(t, err)

	res, err := b.Generate(context.Background(), day("2026-08-24"), day("2026-08-25"))
	require.NoError(t, err)
	assert.True(t, res.FromLLM)
	assert.Equal(t, 2, res.TaskCount)
	assert.Contains(t, res.Text, "# Work Update - 2026-08-24 to 2026-08-25")
	assert.Contains(t, res.Text, "Shipped the login fix")

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "manager update")
	assert.Contains(t, gen.prompts[0], "WEB-12")
	assert.NotContains(t, gen.prompts[0], types.MarkerDayStarted)
}

func TestGenerateFallsBackWhenLLMFails(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	b, err := New(&Config{Source: twoDaySource(), Generator: gen, Model: "m"})
	require.NoError(t, err)

	res, err := b.Generate(context.Background(), day("2026-08-24"), day("2026-08-25"))
	require.NoError(t, err)
	assert.False(t, res.FromLLM)
	assert.Contains(t, res.Text, "**Tickets:** WEB-12")
	assert.Contains(t, res.Text, "- Fixed login redirect [WEB-12] - 40 min (resolved)")
	assert.Contains(t, res.Text, "- Triage flaky CI job - 20 min")
}

func TestGenerateWithoutGenerator(t *testing.T) {
	b, err := New(&Config{Source: twoDaySource()})
	require.NoError(t, err)

	res, err := b.Generate(context.Background(), day("2026-08-24"), day("2026-08-24"))
	require.NoError(t, err)
	assert.False(t, res.FromLLM)
	assert.Contains(t, res.Text, "# Work Update - 2026-08-24")
}

func TestGenerateEmptyRange(t *testing.T) {
	b, err := New(&Config{Source: &fakeSource{byDate: map[string][]*types.Task{}}})
	require.NoError(t, err)

	res, err := b.Generate(context.Background(), day("2026-08-01"), day("2026-08-02"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.TaskCount)
	assert.Contains(t, res.Text, "No tasks found")
}

func TestGenerateSourceError(t *testing.T) {
	b, err := New(&Config{Source: &fakeSource{err: errors.New("disk gone")}})
	require.NoError(t, err)

	_, err = b.Generate(context.Background(), day("2026-08-24"), day("2026-08-24"))
	assert.Error(t, err)
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "weekly", "update.md")
	require.NoError(t, Save(path, "# Work Update"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Work Update", string(data))
}

func TestDefaultFilename(t *testing.T) {
	name := DefaultFilename()
	assert.Contains(t, name, "manager_update_")
	assert.Contains(t, name, time.Now().Format(types.DateLayout))
}
