package relnotes

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVersion(t *testing.T) {
	for in, want := range map[string]string{
		"1.2.3":   "v1.2.3",
		"v1.2.3":  "v1.2.3",
		"v2.0":    "v2.0.0",
		" 0.4.1 ": "v0.4.1",
	} {
		got, err := NormalizeVersion(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "banana", "1.2.3.4", "v1..2"} {
		_, err := NormalizeVersion(in)
		assert.Error(t, err, in)
	}
}

func TestClassify(t *testing.T) {
	commitType, scope, desc := classify("feat(todo): add archive command")
	assert.Equal(t, "feat", commitType)
	assert.Equal(t, "todo", scope)
	assert.Equal(t, "add archive command", desc)

	commitType, _, desc = classify("fix!: handle legacy headers")
	assert.Equal(t, "fix", commitType)
	assert.Equal(t, "handle legacy headers", desc)

	commitType, _, desc = classify("Update README")
	assert.Equal(t, "", commitType)
	assert.Equal(t, "Update README", desc)
}

func TestRenderGroupsAndOrdersSections(t *testing.T) {
	n := &Notes{
		Version:     "v1.4.0",
		Date:        time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		PreviousTag: "v1.3.0",
		Subjects: []string{
			"fix(storage): pad short legacy rows",
			"feat: add sqlite backend",
			"Update CI badge",
			"feat(report): manager update command",
			"chore: bump deps",
		},
	}
	out := n.Render()

	assert.Contains(t, out, "# Release v1.4.0")
	assert.Contains(t, out, "_2026-08-25_ (changes since v1.3.0)")
	assert.Contains(t, out, "- **storage:** pad short legacy rows")
	assert.Contains(t, out, "- Update CI badge")

	// Features before Bug Fixes before Maintenance before Other Changes
	features := strings.Index(out, "## Features")
	fixes := strings.Index(out, "## Bug Fixes")
	chores := strings.Index(out, "## Maintenance")
	other := strings.Index(out, "## Other Changes")
	require.True(t, features >= 0 && fixes >= 0 && chores >= 0 && other >= 0)
	assert.Less(t, features, fixes)
	assert.Less(t, fixes, chores)
	assert.Less(t, chores, other)
}

func TestRenderEmptyHistory(t *testing.T) {
	n := &Notes{Version: "v0.1.0", Date: time.Now()}
	assert.Contains(t, n.Render(), "No changes recorded.")
}

// gitOrSkip initializes a throwaway repo with two tagged releases
func gitOrSkip(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	run("init")
	run("commit", "--allow-empty", "-m", "feat: initial release")
	run("tag", "v1.0.0")
	run("commit", "--allow-empty", "-m", "fix(storage): pad short rows")
	run("commit", "--allow-empty", "-m", "docs: expand setup guide")
	return dir
}

func TestCollectSincePreviousTag(t *testing.T) {
	dir := gitOrSkip(t)
	ctx := context.Background()

	g, err := NewGit(ctx)
	require.NoError(t, err)

	notes, err := g.Collect(ctx, dir, "1.1.0")
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", notes.Version)
	assert.Equal(t, "v1.0.0", notes.PreviousTag)
	assert.ElementsMatch(t, []string{
		"fix(storage): pad short rows",
		"docs: expand setup guide",
	}, notes.Subjects)

	out := notes.Render()
	assert.Contains(t, out, "## Bug Fixes")
	assert.NotContains(t, out, "initial release")
}

func TestCollectRejectsBadVersion(t *testing.T) {
	g := &Git{gitPath: "git"}
	_, err := g.Collect(context.Background(), ".", "not-a-version")
	assert.Error(t, err)
}
