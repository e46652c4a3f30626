// Package relnotes generates Markdown release notes from the git history
// since the previous tag, grouping conventional-commit subjects into titled
// sections.
package relnotes

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// nowFunc is swapped out in tests
var nowFunc = time.Now

// NormalizeVersion validates a release version and returns its canonical
// vX.Y.Z form. A missing "v" prefix is tolerated.
func NormalizeVersion(version string) (string, error) {
	v := strings.TrimSpace(version)
	if v == "" {
		return "", fmt.Errorf("version is required")
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid semantic version %q (want X.Y.Z)", version)
	}
	return semver.Canonical(v), nil
}

// section is one titled bucket of release notes
type section struct {
	commitType string
	title      string
}

// sections fixes the output order. Commits whose type matches nothing here
// land in Other Changes.
var sections = []section{
	{"feat", "Features"},
	{"fix", "Bug Fixes"},
	{"perf", "Performance"},
	{"refactor", "Refactoring"},
	{"docs", "Documentation"},
	{"test", "Tests"},
	{"chore", "Maintenance"},
}

const otherTitle = "Other Changes"

// conventionalRe matches "type(scope)!: subject"
var conventionalRe = regexp.MustCompile(`^(\w+)(\(([^)]*)\))?!?:\s*(.+)$`)

// classify splits a commit subject into its conventional-commit type, scope,
// and description. Non-conventional subjects come back with an empty type.
func classify(subject string) (commitType, scope, description string) {
	m := conventionalRe.FindStringSubmatch(strings.TrimSpace(subject))
	if m == nil {
		return "", "", strings.TrimSpace(subject)
	}
	return strings.ToLower(m[1]), m[3], strings.TrimSpace(m[4])
}

// Notes holds the inputs of one rendered release-notes document
type Notes struct {
	Version     string
	Date        time.Time
	PreviousTag string
	Subjects    []string
}

// Render produces the Markdown document
func (n *Notes) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Release %s\n\n", n.Version)
	fmt.Fprintf(&b, "_%s_", n.Date.Format(types.DateLayout))
	if n.PreviousTag != "" {
		fmt.Fprintf(&b, " (changes since %s)", n.PreviousTag)
	}
	b.WriteString("\n")

	if len(n.Subjects) == 0 {
		b.WriteString("\nNo changes recorded.\n")
		return b.String()
	}

	grouped := make(map[string][]string)
	var other []string
	known := make(map[string]bool, len(sections))
	for _, s := range sections {
		known[s.commitType] = true
	}
	for _, subject := range n.Subjects {
		commitType, scope, description := classify(subject)
		line := "- " + description
		if scope != "" {
			line = fmt.Sprintf("- **%s:** %s", scope, description)
		}
		if known[commitType] {
			grouped[commitType] = append(grouped[commitType], line)
		} else {
			other = append(other, line)
		}
	}

	for _, s := range sections {
		if lines := grouped[s.commitType]; len(lines) > 0 {
			fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.title, strings.Join(lines, "\n"))
		}
	}
	if len(other) > 0 {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", otherTitle, strings.Join(other, "\n"))
	}
	return b.String()
}
