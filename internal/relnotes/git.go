package relnotes

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Git reads release history using the git CLI
type Git struct {
	gitPath string
}

// NewGit creates a Git instance, verifying that git is available
func NewGit(ctx context.Context) (*Git, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git not found in PATH: %w", err)
	}
	cmd := exec.CommandContext(ctx, gitPath, "version")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git command failed: %w", err)
	}
	return &Git{gitPath: gitPath}, nil
}

// PreviousTag returns the most recent tag reachable from HEAD, or "" when
// the repository has no tags yet.
func (g *Git) PreviousTag(ctx context.Context, repoPath string) (string, error) {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", repoPath, "describe", "--tags", "--abbrev=0")
	output, err := cmd.Output()
	if err != nil {
		// describe fails on an untagged repo; release notes then cover
		// the whole history
		if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 128 {
			return "", nil
		}
		return "", fmt.Errorf("git describe failed in %s: %w", repoPath, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Subjects returns the commit subjects since a tag (or the whole history
// when sinceTag is empty), newest first.
func (g *Git) Subjects(ctx context.Context, repoPath, sinceTag string) ([]string, error) {
	args := []string{"-C", repoPath, "log", "--pretty=format:%s"}
	if sinceTag != "" {
		args = append(args, sinceTag+"..HEAD")
	}
	cmd := exec.CommandContext(ctx, g.gitPath, args...)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log failed in %s: %w", repoPath, err)
	}

	var subjects []string
	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			subjects = append(subjects, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse git log: %w", err)
	}
	return subjects, nil
}

// Collect builds the Notes for a release from the repository at repoPath
func (g *Git) Collect(ctx context.Context, repoPath, version string) (*Notes, error) {
	canonical, err := NormalizeVersion(version)
	if err != nil {
		return nil, err
	}
	tag, err := g.PreviousTag(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	subjects, err := g.Subjects(ctx, repoPath, tag)
	if err != nil {
		return nil, err
	}
	return &Notes{
		Version:     canonical,
		Date:        nowFunc(),
		PreviousTag: tag,
		Subjects:    subjects,
	}, nil
}
