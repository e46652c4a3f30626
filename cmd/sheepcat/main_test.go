package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

func TestParsePriority(t *testing.T) {
	assert.Equal(t, types.PriorityHigh, parsePriority("high"))
	assert.Equal(t, types.PriorityMedium, parsePriority("Medium"))
	assert.Equal(t, types.PriorityLow, parsePriority("LOW"))
}

func TestOrUnset(t *testing.T) {
	assert.Equal(t, "(unset)", orUnset(""))
	assert.Equal(t, "qwen2.5:3b", orUnset("qwen2.5:3b"))
}

func TestAllCommandsRegistered(t *testing.T) {
	want := []string{
		"init", "onboard", "track", "log", "review", "report",
		"todo", "summarize", "models", "status", "release-notes",
	}
	have := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "missing command %s", name)
	}
}
