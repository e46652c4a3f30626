package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, "csv", s.StorageBackend)
	assert.Equal(t, DefaultOllamaBaseURL, s.OllamaBaseURL)
	assert.Equal(t, time.Hour, s.CheckinInterval)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.DataDir)
	assert.Equal(t, "csv", s.StorageBackend)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(dir)
	require.NoError(t, err)
	s.Model = "qwen2.5:3b"
	s.StorageBackend = "sqlite"
	s.CheckinInterval = 30 * time.Minute
	s.OnboardingDone = true
	require.NoError(t, s.Save())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5:3b", loaded.Model)
	assert.Equal(t, "sqlite", loaded.StorageBackend)
	assert.Equal(t, 30*time.Minute, loaded.CheckinInterval)
	assert.True(t, loaded.OnboardingDone)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHEEPCAT_OLLAMA_URL", "http://10.0.0.5:11434")
	t.Setenv("SHEEPCAT_MODEL", "llama3.2:3b")
	t.Setenv("SHEEPCAT_CHECKIN_MINUTES", "15")
	t.Setenv("SHEEPCAT_LLM_TIMEOUT_SECONDS", "30")

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:11434", s.OllamaBaseURL)
	assert.Equal(t, "llama3.2:3b", s.Model)
	assert.Equal(t, 15*time.Minute, s.CheckinInterval)
	assert.Equal(t, 30*time.Second, s.RequestTimeout)
}

func TestEnvOverrideRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHEEPCAT_CHECKIN_MINUTES", "soon")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidateRanges(t *testing.T) {
	s := DefaultSettings()
	s.CheckinInterval = 10 * time.Second
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.CheckinInterval = 9 * time.Hour
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.StorageBackend = "postgres"
	assert.Error(t, s.Validate())
}

func TestGenerateURL(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "http://localhost:11434/api/generate", s.GenerateURL())

	s.OllamaBaseURL = "http://box:9999/"
	assert.Equal(t, "http://box:9999/api/generate", s.GenerateURL())
}

func TestEffectivePaths(t *testing.T) {
	s := DefaultSettings()
	s.DataDir = "/data"
	assert.Equal(t, "/data", s.EffectiveSummaryDir())
	assert.Equal(t, filepath.Join("/data", "achievements.md"), s.EffectiveArchiveFile())

	s.SummaryDir = "/reports"
	s.ArchiveFile = "/notes/wins.md"
	assert.Equal(t, "/reports", s.EffectiveSummaryDir())
	assert.Equal(t, "/notes/wins.md", s.EffectiveArchiveFile())
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte("{not yaml"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}
