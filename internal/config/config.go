// Package config manages the application settings file. Settings live in
// settings.yaml inside the data directory; SHEEPCAT_* environment variables
// override individual values at load time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultOllamaBaseURL is the stock local Ollama endpoint
const DefaultOllamaBaseURL = "http://localhost:11434"

// SettingsFile is the settings file name inside the data directory
const SettingsFile = "settings.yaml"

// Settings holds all user-tunable application settings
type Settings struct {
	// DataDir is where the work log, todo list, and settings live
	// Default: ~/.sheepcat
	DataDir string `yaml:"data_dir"`

	// StorageBackend selects the repository implementation ("csv" or "sqlite")
	// Default: "csv"
	StorageBackend string `yaml:"storage_backend"`

	// OllamaBaseURL is the root URL of the Ollama instance
	// Default: http://localhost:11434
	OllamaBaseURL string `yaml:"ollama_base_url"`

	// Model is the Ollama model used for summaries
	Model string `yaml:"ai_model"`

	// RequestTimeout bounds a single LLM generate call
	// Default: 120s
	RequestTimeout time.Duration `yaml:"llm_request_timeout"`

	// CheckinInterval is how often the tracker prompts for an update
	// Default: 1h, Range: 1m-8h
	CheckinInterval time.Duration `yaml:"checkin_interval"`

	// SummaryDir is where reports and summary files are saved
	// Default: the data dir
	SummaryDir string `yaml:"summary_file_directory"`

	// ArchiveFile is the Markdown achievements file done todos move into
	// Default: achievements.md in the data dir
	ArchiveFile string `yaml:"archive_file"`

	// OnboardingDone records that the first-run wizard completed
	OnboardingDone bool `yaml:"onboarding_done"`
}

// DefaultSettings returns settings with sensible defaults. The data dir
// defaults to ~/.sheepcat, falling back to the current directory when the
// home directory can't be determined.
func DefaultSettings() *Settings {
	dataDir := ".sheepcat"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".sheepcat")
	}
	return &Settings{
		DataDir:         dataDir,
		StorageBackend:  "csv",
		OllamaBaseURL:   DefaultOllamaBaseURL,
		Model:           "",
		RequestTimeout:  120 * time.Second,
		CheckinInterval: time.Hour,
	}
}

// Validate checks if the settings have valid values
func (s *Settings) Validate() error {
	if s.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if s.StorageBackend != "csv" && s.StorageBackend != "sqlite" {
		return fmt.Errorf("storage_backend must be 'csv' or 'sqlite' (got %q)", s.StorageBackend)
	}
	if s.OllamaBaseURL == "" {
		return fmt.Errorf("ollama_base_url is required")
	}
	if s.RequestTimeout < time.Second {
		return fmt.Errorf("llm_request_timeout must be at least 1s (got %v)", s.RequestTimeout)
	}
	if s.CheckinInterval < time.Minute || s.CheckinInterval > 8*time.Hour {
		return fmt.Errorf("checkin_interval must be between 1m and 8h (got %v)", s.CheckinInterval)
	}
	return nil
}

// Path returns the settings file path for this data dir
func (s *Settings) Path() string {
	return filepath.Join(s.DataDir, SettingsFile)
}

// EffectiveSummaryDir returns the directory summaries and reports go to
func (s *Settings) EffectiveSummaryDir() string {
	if s.SummaryDir != "" {
		return s.SummaryDir
	}
	return s.DataDir
}

// EffectiveArchiveFile returns the achievements file path
func (s *Settings) EffectiveArchiveFile() string {
	if s.ArchiveFile != "" {
		return s.ArchiveFile
	}
	return filepath.Join(s.DataDir, "achievements.md")
}

// GenerateURL returns the Ollama generate endpoint derived from the base URL
func (s *Settings) GenerateURL() string {
	return trimSlash(s.OllamaBaseURL) + "/api/generate"
}

func trimSlash(u string) string {
	for len(u) > 0 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}

// Load reads settings from dataDir, falling back to defaults for a missing
// file, then applies environment overrides and validates.
//
// Environment variables:
//   - SHEEPCAT_DATA_DIR: data directory
//   - SHEEPCAT_STORAGE_BACKEND: "csv" or "sqlite"
//   - SHEEPCAT_OLLAMA_URL: Ollama base URL
//   - SHEEPCAT_MODEL: model name
//   - SHEEPCAT_LLM_TIMEOUT_SECONDS: LLM request timeout in seconds
//   - SHEEPCAT_CHECKIN_MINUTES: check-in interval in minutes
func Load(dataDir string) (*Settings, error) {
	s := DefaultSettings()
	if dataDir != "" {
		s.DataDir = dataDir
	}
	if env := os.Getenv("SHEEPCAT_DATA_DIR"); env != "" {
		s.DataDir = env
	}

	data, err := os.ReadFile(s.Path())
	if err == nil {
		// The file's data_dir never overrides where we actually found it
		loaded := *s
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", s.Path(), err)
		}
		loaded.DataDir = s.DataDir
		s = &loaded
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := applyEnvOverrides(s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Save writes the settings file, creating the data dir if needed
func (s *Settings) Save() error {
	if err := os.MkdirAll(s.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// applyEnvOverrides applies SHEEPCAT_* environment variables on top of the
// loaded settings
func applyEnvOverrides(s *Settings) error {
	if err := parseEnvString("SHEEPCAT_STORAGE_BACKEND", &s.StorageBackend); err != nil {
		return err
	}
	if err := parseEnvString("SHEEPCAT_OLLAMA_URL", &s.OllamaBaseURL); err != nil {
		return err
	}
	if err := parseEnvString("SHEEPCAT_MODEL", &s.Model); err != nil {
		return err
	}
	if err := parseEnvDuration("SHEEPCAT_LLM_TIMEOUT_SECONDS", time.Second, &s.RequestTimeout); err != nil {
		return err
	}
	if err := parseEnvDuration("SHEEPCAT_CHECKIN_MINUTES", time.Minute, &s.CheckinInterval); err != nil {
		return err
	}
	return nil
}

// parseEnvString parses a string from an environment variable
func parseEnvString(key string, dest *string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	*dest = value
	return nil
}

// parseEnvDuration parses an integer environment variable scaled by unit
func parseEnvDuration(key string, unit time.Duration, dest *time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = time.Duration(parsed) * unit
	return nil
}
