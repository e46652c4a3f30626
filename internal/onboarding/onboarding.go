// Package onboarding implements the first-run wizard: engine handshake,
// model selection, and model pull, ending with persisted settings.
package onboarding

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/config"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/ollama"
)

// Engine is the slice of the ollama client the wizard needs
type Engine interface {
	CheckConnection(ctx context.Context) ollama.ConnectionResult
	Pull(ctx context.Context, model string, progress ollama.ProgressFunc) error
}

// LineReader reads one line of user input. The CLI backs this with
// readline; tests script it.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Wizard runs the onboarding flow
type Wizard struct {
	settings  *config.Settings
	input     LineReader
	out       io.Writer
	newEngine func(baseURL string) Engine

	// maxConnectAttempts bounds the handshake retry loop
	maxConnectAttempts int
}

// Config holds wizard configuration
type Config struct {
	Settings *config.Settings
	Input    LineReader
	Output   io.Writer

	// NewEngine builds a client for a base URL. Defaults to ollama.NewClient.
	NewEngine func(baseURL string) Engine

	// MaxConnectAttempts bounds the handshake retry loop
	// Default: 5
	MaxConnectAttempts int
}

// New creates an onboarding Wizard
func New(cfg *Config) (*Wizard, error) {
	if cfg == nil || cfg.Settings == nil {
		return nil, fmt.Errorf("settings are required")
	}
	if cfg.Input == nil {
		return nil, fmt.Errorf("input reader is required")
	}
	out := cfg.Output
	if out == nil {
		out = io.Discard
	}
	newEngine := cfg.NewEngine
	if newEngine == nil {
		newEngine = func(baseURL string) Engine {
			return ollama.NewClient(ollama.WithBaseURL(baseURL))
		}
	}
	attempts := cfg.MaxConnectAttempts
	if attempts <= 0 {
		attempts = 5
	}
	return &Wizard{
		settings:           cfg.Settings,
		input:              cfg.Input,
		out:                out,
		newEngine:          newEngine,
		maxConnectAttempts: attempts,
	}, nil
}

var (
	headline = color.New(color.FgCyan, color.Bold).SprintFunc()
	good     = color.New(color.FgGreen).SprintFunc()
	bad      = color.New(color.FgRed).SprintFunc()
	dim      = color.New(color.Faint).SprintFunc()
)

// Run executes the full wizard and persists the settings on success
func (w *Wizard) Run(ctx context.Context) error {
	fmt.Fprintln(w.out, headline("SheepCat setup"))

	baseURL, models, err := w.connect(ctx)
	if err != nil {
		return err
	}

	model, err := w.chooseModel(models)
	if err != nil {
		return err
	}

	if !ollama.HasModel(models, model) {
		if err := w.pull(ctx, baseURL, model); err != nil {
			return err
		}
	}

	w.settings.OllamaBaseURL = baseURL
	w.settings.Model = model
	w.settings.OnboardingDone = true
	if err := w.settings.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintf(w.out, "%s Setup complete. Model %s at %s.\n", good("✓"), model, baseURL)
	return nil
}

// connect probes the configured URL and, on failure, asks for a host/port
// and retries. Returns the working base URL and the models present there.
func (w *Wizard) connect(ctx context.Context) (string, []string, error) {
	baseURL := w.settings.OllamaBaseURL
	if baseURL == "" {
		baseURL = config.DefaultOllamaBaseURL
	}

	for attempt := 1; ; attempt++ {
		fmt.Fprintf(w.out, "Checking Ollama at %s ...\n", baseURL)
		result := w.newEngine(baseURL).CheckConnection(ctx)
		if result.Success {
			fmt.Fprintf(w.out, "%s Connected (%d model(s) installed).\n", good("✓"), len(result.Models))
			return baseURL, result.Models, nil
		}

		fmt.Fprintf(w.out, "%s Could not reach Ollama at %s.\n", bad("✗"), baseURL)
		if attempt >= w.maxConnectAttempts {
			return "", nil, fmt.Errorf("could not reach Ollama after %d attempts; is it running?", attempt)
		}

		host, err := w.input.ReadLine("Ollama host [localhost]: ")
		if err != nil {
			return "", nil, fmt.Errorf("setup aborted: %w", err)
		}
		if host = strings.TrimSpace(host); host == "" {
			host = "localhost"
		}
		port, err := w.input.ReadLine("Ollama port [11434]: ")
		if err != nil {
			return "", nil, fmt.Errorf("setup aborted: %w", err)
		}
		if port = strings.TrimSpace(port); port == "" {
			port = "11434"
		}
		baseURL = fmt.Sprintf("http://%s:%s", host, port)
	}
}

// chooseModel shows the curated menu and returns the chosen model name.
// A number picks a recommended model; any other text is used verbatim as a
// model name.
func (w *Wizard) chooseModel(installed []string) (string, error) {
	fmt.Fprintln(w.out, headline("Choose a model"))
	for i, m := range ollama.RecommendedModels {
		badge := ""
		if ollama.HasModel(installed, m.Name) {
			badge = good(" [installed]")
		}
		fmt.Fprintf(w.out, "  %d. %s (%s)%s\n     %s\n", i+1, m.Label, m.Name, badge, dim(m.Description))
	}

	answer, err := w.input.ReadLine("Model [1]: ")
	if err != nil {
		return "", fmt.Errorf("setup aborted: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ollama.RecommendedModels[0].Name, nil
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(ollama.RecommendedModels) {
			return "", fmt.Errorf("choice must be between 1 and %d", len(ollama.RecommendedModels))
		}
		return ollama.RecommendedModels[n-1].Name, nil
	}
	return answer, nil
}

// pull downloads the model, streaming progress to the output
func (w *Wizard) pull(ctx context.Context, baseURL, model string) error {
	fmt.Fprintf(w.out, "Pulling %s (this can take a while) ...\n", model)

	lastStatus := ""
	err := w.newEngine(baseURL).Pull(ctx, model, func(p ollama.PullProgress) {
		if p.Total > 0 {
			fmt.Fprintf(w.out, "\r  %s %3.0f%% (%s / %s)   ",
				p.Status, float64(p.Completed)/float64(p.Total)*100,
				humanBytes(p.Completed), humanBytes(p.Total))
			return
		}
		if p.Status != "" && p.Status != lastStatus {
			fmt.Fprintf(w.out, "\n  %s", p.Status)
			lastStatus = p.Status
		}
	})
	fmt.Fprintln(w.out)
	if err != nil {
		return fmt.Errorf("model pull failed: %w", err)
	}
	fmt.Fprintf(w.out, "%s Pulled %s.\n", good("✓"), model)
	return nil
}

// humanBytes renders a byte count for progress display
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
