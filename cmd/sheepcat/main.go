// sheepcat tracks a working day as hourly check-ins over an append-only
// work log, with local-LLM summaries and manager reports on top.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/config"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/ollama"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/storage"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/summarizer"
)

var flagDataDir string

var rootCmd = &cobra.Command{
	Use:   "sheepcat",
	Short: "Track your working day, one check-in at a time",
	Long: `SheepCat logs what you worked on over the day into an append-only work
log, summarizes it with a local Ollama model, and turns it into manager
updates when someone asks "so what have you been doing?".

Start with:
  sheepcat init --onboard    # first-run setup
  sheepcat track             # run the check-in loop for the day`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "",
		"data directory (default ~/.sheepcat, or SHEEPCAT_DATA_DIR)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// fail prints an error and exits
func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadSettings loads settings honoring the --data-dir flag
func loadSettings() *config.Settings {
	settings, err := config.Load(flagDataDir)
	if err != nil {
		fail("%v", err)
	}
	return settings
}

// openRepo opens the configured storage backend
func openRepo(ctx context.Context, settings *config.Settings) storage.Repository {
	repo, err := storage.NewRepository(ctx, &storage.Config{
		Backend: settings.StorageBackend,
		DataDir: settings.DataDir,
	})
	if err != nil {
		fail("%v", err)
	}
	return repo
}

// newEngine builds the Ollama client from settings
func newEngine(settings *config.Settings) *ollama.Client {
	retry := ollama.DefaultRetryConfig()
	retry.Timeout = settings.RequestTimeout
	return ollama.NewClient(
		ollama.WithBaseURL(settings.OllamaBaseURL),
		ollama.WithModel(settings.Model),
		ollama.WithRetryConfig(retry),
	)
}

// newSummarizer builds the summarizer over the Ollama client
func newSummarizer(settings *config.Settings) *summarizer.Summarizer {
	s, err := summarizer.New(&summarizer.Config{
		Generator: newEngine(settings),
		Model:     settings.Model,
	})
	if err != nil {
		fail("%v", err)
	}
	return s
}
