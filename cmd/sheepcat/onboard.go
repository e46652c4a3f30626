package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/config"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/onboarding"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Run the setup wizard (Ollama connection, model choice, pull)",
	Run: func(cmd *cobra.Command, args []string) {
		runOnboarding(context.Background(), loadSettings())
	},
}

// runOnboarding drives the wizard with a readline console
func runOnboarding(ctx context.Context, settings *config.Settings) {
	c, err := newConsole()
	if err != nil {
		fail("%v", err)
	}
	defer c.Close()

	w, err := onboarding.New(&onboarding.Config{
		Settings: settings,
		Input:    c,
		Output:   os.Stdout,
	})
	if err != nil {
		fail("%v", err)
	}
	if err := w.Run(ctx); err != nil {
		fail("%v", err)
	}
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}
