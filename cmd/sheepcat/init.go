package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/config"
)

var initOnboard bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory, work log, and settings",
	Long: `Create the SheepCat data directory with an empty work log, todo list,
and settings file. Safe to run again; existing data is left alone.

With --onboard, also runs the first-run wizard (Ollama connection check,
model selection, model pull).

Example:
  sheepcat init
  sheepcat init --onboard
  sheepcat --data-dir /tmp/scratch init`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Load tolerates a missing settings file and returns defaults
		settings, err := config.Load(flagDataDir)
		if err != nil {
			fail("%v", err)
		}
		if err := settings.Save(); err != nil {
			fail("%v", err)
		}

		repo := openRepo(ctx, settings)
		defer repo.Close()

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("%s Initialized SheepCat\n", green("✓"))
		fmt.Printf("  Data dir: %s\n", cyan(settings.DataDir))
		fmt.Printf("  Backend:  %s\n", cyan(settings.StorageBackend))
		fmt.Printf("  Settings: %s\n", cyan(settings.Path()))

		if initOnboard {
			fmt.Println()
			runOnboarding(ctx, settings)
		} else if !settings.OnboardingDone {
			fmt.Printf("\nRun %s to set up the AI model.\n", cyan("sheepcat onboard"))
		}
	},
}

func init() {
	initCmd.Flags().BoolVar(&initOnboard, "onboard", false, "run the first-run wizard after initializing")
	rootCmd.AddCommand(initCmd)
}
