package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/ollama"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show settings, storage stats, and engine connectivity",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		settings := loadSettings()
		repo := openRepo(ctx, settings)
		defer repo.Close()

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Println(cyan("Settings"))
		fmt.Printf("  Data dir:  %s\n", settings.DataDir)
		fmt.Printf("  Backend:   %s\n", settings.StorageBackend)
		fmt.Printf("  Model:     %s\n", orUnset(settings.Model))
		fmt.Printf("  Ollama:    %s\n", settings.OllamaBaseURL)
		fmt.Printf("  Check-in:  every %v\n", settings.CheckinInterval)
		fmt.Printf("  Onboarded: %v\n", settings.OnboardingDone)

		fmt.Println(cyan("Work log"))
		all, err := repo.AllTasks(ctx)
		if err != nil {
			fail("%v", err)
		}
		todayTasks, err := repo.TasksByDate(ctx, time.Now())
		if err != nil {
			fail("%v", err)
		}
		total, today, resolved := 0, 0, 0
		for _, t := range all {
			if t.IsMarker() {
				continue
			}
			total++
			if t.Resolved {
				resolved++
			}
		}
		for _, t := range todayTasks {
			if !t.IsMarker() {
				today++
			}
		}
		fmt.Printf("  Tasks:     %d total, %d resolved, %d today\n", total, resolved, today)

		todos, err := repo.Todos(ctx)
		if err != nil {
			fail("%v", err)
		}
		open := 0
		for _, td := range todos {
			if td.Status == types.TodoPending {
				open++
			}
		}
		fmt.Printf("  Todos:     %d open, %d total\n", open, len(todos))

		fmt.Println(cyan("AI engine"))
		result := newEngine(settings).CheckConnection(ctx)
		if !result.Success {
			fmt.Printf("  %s Ollama unreachable at %s\n", red("✗"), settings.OllamaBaseURL)
			fmt.Println(gray("  Summaries fall back to plain renderings."))
			return
		}
		fmt.Printf("  %s Connected (%d model(s))\n", green("✓"), len(result.Models))
		if settings.Model == "" {
			fmt.Printf("  %s No model configured; run 'sheepcat onboard'\n", red("✗"))
		} else if ollama.HasModel(result.Models, settings.Model) {
			fmt.Printf("  %s Model %s installed\n", green("✓"), settings.Model)
		} else {
			fmt.Printf("  %s Model %s not installed (sheepcat models --pull %s)\n",
				red("✗"), settings.Model, settings.Model)
		}
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
