package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/ollama"
)

var modelsPull string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models on the Ollama server, or pull one",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		settings := loadSettings()
		engine := newEngine(settings)

		if modelsPull != "" {
			pullModel(ctx, engine, modelsPull)
			return
		}

		models, err := engine.ListModels(ctx)
		if err != nil {
			fail("%v", err)
		}
		if len(models) == 0 {
			fmt.Println(color.New(color.FgHiBlack).SprintFunc()("No models installed."))
			return
		}
		green := color.New(color.FgGreen).SprintFunc()
		for _, m := range models {
			badge := ""
			if m == settings.Model {
				badge = green(" (active)")
			}
			fmt.Printf("  %s%s\n", m, badge)
		}
	},
}

// pullModel streams pull progress to the terminal
func pullModel(ctx context.Context, engine *ollama.Client, name string) {
	fmt.Printf("Pulling %s ...\n", name)
	err := engine.Pull(ctx, name, func(p ollama.PullProgress) {
		if p.Total > 0 {
			fmt.Printf("\r  %s %3.0f%%   ", p.Status, float64(p.Completed)/float64(p.Total)*100)
		}
	})
	fmt.Println()
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("%s Pulled %s.\n", color.New(color.FgGreen).SprintFunc()("✓"), name)
}

func init() {
	modelsCmd.Flags().StringVar(&modelsPull, "pull", "", "pull a model by name")
	rootCmd.AddCommand(modelsCmd)
}
