package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/report"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

var (
	reportFrom   string
	reportTo     string
	reportOutput string
	reportPlain  bool
	reportStdout bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a manager update over a date range",
	Long: `Build a Markdown work update covering an inclusive date range. The update
is written by the configured model when Ollama is reachable; otherwise a
plain roll-up of the logged tasks is produced.

The report is saved into the summary directory as manager_update_<today>.md
unless --output or --stdout says otherwise.

Example:
  sheepcat report                          # today
  sheepcat report --from 2026-08-18 --to 2026-08-22
  sheepcat report --plain --stdout`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		settings := loadSettings()
		repo := openRepo(ctx, settings)
		defer repo.Close()

		today := time.Now().Format(types.DateLayout)
		fromStr, toStr := reportFrom, reportTo
		if fromStr == "" {
			fromStr = today
		}
		if toStr == "" {
			toStr = today
		}
		from, to, err := report.ParseRange(fromStr, toStr)
		if err != nil {
			fail("%v", err)
		}

		var gen report.Generator
		if !reportPlain && settings.Model != "" {
			gen = newEngine(settings)
		}
		builder, err := report.New(&report.Config{
			Source:    repo,
			Generator: gen,
			Model:     settings.Model,
		})
		if err != nil {
			fail("%v", err)
		}

		result, err := builder.Generate(ctx, from, to)
		if err != nil {
			fail("%v", err)
		}

		if reportStdout {
			fmt.Println(result.Text)
			return
		}

		path := reportOutput
		if path == "" {
			path = filepath.Join(settings.EffectiveSummaryDir(), report.DefaultFilename())
		}
		if err := report.Save(path, result.Text); err != nil {
			fail("%v", err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Printf("%s Report saved to %s (%d task(s))\n", green("✓"), path, result.TaskCount)
		if !result.FromLLM && !reportPlain {
			fmt.Println(gray("AI was unavailable; wrote the plain roll-up."))
		}
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "range start (YYYY-MM-DD, default today)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "range end (YYYY-MM-DD, default today)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "output file path")
	reportCmd.Flags().BoolVar(&reportPlain, "plain", false, "skip the LLM and write the plain roll-up")
	reportCmd.Flags().BoolVar(&reportStdout, "stdout", false, "print the report instead of saving it")
	rootCmd.AddCommand(reportCmd)
}
