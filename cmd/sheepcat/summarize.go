package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/summarizer"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

var (
	summarizeSince string
	summarizeDate  string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize recent work on demand",
	Long: `Summarize logged work without waiting for the tracker. --since takes a
duration (e.g. 1h, 90m) for an hourly-style summary; --date takes a day
(YYYY-MM-DD) for an end-of-day style summary. The default is the last hour.

Falls back to a plain roll-up when the AI engine is unreachable.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		settings := loadSettings()
		repo := openRepo(ctx, settings)
		defer repo.Close()

		if summarizeSince != "" && summarizeDate != "" {
			fail("--since and --date are mutually exclusive")
		}

		var tasks []*types.Task
		var err error
		endOfDay := false
		switch {
		case summarizeDate != "":
			endOfDay = true
			var date time.Time
			if date, err = time.ParseInLocation(types.DateLayout, summarizeDate, time.Local); err != nil {
				fail("--date must be in YYYY-MM-DD format (got %q)", summarizeDate)
			}
			tasks, err = repo.TasksByDate(ctx, date)
		default:
			since := time.Hour
			if summarizeSince != "" {
				if since, err = time.ParseDuration(summarizeSince); err != nil || since <= 0 {
					fail("--since must be a positive duration like 1h or 90m (got %q)", summarizeSince)
				}
			}
			tasks, err = repo.TasksSince(ctx, time.Now().Add(-since))
		}
		if err != nil {
			fail("%v", err)
		}

		var worked []*types.Task
		for _, t := range tasks {
			if !t.IsMarker() {
				worked = append(worked, t)
			}
		}
		if len(worked) == 0 {
			fmt.Println(color.New(color.FgHiBlack).SprintFunc()("No tasks to summarize."))
			return
		}

		if settings.Model == "" {
			printSummary(summarizer.PlainSummary(worked), false)
			return
		}
		s := newSummarizer(settings)
		var text string
		var fromLLM bool
		if endOfDay {
			text, fromLLM = s.EndOfDayOrFallback(ctx, worked)
		} else {
			text, fromLLM = s.SummarizeTasksOrFallback(ctx, worked)
		}
		printSummary(text, fromLLM)
	},
}

func printSummary(text string, fromLLM bool) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("%s\n%s\n", cyan("Summary"), text)
	if !fromLLM {
		fmt.Println(color.New(color.Faint).SprintFunc()("(AI summary unavailable, plain rendering)"))
	}
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeSince, "since", "", "summarize work since this long ago (e.g. 1h)")
	summarizeCmd.Flags().StringVar(&summarizeDate, "date", "", "summarize a whole day (YYYY-MM-DD)")
	rootCmd.AddCommand(summarizeCmd)
}
