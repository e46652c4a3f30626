package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/sysinfo"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

var (
	logTicket   string
	logMinutes  float64
	logResolved bool
	logNoAI     bool
)

var logCmd = &cobra.Command{
	Use:   "log [description]",
	Short: "Log a single task outside the tracking loop",
	Long: `Log one unit of work directly. With a description argument the task is
logged from flags alone; without one you are prompted interactively.

Example:
  sheepcat log "Fixed the login redirect" --ticket WEB-12 --minutes 45 --resolved
  sheepcat log`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		settings := loadSettings()
		repo := openRepo(ctx, settings)
		defer repo.Close()

		description := ""
		if len(args) > 0 {
			description = strings.TrimSpace(args[0])
		}
		ticket := logTicket
		resolved := logResolved

		if description == "" {
			c, err := newConsole()
			if err != nil {
				fail("%v", err)
			}
			defer c.Close()

			if description, err = c.ReadLine("task> "); err != nil {
				fail("%v", err)
			}
			if description == "" {
				fail("nothing to log")
			}
			if ticket, err = c.ReadLine("ticket (optional)> "); err != nil {
				fail("%v", err)
			}
			if resolved, err = c.yesNo("resolved?", false); err != nil {
				fail("%v", err)
			}
		}

		now := time.Now()
		task := &types.Task{
			StartTime:       now.Add(-time.Duration(logMinutes * float64(time.Minute))),
			EndTime:         now,
			DurationMinutes: logMinutes,
			Ticket:          ticket,
			Title:           description,
			SystemInfo:      sysinfo.Capture().String(),
			Resolved:        resolved,
		}
		if err := task.Validate(); err != nil {
			fail("%v", err)
		}

		if !logNoAI && settings.Model != "" {
			if summary, err := newSummarizer(settings).SummarizeTask(ctx, description, ticket); err == nil {
				task.AISummary = summary
			}
		}

		if err := repo.LogTask(ctx, task); err != nil {
			fail("%v", err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Logged: %s (%.0f min)\n", green("✓"), task.Title, task.DurationMinutes)
	},
}

func init() {
	logCmd.Flags().StringVar(&logTicket, "ticket", "", "ticket or reference for the task")
	logCmd.Flags().Float64Var(&logMinutes, "minutes", 60, "how long the task took")
	logCmd.Flags().BoolVar(&logResolved, "resolved", false, "mark the task resolved")
	logCmd.Flags().BoolVar(&logNoAI, "no-ai", false, "skip the AI summary")
	rootCmd.AddCommand(logCmd)
}
