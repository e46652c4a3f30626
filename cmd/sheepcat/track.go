package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/sysinfo"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/tracker"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

var trackInterval time.Duration

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Run the check-in loop for the day",
	Long: `Start a tracking session. SheepCat writes a DAY STARTED marker, then
prompts on the check-in interval for what you worked on. Each answer is
logged with system info and an AI summary. Ctrl+C (or answering 'end')
closes the day with a DAY ENDED marker and an end-of-day summary.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings := loadSettings()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		repo := openRepo(ctx, settings)
		defer repo.Close()

		c, err := newConsole()
		if err != nil {
			fail("%v", err)
		}
		defer c.Close()

		interval := settings.CheckinInterval
		if trackInterval > 0 {
			interval = trackInterval
		}

		var summ tracker.Summarizer
		if settings.Model != "" {
			summ = newSummarizer(settings)
		}

		session, err := tracker.New(tracker.Config{
			Log:        repo,
			Prompter:   c,
			Summarizer: summ,
			Notifier:   consoleNotifier{},
			Interval:   interval,
			SystemInfo: sysinfo.Capture().String(),
		})
		if err != nil {
			fail("%v", err)
		}
		if err := session.Run(ctx); err != nil {
			fail("%v", err)
		}
	},
}

// consoleNotifier renders session events to the terminal
type consoleNotifier struct{}

func (consoleNotifier) SessionStarted(sessionID string, interval time.Duration) {
	green := color.New(color.FgGreen).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()
	fmt.Printf("%s Day started. Check-ins every %v.\n", green("✓"), interval)
	fmt.Printf("%s\n", gray("session "+sessionID))
}

func (consoleNotifier) TaskLogged(task *types.Task) {
	fmt.Printf("%s Logged: %s (%.0f min)\n",
		color.New(color.FgGreen).SprintFunc()("✓"), task.Title, task.DurationMinutes)
}

func (consoleNotifier) CheckinSkipped() {
	fmt.Println(color.New(color.Faint).SprintFunc()("Skipped."))
}

func (consoleNotifier) SessionEnded(summary string, fromLLM bool) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n%s\n", cyan("End of day"), summary)
	if !fromLLM && summary != "No tasks logged." {
		fmt.Println(color.New(color.Faint).SprintFunc()("(AI summary unavailable, plain rendering)"))
	}
}

func init() {
	trackCmd.Flags().DurationVar(&trackInterval, "interval", 0,
		"check-in interval (e.g. 30m, overrides settings)")
	rootCmd.AddCommand(trackCmd)
}
