package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/storage"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

var (
	reviewDate      string
	reviewResolve   int64
	reviewUnresolve int64
	reviewAll       bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a day's tasks and toggle their resolved state",
	Long: `List the tasks logged on a day with their row IDs and resolved state.

--resolve N / --unresolve N flip a single row and exit. Without mutation
flags the command drops into an interactive loop where entering a row ID
toggles it. Row IDs are re-read after every change; they are only stable
until the next mutation.

Example:
  sheepcat review
  sheepcat review --date 2026-08-24 --all
  sheepcat review --resolve 3`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		settings := loadSettings()
		repo := openRepo(ctx, settings)
		defer repo.Close()

		date := time.Now()
		if reviewDate != "" {
			var err error
			date, err = time.ParseInLocation(types.DateLayout, reviewDate, time.Local)
			if err != nil {
				fail("--date must be in YYYY-MM-DD format (got %q)", reviewDate)
			}
		}

		switch {
		case reviewResolve > 0 && reviewUnresolve > 0:
			fail("--resolve and --unresolve are mutually exclusive")
		case reviewResolve > 0:
			mutateResolved(ctx, repo, reviewResolve, true)
		case reviewUnresolve > 0:
			mutateResolved(ctx, repo, reviewUnresolve, false)
		default:
			if err := reviewLoop(ctx, repo, date); err != nil {
				fail("%v", err)
			}
			return
		}
		printDay(ctx, repo, date)
	},
}

func mutateResolved(ctx context.Context, repo storage.Repository, rowID int64, resolved bool) {
	if err := repo.UpdateTaskResolved(ctx, rowID, resolved); err != nil {
		fail("%v", err)
	}
	green := color.New(color.FgGreen).SprintFunc()
	state := "unresolved"
	if resolved {
		state = "resolved"
	}
	fmt.Printf("%s Row %d marked %s.\n", green("✓"), rowID, state)
}

// dayTasks reads one day of tasks honoring --all
func dayTasks(ctx context.Context, repo storage.Repository, date time.Time) ([]*types.Task, error) {
	tasks, err := repo.TasksByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if reviewAll {
		return tasks, nil
	}
	var out []*types.Task
	for _, t := range tasks {
		if !t.IsMarker() {
			out = append(out, t)
		}
	}
	return out, nil
}

func printDay(ctx context.Context, repo storage.Repository, date time.Time) {
	tasks, err := dayTasks(ctx, repo, date)
	if err != nil {
		fail("%v", err)
	}
	renderDay(date, tasks)
}

func renderDay(date time.Time, tasks []*types.Task) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("%s\n", cyan("Tasks for "+date.Format(types.DateLayout)))
	if len(tasks) == 0 {
		fmt.Println(gray("  (none)"))
		return
	}
	for _, t := range tasks {
		mark := gray("[ ]")
		if t.Resolved {
			mark = green("[x]")
		}
		line := fmt.Sprintf("  %3d %s %s  %s", t.RowID, mark, t.StartTime.Format("15:04"), t.Title)
		if t.Ticket != "" {
			line += gray(" [" + t.Ticket + "]")
		}
		if t.DurationMinutes > 0 {
			line += gray(fmt.Sprintf(" (%.0f min)", t.DurationMinutes))
		}
		fmt.Println(line)
	}
}

// reviewLoop toggles rows interactively until the user quits
func reviewLoop(ctx context.Context, repo storage.Repository, date time.Time) error {
	c, err := newConsole()
	if err != nil {
		return err
	}
	defer c.Close()

	for {
		tasks, err := dayTasks(ctx, repo, date)
		if err != nil {
			return err
		}
		renderDay(date, tasks)
		if len(tasks) == 0 {
			return nil
		}

		answer, err := c.ReadLine("row to toggle (Enter to quit)> ")
		if err != nil || answer == "" {
			return nil
		}
		rowID, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			fmt.Println(color.New(color.FgRed).SprintFunc()("Enter a row ID."))
			continue
		}

		var current *types.Task
		for _, t := range tasks {
			if t.RowID == rowID {
				current = t
				break
			}
		}
		if current == nil {
			fmt.Println(color.New(color.FgRed).SprintFunc()(fmt.Sprintf("No row %d on this day.", rowID)))
			continue
		}
		if err := repo.UpdateTaskResolved(ctx, rowID, !current.Resolved); err != nil {
			return err
		}
	}
}

func init() {
	reviewCmd.Flags().StringVar(&reviewDate, "date", "", "day to review (YYYY-MM-DD, default today)")
	reviewCmd.Flags().Int64Var(&reviewResolve, "resolve", 0, "mark row N resolved")
	reviewCmd.Flags().Int64Var(&reviewUnresolve, "unresolve", 0, "mark row N unresolved")
	reviewCmd.Flags().BoolVar(&reviewAll, "all", false, "include session marker rows")
	rootCmd.AddCommand(reviewCmd)
}
