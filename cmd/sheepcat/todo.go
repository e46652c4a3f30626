package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

var todoPriority string

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the personal todo list",
}

// parseTodoID parses a todo ID argument or exits
func parseTodoID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fail("todo ID must be a number (got %q)", arg)
	}
	return id
}

// parsePriority maps a case-insensitive priority flag to its canonical form
func parsePriority(s string) types.TodoPriority {
	switch strings.ToLower(s) {
	case "high":
		return types.PriorityHigh
	case "medium":
		return types.PriorityMedium
	case "low":
		return types.PriorityLow
	}
	fail("priority must be High, Medium, or Low (got %q)", s)
	return ""
}

var todoAddCmd = &cobra.Command{
	Use:   "add <task>",
	Short: "Add a todo item",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo := openRepo(ctx, loadSettings())
		defer repo.Close()

		todo := &types.Todo{Task: strings.Join(args, " ")}
		if todoPriority != "" {
			todo.Priority = parsePriority(todoPriority)
		}
		if err := repo.AddTodo(ctx, todo); err != nil {
			fail("%v", err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Added todo %d: %s\n", green("✓"), todo.ID, todo.Task)
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open and done todos",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo := openRepo(ctx, loadSettings())
		defer repo.Close()

		todos, err := repo.Todos(ctx)
		if err != nil {
			fail("%v", err)
		}
		if len(todos) == 0 {
			fmt.Println(color.New(color.FgHiBlack).SprintFunc()("No todos."))
			return
		}

		green := color.New(color.FgGreen).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		for _, td := range todos {
			mark := gray("[ ]")
			if td.Status == types.TodoDone {
				mark = green("[x]")
			}
			priority := string(td.Priority)
			if td.Priority == types.PriorityHigh {
				priority = red(priority)
			}
			fmt.Printf("  %3d %s %s %s %s\n", td.ID, mark, td.Task,
				gray("("+priority+")"), gray(td.Created.Format(types.DateLayout)))
		}
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as done",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseTodoID(args[0])
		ctx := context.Background()
		repo := openRepo(ctx, loadSettings())
		defer repo.Close()

		if err := repo.UpdateTodoStatus(ctx, id, types.TodoDone); err != nil {
			fail("%v", err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Todo %d marked done.\n", green("✓"), id)
	},
}

var todoRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseTodoID(args[0])
		ctx := context.Background()
		repo := openRepo(ctx, loadSettings())
		defer repo.Close()

		if err := repo.DeleteTodo(ctx, id); err != nil {
			fail("%v", err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Todo %d deleted.\n", green("✓"), id)
	},
}

var todoArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move done todos into the achievements file",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		settings := loadSettings()
		repo := openRepo(ctx, settings)
		defer repo.Close()

		archived, err := repo.ArchiveDoneTodos(ctx, settings.EffectiveArchiveFile())
		if err != nil {
			fail("%v", err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Archived %d todo(s) to %s\n", green("✓"), archived, settings.EffectiveArchiveFile())
	},
}

func init() {
	todoAddCmd.Flags().StringVar(&todoPriority, "priority", "", "High, Medium, or Low (default Medium)")
	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoDoneCmd, todoRmCmd, todoArchiveCmd)
	rootCmd.AddCommand(todoCmd)
}
