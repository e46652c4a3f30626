package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/tracker"
)

// console wraps readline for the interactive flows (onboarding questions,
// review toggles, tracker check-ins)
type console struct {
	rl *readline.Instance
}

func newConsole() (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &console{rl: rl}, nil
}

func (c *console) Close() error {
	return c.rl.Close()
}

// ReadLine asks one question. Satisfies onboarding.LineReader.
func (c *console) ReadLine(prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	line, err := c.rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// yesNo asks a yes/no question with a default
func (c *console) yesNo(prompt string, def bool) (bool, error) {
	suffix := " [y/N]: "
	if def {
		suffix = " [Y/n]: "
	}
	answer, err := c.ReadLine(prompt + suffix)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Checkin asks the three check-in questions. Satisfies tracker.Prompter.
// An empty description skips the check-in; "end" ends the day; Ctrl+C and
// Ctrl+D also end the day.
func (c *console) Checkin(ctx context.Context) (*tracker.Checkin, error) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Println()
	fmt.Println(cyan("Check-in time! What did you work on? (Enter to skip, 'end' to finish the day)"))

	description, err := c.ReadLine("task> ")
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil, tracker.ErrEndSession
		}
		return nil, err
	}
	if description == "" {
		return nil, nil
	}
	if strings.EqualFold(description, "end") {
		return nil, tracker.ErrEndSession
	}

	ticket, err := c.ReadLine("ticket (optional)> ")
	if err != nil {
		return nil, err
	}
	resolved, err := c.yesNo("resolved?", false)
	if err != nil {
		return nil, err
	}
	return &tracker.Checkin{Description: description, Ticket: ticket, Resolved: resolved}, nil
}
