package summarizer

import (
	"fmt"
	"strings"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// buildTaskPrompt builds the prompt for summarizing a single check-in
func buildTaskPrompt(description, ticket string) string {
	ticketLine := ""
	if ticket != "" {
		ticketLine = fmt.Sprintf("Ticket reference: %s\n", ticket)
	}
	return fmt.Sprintf(`Summarize the following work update in one or two sentences.
Write in the past tense, third person omitted ("Fixed the login bug", not "I fixed the login bug").
Keep concrete details like system names, ticket numbers, and error messages.

%sWork update:
%s

Reply with the summary only, no preamble.`, ticketLine, strings.TrimSpace(description))
}

// buildBatchPrompt builds the prompt for summarizing a batch of tasks over
// a period ("the last hour", "today")
func buildBatchPrompt(tasks []*types.Task, period string) string {
	var lines []string
	for _, t := range tasks {
		line := fmt.Sprintf("- %s (Ticket: %s, %.0f min, Resolved: %s)",
			strings.TrimSpace(t.Title), orNA(t.Ticket), t.DurationMinutes, t.ResolvedString())
		lines = append(lines, line)
	}

	return fmt.Sprintf(`Summarize the work performed during %s.

Tasks logged:
%s

Write a short summary that:
1. Captures the main themes of the work
2. Highlights anything that was resolved
3. Mentions the tickets worked on

Keep it to a few sentences of plain text. Reply with the summary only.`,
		period, strings.Join(lines, "\n"))
}

// orNA substitutes "N/A" for an empty value
func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "N/A"
	}
	return s
}
