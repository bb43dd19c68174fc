package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Texts shared by the CLI and the TUI.
const (
	Heading     = "NOT To Do List"
	Placeholder = "What NOT to do today?"
	EmptyTitle  = "No items yet!"
	EmptyHint   = "Add something you want to avoid doing today."
	Tagline     = "Focus on what matters by avoiding what doesn't."
)

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}

// Panel frames lines with the current theme's border.
func Panel(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// CapacityBar renders used/total as one slot per item, e.g. "██░ 2/3".
func CapacityBar(used, total int) string {
	t := Current()
	if total <= 0 {
		total = 1
	}
	used = min(max(used, 0), total)
	bar := strings.Repeat(t.SlotFilled, used) + strings.Repeat(t.SlotEmpty, total-used)
	return fmt.Sprintf("%s %d/%d", bar, used, total)
}
