package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/events"
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	thinkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	toolStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// renderEvent formats a progress event for the terminal.
func renderEvent(e events.Event) string {
	switch e.Type {
	case events.EventThinking:
		return thinkingStyle.Render("… " + e.Message)
	case events.EventToolCall:
		return toolStyle.Render("→ " + e.Tool + " " + e.Target)
	case events.EventToolResult:
		return toolStyle.Render("← " + e.Tool + " done")
	case events.EventError:
		return errorStyle.Render("✗ " + e.Message)
	default:
		return ""
	}
}
