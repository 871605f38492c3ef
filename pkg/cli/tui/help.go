package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// RootMenuHelpContent returns help for the dashboard
func RootMenuHelpContent() string {
	items := []HelpItem{
		{"1-4", "Open Jobs / Results / Validator / Health"},
		{"r", "Refresh status and stats"},
		{"q / Esc", "Quit"},
	}
	return renderHelpItems(items)
}

// JobsHelpContent returns help for the job manager
func JobsHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate job list"},
		{"Enter", "Job details"},
		{"n", "New job"},
		{"d", "Cancel / remove job"},
		{"e", "Export results (JSON or CSV)"},
		{"f", "Cycle status filter"},
		{"r", "Refresh now"},
		{"Tab / Shift+Tab", "Move between form fields"},
		{"← / →", "Change extraction mode (form)"},
		{"Ctrl+S", "Submit form"},
		{"Esc / b", "Go back"},
		{"m", "Return to menu"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// ResultsHelpContent returns help for the results viewer
func ResultsHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate results"},
		{"Enter", "Result details"},
		{"/", "Filter by profile name or URL"},
		{"n / p", "Next / previous page"},
		{"r", "Refresh"},
		{"J / C", "Export selected result as JSON / CSV"},
		{"Esc / b", "Go back / clear filter"},
		{"m", "Return to menu"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// ValidatorHelpContent returns help for the profile validator
func ValidatorHelpContent() string {
	items := []HelpItem{
		{"Ctrl+S", "Validate the entered URLs"},
		{"Esc", "Leave the input"},
		{"i / Enter", "Edit URLs"},
		{"v", "Validate again"},
		{"c", "Copy valid URLs to clipboard"},
		{"x", "Clear input and results"},
		{"m", "Return to menu"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// HealthHelpContent returns help for the health monitor
func HealthHelpContent() string {
	items := []HelpItem{
		{"r", "Refresh health"},
		{"l", "Refresh logs"},
		{"a", "Toggle auto-refresh"},
		{"↑ / ↓ / PgUp / PgDn", "Scroll"},
		{"m", "Return to menu"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	for _, item := range items {
		keyStyle := boldStyle.Foreground(colorPrimary)
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(item.Key),
			item.Description))
	}
	return b.String()
}
