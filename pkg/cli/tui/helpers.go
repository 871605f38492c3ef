package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reels-dash-go/pkg/cli/client"

	tea "github.com/charmbracelet/bubbletea"
)

const noticeTTL = 6 * time.Second

// renderErrorView renders a standard error view
func renderErrorView(err error) string {
	return "\n" + renderError(client.UserMessage(err)) + "\n\n" +
		helpStyle.Render("Press 'r' to retry or 'm' for menu") + "\n"
}

// renderEmptyState renders a standard empty state message
func renderEmptyState(message string) string {
	return "\n" + mutedStyle.Render(message) + "\n"
}

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return "\n" + infoStyle.Render(message) + "\n"
}

// renderInlineError renders an error message inline, preferring the
// friendly message of API errors.
func renderInlineError(err error) string {
	if err == nil {
		return ""
	}
	return renderError(client.UserMessage(err))
}

// renderField renders "Label: value" on one line.
func renderField(label, value string) string {
	return fieldLabelStyle.Render(label+":") + " " + value + "\n"
}

// handleListNavigation handles common navigation keys for list views (up/down/j/k)
// Returns the new selected index and whether navigation occurred
func handleListNavigation(key string, selected int, total int) (newSelected int, handled bool) {
	switch key {
	case "up", "k":
		if selected > 0 {
			return selected - 1, true
		}
		return selected, true
	case "down", "j":
		if selected < total-1 {
			return selected + 1, true
		}
		return selected, true
	case "home", "g":
		return 0, true
	case "end", "G":
		if total > 0 {
			return total - 1, true
		}
		return 0, true
	}
	return selected, false
}

// clampSelection keeps a selection inside a list that may have shrunk.
func clampSelection(selected, total int) int {
	if selected >= total {
		selected = total - 1
	}
	if selected < 0 {
		selected = 0
	}
	return selected
}

// notice is the transient status line shown under a view. Each new notice
// bumps seq so an older expiry cannot clear it.
type notice struct {
	text  string
	err   error
	seq   int
	owner string
}

type noticeExpiredMsg struct {
	owner string
	seq   int
}

func (n *notice) set(owner, text string, err error) tea.Cmd {
	n.seq++
	n.owner, n.text, n.err = owner, text, err
	seq := n.seq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{owner: owner, seq: seq}
	})
}

func (n *notice) expire(msg noticeExpiredMsg) {
	if msg.owner == n.owner && msg.seq == n.seq {
		n.text, n.err = "", nil
	}
}

func (n *notice) View() string {
	switch {
	case n.err != nil:
		return renderInlineError(n.err) + "\n"
	case n.text != "":
		return renderSuccess(n.text) + "\n"
	}
	return ""
}

// writeExport writes data into dir as name and returns the full path.
func writeExport(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// wrapText wraps text to a specified width, breaking at word boundaries
func wrapText(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + "\n"
	}

	var b strings.Builder
	line := ""
	for _, word := range words {
		if line != "" && len(line)+len(word)+1 > width {
			b.WriteString(fmt.Sprintf("%s%s\n", indent, line))
			line = word
		} else {
			if line != "" {
				line += " "
			}
			line += word
		}
	}
	if line != "" {
		b.WriteString(fmt.Sprintf("%s%s\n", indent, line))
	}
	return b.String()
}
