package tui

import (
	"context"
	"fmt"
	"strings"

	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/cli/format"
	"reels-dash-go/pkg/cli/logger"
	"reels-dash-go/pkg/utils"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const validatorNotice = "validator"

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// profileValidatorModel sends a list of profile URLs to the server for
// validation and shows the verdicts.
type profileValidatorModel struct {
	client *client.Client

	input      textarea.Model
	editing    bool
	validating bool
	result     *client.ValidationResult
	err        error

	notice notice
}

// NewProfileValidatorModel creates the profile validator flow.
func NewProfileValidatorModel(c *client.Client) tea.Model {
	input := textarea.New()
	input.Placeholder = "Paste Facebook profile URLs, one per line or comma separated"
	input.SetWidth(70)
	input.SetHeight(8)
	input.ShowLineNumbers = false
	input.Focus()

	model := &profileValidatorModel{
		client:  c,
		input:   input,
		editing: true,
	}

	return NewViewportWrapper(model, ViewportConfig{
		Title:       "Profile Validator",
		ShowHeader:  true,
		ShowFooter:  true,
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: ValidatorHelpContent,
		MinWidth:    60,
		MinHeight:   10,
	})
}

func (m *profileValidatorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *profileValidatorModel) CapturingInput() bool {
	return m.editing
}

func (m *profileValidatorModel) validate() tea.Cmd {
	urls := utils.ParseURLList(m.input.Value())
	m.validating = true
	m.err = nil
	c := m.client
	return func() tea.Msg {
		res, err := c.ValidateProfiles(context.Background(), urls)
		return validationDoneMsg{Result: res, Err: err}
	}
}

func (m *profileValidatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case validationDoneMsg:
		m.validating = false
		if msg.Err != nil {
			logger.LogError(msg.Err, "validator: request failed")
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Result
		return m, nil

	case noticeExpiredMsg:
		m.notice.expire(msg)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "esc":
				m.editing = false
				m.input.Blur()
				return m, nil
			case "ctrl+s":
				m.editing = false
				m.input.Blur()
				return m, m.validate()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m.handleReviewKeys(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *profileValidatorModel) handleReviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		return m, func() tea.Msg { return MenuNavigationMsg{} }
	case "i", "enter":
		m.editing = true
		return m, m.input.Focus()
	case "v":
		if !m.validating {
			return m, m.validate()
		}
	case "c":
		return m, m.copyValid()
	case "x":
		m.input.Reset()
		m.result = nil
		m.err = nil
		m.editing = true
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *profileValidatorModel) copyValid() tea.Cmd {
	if m.result == nil || len(m.result.ValidURLs) == 0 {
		return m.notice.set(validatorNotice, "", fmt.Errorf("no valid URLs to copy"))
	}
	if err := copyToClipboard(strings.Join(m.result.ValidURLs, "\n")); err != nil {
		return m.notice.set(validatorNotice, "", fmt.Errorf("failed to copy to clipboard: %w", err))
	}
	return m.notice.set(validatorNotice, fmt.Sprintf("Copied %d valid URL(s) to the clipboard", len(m.result.ValidURLs)), nil)
}

func (m *profileValidatorModel) View() string {
	var b strings.Builder

	b.WriteString(boldStyle.Render("Profile URLs") + "\n")
	b.WriteString(m.input.View() + "\n")
	if n := len(utils.ParseURLList(m.input.Value())); n > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d URL(s) entered", n)) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.validating:
		b.WriteString(renderLoadingState("Validating..."))
	case m.err != nil:
		b.WriteString(renderInlineError(m.err) + "\n")
	case m.result != nil:
		b.WriteString(m.renderResult())
	}

	b.WriteString("\n")
	b.WriteString(m.notice.View())
	if m.editing {
		b.WriteString(helpStyle.Render("(Ctrl+S validate • Esc leave input)") + "\n")
	} else {
		b.WriteString(helpStyle.Render("(i edit • v validate • c copy valid • x clear • Esc back)") + "\n")
	}
	return b.String()
}

func (m *profileValidatorModel) renderResult() string {
	r := m.result
	var b strings.Builder

	total := len(r.ValidURLs) + len(r.InvalidURLs)
	pct := format.FormatPercentage(r.ValidFraction())
	class := format.ClassSuccess
	if len(r.InvalidURLs) > 0 {
		class = format.ClassWarning
	}
	if total > 0 && len(r.ValidURLs) == 0 {
		class = format.ClassError
	}
	b.WriteString(classStyle(class).Render(fmt.Sprintf("%d of %d valid (%s)", len(r.ValidURLs), total, pct)) + "\n\n")

	if len(r.ValidURLs) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Valid (%d)", len(r.ValidURLs))) + "\n")
		for _, u := range r.ValidURLs {
			b.WriteString("  " + successStyle.Render("✓") + " " + u + "\n")
		}
		b.WriteString("\n")
	}
	if len(r.InvalidURLs) > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Invalid (%d)", len(r.InvalidURLs))) + "\n")
		for _, u := range r.InvalidURLs {
			b.WriteString("  " + errorStyle.Render("✗") + " " + u + "\n")
			if e := r.Validation[u].Error; e != "" {
				b.WriteString("    " + mutedStyle.Render(e) + "\n")
			}
		}
	}
	return b.String()
}
