package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reels-dash-go/pkg/models"
	"reels-dash-go/pkg/utils"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Form field order
const (
	fieldJobName = iota
	fieldProfileURLs
	fieldTargetDate
	fieldConcurrency
	fieldExtractionMode
	jobFormFields
)

const defaultFormConcurrency = 5

// jobForm collects the fields of a new scraping job.
type jobForm struct {
	name        textinput.Model
	urls        textarea.Model
	targetDate  textinput.Model
	concurrency textinput.Model
	mode        int
	focus       int
	err         error
}

func newJobForm() jobForm {
	name := textinput.New()
	name.Placeholder = "Weekly sweep"
	name.CharLimit = 200
	name.Width = 50

	urls := textarea.New()
	urls.Placeholder = "https://www.facebook.com/profile (one per line)"
	urls.SetWidth(60)
	urls.SetHeight(5)
	urls.ShowLineNumbers = false

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD (optional)"
	date.CharLimit = 10
	date.Width = 20

	conc := textinput.New()
	conc.Placeholder = strconv.Itoa(defaultFormConcurrency)
	conc.CharLimit = 3
	conc.Width = 10

	f := jobForm{name: name, urls: urls, targetDate: date, concurrency: conc}
	f.focusField(fieldJobName)
	return f
}

// focusField moves focus to field i and blurs the rest.
func (f *jobForm) focusField(i int) tea.Cmd {
	f.focus = (i + jobFormFields) % jobFormFields
	f.name.Blur()
	f.urls.Blur()
	f.targetDate.Blur()
	f.concurrency.Blur()

	switch f.focus {
	case fieldJobName:
		return f.name.Focus()
	case fieldProfileURLs:
		return f.urls.Focus()
	case fieldTargetDate:
		return f.targetDate.Focus()
	case fieldConcurrency:
		return f.concurrency.Focus()
	}
	return nil
}

func (f *jobForm) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			return f.focusField(f.focus + 1)
		case "shift+tab":
			return f.focusField(f.focus - 1)
		case "left", "right":
			if f.focus == fieldExtractionMode {
				step := 1
				if key.String() == "left" {
					step = len(models.ExtractionModes) - 1
				}
				f.mode = (f.mode + step) % len(models.ExtractionModes)
				return nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldJobName:
		f.name, cmd = f.name.Update(msg)
	case fieldProfileURLs:
		f.urls, cmd = f.urls.Update(msg)
	case fieldTargetDate:
		f.targetDate, cmd = f.targetDate.Update(msg)
	case fieldConcurrency:
		f.concurrency, cmd = f.concurrency.Update(msg)
	}
	return cmd
}

// params assembles the request. Field checks that need the server, such as
// whether a URL is a profile, are left to the API.
func (f *jobForm) params() (models.CreateJobParams, error) {
	p := models.CreateJobParams{
		JobName:        strings.TrimSpace(f.name.Value()),
		ProfileURLs:    utils.ParseURLList(f.urls.Value()),
		TargetDate:     strings.TrimSpace(f.targetDate.Value()),
		Concurrency:    defaultFormConcurrency,
		ExtractionMode: models.ExtractionModes[f.mode],
	}

	if p.TargetDate != "" {
		if _, err := time.Parse("2006-01-02", p.TargetDate); err != nil {
			return p, errors.New("target date must look like YYYY-MM-DD")
		}
	}
	if raw := strings.TrimSpace(f.concurrency.Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, errors.New("concurrency must be a positive number")
		}
		p.Concurrency = n
	}
	return p, nil
}

func (f *jobForm) label(field int, text string) string {
	if f.focus == field {
		return selectedMarkerStyle.Render("→ ") + fieldLabelStyle.Render(text)
	}
	return "  " + fieldLabelStyle.Render(text)
}

func (f *jobForm) View() string {
	var b strings.Builder

	b.WriteString(f.label(fieldJobName, "Job name") + "\n")
	b.WriteString("  " + f.name.View() + "\n\n")

	b.WriteString(f.label(fieldProfileURLs, "Profile URLs") + "\n")
	b.WriteString(f.urls.View() + "\n")
	if n := len(utils.ParseURLList(f.urls.Value())); n > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d URL(s)", n)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(f.label(fieldTargetDate, "Target date") + "\n")
	b.WriteString("  " + f.targetDate.View() + "\n\n")

	b.WriteString(f.label(fieldConcurrency, "Concurrency") + "\n")
	b.WriteString("  " + f.concurrency.View() + "\n\n")

	b.WriteString(f.label(fieldExtractionMode, "Extraction mode") + "\n  ")
	for i, mode := range models.ExtractionModes {
		if i == f.mode {
			b.WriteString(selectedStyle.Render("[" + string(mode) + "]"))
		} else {
			b.WriteString(mutedStyle.Render(" " + string(mode) + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	if f.err != nil {
		b.WriteString(renderInlineError(f.err) + "\n\n")
	}
	b.WriteString(helpStyle.Render("(Tab/Shift+Tab to move, ←/→ to pick a mode, Ctrl+S to create, Esc to cancel)") + "\n")
	return b.String()
}
