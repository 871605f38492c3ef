package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reels-dash-go/pkg/cli/logger"
)

// ViewportWrapper wraps a model with viewport and common command support
type ViewportWrapper struct {
	model    tea.Model
	viewport viewport.Model
	width    int
	height   int
	config   ViewportConfig

	// Common commands
	showHelp    bool
	helpContent string
}

// ViewportConfig configures the wrapper behavior
type ViewportConfig struct {
	Title        string
	ShowHeader   bool
	ShowFooter   bool
	HeaderHeight int            // Fixed header height (0 = auto)
	FooterHeight int            // Fixed footer height (0 = auto)
	UseViewport  bool           // Enable scrolling (false = simple responsive)
	MinWidth     int            // Minimum terminal width
	MinHeight    int            // Minimum terminal height
	EnableHelp   bool           // Enable '?' for help
	EnableMenu   bool           // Enable 'm' to return to menu
	HelpContent  func() string  // Function to generate help text
	OnMenu       func() tea.Cmd // Callback for menu command
}

// inputCapturer is implemented by models that own a focused text field.
// While it reports true, the wrapper passes every key but ctrl+c through.
type inputCapturer interface {
	CapturingInput() bool
}

// NewViewportWrapper creates a new wrapper around a model
func NewViewportWrapper(model tea.Model, config ViewportConfig) *ViewportWrapper {
	vp := viewport.New(0, 0)

	return &ViewportWrapper{
		model:    model,
		viewport: vp,
		config:   config,
		width:    80, // Default
		height:   24, // Default
	}
}

func (w *ViewportWrapper) Init() tea.Cmd {
	if w.model != nil {
		return w.model.Init()
	}
	return nil
}

// Dispose forwards to the wrapped model so its pollers stop with the view.
func (w *ViewportWrapper) Dispose() {
	if d, ok := w.model.(disposer); ok {
		d.Dispose()
	}
}

func (w *ViewportWrapper) capturing() bool {
	c, ok := w.model.(inputCapturer)
	return ok && c.CapturingInput()
}

func (w *ViewportWrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height

		// Validate minimum size
		if w.config.MinWidth > 0 && w.width < w.config.MinWidth {
			w.width = w.config.MinWidth
		}
		if w.config.MinHeight > 0 && w.height < w.config.MinHeight {
			w.height = w.config.MinHeight
		}
		w.calculateLayout()
		logger.Log("ViewportWrapper: resized to %dx%d, viewport=%dx%d", w.width, w.height, w.viewport.Width, w.viewport.Height)

		var cmd tea.Cmd
		if w.model != nil {
			w.model, cmd = w.model.Update(msg)
		}
		return w, cmd

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return w, tea.Quit
		}

		// If help is showing, only handle help-related keys
		if w.showHelp {
			switch key {
			case "?", "esc", "q":
				w.showHelp = false
			}
			return w, nil
		}

		if !w.capturing() {
			switch key {
			case "?":
				if w.config.EnableHelp {
					w.showHelp = true
					if w.config.HelpContent != nil {
						w.helpContent = w.config.HelpContent()
					}
					return w, nil
				}
			case "m":
				if w.config.EnableMenu {
					if w.config.OnMenu != nil {
						return w, w.config.OnMenu()
					}
					return w, func() tea.Msg {
						return MenuNavigationMsg{}
					}
				}
			case "q":
				return w, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	if w.model != nil {
		w.model, cmd = w.model.Update(msg)
	}

	// Scroll keys reach the viewport only when the model is not editing
	if w.config.UseViewport {
		if _, isKey := msg.(tea.KeyMsg); !isKey || !w.capturing() {
			var vpCmd tea.Cmd
			w.viewport, vpCmd = w.viewport.Update(msg)
			cmd = tea.Batch(cmd, vpCmd)
		}
	}

	return w, cmd
}

func (w *ViewportWrapper) View() string {
	if w.showHelp {
		return w.renderHelpOverlay()
	}

	content := ""
	if w.model != nil {
		content = w.model.View()
	}

	if w.config.UseViewport {
		w.calculateLayout()
		w.viewport.SetContent(content)
		content = w.viewport.View()
	}

	var parts []string
	if w.config.ShowHeader {
		parts = append(parts, w.renderHeader())
	}
	parts = append(parts, content)
	if w.config.ShowFooter {
		parts = append(parts, w.renderFooter())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (w *ViewportWrapper) calculateLayout() {
	headerH := w.config.HeaderHeight
	if headerH == 0 && w.config.ShowHeader {
		headerH = 4 // Title with margin plus hint line
	}

	footerH := w.config.FooterHeight
	if footerH == 0 && w.config.ShowFooter {
		footerH = 1
	}

	if w.width <= 0 {
		w.width = 80
	}
	if w.height <= 0 {
		w.height = 24
	}

	contentH := w.height - headerH - footerH
	if contentH < 1 {
		contentH = 1
	}

	if w.config.UseViewport {
		w.viewport.Width = w.width
		w.viewport.Height = contentH
	}
}

func (w *ViewportWrapper) renderHeader() string {
	var b strings.Builder

	if w.config.Title != "" {
		b.WriteString(renderTitle(w.config.Title))
	}

	// Breadcrumb or navigation hint
	if w.config.EnableMenu && w.config.EnableHelp {
		b.WriteString(helpStyle.Render("Press 'm' for menu, '?' for help"))
	} else if w.config.EnableHelp {
		b.WriteString(helpStyle.Render("Press '?' for help"))
	} else if w.config.EnableMenu {
		b.WriteString(helpStyle.Render("Press 'm' for menu"))
	}

	return b.String()
}

func (w *ViewportWrapper) renderFooter() string {
	shortcuts := []string{}

	if w.config.EnableHelp {
		shortcuts = append(shortcuts, "? help")
	}
	if w.config.EnableMenu {
		shortcuts = append(shortcuts, "m menu")
	}
	shortcuts = append(shortcuts, "q quit")

	return helpStyle.Render(strings.Join(shortcuts, " • "))
}

func (w *ViewportWrapper) renderHelpOverlay() string {
	helpText := w.helpContent
	if helpText == "" {
		helpText = "No help available"
	}

	overlayStyle := lipgloss.NewStyle().
		Width(w.width-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Foreground(lipgloss.Color("252"))

	title := titleStyle.Render("Keyboard Shortcuts")
	closeHint := helpStyle.Render("Press '?' or Esc to close")

	return overlayStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, helpText, closeHint),
	)
}
