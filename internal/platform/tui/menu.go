package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// MenuChoice is what the user picked in the start menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceWindow
	ChoiceScores
	ChoiceQuit
)

// MenuItem is one line of the start menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// DefaultMenuItems returns the start menu entries.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{ChoicePlay, "Play in the terminal"},
		{ChoiceWindow, "Play in a window"},
		{ChoiceScores, "High scores"},
		{ChoiceQuit, "Quit"},
	}
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	title    string
	items    []MenuItem
	cursor   int
	best     int
	config   core.RuntimeConfig
	selected MenuChoice
}

// NewMenuModel creates a start menu. best is shown under the title when positive.
func NewMenuModel(title string, best int, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		title:  title,
		items:  DefaultMenuItems(),
		best:   best,
		config: cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.selected = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor].Choice
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.selected != ChoiceNone {
		return ""
	}

	width := m.config.ScreenW
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(m.title, width)))
	b.WriteString("\n\n")
	if m.best > 0 {
		b.WriteString(dim.Render(centerText("best "+strconv.Itoa(m.best), width)))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the picked entry, ChoiceNone while the menu is open.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the start menu and returns the selection.
func RunMenu(title string, best int, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(title, best, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Selected() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	return MenuResult{Choice: m.Selected(), Config: m.Config()}, nil
}
