package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/beerdex/internal/route"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal closed.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// navigateMsg asks the model to switch routes.
type navigateMsg struct {
	route route.Route
}

func navigateCmd(r route.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

// routePrompt lets the user type a path such as /beer/rochefort-8.
type routePrompt struct {
	input textinput.Model
}

func newRoutePrompt(current string) (routePrompt, tea.Cmd) {
	ti := textinput.New()
	ti.Prompt = "#"
	ti.Placeholder = "/beers"
	ti.CharLimit = 200
	ti.SetValue(current)
	ti.CursorEnd()
	cmd := ti.Focus()
	return routePrompt{input: ti}, cmd
}

func (p routePrompt) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Cancel):
			return p, nil, true
		case key.Matches(km, keys.Confirm):
			return p, navigateCmd(route.Parse(p.input.Value())), true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p routePrompt) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Bold(true).Render("Go to route") + "\n\n" +
		p.input.View() + "\n\n" +
		styles.FaintText.Render("enter: go  esc: cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(50)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(body),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)))
}
