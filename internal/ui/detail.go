package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/beerdex/internal/catalog"
	"github.com/five82/beerdex/internal/route"
)

const noBeerData = "No beer data"

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.navigate(route.List())
	case key.Matches(msg, m.keys.ToggleImage):
		if snap := m.store.Snapshot(); snap.HasDetail() && snap.Detail.Label != "" {
			m.showLabel = !m.showLabel
			m.updateDetailViewport()
		}
	case key.Matches(msg, m.keys.Down):
		m.detail.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detail.LineUp(1)
	case key.Matches(msg, m.keys.Top):
		m.detail.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detail.GotoBottom()
	case key.Matches(msg, m.keys.PageDown):
		m.detail.ViewDown()
	case key.Matches(msg, m.keys.PageUp):
		m.detail.ViewUp()
	}
	return m, nil
}

func (m Model) detailWidth() int {
	return max(m.width-4, 10)
}

func (m Model) detailHeight() int {
	return max(m.height-chromeHeight-2, 1)
}

// updateDetailViewport re-renders the detail content from the store.
func (m *Model) updateDetailViewport() {
	if !m.ready || m.route.View != route.ViewDetail {
		return
	}
	m.detail.SetContent(m.detailContent(m.detailWidth()))
}

// detailContent renders the selected beer, a loading note while its fetch
// runs, or "No beer data" when there is nothing to show.
func (m Model) detailContent(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	snap := m.store.Snapshot()
	if !snap.HasDetail() {
		if m.tasks.Running(kindDetail) {
			return styles.WarningText.Render("Loading beer...")
		}
		return styles.MutedText.Render(noBeerData)
	}
	beer := *snap.Detail
	bg := NewBgStyle(m.theme.SurfaceAlt)

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(beer.Name))
	b.WriteString("\n\n")
	if beer.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Foreground(lipgloss.Color(m.theme.Text)).
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Render(beer.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(m.imageLines(beer, width, styles, bg))
	b.WriteString("\n")

	const labelWidth = 22
	specs := []struct{ label, value string }{
		{"Alcohol content", beer.AlcoholLabel()},
		{"Brewery", beer.Brewery},
		{"Availability", beer.Availability},
		{"Style", beer.Style},
		{"Serving instructions", beer.Serving},
	}
	for _, s := range specs {
		b.WriteString(bg.Render(padRight(s.label, labelWidth), styles.MutedText))
		b.WriteString(bg.Render(orDash(s.value), styles.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// imageLines lists the image and label resources, marking the one shown.
func (m Model) imageLines(beer catalog.Beer, width int, styles Styles, bg BgStyle) string {
	shown := beer.ImagePath()
	if m.showLabel {
		shown = beer.LabelPath()
	}

	var b strings.Builder
	b.WriteString(bg.Render("Showing", styles.MutedText) + bg.Space() +
		bg.Render(orDash(truncateMiddle(shown, width-10)), styles.InfoText))
	b.WriteString("\n")

	for _, thumb := range []struct{ name, path string }{
		{"image", beer.ImagePath()},
		{"label", beer.LabelPath()},
	} {
		if thumb.path == "" {
			continue
		}
		marker := "  "
		if thumb.path == shown {
			marker = "▸ "
		}
		b.WriteString(bg.Render(marker+padRight(thumb.name, 7), styles.FaintText))
		b.WriteString(bg.Render(truncateMiddle(thumb.path, width-10), styles.MutedText))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDetail renders the detail viewport in a titled box.
func (m Model) renderDetail() string {
	title := m.route.BeerID
	if snap := m.store.Snapshot(); snap.HasDetail() && snap.Detail.Name != "" {
		title = snap.Detail.Name
	}
	return m.renderTitledBox(title, m.detail.View(), m.width, m.height-chromeHeight, false)
}

// renderNotFound renders the unknown-route view.
func (m Model) renderNotFound() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	content := styles.DangerText.Render("Route not found: "+m.route.Raw) + "\n\n" +
		styles.MutedText.Render("esc returns to "+route.List().Path())
	return m.renderTitledBox("Not found", content, m.width, m.height-chromeHeight, false)
}
