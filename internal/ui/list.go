package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/beerdex/internal/catalog"
	"github.com/five82/beerdex/internal/route"
	"github.com/five82/beerdex/internal/view"
)

// handleListKey processes keyboard input for the list view.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.vm.Beers)

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.CycleSort):
		m.list = m.list.CycleSortField()
		m.refreshList()

	case key.Matches(msg, m.keys.Descending):
		m.list = m.list.ToggleDescending()
		m.refreshList()

	case key.Matches(msg, m.keys.Reload):
		return m, m.fetchCatalog()

	case key.Matches(msg, m.keys.Back):
		if m.list.Query.Text != "" {
			m.search.SetValue("")
			m.setQuery("")
		}

	case key.Matches(msg, m.keys.Open):
		if beer, ok := m.selectedBeer(); ok {
			return m.navigate(route.Detail(beer.ID))
		}

	case count == 0:
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.selected++
	case key.Matches(msg, m.keys.Up):
		m.selected--
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selected += m.listRowsHeight()
	case key.Matches(msg, m.keys.PageUp):
		m.selected -= m.listRowsHeight()
	}

	m.clampSelection()
	return m, nil
}

// handleSearchKey feeds the search box. Every edit re-derives the list.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Confirm) {
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.setQuery(after)
	}
	return m, cmd
}

func (m *Model) setQuery(text string) {
	m.list = m.list.SetQuery(text)
	m.selected = 0
	m.offset = 0
	m.refreshList()
}

// refreshList re-derives the visible list from the list state.
func (m *Model) refreshList() {
	m.vm = view.DeriveView(m.list)
	m.clampSelection()
}

// clampSelection keeps the selection in range and scrolled into view.
func (m *Model) clampSelection() {
	count := len(m.vm.Beers)
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}

	rows := m.listRowsHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) selectedBeer() (catalog.Beer, bool) {
	if m.selected < 0 || m.selected >= len(m.vm.Beers) {
		return catalog.Beer{}, false
	}
	return m.vm.Beers[m.selected], true
}

// listRowsHeight is how many beer rows fit under the list header lines.
func (m Model) listRowsHeight() int {
	return max(m.height-chromeHeight-2-listHeaderLines, 1)
}

// countLine is the summary shown above the list.
func countLine(n int) string {
	return fmt.Sprintf("Number of beers in list: %d", n)
}

// renderList renders the search box, sort controls, count and rows.
func (m Model) renderList() string {
	height := m.height - chromeHeight
	innerWidth := m.width - 2
	bgColor := m.theme.SurfaceAlt
	if m.searching {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var lines []string

	searchLine := bg.Render("Search:", styles.MutedText) + bg.Space()
	switch {
	case m.searching:
		searchLine += m.search.View()
	case m.list.Query.Text != "":
		searchLine += bg.Render(m.list.Query.Text, styles.Text)
	default:
		searchLine += bg.Render("press / to search", styles.FaintText)
	}
	lines = append(lines, searchLine)

	direction := "off"
	if m.list.Query.Descending {
		direction = "on"
	}
	lines = append(lines,
		bg.Render("Sort by:", styles.MutedText)+bg.Space()+
			bg.Render(m.list.Query.SortField.Label(), styles.AccentText)+bg.Spaces(3)+
			bg.Render("Descending:", styles.MutedText)+bg.Space()+
			bg.Render(direction, styles.AccentText))
	lines = append(lines, styles.Text.Render(countLine(m.vm.Count)))
	lines = append(lines, "")

	switch {
	case !m.loaded:
		lines = append(lines, bg.Render("Loading catalog...", styles.WarningText))
	case m.vm.Total == 0:
		lines = append(lines, bg.Render("No beers in catalog", styles.MutedText))
	case m.vm.Empty():
		lines = append(lines, bg.Render(fmt.Sprintf("No beers match %q", m.list.Query.Text), styles.MutedText))
	default:
		end := min(m.offset+m.listRowsHeight(), len(m.vm.Beers))
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.formatBeerRow(m.vm.Beers[i], innerWidth, bgColor, i == m.selected))
		}
	}

	return m.renderTitledBox("Beers", strings.Join(lines, "\n"), m.width, height, m.searching)
}

// formatBeerRow formats one beer: name, alcohol, and a description
// snippet when there is room.
func (m Model) formatBeerRow(beer catalog.Beer, width int, bgColor string, selected bool) string {
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	const alcoholWidth = 7
	nameWidth := max(min(width/3, 32), 12)

	var nameStyle, alcoholStyle, descStyle lipgloss.Style
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, alcoholStyle, descStyle = sel.Bold(true), sel, sel
	} else {
		styles := m.theme.Styles()
		nameStyle = styles.Text
		alcoholStyle = styles.AlcoholStyle(beer.Alcohol)
		descStyle = styles.FaintText
	}

	row := bg.Render(padRight(truncate(beer.Name, nameWidth), nameWidth), nameStyle) +
		bg.Render(padLeft(beer.AlcoholLabel(), alcoholWidth), alcoholStyle)

	if m.width >= LayoutCompactWidth {
		if descWidth := width - nameWidth - alcoholWidth - 3; descWidth > 10 {
			row += bg.Spaces(3) + bg.Render(truncate(beer.Description, descWidth), descStyle)
		}
	}

	return lipgloss.NewStyle().Background(lipgloss.Color(bgColor)).Width(width).Render(row)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Sep(" ") + bg.Render(title, titleStyle) + bg.Sep(" ") +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", max(innerWidth, 0)), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(max(innerWidth, 0)).
		MaxWidth(max(innerWidth, 0)).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	padded := make([]string, 0, max(boxHeight, 0))
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		padded = append(padded,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(padded, "\n") + "\n" + bottomBorder
}
