package ui

import (
	"fmt"
	"strings"

	"github.com/five82/beerdex/internal/route"
)

// renderHeader renders the status line: logo, route, catalog state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("beerdex", styles.Logo),
		bg.Render("#"+m.route.Path(), styles.AccentText),
	}

	switch {
	case m.tasks.Running(kindCatalog):
		parts = append(parts, bg.Render("Loading catalog...", styles.WarningText.Bold(true)))
	case m.loaded:
		parts = append(parts,
			bg.Render("Catalog:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", m.vm.Total), styles.Text))
	}
	if m.route.View == route.ViewDetail && m.tasks.Running(kindDetail) {
		parts = append(parts, bg.Render("Fetching "+m.route.BeerID+"...", styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.searching:
		commands = []cmd{
			{"enter", "Done"},
			{"esc", "Done"},
		}
	case m.route.View == route.ViewDetail:
		commands = []cmd{
			{"esc", "Back"},
			{"i", "Image/Label"},
			{"j/k", "Scroll"},
			{":", "Go to"},
			{"?", "More"},
		}
	case m.route.View == route.ViewNotFound:
		commands = []cmd{
			{"esc", "Beers"},
			{":", "Go to"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"s", m.list.Query.SortField.Label()},
			{"d", descLabel(m.list.Query.Descending)},
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"r", "Reload"},
			{":", "Go to"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

func descLabel(descending bool) string {
	if descending {
		return "Descending"
	}
	return "Ascending"
}
