package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kanalcli/kanal/internal/playlist"
)

const (
	// sideWidth is the history/profile column.
	sideWidth = 34
	// chromeHeight is everything above and below the catalog surface:
	// header, tabs, metadata panel, footer.
	chromeHeight = 9
)

var (
	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff386f"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("248"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#7d3cff"))

	playingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD75F"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff386f"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7d3cff"))

	paneTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	focusMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff386f"))

	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f"))

	sideStyle = lipgloss.NewStyle().Width(sideWidth).PaddingLeft(2)
)

func (m Model) View() string {
	if m.loadErr != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			"",
			errorStyle.Render("Sources could not be loaded"),
			dimStyle.Render(m.loadErr.Error()),
			"",
			dimStyle.Render("press q to quit"),
		)
	}
	if !m.loaded {
		return "\n  " + dimStyle.Render("Loading channels…")
	}

	header := m.renderHeader()
	meta := m.renderMeta()
	side := lipgloss.JoinVertical(lipgloss.Left, m.renderHistory(), "", m.renderProfile())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.view.View(), sideStyle.Render(side))

	return lipgloss.JoinVertical(lipgloss.Left, header, meta, body, m.renderFooter())
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, 2)
	for _, cat := range []playlist.Category{playlist.TV, playlist.Radio} {
		style := tabStyle
		if cat == m.coord.ActiveCategory() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(cat.Badge()))
	}

	vol := fmt.Sprintf("vol %3.0f%%", m.coord.Volume()*100)
	if m.coord.Muted() {
		vol = "muted"
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		brandStyle.Render(m.cfg.Brand),
		dimStyle.Render("  "+m.cfg.Title+"  "),
		strings.Join(tabs, " "),
		dimStyle.Render("  "+vol),
	)
}

func (m Model) renderMeta() string {
	ch, ok := m.coord.Active()
	if !ok {
		return "\n" + dimStyle.Render("▷ Nothing selected") + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		playingStyle.Render("▶ "+ch.Name),
		dimStyle.Render("  "+m.coord.Caption()),
		dimStyle.Render("  share: "+m.coord.ShareURL()),
	)
}

func (m Model) renderCard(i int, ch playlist.Channel) string {
	marker := "  "
	name := ch.Name
	switch {
	case ch.Slug == m.coord.ActiveSlug():
		marker = "▶ "
		name = playingStyle.Render(name)
	case i == m.cursor && m.focus == paneCatalog:
		marker = "> "
		name = cursorStyle.Render(name)
	}
	badge := badgeStyle.Render(ch.Category.Badge())
	return marker + name + "\n" + "    " + badge + dimStyle.Render(" · remote stream")
}

func (m *Model) refreshContent() {
	cards := make([]string, 0, len(m.rendered))
	for i, ch := range m.rendered {
		cards = append(cards, m.renderCard(i, ch))
	}
	m.view.SetContent(strings.Join(cards, "\n"))
}

func (m Model) renderHistory() string {
	title := "History"
	if m.focus == paneHistory {
		title = focusMarkStyle.Render("● ") + title
	}
	lines := []string{paneTitleStyle.Render(title)}

	entries := m.hist.List()
	if len(entries) == 0 {
		lines = append(lines, dimStyle.Render("nothing watched yet"))
	}
	for i, e := range entries {
		marker := "  "
		name := e.Name
		if m.focus == paneHistory && i == m.histCursor {
			marker = "> "
			name = cursorStyle.Render(name)
		}
		lines = append(lines, marker+name+" "+badgeStyle.Render(e.Category.Badge()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderProfile() string {
	title := "Profile"
	if m.focus == paneProfile {
		title = focusMarkStyle.Render("● ") + title
	}
	save := dimStyle.Render("enter to save")
	if m.saveLabel != "" {
		save = playingStyle.Render(m.saveLabel)
	}
	return strings.Join([]string{
		paneTitleStyle.Render(title),
		m.nameInput.View(),
		m.emailInput.View(),
		save,
	}, "\n")
}

func (m Model) renderFooter() string {
	if m.showHelp {
		return dimStyle.Render(strings.Join(m.cfg.KeyboardHelp, "  ·  "))
	}
	return dimStyle.Render("? help · tab panes · q quit")
}
