package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/f3rmion/hanzcraft/internal/tui/bigchar"
	"github.com/mattn/go-runewidth"
)

// View renders the UI.
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	side := m.renderPanel()
	mainWidth := max(m.width-m.panelWidth-6, 20)

	var b strings.Builder
	header := m.styles.Title.Render("漢字 HanzCraft")
	if ch, ok := m.session.Challenge(); ok {
		banner := m.styles.Challenge.Render(fmt.Sprintf("Challenge: craft %s (%s, %s)", ch.TargetCharacter, ch.Pinyin, ch.Meaning))
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, "  ", banner)
	}
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderGrid(), "  ", m.renderCard()))
	b.WriteString("\n")
	b.WriteString(m.renderSuggestions(mainWidth))
	b.WriteString("\n")
	b.WriteString(m.renderNotices())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.helpLine()))

	main := lipgloss.NewStyle().Padding(1, 2).Width(mainWidth).Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, side, main)
}

func (m AppModel) renderPanel() string {
	var tabs []string
	for i, name := range panelNames {
		style := m.styles.Tab
		if Panel(i) == m.panel {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", i+1, name)))
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, tabs...), ""}
	if m.panel == PanelRadicals && (m.filtering || m.filter.Value() != "") {
		lines = append(lines, m.filter.View(), "")
	}

	inner := m.panelWidth - 4
	items := m.panelItems(inner)
	if len(items) == 0 {
		lines = append(lines, m.styles.Placeholder.Render(emptyPanelText[m.panel]))
	}
	for i, item := range items {
		if m.focus == FocusPanel && i == m.selected[m.panel] {
			lines = append(lines, m.styles.ItemActive.Render(runewidth.FillRight(item, inner)))
		} else {
			lines = append(lines, m.styles.Item.Render(item))
		}
	}

	panel := m.styles.Panel
	if m.focus == FocusPanel {
		panel = panel.BorderForeground(m.styles.Palette.Accent)
	}
	return panel.Width(m.panelWidth).Height(max(m.height-2, 10)).Render(strings.Join(lines, "\n"))
}

func (m AppModel) panelItems(width int) []string {
	var items []string
	switch m.panel {
	case PanelRadicals:
		for _, r := range m.visibleRadicals() {
			items = append(items, r.Symbol+"  "+runewidth.Truncate(r.Name, width-4, "…"))
		}
	case PanelCollection:
		for _, c := range m.session.Collection() {
			items = append(items, row(width, c.Character, c.Pinyin, c.Meaning))
		}
	case PanelChallenges:
		active, _ := m.session.Challenge()
		for _, ch := range m.session.Challenges() {
			mark := "  "
			if ch.ID == active.ID {
				mark = "▶ "
			}
			items = append(items, mark+row(width-2, ch.TargetCharacter, ch.Pinyin, ch.Meaning))
		}
	}
	return items
}

var emptyPanelText = map[Panel]string{
	PanelRadicals:   "No radicals match.",
	PanelCollection: "Craft and save characters to see them here.",
	PanelChallenges: "No challenges.",
}

// row lays out a character entry in fixed columns, padding by display width.
func row(width int, char, pinyin, meaning string) string {
	left := char + " " + runewidth.FillRight(pinyin, 8)
	rest := width - runewidth.StringWidth(left) - 1
	if rest < 1 {
		return left
	}
	return left + " " + runewidth.Truncate(meaning, rest, "…")
}

func (m AppModel) renderGrid() string {
	grid := m.session.Grid()
	slots := make([]string, hanzcraft.SlotCount)
	for i, r := range grid {
		style := m.styles.Slot
		if i == m.cursor {
			style = m.styles.SlotActive
		}
		body := m.styles.Placeholder.Render("·")
		if r.Symbol != "" {
			body = r.Symbol + "\n" + m.styles.Help.Render(runewidth.Truncate(r.Name, 8, "…"))
		}
		slots[i] = style.Render(body)
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, slots[hanzcraft.TopLeft], slots[hanzcraft.TopRight])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, slots[hanzcraft.BottomLeft], slots[hanzcraft.BottomRight])
	return lipgloss.JoinVertical(lipgloss.Left, m.styles.Subtitle.Render("Crafting grid"), top, bottom)
}

func (m AppModel) renderCard() string {
	c, ok := m.shown()
	if !ok {
		return m.styles.Card.Render(m.styles.Placeholder.Render("Place radicals and press c to craft."))
	}

	glyph := bigchar.Render(c.Character, 16, 8)
	if glyph == "" {
		glyph = m.styles.Character.Render(c.Character)
	} else {
		glyph = lipgloss.NewStyle().Foreground(m.styles.Palette.Accent).Render(glyph)
	}

	var b strings.Builder
	b.WriteString(glyph)
	b.WriteString("\n")
	b.WriteString(m.styles.Pinyin.Render(c.Pinyin))
	b.WriteString("  ")
	b.WriteString(m.styles.Meaning.Render(c.Meaning))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Usage"))
	b.WriteString(m.styles.Value.Render(c.Usage))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Grid"))
	b.WriteString(m.styles.Value.Render(c.Components.String()))
	b.WriteString("\n\n")
	switch {
	case m.copied:
		b.WriteString(m.styles.ItemMarked.Render("Copied to clipboard"))
	case m.session.InCollection(c.Character):
		b.WriteString(m.styles.ItemMarked.Render("✓ In your collection"))
	default:
		b.WriteString(m.styles.Help.Render("s: save to collection"))
	}
	return m.styles.Card.Render(b.String())
}

func (m AppModel) renderSuggestions(width int) string {
	if m.session.Loading() {
		return m.spinner.View() + m.styles.Loading.Render(" Asking the model for suggestions...")
	}
	chars := m.session.Suggestions()
	if chars == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("AI suggestions"))
	b.WriteString("\n")
	if len(chars) == 0 {
		b.WriteString(m.styles.Placeholder.Render("No suggestions."))
		return b.String()
	}
	if m.annotator == nil {
		b.WriteString(m.styles.Value.Render(strings.Join(chars, "  ")))
		return b.String()
	}
	for _, a := range m.annotator.Annotate(chars) {
		line := a.Character + " " + m.styles.Pinyin.Render(runewidth.FillRight(a.Pinyin, 8))
		desc := a.Definition
		if a.Structure != "" {
			desc = strings.TrimSpace(desc + " · " + a.Structure)
		}
		if desc != "" {
			line += " " + m.styles.Meaning.Render(runewidth.Truncate(desc, max(width-16, 10), "…"))
		}
		if a.Known {
			line += " " + m.styles.ItemMarked.Render("craftable")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m AppModel) renderNotices() string {
	var lines []string
	for _, n := range m.notices {
		lines = append(lines, m.styles.Notice(n.Kind).Render(n.String()))
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) helpLine() string {
	if m.filtering {
		return "enter: apply filter • esc: clear"
	}
	parts := []string{"tab: focus", "enter: place/select", "c: craft", "s: save", "a: suggest", "x/X: clear", "t: theme"}
	if _, ok := m.session.Challenge(); ok {
		parts = append(parts, "esc: leave challenge")
	}
	parts = append(parts, "?: help", "q: quit")
	return strings.Join(parts, " • ")
}

func (m AppModel) renderHelp() string {
	key := lipgloss.NewStyle().Foreground(m.styles.Palette.Accent).Width(12)
	desc := lipgloss.NewStyle().Foreground(m.styles.Palette.Text)
	section := lipgloss.NewStyle().Bold(true).Foreground(m.styles.Palette.Secondary).MarginTop(1)

	entries := []struct {
		title string
		keys  [][2]string
	}{
		{"Global", [][2]string{
			{"1-3", "Switch panel"},
			{"tab", "Toggle grid/panel focus"},
			{"/", "Filter radicals"},
			{"c", "Craft the grid"},
			{"s", "Save crafted character"},
			{"a", "Ask the AI for suggestions"},
			{"x", "Clear the selected slot"},
			{"X", "Clear the grid"},
			{"y", "Copy character to clipboard"},
			{"t", "Toggle light/dark theme"},
			{"esc", "Leave the challenge"},
			{"q", "Quit"},
		}},
		{"Grid", [][2]string{
			{"←/→ ↑/↓", "Move slot cursor"},
			{"enter", "Craft"},
		}},
		{"Panels", [][2]string{
			{"j/k ↑/↓", "Navigate"},
			{"enter", "Place radical / show entry / start challenge"},
		}},
	}

	text := m.styles.Title.Render("HanzCraft") + "\n"
	for _, e := range entries {
		text += section.Render(e.title) + "\n"
		for _, k := range e.keys {
			text += key.Render(k[0]) + desc.Render(k[1]) + "\n"
		}
	}
	text += "\n" + m.styles.Placeholder.Render("Press any key to close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Palette.Secondary).
		Padding(1, 2).
		Width(56).
		Render(text)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
