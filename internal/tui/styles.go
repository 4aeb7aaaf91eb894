// Package tui provides the interactive terminal UI for HanzCraft.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/hanzcraft/internal/game"
	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
)

// Palette is the set of colors a theme is drawn with.
type Palette struct {
	Primary   lipgloss.Color // titles, failures
	Secondary lipgloss.Color // pinyin, subtitles
	Accent    lipgloss.Color // characters, selection
	Muted     lipgloss.Color // help text
	Success   lipgloss.Color
	Text      lipgloss.Color
	Label     lipgloss.Color
	Bg        lipgloss.Color
	BgAlt     lipgloss.Color
	Border    lipgloss.Color
}

var (
	DarkPalette = Palette{
		Primary:   lipgloss.Color("#FF6B6B"),
		Secondary: lipgloss.Color("#4ecdc4"),
		Accent:    lipgloss.Color("#ffe66d"),
		Muted:     lipgloss.Color("#666666"),
		Success:   lipgloss.Color("#a8e6cf"),
		Text:      lipgloss.Color("#f1faee"),
		Label:     lipgloss.Color("#a8dadc"),
		Bg:        lipgloss.Color("#1a1a2e"),
		BgAlt:     lipgloss.Color("#2d3436"),
		Border:    lipgloss.Color("#3d5a80"),
	}

	LightPalette = Palette{
		Primary:   lipgloss.Color("#c0392b"),
		Secondary: lipgloss.Color("#16817a"),
		Accent:    lipgloss.Color("#b5651d"),
		Muted:     lipgloss.Color("#8a8a8a"),
		Success:   lipgloss.Color("#2e7d32"),
		Text:      lipgloss.Color("#1a1a2e"),
		Label:     lipgloss.Color("#3d5a80"),
		Bg:        lipgloss.Color("#fdf6e3"),
		BgAlt:     lipgloss.Color("#eee8d5"),
		Border:    lipgloss.Color("#93a1a1"),
	}
)

// Styles holds every style the UI renders with.
type Styles struct {
	Palette Palette

	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	Item        lipgloss.Style
	ItemActive  lipgloss.Style
	ItemMarked  lipgloss.Style
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Help        lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Slot        lipgloss.Style
	SlotActive  lipgloss.Style
	Card        lipgloss.Style
	Character   lipgloss.Style
	Pinyin      lipgloss.Style
	Meaning     lipgloss.Style
	Loading     lipgloss.Style
	Challenge   lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	notice      map[game.NoticeKind]lipgloss.Style
	Placeholder lipgloss.Style
}

// NewStyles builds the styles for a palette.
func NewStyles(p Palette) Styles {
	s := Styles{Palette: p}

	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		MarginBottom(1)

	s.Item = lipgloss.NewStyle().
		Foreground(p.Text)

	s.ItemActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.BgAlt)

	s.ItemMarked = lipgloss.NewStyle().
		Foreground(p.Success)

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		Padding(0, 1)

	s.Subtitle = lipgloss.NewStyle().
		Foreground(p.Secondary)

	s.Help = lipgloss.NewStyle().
		Foreground(p.Muted)

	s.Label = lipgloss.NewStyle().
		Foreground(p.Label).
		Bold(true).
		Width(10)

	s.Value = lipgloss.NewStyle().
		Foreground(p.Text)

	s.Slot = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Accent).
		Width(8).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center)

	s.SlotActive = s.Slot.
		BorderForeground(p.Accent).
		Bold(true)

	s.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 2)

	s.Character = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.BgAlt).
		Padding(1, 3).
		Align(lipgloss.Center)

	s.Pinyin = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	s.Meaning = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	s.Loading = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		Italic(true)

	s.Challenge = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Secondary).
		Foreground(p.Secondary).
		Padding(0, 1)

	s.Tab = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)

	s.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.BgAlt).
		Padding(0, 1)

	s.Placeholder = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	s.notice = map[game.NoticeKind]lipgloss.Style{
		game.NoticeInfo:     lipgloss.NewStyle().Foreground(p.Secondary),
		game.NoticeSuccess:  lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		game.NoticeGuidance: lipgloss.NewStyle().Foreground(p.Accent),
		game.NoticeFailure:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
	}

	return s
}

// Notice returns the style for a notice kind.
func (s Styles) Notice(kind game.NoticeKind) lipgloss.Style {
	if st, ok := s.notice[kind]; ok {
		return st
	}
	return s.Value
}

// StylesFor returns the styles of a theme.
func StylesFor(theme hanzcraft.Theme) Styles {
	if theme == hanzcraft.ThemeLight {
		return NewStyles(LightPalette)
	}
	return NewStyles(DarkPalette)
}
