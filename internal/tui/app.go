package tui

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/hanzcraft/internal/clipboard"
	"github.com/f3rmion/hanzcraft/internal/game"
	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/f3rmion/hanzcraft/internal/suggest"
)

// Focus is the part of the screen receiving navigation keys.
type Focus int

const (
	FocusGrid Focus = iota
	FocusPanel
)

// Panel is one of the side panels.
type Panel int

const (
	PanelRadicals Panel = iota
	PanelCollection
	PanelChallenges
)

var panelNames = []string{"Radicals", "Collection", "Challenges"}

const noticeDuration = 4 * time.Second

type suggestResultMsg struct {
	result game.SuggestResult
}

type clearNoticeMsg struct {
	seq int
}

type clearCopiedMsg struct{}

// Options configure the app. All fields are optional.
type Options struct {
	Annotator      *suggest.Annotator
	Logger         *log.Logger
	SuggestTimeout time.Duration
}

// AppModel is the crafting game TUI.
type AppModel struct {
	session   *game.Session
	annotator *suggest.Annotator
	logger    *log.Logger
	timeout   time.Duration
	styles    Styles

	// Layout state
	width      int
	height     int
	panelWidth int
	ready      bool

	focus    Focus
	panel    Panel
	cursor   int // grid slot receiving the next radical
	selected [3]int

	filter    textinput.Model
	filtering bool
	spinner   spinner.Model

	notices   []game.Notice
	noticeSeq int
	viewing   *hanzcraft.Composition // collection entry shown instead of the crafted one
	copied    bool
	showHelp  bool
}

// NewApp creates the TUI over a game session.
func NewApp(session *game.Session, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	timeout := opts.SuggestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	ti := textinput.New()
	ti.Placeholder = "filter radicals..."
	ti.Prompt = "/ "
	ti.CharLimit = 20
	ti.Width = 20

	m := AppModel{
		session:    session,
		annotator:  opts.Annotator,
		logger:     logger,
		timeout:    timeout,
		panelWidth: 30,
		filter:     ti,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.applyTheme(session.Theme())
	return m
}

func (m *AppModel) applyTheme(theme hanzcraft.Theme) {
	m.styles = StylesFor(theme)
	m.filter.PromptStyle = lipgloss.NewStyle().Foreground(m.styles.Palette.Secondary)
	m.filter.TextStyle = lipgloss.NewStyle().Foreground(m.styles.Palette.Accent)
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.styles.Palette.Accent)
}

// Init initializes the model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKey(msg)

	case suggestResultMsg:
		return m.notify(m.session.FinishSuggest(msg.result))

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notices = nil
		}
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	return m, nil
}

func (m AppModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.filter.SetValue("")
		fallthrough
	case "enter":
		m.filtering = false
		m.filter.Blur()
		m.selected[PanelRadicals] = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.selected[PanelRadicals] = 0
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "tab":
		if m.focus == FocusGrid {
			m.focus = FocusPanel
		} else {
			m.focus = FocusGrid
		}
		return m, nil
	case "1", "2", "3":
		m.panel = Panel(msg.String()[0] - '1')
		m.focus = FocusPanel
		return m, nil
	case "/":
		m.panel = PanelRadicals
		m.focus = FocusPanel
		m.filtering = true
		cmd := m.filter.Focus()
		return m, cmd
	case "c":
		return m.craft()
	case "s":
		return m.save()
	case "a":
		return m.requestSuggestions()
	case "x", "backspace", "delete":
		m.session.ClearSlot(m.cursor)
		m.viewing = nil
		return m, nil
	case "X":
		m.session.ClearGrid()
		m.viewing = nil
		m.cursor = 0
		return m, nil
	case "t":
		theme, notices := m.session.ToggleTheme()
		m.applyTheme(theme)
		return m.notify(notices)
	case "y":
		return m.copy()
	case "esc":
		if _, ok := m.session.Challenge(); ok {
			m.session.ExitChallenge()
			return m.notify([]game.Notice{{Kind: game.NoticeInfo, Title: "Challenge ended", Description: "All radicals are available again."}})
		}
		m.viewing = nil
		return m, nil
	}

	if m.focus == FocusGrid {
		return m.handleGridKey(msg)
	}
	return m.handlePanelKey(msg)
}

func (m AppModel) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, col := m.cursor/2, m.cursor%2
	switch msg.String() {
	case "left", "h":
		col = 0
	case "right", "l":
		col = 1
	case "up", "k":
		row = 0
	case "down", "j":
		row = 1
	case "enter":
		return m.craft()
	}
	m.cursor = row*2 + col
	return m, nil
}

func (m AppModel) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.panelLen()
	sel := &m.selected[m.panel]
	if *sel >= n {
		*sel = max(n-1, 0)
	}
	switch msg.String() {
	case "up", "k":
		if *sel > 0 {
			*sel--
		}
	case "down", "j":
		if *sel < n-1 {
			*sel++
		}
	case "enter":
		if n == 0 {
			return m, nil
		}
		return m.activate(*sel)
	}
	return m, nil
}

// activate applies the selected entry of the current panel.
func (m AppModel) activate(i int) (tea.Model, tea.Cmd) {
	switch m.panel {
	case PanelRadicals:
		r := m.visibleRadicals()[i]
		if err := m.session.Place(m.cursor, r.ID); err != nil {
			return m.notify([]game.Notice{{Kind: game.NoticeGuidance, Title: "Can't place " + r.Symbol, Description: err.Error()}})
		}
		m.viewing = nil
		m.cursor = (m.cursor + 1) % hanzcraft.SlotCount
	case PanelCollection:
		c := m.session.Collection()[i]
		m.viewing = &c
	case PanelChallenges:
		ch := m.session.Challenges()[i]
		if err := m.session.SelectChallenge(ch.ID); err != nil {
			m.logger.Printf("tui: selecting challenge %s: %v", ch.ID, err)
			return m, nil
		}
		m.viewing = nil
		m.cursor = 0
		m.selected[PanelRadicals] = 0
		m.panel = PanelRadicals
		return m.notify([]game.Notice{{
			Kind:        game.NoticeInfo,
			Title:       "Challenge: craft " + ch.TargetCharacter,
			Description: ch.Pinyin + " · " + ch.Meaning + ". Press esc to leave.",
		}})
	}
	return m, nil
}

func (m AppModel) craft() (tea.Model, tea.Cmd) {
	m.viewing = nil
	_, _, notices := m.session.Craft()
	return m.notify(notices)
}

func (m AppModel) save() (tea.Model, tea.Cmd) {
	notices, err := m.session.SaveCrafted()
	if err != nil {
		notices = []game.Notice{{Kind: game.NoticeGuidance, Title: "Nothing to save", Description: "Craft a character first."}}
	}
	return m.notify(notices)
}

func (m AppModel) requestSuggestions() (tea.Model, tea.Cmd) {
	req, notices, ok := m.session.BeginSuggest()
	if !ok {
		return m.notify(notices)
	}

	session, timeout := m.session, m.timeout
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return suggestResultMsg{result: session.ResolveSuggestions(ctx, req)}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}

func (m AppModel) copy() (tea.Model, tea.Cmd) {
	c, ok := m.shown()
	if !ok {
		return m, nil
	}
	if err := clipboard.Write(c.Character); err != nil {
		m.logger.Printf("tui: copying %s: %v", c.Character, err)
		return m.notify([]game.Notice{{Kind: game.NoticeFailure, Title: "Copy failed", Description: err.Error()}})
	}
	m.copied = true
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearCopiedMsg{} })
}

// notify shows notices until noticeDuration passes or newer ones arrive.
func (m AppModel) notify(notices []game.Notice) (tea.Model, tea.Cmd) {
	if len(notices) == 0 {
		return m, nil
	}
	m.notices = notices
	m.noticeSeq++
	seq := m.noticeSeq
	return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

// shown returns the composition in the result card.
func (m AppModel) shown() (hanzcraft.Composition, bool) {
	if m.viewing != nil {
		return *m.viewing, true
	}
	return m.session.Crafted()
}

// visibleRadicals applies the filter to the session's radicals.
func (m AppModel) visibleRadicals() []hanzcraft.Radical {
	all := m.session.Radicals()
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if q == "" {
		return all
	}
	var out []hanzcraft.Radical
	for _, r := range all {
		if r.Symbol == q || strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(r.ID, q) {
			out = append(out, r)
		}
	}
	return out
}

func (m AppModel) panelLen() int {
	switch m.panel {
	case PanelCollection:
		return len(m.session.Collection())
	case PanelChallenges:
		return len(m.session.Challenges())
	default:
		return len(m.visibleRadicals())
	}
}
