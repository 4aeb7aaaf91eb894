// Package game holds the state of one play session: the crafting grid,
// challenge mode, the last crafted character and AI suggestions.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/f3rmion/hanzcraft/internal/catalog"
	"github.com/f3rmion/hanzcraft/internal/collection"
	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/f3rmion/hanzcraft/internal/settings"
	"github.com/google/uuid"
)

var (
	ErrSlotOutOfRange    = errors.New("slot out of range")
	ErrUnknownRadical    = errors.New("unknown radical")
	ErrRadicalNotAllowed = errors.New("radical not allowed in this challenge")
	ErrUnknownChallenge  = errors.New("unknown challenge")
	ErrNothingCrafted    = errors.New("nothing crafted yet")
)

// Suggester is the suggestion capability a session needs.
type Suggester interface {
	SuggestDetailed(ctx context.Context, radicals []string) ([]string, error)
}

// Grid is the transient 2x2 crafting grid. A zero Radical is an empty slot.
type Grid [hanzcraft.SlotCount]hanzcraft.Radical

// Slots returns the radical symbols in slot order.
func (g Grid) Slots() hanzcraft.Slots {
	var s hanzcraft.Slots
	for i, r := range g {
		s[i] = r.Symbol
	}
	return s
}

// Deps are the collaborators of a session. Suggester, Themes and Logger
// may be nil.
type Deps struct {
	Catalog    *catalog.Catalog
	Collection *collection.Store
	Themes     *settings.ThemeStore
	Suggester  Suggester
	Logger     *log.Logger
}

// Session is the state of one game. It is driven from a single event loop
// and is not safe for concurrent use, except ResolveSuggestions which only
// reads immutable fields.
type Session struct {
	cat        *catalog.Catalog
	matcher    *hanzcraft.Matcher
	collection *collection.Store
	themes     *settings.ThemeStore
	suggester  Suggester
	logger     *log.Logger

	grid      Grid
	crafted   *hanzcraft.Composition
	challenge *hanzcraft.Challenge
	theme     hanzcraft.Theme

	suggestions []string
	loading     bool
	pendingID   string
}

// NewSession creates a session with an empty grid and no active challenge.
func NewSession(d Deps) *Session {
	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Session{
		cat:        d.Catalog,
		matcher:    d.Catalog.Matcher(),
		collection: d.Collection,
		themes:     d.Themes,
		suggester:  d.Suggester,
		logger:     logger,
		theme:      hanzcraft.DefaultTheme,
	}
	if s.themes != nil {
		s.theme = s.themes.Get()
	}
	return s
}

// Grid returns a copy of the grid.
func (s *Session) Grid() Grid {
	return s.grid
}

// Radicals returns the radicals the player may use: the whole catalogue,
// or only the allowed ones while a challenge is active.
func (s *Session) Radicals() []hanzcraft.Radical {
	if s.challenge != nil {
		return s.cat.RadicalsFor(*s.challenge)
	}
	out := make([]hanzcraft.Radical, len(s.cat.Radicals))
	copy(out, s.cat.Radicals)
	return out
}

// Challenges returns every challenge in the catalogue.
func (s *Session) Challenges() []hanzcraft.Challenge {
	return s.cat.Challenges
}

// Place puts a radical into a slot, replacing what was there. Any shown
// crafting result is cleared.
func (s *Session) Place(slot int, radicalID string) error {
	if slot < 0 || slot >= hanzcraft.SlotCount {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	r, ok := s.cat.Radical(radicalID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRadical, radicalID)
	}
	if s.challenge != nil && !s.challenge.Allows(r.Symbol) {
		return fmt.Errorf("%w: %s", ErrRadicalNotAllowed, r.Symbol)
	}
	s.grid[slot] = r
	s.crafted = nil
	return nil
}

// ClearSlot empties one slot.
func (s *Session) ClearSlot(slot int) error {
	if slot < 0 || slot >= hanzcraft.SlotCount {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	s.grid[slot] = hanzcraft.Radical{}
	s.crafted = nil
	return nil
}

// ClearGrid empties the grid and drops the crafting result and suggestions.
func (s *Session) ClearGrid() {
	s.grid = Grid{}
	s.crafted = nil
	s.suggestions = nil
}

// Craft matches the grid against the catalogue.
func (s *Session) Craft() (hanzcraft.Composition, hanzcraft.Outcome, []Notice) {
	comp, outcome := s.matcher.Craft(s.grid.Slots())

	switch outcome {
	case hanzcraft.OutcomeEmptyGrid:
		s.crafted = nil
		return comp, outcome, []Notice{{
			Kind:        NoticeGuidance,
			Title:       "Empty Grid",
			Description: "Add some radicals to the crafting grid first.",
		}}
	case hanzcraft.OutcomeNoMatch:
		s.crafted = nil
		return comp, outcome, []Notice{{
			Kind:        NoticeInfo,
			Title:       "Crafting Failed",
			Description: "These radicals don't form a known character in this arrangement. Try a different combination!",
		}}
	}

	s.crafted = &comp
	var notices []Notice
	if s.challenge != nil && comp.Character == s.challenge.TargetCharacter {
		notices = append(notices, Notice{
			Kind:        NoticeSuccess,
			Title:       "Challenge Complete!",
			Description: fmt.Sprintf("You successfully crafted '%s' (%s).", s.challenge.TargetCharacter, s.challenge.Pinyin),
		})
	}
	return comp, outcome, notices
}

// Crafted returns the last successfully crafted composition.
func (s *Session) Crafted() (hanzcraft.Composition, bool) {
	if s.crafted == nil {
		return hanzcraft.Composition{}, false
	}
	return *s.crafted, true
}

// SaveCrafted adds the crafted character to the collection. Saving a
// character that is already collected does nothing.
func (s *Session) SaveCrafted() ([]Notice, error) {
	if s.crafted == nil {
		return nil, ErrNothingCrafted
	}
	c := *s.crafted

	added, err := s.collection.Save(c)
	if !added {
		return nil, nil
	}

	notices := []Notice{{
		Kind:        NoticeSuccess,
		Title:       "Character Saved!",
		Description: fmt.Sprintf("'%s' has been added to your collection.", c.Character),
	}}
	if err != nil {
		notices = append(notices, Notice{
			Kind:        NoticeFailure,
			Title:       "Storage Error",
			Description: "Your collection could not be written to disk; it is kept for this session only.",
		})
	}
	return notices, nil
}

// Collection returns the saved characters.
func (s *Session) Collection() []hanzcraft.Composition {
	return s.collection.Load()
}

// InCollection reports whether character has been saved.
func (s *Session) InCollection(character string) bool {
	return s.collection.Contains(character)
}

// Craftable reports whether character is a composition in the catalogue.
func (s *Session) Craftable(character string) bool {
	_, ok := s.matcher.Lookup(character)
	return ok
}

// SelectChallenge activates a challenge. The grid is cleared and the
// radical catalogue narrows to the challenge's allowed radicals.
func (s *Session) SelectChallenge(id string) error {
	ch, ok := s.cat.Challenge(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChallenge, id)
	}
	s.ClearGrid()
	s.challenge = &ch
	return nil
}

// ExitChallenge leaves challenge mode and restores the full catalogue.
// The grid is left as it is.
func (s *Session) ExitChallenge() {
	s.challenge = nil
}

// Challenge returns the active challenge.
func (s *Session) Challenge() (hanzcraft.Challenge, bool) {
	if s.challenge == nil {
		return hanzcraft.Challenge{}, false
	}
	return *s.challenge, true
}

// Theme returns the current theme.
func (s *Session) Theme() hanzcraft.Theme {
	return s.theme
}

// ToggleTheme switches between light and dark and persists the choice.
func (s *Session) ToggleTheme() (hanzcraft.Theme, []Notice) {
	if s.themes == nil {
		s.theme = s.theme.Toggled()
		return s.theme, nil
	}
	next, err := s.themes.Toggle()
	s.theme = next
	if err != nil {
		return next, []Notice{{
			Kind:        NoticeFailure,
			Title:       "Storage Error",
			Description: "Theme preference could not be saved.",
		}}
	}
	return next, nil
}

// SuggestRequest identifies one in-flight suggestion call.
type SuggestRequest struct {
	ID       string
	Radicals []string
}

// SuggestResult is the outcome of a suggestion call.
type SuggestResult struct {
	ID         string
	Characters []string
	Err        error
}

// BeginSuggest starts a suggestion request for the radicals in the grid.
// It marks the session as loading and clears earlier suggestions. With an
// empty grid no request is made and a guidance notice is returned.
func (s *Session) BeginSuggest() (SuggestRequest, []Notice, bool) {
	radicals := s.grid.Slots().Symbols()
	if len(radicals) == 0 {
		return SuggestRequest{}, []Notice{{
			Kind:        NoticeGuidance,
			Title:       "Empty Grid",
			Description: "Add some radicals to get AI suggestions.",
		}}, false
	}

	req := SuggestRequest{ID: uuid.NewString(), Radicals: radicals}
	s.loading = true
	s.suggestions = nil
	s.pendingID = req.ID
	return req, nil, true
}

// ResolveSuggestions performs the model call for req. It does not touch
// session state, so it may run off the event loop.
func (s *Session) ResolveSuggestions(ctx context.Context, req SuggestRequest) SuggestResult {
	if s.suggester == nil {
		return SuggestResult{ID: req.ID, Characters: []string{}, Err: errors.New("suggestions are not configured")}
	}
	chars, err := s.suggester.SuggestDetailed(ctx, req.Radicals)
	if chars == nil {
		chars = []string{}
	}
	return SuggestResult{ID: req.ID, Characters: chars, Err: err}
}

// FinishSuggest applies a result. Results of superseded requests are
// dropped so only the latest request is shown.
func (s *Session) FinishSuggest(res SuggestResult) []Notice {
	if res.ID != s.pendingID {
		s.logger.Printf("game: dropping superseded suggestion result %s", res.ID)
		return nil
	}
	s.loading = false
	s.pendingID = ""
	s.suggestions = res.Characters

	if res.Err != nil {
		s.logger.Printf("game: suggestion request %s failed: %v", res.ID, res.Err)
		return []Notice{{
			Kind:        NoticeFailure,
			Title:       "Error",
			Description: "Could not fetch AI suggestions.",
		}}
	}
	return nil
}

// Suggest runs a whole suggestion round trip synchronously.
func (s *Session) Suggest(ctx context.Context) []Notice {
	req, notices, ok := s.BeginSuggest()
	if !ok {
		return notices
	}
	return s.FinishSuggest(s.ResolveSuggestions(ctx, req))
}

// Suggestions returns the characters of the latest completed request.
func (s *Session) Suggestions() []string {
	return s.suggestions
}

// Loading reports whether a suggestion request is in flight.
func (s *Session) Loading() bool {
	return s.loading
}
