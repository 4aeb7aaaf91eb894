package hanzcraft

// Outcome is the result kind of a crafting attempt.
type Outcome int

const (
	// OutcomeNoMatch means no composition has the given arrangement.
	// It is a routine result, not an error.
	OutcomeNoMatch Outcome = iota
	// OutcomeCrafted means a composition matched exactly.
	OutcomeCrafted
	// OutcomeEmptyGrid means every slot was empty; nothing was looked up.
	OutcomeEmptyGrid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCrafted:
		return "crafted"
	case OutcomeEmptyGrid:
		return "empty grid"
	default:
		return "no composition found"
	}
}

// Matcher finds compositions by exact positional match.
type Matcher struct {
	compositions []Composition
}

// NewMatcher creates a matcher over a copy of the given compositions.
// Catalogue order is preserved and decides which entry wins if two share
// a pattern; catalogs are validated for unique patterns at load time.
func NewMatcher(compositions []Composition) *Matcher {
	c := make([]Composition, len(compositions))
	copy(c, compositions)
	return &Matcher{compositions: c}
}

// Craft looks up the composition whose four slots equal the input exactly.
func (m *Matcher) Craft(slots Slots) (Composition, Outcome) {
	if slots.IsEmpty() {
		return Composition{}, OutcomeEmptyGrid
	}

	for _, c := range m.compositions {
		if c.Components == slots {
			return c, OutcomeCrafted
		}
	}

	return Composition{}, OutcomeNoMatch
}

// Lookup returns the composition for a character.
func (m *Matcher) Lookup(character string) (Composition, bool) {
	for _, c := range m.compositions {
		if c.Character == character {
			return c, true
		}
	}
	return Composition{}, false
}

// Len returns the number of known compositions.
func (m *Matcher) Len() int {
	return len(m.compositions)
}
