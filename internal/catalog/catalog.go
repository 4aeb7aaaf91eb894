// Package catalog loads and validates the static radical, composition and
// challenge tables.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog holds the immutable game data loaded at startup.
type Catalog struct {
	Radicals     []hanzcraft.Radical     `yaml:"radicals"`
	Compositions []hanzcraft.Composition `yaml:"compositions"`
	Challenges   []hanzcraft.Challenge   `yaml:"challenges"`
}

// Default returns the built-in catalogue.
func Default() (*Catalog, error) {
	cat, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("loading built-in catalog: %w", err)
	}
	return cat, nil
}

// DefaultYAML returns the raw built-in catalogue, for writing a template.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// LoadFile loads and validates a catalogue from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Load loads the catalogue at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML catalogue.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks the data-integrity rules of the catalogue. Every problem
// found is reported, joined into one error.
func (c *Catalog) Validate() error {
	var errs []error

	radicalIDs := make(map[string]bool)
	symbols := make(map[string]bool)
	for i, r := range c.Radicals {
		switch {
		case r.ID == "":
			errs = append(errs, fmt.Errorf("radical %d: missing id", i))
		case radicalIDs[r.ID]:
			errs = append(errs, fmt.Errorf("radical %q: duplicate id", r.ID))
		}
		switch {
		case r.Symbol == "":
			errs = append(errs, fmt.Errorf("radical %q: missing symbol", r.ID))
		case symbols[r.Symbol]:
			errs = append(errs, fmt.Errorf("radical %q: duplicate symbol %s", r.ID, r.Symbol))
		}
		radicalIDs[r.ID] = true
		symbols[r.Symbol] = true
	}

	characters := make(map[string]hanzcraft.Composition)
	patterns := make(map[hanzcraft.Slots]string)
	for i, comp := range c.Compositions {
		if comp.Character == "" {
			errs = append(errs, fmt.Errorf("composition %d: missing character", i))
			continue
		}
		if _, dup := characters[comp.Character]; dup {
			errs = append(errs, fmt.Errorf("composition %s: duplicate character", comp.Character))
		}
		characters[comp.Character] = comp

		if comp.Components.IsEmpty() {
			errs = append(errs, fmt.Errorf("composition %s: all slots empty", comp.Character))
			continue
		}
		for _, sym := range comp.Components.Symbols() {
			if !symbols[sym] {
				errs = append(errs, fmt.Errorf("composition %s: unknown radical %s", comp.Character, sym))
			}
		}
		if other, dup := patterns[comp.Components]; dup {
			errs = append(errs, fmt.Errorf("composition %s: same arrangement as %s", comp.Character, other))
		} else {
			patterns[comp.Components] = comp.Character
		}
	}

	challengeIDs := make(map[string]bool)
	for i, ch := range c.Challenges {
		if ch.ID == "" {
			errs = append(errs, fmt.Errorf("challenge %d: missing id", i))
		} else if challengeIDs[ch.ID] {
			errs = append(errs, fmt.Errorf("challenge %q: duplicate id", ch.ID))
		}
		challengeIDs[ch.ID] = true

		for _, sym := range ch.AllowedRadicals {
			if !symbols[sym] {
				errs = append(errs, fmt.Errorf("challenge %q: unknown radical %s", ch.ID, sym))
			}
		}

		target, ok := characters[ch.TargetCharacter]
		if !ok {
			errs = append(errs, fmt.Errorf("challenge %q: target %s is not a known composition", ch.ID, ch.TargetCharacter))
			continue
		}
		for _, sym := range target.Components.Symbols() {
			if !ch.Allows(sym) {
				errs = append(errs, fmt.Errorf("challenge %q: target %s needs %s which is not allowed", ch.ID, ch.TargetCharacter, sym))
			}
		}
	}

	return errors.Join(errs...)
}

// Matcher returns a crafting matcher over the catalogue's compositions.
func (c *Catalog) Matcher() *hanzcraft.Matcher {
	return hanzcraft.NewMatcher(c.Compositions)
}

// Radical returns the radical with the given id.
func (c *Catalog) Radical(id string) (hanzcraft.Radical, bool) {
	for _, r := range c.Radicals {
		if r.ID == id {
			return r, true
		}
	}
	return hanzcraft.Radical{}, false
}

// RadicalBySymbol returns the radical with the given glyph.
func (c *Catalog) RadicalBySymbol(symbol string) (hanzcraft.Radical, bool) {
	for _, r := range c.Radicals {
		if r.Symbol == symbol {
			return r, true
		}
	}
	return hanzcraft.Radical{}, false
}

// Challenge returns the challenge with the given id.
func (c *Catalog) Challenge(id string) (hanzcraft.Challenge, bool) {
	for _, ch := range c.Challenges {
		if ch.ID == id {
			return ch, true
		}
	}
	return hanzcraft.Challenge{}, false
}

// RadicalsFor returns the radicals a challenge allows, in catalogue order.
func (c *Catalog) RadicalsFor(ch hanzcraft.Challenge) []hanzcraft.Radical {
	var out []hanzcraft.Radical
	for _, r := range c.Radicals {
		if ch.Allows(r.Symbol) {
			out = append(out, r)
		}
	}
	return out
}
