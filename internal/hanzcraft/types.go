// Package hanzcraft provides core types and logic for the character crafting game.
package hanzcraft

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Slot positions in the 2x2 crafting grid.
const (
	TopLeft     = 0
	TopRight    = 1
	BottomLeft  = 2
	BottomRight = 3

	SlotCount = 4
)

// SlotNames maps slot positions to human-readable labels.
var SlotNames = [SlotCount]string{"top-left", "top-right", "bottom-left", "bottom-right"}

// Radical is an atomic character component that can be placed in the grid.
type Radical struct {
	ID     string `yaml:"id" json:"id"`         // Unique identifier (e.g., "nu")
	Symbol string `yaml:"symbol" json:"symbol"` // The glyph (e.g., "女")
	Name   string `yaml:"name" json:"name"`     // Human-readable label (e.g., "woman")
}

// Slots holds the radical symbols of the four grid positions, in the order
// top-left, top-right, bottom-left, bottom-right. An empty string marks an
// empty slot.
type Slots [SlotCount]string

// IsEmpty reports whether every slot is empty.
func (s Slots) IsEmpty() bool {
	for _, sym := range s {
		if sym != "" {
			return false
		}
	}
	return true
}

// Symbols returns the non-empty slot symbols in slot order.
func (s Slots) Symbols() []string {
	var out []string
	for _, sym := range s {
		if sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// String renders the slots as "女 · 子 ·" with a dot for empty positions.
func (s Slots) String() string {
	parts := make([]string, SlotCount)
	for i, sym := range s {
		if sym == "" {
			parts[i] = "·"
		} else {
			parts[i] = sym
		}
	}
	return strings.Join(parts, " ")
}

// MarshalJSON encodes empty slots as null.
func (s Slots) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.pointers())
}

// UnmarshalJSON decodes a 4-element array of strings or nulls.
func (s *Slots) UnmarshalJSON(data []byte) error {
	var raw []*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return s.fromPointers(raw)
}

// MarshalYAML encodes empty slots as null.
func (s Slots) MarshalYAML() (interface{}, error) {
	return s.pointers(), nil
}

// UnmarshalYAML decodes a 4-element sequence of strings or nulls.
func (s *Slots) UnmarshalYAML(value *yaml.Node) error {
	var raw []*string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return s.fromPointers(raw)
}

func (s Slots) pointers() []*string {
	out := make([]*string, SlotCount)
	for i := range s {
		if s[i] != "" {
			sym := s[i]
			out[i] = &sym
		}
	}
	return out
}

func (s *Slots) fromPointers(raw []*string) error {
	if len(raw) != SlotCount {
		return fmt.Errorf("components must have exactly %d slots, got %d", SlotCount, len(raw))
	}
	var out Slots
	for i, p := range raw {
		if p != nil {
			out[i] = *p
		}
	}
	*s = out
	return nil
}

// Composition maps a fixed arrangement of radicals to the character it forms.
type Composition struct {
	Character  string `yaml:"character" json:"character"`
	Components Slots  `yaml:"components" json:"components"`
	Pinyin     string `yaml:"pinyin" json:"pinyin"`
	Meaning    string `yaml:"meaning" json:"meaning"`
	Usage      string `yaml:"usage" json:"usage"` // Example sentence
}

// Challenge restricts the available radicals toward crafting one character.
type Challenge struct {
	ID              string   `yaml:"id" json:"id"`
	TargetCharacter string   `yaml:"target_character" json:"targetCharacter"`
	Pinyin          string   `yaml:"pinyin" json:"pinyin"`
	Meaning         string   `yaml:"meaning" json:"meaning"`
	AllowedRadicals []string `yaml:"allowed_radicals" json:"allowedRadicals"` // Radical symbols
}

// Allows reports whether the challenge permits the given radical symbol.
func (c Challenge) Allows(symbol string) bool {
	for _, s := range c.AllowedRadicals {
		if s == symbol {
			return true
		}
	}
	return false
}

// Theme is the user's colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no valid preference is stored.
const DefaultTheme = ThemeDark

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
