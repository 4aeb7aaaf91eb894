package catalog

import (
	"fmt"
	"strings"

	"github.com/f3rmion/hanzcraft/internal/pinyin"
)

// Warning is a non-fatal catalogue problem found by Check.
type Warning struct {
	Character string
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Character, w.Message)
}

// Check lints the catalogue's pinyin against the readings go-pinyin knows.
// Unlike Validate, its findings never prevent the catalogue from loading.
func (c *Catalog) Check(parser *pinyin.Parser) []Warning {
	var warnings []Warning

	check := func(char, reading string) {
		if reading == "" {
			warnings = append(warnings, Warning{char, "missing pinyin"})
			return
		}
		known := strings.Join(parser.Readings(char), ", ")
		switch parser.Compare(char, reading) {
		case pinyin.MatchUnknown:
			warnings = append(warnings, Warning{char, "no reading known for character"})
		case pinyin.MatchToneOnly:
			warnings = append(warnings, Warning{char, fmt.Sprintf("tone of %q differs from known readings (%s)", reading, known)})
		case pinyin.MatchDifferent:
			warnings = append(warnings, Warning{char, fmt.Sprintf("%q is not a known reading (%s)", reading, known)})
		}
	}

	for _, comp := range c.Compositions {
		check(comp.Character, comp.Pinyin)
	}

	for _, ch := range c.Challenges {
		for _, comp := range c.Compositions {
			if comp.Character == ch.TargetCharacter && comp.Pinyin != ch.Pinyin {
				warnings = append(warnings, Warning{ch.TargetCharacter,
					fmt.Sprintf("challenge %q pinyin %q differs from composition pinyin %q", ch.ID, ch.Pinyin, comp.Pinyin)})
			}
		}
	}

	return warnings
}
