// Package pinyin looks up Mandarin readings for Chinese characters.
package pinyin

import (
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Parser wraps go-pinyin with tone-marked, heteronym-aware lookups.
type Parser struct {
	args gopinyin.Args
}

// NewParser creates a new pinyin parser.
func NewParser() *Parser {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone // Returns tone marks: zhōng
	args.Heteronym = true      // Return all possible readings
	return &Parser{args: args}
}

// Readings returns all known tone-marked readings for the first character of char.
func (p *Parser) Readings(char string) []string {
	result := gopinyin.Pinyin(char, p.args)
	if len(result) == 0 {
		return nil
	}
	return result[0]
}

// Primary returns the most common reading of char, or "" if unknown.
func (p *Parser) Primary(char string) string {
	readings := p.Readings(char)
	if len(readings) == 0 {
		return ""
	}
	return readings[0]
}

// Match describes how a given reading relates to a character's known readings.
type Match int

const (
	MatchUnknown   Match = iota // go-pinyin has no reading for the character
	MatchExact                  // reading is one of the known readings
	MatchToneOnly               // same syllable, different tone
	MatchDifferent              // none of the known syllables
)

// Compare checks reading against the known readings of char.
func (p *Parser) Compare(char, reading string) Match {
	readings := p.Readings(char)
	if len(readings) == 0 {
		return MatchUnknown
	}

	reading = strings.ToLower(strings.TrimSpace(reading))
	for _, r := range readings {
		if r == reading {
			return MatchExact
		}
	}

	_, base := extractTone(reading)
	for _, r := range readings {
		if _, b := extractTone(r); b == base {
			return MatchToneOnly
		}
	}
	return MatchDifferent
}

// Tone returns the tone number (1-5) of a tone-marked syllable.
func Tone(reading string) int {
	tone, _ := extractTone(reading)
	return tone
}

var toneMarks = map[rune]struct {
	base rune
	tone int
}{
	'ā': {'a', 1}, 'á': {'a', 2}, 'ǎ': {'a', 3}, 'à': {'a', 4},
	'ē': {'e', 1}, 'é': {'e', 2}, 'ě': {'e', 3}, 'è': {'e', 4},
	'ī': {'i', 1}, 'í': {'i', 2}, 'ǐ': {'i', 3}, 'ì': {'i', 4},
	'ō': {'o', 1}, 'ó': {'o', 2}, 'ǒ': {'o', 3}, 'ò': {'o', 4},
	'ū': {'u', 1}, 'ú': {'u', 2}, 'ǔ': {'u', 3}, 'ù': {'u', 4},
	'ǖ': {'ü', 1}, 'ǘ': {'ü', 2}, 'ǚ': {'ü', 3}, 'ǜ': {'ü', 4},
	'ń': {'n', 2}, 'ň': {'n', 3}, 'ǹ': {'n', 4},
}

// extractTone returns the tone number and the syllable without tone marks.
// Syllables without a mark are neutral tone (5).
func extractTone(reading string) (int, string) {
	tone := 0
	var result strings.Builder

	for _, r := range reading {
		if mark, ok := toneMarks[r]; ok {
			result.WriteRune(mark.base)
			tone = mark.tone
		} else {
			result.WriteRune(r)
		}
	}

	if tone == 0 {
		tone = 5
	}

	return tone, result.String()
}
