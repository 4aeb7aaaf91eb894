// Package decomp reads the Make Me a Hanzi dictionary used to describe
// characters suggested by the model.
package decomp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// DictionaryEntry represents a single entry from Make Me a Hanzi dictionary.
type DictionaryEntry struct {
	Character     string   `json:"character"`
	Definition    string   `json:"definition"`
	Pinyin        []string `json:"pinyin"`
	Decomposition string   `json:"decomposition"`
	Radical       string   `json:"radical"`
}

// Dictionary holds all character data.
type Dictionary struct {
	entries map[string]*DictionaryEntry
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		entries: make(map[string]*DictionaryEntry),
	}
}

// LoadFromFile loads a JSON-lines dictionary file. Malformed lines are skipped.
func (d *Dictionary) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening dictionary file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry DictionaryEntry
		if err := json.Unmarshal(line, &entry); err != nil || entry.Character == "" {
			continue
		}

		d.entries[entry.Character] = &entry
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading dictionary file: %w", err)
	}

	return nil
}

// LoadFirst loads the first readable file among paths. It returns the path
// used, or "" if none could be loaded.
func (d *Dictionary) LoadFirst(paths ...string) string {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := d.LoadFromFile(path); err == nil {
			return path
		}
	}
	return ""
}

// Lookup returns the dictionary entry for a character, or nil.
func (d *Dictionary) Lookup(char string) *DictionaryEntry {
	if d == nil {
		return nil
	}
	return d.entries[char]
}

// Size returns the number of entries in the dictionary.
func (d *Dictionary) Size() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// arrangements names the Ideographic Description Characters U+2FF0..U+2FFB.
var arrangements = [...]string{
	"left-right", "top-bottom", "left-mid-right", "top-mid-bottom",
	"surround", "surround-top", "surround-bottom", "surround-left",
	"surround-upper-left", "surround-upper-right", "surround-lower-left",
	"overlaid",
}

// arrangement returns the layout an IDS operator describes.
func arrangement(r rune) (string, bool) {
	if r < 0x2FF0 || r > 0x2FFB {
		return "", false
	}
	return arrangements[r-0x2FF0], true
}

// unknownDecomposition is Make Me a Hanzi's marker for a missing analysis.
const unknownDecomposition = "？"

func hasDecomposition(ids string) bool {
	return ids != "" && ids != unknownDecomposition
}

// ExtractComponents returns the Han and radical characters of an IDS
// string in reading order, nested operators included.
func ExtractComponents(ids string) []string {
	if !hasDecomposition(ids) {
		return nil
	}
	var out []string
	for _, r := range ids {
		if _, op := arrangement(r); op {
			continue
		}
		if unicode.Is(unicode.Han, r) || isRadicalChar(r) {
			out = append(out, string(r))
		}
	}
	return out
}

// isRadicalChar reports whether r is in the CJK Radicals Supplement or
// Kangxi Radicals blocks.
func isRadicalChar(r rune) bool {
	return (r >= 0x2E80 && r <= 0x2EFF) || (r >= 0x2F00 && r <= 0x2FDF)
}

// DecompositionType names the outermost arrangement: "simple" when the
// string has no operator, "unknown" when there is no analysis.
func DecompositionType(ids string) string {
	if !hasDecomposition(ids) {
		return "unknown"
	}
	for _, r := range ids {
		if name, ok := arrangement(r); ok {
			return name
		}
	}
	return "simple"
}

// FormatDecomposition renders ids as "left-right: 女 + 子".
func FormatDecomposition(ids string) string {
	if !hasDecomposition(ids) {
		return "No decomposition available"
	}
	parts := ExtractComponents(ids)
	if len(parts) == 0 {
		return "No components found"
	}
	return DecompositionType(ids) + ": " + strings.Join(parts, " + ")
}
