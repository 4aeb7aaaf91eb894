package suggest

import (
	"github.com/f3rmion/hanzcraft/internal/decomp"
	"github.com/f3rmion/hanzcraft/internal/pinyin"
)

// Annotated is a suggested character with whatever local data describes it.
type Annotated struct {
	Character  string
	Pinyin     string // Most common reading, "" if unknown
	Definition string // From the dictionary, "" if unavailable
	Structure  string // Formatted IDS decomposition, "" if unavailable
	Known      bool   // The character is a catalogue composition
}

// Annotator decorates suggestions with pinyin and dictionary data. Both
// sources are optional.
type Annotator struct {
	parser *pinyin.Parser
	dict   *decomp.Dictionary
	known  func(string) bool
}

// NewAnnotator creates an annotator. known reports whether a character can
// be crafted from the catalogue; it may be nil.
func NewAnnotator(parser *pinyin.Parser, dict *decomp.Dictionary, known func(string) bool) *Annotator {
	return &Annotator{parser: parser, dict: dict, known: known}
}

// Annotate describes each character in order.
func (a *Annotator) Annotate(chars []string) []Annotated {
	out := make([]Annotated, 0, len(chars))
	for _, c := range chars {
		item := Annotated{Character: c}
		if a.parser != nil {
			item.Pinyin = a.parser.Primary(c)
		}
		if e := a.dict.Lookup(c); e != nil {
			item.Definition = e.Definition
			if e.Decomposition != "" && e.Decomposition != "？" {
				item.Structure = decomp.FormatDecomposition(e.Decomposition)
			}
			if item.Pinyin == "" && len(e.Pinyin) > 0 {
				item.Pinyin = e.Pinyin[0]
			}
		}
		if a.known != nil {
			item.Known = a.known(c)
		}
		out = append(out, item)
	}
	return out
}
