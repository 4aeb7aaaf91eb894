package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/f3rmion/hanzcraft/internal/pinyin"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(cat.Radicals) == 0 || len(cat.Compositions) == 0 || len(cat.Challenges) == 0 {
		t.Fatalf("Default() returned empty tables: %d radicals, %d compositions, %d challenges",
			len(cat.Radicals), len(cat.Compositions), len(cat.Challenges))
	}
}

func TestDefaultCatalogCraftsEveryComposition(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	m := cat.Matcher()
	for _, c := range cat.Compositions {
		got, outcome := m.Craft(c.Components)
		if outcome != hanzcraft.OutcomeCrafted || got != c {
			t.Errorf("Craft(%v) = (%q, %v), want %q", c.Components, got.Character, outcome, c.Character)
		}
	}
}

func TestDefaultCatalogHasGoodScenario(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	got, outcome := cat.Matcher().Craft(hanzcraft.Slots{"女", "", "子", ""})
	if outcome != hanzcraft.OutcomeCrafted || got.Character != "好" || got.Meaning != "good" {
		t.Errorf("Craft(女 · 子 ·) = (%+v, %v)", got, outcome)
	}
	if _, outcome := cat.Matcher().Craft(hanzcraft.Slots{"子", "", "女", ""}); outcome != hanzcraft.OutcomeNoMatch {
		t.Errorf("swapped arrangement outcome = %v, want no match", outcome)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: `
radicals: [{id: nu, symbol: 女, name: woman}, {id: zi, symbol: 子, name: child}]
compositions:
  - {character: 好, components: [女, ~, 子, ~], pinyin: hǎo}
challenges:
  - {id: c1, target_character: 好, allowed_radicals: [女, 子]}
`,
		},
		{
			name: "duplicate pattern",
			yaml: `
radicals: [{id: nu, symbol: 女, name: woman}, {id: zi, symbol: 子, name: child}]
compositions:
  - {character: 好, components: [女, ~, 子, ~]}
  - {character: 她, components: [女, ~, 子, ~]}
`,
			wantErr: "same arrangement",
		},
		{
			name: "duplicate character",
			yaml: `
radicals: [{id: nu, symbol: 女, name: woman}, {id: zi, symbol: 子, name: child}]
compositions:
  - {character: 好, components: [女, ~, 子, ~]}
  - {character: 好, components: [子, ~, 女, ~]}
`,
			wantErr: "duplicate character",
		},
		{
			name: "unknown radical",
			yaml: `
radicals: [{id: nu, symbol: 女, name: woman}]
compositions:
  - {character: 好, components: [女, ~, 子, ~]}
`,
			wantErr: "unknown radical 子",
		},
		{
			name: "empty pattern",
			yaml: `
radicals: [{id: nu, symbol: 女, name: woman}]
compositions:
  - {character: 好, components: [~, ~, ~, ~]}
`,
			wantErr: "all slots empty",
		},
		{
			name: "duplicate radical id",
			yaml: `
radicals: [{id: nu, symbol: 女, name: woman}, {id: nu, symbol: 子, name: child}]
`,
			wantErr: "duplicate id",
		},
		{
			name: "challenge target not craftable",
			yaml: `
radicals: [{id: nu, symbol: 女, name: woman}, {id: zi, symbol: 子, name: child}]
compositions:
  - {character: 好, components: [女, ~, 子, ~]}
challenges:
  - {id: c1, target_character: 好, allowed_radicals: [女]}
`,
			wantErr: "needs 子",
		},
		{
			name: "challenge target unknown",
			yaml: `
radicals: [{id: nu, symbol: 女, name: woman}]
challenges:
  - {id: c1, target_character: 好, allowed_radicals: [女]}
`,
			wantErr: "not a known composition",
		},
		{
			name: "wrong slot count",
			yaml: `
radicals: [{id: nu, symbol: 女, name: woman}]
compositions:
  - {character: 好, components: [女, ~]}
`,
			wantErr: "exactly 4 slots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, DefaultYAML(), 0644); err != nil {
		t.Fatal(err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	if _, ok := cat.Challenge("good"); !ok {
		t.Error("Challenge(good) not found in loaded catalog")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file returned nil error")
	}
}

func TestLookups(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if r, ok := cat.Radical("nu"); !ok || r.Symbol != "女" {
		t.Errorf("Radical(nu) = %+v, %v", r, ok)
	}
	if r, ok := cat.RadicalBySymbol("子"); !ok || r.ID != "zi" {
		t.Errorf("RadicalBySymbol(子) = %+v, %v", r, ok)
	}

	ch, _ := cat.Challenge("good")
	got := cat.RadicalsFor(ch)
	if len(got) != len(ch.AllowedRadicals) {
		t.Fatalf("RadicalsFor(good) returned %d radicals, want %d", len(got), len(ch.AllowedRadicals))
	}
	for _, r := range got {
		if !ch.Allows(r.Symbol) {
			t.Errorf("RadicalsFor(good) returned disallowed %s", r.Symbol)
		}
	}
}

func TestCheck(t *testing.T) {
	cat := &Catalog{
		Compositions: []hanzcraft.Composition{
			{Character: "好", Components: hanzcraft.Slots{"女", "", "子", ""}, Pinyin: "hǎo"},
			{Character: "明", Components: hanzcraft.Slots{"日", "月", "", ""}, Pinyin: "mìng"},
			{Character: "林", Components: hanzcraft.Slots{"木", "木", "", ""}, Pinyin: "sēn"},
			{Character: "森", Components: hanzcraft.Slots{"木", "", "木", "木"}},
		},
		Challenges: []hanzcraft.Challenge{
			{ID: "good", TargetCharacter: "好", Pinyin: "hào"},
		},
	}

	warnings := cat.Check(pinyin.NewParser())
	got := make(map[string]string)
	for _, w := range warnings {
		got[w.Character] += w.Message + ";"
	}

	if !strings.Contains(got["明"], "tone") {
		t.Errorf("明 warning = %q, want tone mismatch", got["明"])
	}
	if !strings.Contains(got["林"], "not a known reading") {
		t.Errorf("林 warning = %q, want unknown reading", got["林"])
	}
	if !strings.Contains(got["森"], "missing pinyin") {
		t.Errorf("森 warning = %q, want missing pinyin", got["森"])
	}
	if !strings.Contains(got["好"], "challenge") {
		t.Errorf("好 warning = %q, want challenge pinyin mismatch", got["好"])
	}
}

func TestDefaultCatalogPinyinMatches(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range cat.Check(pinyin.NewParser()) {
		t.Errorf("built-in catalog: %s", w)
	}
}
