package hanzcraft

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSlotsJSONUsesNull(t *testing.T) {
	data, err := json.Marshal(Slots{"女", "", "子", ""})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), `["女",null,"子",null]`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	var s Slots
	if err := json.Unmarshal([]byte(`[null,"月",null,null]`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s != (Slots{"", "月", "", ""}) {
		t.Errorf("Unmarshal = %v", s)
	}
}

func TestSlotsRejectWrongLength(t *testing.T) {
	var s Slots
	if err := json.Unmarshal([]byte(`["女","子"]`), &s); err == nil {
		t.Error("expected error for 2-slot JSON array")
	}
	if err := yaml.Unmarshal([]byte("[女, ~, 子, ~, 木]"), &s); err == nil {
		t.Error("expected error for 5-slot YAML sequence")
	}
}

func TestSlotsYAML(t *testing.T) {
	var c Composition
	src := "character: 好\ncomponents: [女, ~, 子, null]\npinyin: hǎo\n"
	if err := yaml.Unmarshal([]byte(src), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.Components != (Slots{"女", "", "子", ""}) {
		t.Errorf("Components = %v", c.Components)
	}
}

func TestSlotsHelpers(t *testing.T) {
	s := Slots{"", "月", "", "木"}
	if s.IsEmpty() {
		t.Error("IsEmpty() = true for partially filled grid")
	}
	if got := s.Symbols(); len(got) != 2 || got[0] != "月" || got[1] != "木" {
		t.Errorf("Symbols() = %v", got)
	}
	if got := s.String(); got != "· 月 · 木" {
		t.Errorf("String() = %q", got)
	}
	if !(Slots{}).IsEmpty() {
		t.Error("IsEmpty() = false for zero Slots")
	}
}

func TestThemeToggled(t *testing.T) {
	if ThemeDark.Toggled() != ThemeLight || ThemeLight.Toggled() != ThemeDark {
		t.Error("Toggled does not flip between light and dark")
	}
	if Theme("sepia").Valid() {
		t.Error("unknown theme reported valid")
	}
}

func TestChallengeAllows(t *testing.T) {
	c := Challenge{AllowedRadicals: []string{"女", "子"}}
	if !c.Allows("子") || c.Allows("木") {
		t.Errorf("Allows gave wrong answer for %v", c.AllowedRadicals)
	}
}
