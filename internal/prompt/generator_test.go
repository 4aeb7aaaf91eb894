package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateEmbedsRadicals(t *testing.T) {
	g := NewGenerator()
	out, err := g.Generate(SuggestionData{Radicals: []string{"女", "子"}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "Radicals: 女, 子") {
		t.Errorf("prompt missing radical list:\n%s", out)
	}
	if !strings.Contains(out, "up to 8") {
		t.Errorf("prompt missing default max:\n%s", out)
	}
	if !strings.Contains(out, `"suggestedCharacters"`) {
		t.Errorf("prompt missing output schema:\n%s", out)
	}
}

func TestSetTemplate(t *testing.T) {
	g := NewGenerator()
	if err := g.SetTemplate("{{ .Broken"); err == nil {
		t.Fatal("SetTemplate accepted an unparseable template")
	}
	if err := g.SetTemplate("R={{ join .Radicals \"\" }} N={{ .Max }}"); err != nil {
		t.Fatalf("SetTemplate: %v", err)
	}
	out, err := g.Generate(SuggestionData{Radicals: []string{"日", "月"}, Max: 3})
	if err != nil {
		t.Fatal(err)
	}
	if out != "R=日月 N=3" {
		t.Errorf("Generate = %q", out)
	}
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	os.WriteFile(path, []byte("{{ len .Radicals }} radicals\n"), 0644)

	g := NewGenerator()
	if err := g.LoadTemplate(path); err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	out, _ := g.Generate(SuggestionData{Radicals: []string{"木", "木", "木"}})
	if out != "3 radicals" {
		t.Errorf("Generate = %q", out)
	}
	if err := g.LoadTemplate(filepath.Join(t.TempDir(), "none")); err == nil {
		t.Error("LoadTemplate of missing file returned nil error")
	}
}
