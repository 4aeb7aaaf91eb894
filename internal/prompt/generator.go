// Package prompt renders the model prompt used for character suggestions.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// Generator renders suggestion prompts from a text/template.
type Generator struct {
	template *template.Template
}

// SuggestionData is the template input.
type SuggestionData struct {
	Radicals []string // Radical symbols in grid order
	Max      int      // Upper bound on suggestions requested
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

// NewGenerator creates a generator with the default suggestion template.
func NewGenerator() *Generator {
	return &Generator{
		template: template.Must(template.New("suggest").Funcs(funcs).Parse(DefaultTemplate)),
	}
}

// SetTemplate sets a custom prompt template.
func (g *Generator) SetTemplate(tmpl string) error {
	t, err := template.New("suggest").Funcs(funcs).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	g.template = t
	return nil
}

// LoadTemplate reads a custom template from a file.
func (g *Generator) LoadTemplate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}
	return g.SetTemplate(string(data))
}

// Generate renders the prompt.
func (g *Generator) Generate(data SuggestionData) (string, error) {
	if data.Max <= 0 {
		data.Max = 8
	}

	var buf bytes.Buffer
	if err := g.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// DefaultTemplate asks for characters buildable from the radicals, as JSON.
const DefaultTemplate = `You are an expert in Chinese characters and their components.

A learner has placed these radicals in a crafting grid:
Radicals: {{ join .Radicals ", " }}

Suggest up to {{ .Max }} real Chinese characters that can be built from these radicals
(using some or all of them). Prefer common characters a learner would know.

Respond ONLY with a JSON object of this exact shape and nothing else:
{"suggestedCharacters": ["<character>", "..."]}`
