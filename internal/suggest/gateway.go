// Package suggest asks a hosted model which characters the radicals in the
// grid could form.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/f3rmion/hanzcraft/internal/llm"
	"github.com/f3rmion/hanzcraft/internal/prompt"
)

var (
	// ErrInvalidInput means the request payload failed schema validation.
	ErrInvalidInput = errors.New("invalid suggestion input")
	// ErrSchema means the model reply failed schema validation.
	ErrSchema = errors.New("suggestion response does not match schema")
	// ErrUnavailable means no model backend is configured.
	ErrUnavailable = errors.New("no suggestion backend configured")
)

// Input is the gateway request payload.
type Input struct {
	Radicals []string `json:"radicals"`
}

// Output is the gateway response payload.
type Output struct {
	SuggestedCharacters []string `json:"suggestedCharacters"`
}

// Suggester returns candidate characters for a list of radicals. It never
// fails; problems yield an empty result.
type Suggester interface {
	Suggest(ctx context.Context, radicals []string) []string
}

// Gateway renders the prompt, calls the model once and validates the reply.
// It keeps no state between calls.
type Gateway struct {
	gen     llm.Generator
	prompts *prompt.Generator
	logger  *log.Logger
	max     int
}

// NewGateway creates a gateway. gen may be nil when no backend is
// configured, in which case every call returns an empty result.
func NewGateway(gen llm.Generator, prompts *prompt.Generator, logger *log.Logger) *Gateway {
	if prompts == nil {
		prompts = prompt.NewGenerator()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Gateway{gen: gen, prompts: prompts, logger: logger, max: 8}
}

// SetMax bounds the number of suggestions requested and returned.
func (g *Gateway) SetMax(n int) {
	if n > 0 {
		g.max = n
	}
}

// Suggest returns candidate characters, or an empty slice on any failure.
// Failures are logged.
func (g *Gateway) Suggest(ctx context.Context, radicals []string) []string {
	out, err := g.SuggestDetailed(ctx, radicals)
	if err != nil {
		return []string{}
	}
	return out
}

// SuggestDetailed is Suggest with the failure reported. The slice is
// always non-nil and empty when err is set.
func (g *Gateway) SuggestDetailed(ctx context.Context, radicals []string) ([]string, error) {
	if len(radicals) == 0 {
		return []string{}, nil
	}

	in := Input{Radicals: radicals}
	if err := ValidateInput(in); err != nil {
		g.logger.Printf("suggest: %v", err)
		return []string{}, err
	}

	if g.gen == nil {
		g.logger.Printf("suggest: %v", ErrUnavailable)
		return []string{}, ErrUnavailable
	}

	text, err := g.prompts.Generate(prompt.SuggestionData{Radicals: in.Radicals, Max: g.max})
	if err != nil {
		g.logger.Printf("suggest: building prompt: %v", err)
		return []string{}, fmt.Errorf("building prompt: %w", err)
	}

	reply, err := g.gen.Generate(ctx, text)
	if err != nil {
		g.logger.Printf("suggest: model call for %v failed: %v", in.Radicals, err)
		return []string{}, fmt.Errorf("calling model: %w", err)
	}

	out, err := ParseOutput(reply)
	if err != nil {
		g.logger.Printf("suggest: %v; raw reply: %q", err, reply)
		return []string{}, err
	}

	chars := out.SuggestedCharacters
	if len(chars) > g.max {
		chars = chars[:g.max]
	}
	return chars, nil
}

// ValidateInput checks the request payload: at least one radical, none blank.
func ValidateInput(in Input) error {
	if len(in.Radicals) == 0 {
		return fmt.Errorf("%w: radicals must not be empty", ErrInvalidInput)
	}
	for i, r := range in.Radicals {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("%w: radical %d is blank", ErrInvalidInput, i)
		}
	}
	return nil
}

// ParseOutput validates a model reply against the output schema: a JSON
// object whose suggestedCharacters field is an array of strings. Markdown
// code fences around the object are tolerated. Entries are trimmed, and
// blanks and repeats are dropped.
func ParseOutput(reply string) (Output, error) {
	body := stripFences(reply)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	raw, ok := fields["suggestedCharacters"]
	if !ok {
		return Output{}, fmt.Errorf("%w: missing suggestedCharacters", ErrSchema)
	}

	var chars []string
	if err := json.Unmarshal(raw, &chars); err != nil {
		return Output{}, fmt.Errorf("%w: suggestedCharacters: %v", ErrSchema, err)
	}
	if chars == nil {
		return Output{}, fmt.Errorf("%w: suggestedCharacters is null", ErrSchema)
	}

	seen := make(map[string]bool, len(chars))
	out := Output{SuggestedCharacters: []string{}}
	for _, c := range chars {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out.SuggestedCharacters = append(out.SuggestedCharacters, c)
	}
	return out, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
