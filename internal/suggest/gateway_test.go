package suggest

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

// stubGenerator returns a canned reply and records calls.
type stubGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func TestSuggestEmptyInputSkipsModel(t *testing.T) {
	gen := &stubGenerator{reply: `{"suggestedCharacters":["好"]}`}
	g := NewGateway(gen, nil, nil)

	for _, in := range [][]string{nil, {}} {
		got := g.Suggest(context.Background(), in)
		if got == nil || len(got) != 0 {
			t.Errorf("Suggest(%v) = %#v, want empty non-nil slice", in, got)
		}
	}
	if gen.calls != 0 {
		t.Errorf("model called %d times for empty input", gen.calls)
	}
}

func TestSuggest(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n{\"suggestedCharacters\": [\"好\", \" 妈 \", \"好\", \"\"]}\n```"}
	g := NewGateway(gen, nil, nil)

	got := g.Suggest(context.Background(), []string{"女", "子"})
	if strings.Join(got, ",") != "好,妈" {
		t.Errorf("Suggest = %v, want [好 妈]", got)
	}
	if gen.calls != 1 {
		t.Errorf("model called %d times, want 1", gen.calls)
	}
	if !strings.Contains(gen.prompts[0], "女, 子") {
		t.Errorf("prompt does not embed radicals:\n%s", gen.prompts[0])
	}
}

func TestSuggestFailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name    string
		gen     *stubGenerator
		wantErr error
	}{
		{"network error", &stubGenerator{err: errors.New("connection refused")}, nil},
		{"not json", &stubGenerator{reply: "好, 妈"}, ErrSchema},
		{"missing field", &stubGenerator{reply: `{"characters":["好"]}`}, ErrSchema},
		{"wrong element type", &stubGenerator{reply: `{"suggestedCharacters":[1,2]}`}, ErrSchema},
		{"null field", &stubGenerator{reply: `{"suggestedCharacters":null}`}, ErrSchema},
		{"array at top level", &stubGenerator{reply: `["好"]`}, ErrSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			g := NewGateway(tt.gen, nil, log.New(&buf, "", 0))

			got, err := g.SuggestDetailed(context.Background(), []string{"女"})
			if err == nil {
				t.Fatal("SuggestDetailed returned nil error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("result = %#v, want empty non-nil slice", got)
			}
			if buf.Len() == 0 {
				t.Error("failure was not logged")
			}
			if s := g.Suggest(context.Background(), []string{"女"}); len(s) != 0 {
				t.Errorf("Suggest = %v, want empty", s)
			}
		})
	}
}

func TestSuggestInvalidInput(t *testing.T) {
	gen := &stubGenerator{reply: `{"suggestedCharacters":[]}`}
	g := NewGateway(gen, nil, nil)

	_, err := g.SuggestDetailed(context.Background(), []string{"女", " "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
	if gen.calls != 0 {
		t.Error("model called for invalid input")
	}
}

func TestSuggestWithoutBackend(t *testing.T) {
	g := NewGateway(nil, nil, nil)
	got, err := g.SuggestDetailed(context.Background(), []string{"日"})
	if !errors.Is(err, ErrUnavailable) || len(got) != 0 {
		t.Errorf("SuggestDetailed = %v, %v; want empty, ErrUnavailable", got, err)
	}
}

func TestSuggestRespectsMax(t *testing.T) {
	gen := &stubGenerator{reply: `{"suggestedCharacters":["a","b","c","d"]}`}
	g := NewGateway(gen, nil, nil)
	g.SetMax(2)

	got := g.Suggest(context.Background(), []string{"木"})
	if len(got) != 2 {
		t.Errorf("Suggest returned %d entries, want 2", len(got))
	}
	if !strings.Contains(gen.prompts[0], "up to 2") {
		t.Errorf("prompt does not carry max:\n%s", gen.prompts[0])
	}
}

func TestParseOutputEmptyArray(t *testing.T) {
	out, err := ParseOutput(`{"suggestedCharacters":[]}`)
	if err != nil {
		t.Fatalf("ParseOutput: %v", err)
	}
	if out.SuggestedCharacters == nil || len(out.SuggestedCharacters) != 0 {
		t.Errorf("SuggestedCharacters = %#v", out.SuggestedCharacters)
	}
}
