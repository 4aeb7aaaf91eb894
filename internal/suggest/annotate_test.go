package suggest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/hanzcraft/internal/decomp"
	"github.com/f3rmion/hanzcraft/internal/pinyin"
)

func TestAnnotate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.jsonl")
	os.WriteFile(path, []byte(`{"character":"好","definition":"good","pinyin":["hǎo"],"decomposition":"⿰女子"}`+"\n"), 0644)
	dict := decomp.NewDictionary()
	if err := dict.LoadFromFile(path); err != nil {
		t.Fatal(err)
	}

	a := NewAnnotator(pinyin.NewParser(), dict, func(c string) bool { return c == "好" })
	got := a.Annotate([]string{"好", "妈"})

	if len(got) != 2 {
		t.Fatalf("Annotate returned %d items", len(got))
	}
	if got[0].Pinyin != "hǎo" || got[0].Definition != "good" || got[0].Structure != "left-right: 女 + 子" || !got[0].Known {
		t.Errorf("好 = %+v", got[0])
	}
	if got[1].Pinyin != "mā" || got[1].Definition != "" || got[1].Known {
		t.Errorf("妈 = %+v", got[1])
	}
}

func TestAnnotateWithoutSources(t *testing.T) {
	got := NewAnnotator(nil, nil, nil).Annotate([]string{"好"})
	if len(got) != 1 || got[0].Character != "好" || got[0].Pinyin != "" {
		t.Errorf("Annotate = %+v", got)
	}
}
