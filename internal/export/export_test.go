package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/xuri/excelize/v2"
)

var items = []hanzcraft.Composition{
	{Character: "好", Components: hanzcraft.Slots{"女", "", "子", ""}, Pinyin: "hǎo", Meaning: "good", Usage: "你好"},
	{Character: "森", Components: hanzcraft.Slots{"木", "", "木", "木"}, Pinyin: "sēn", Meaning: "forest", Usage: "森林, 这是一片森林。"},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "character" {
		t.Errorf("header = %v", rows[0])
	}
	want := []string{"森", "sēn", "forest", "森林, 这是一片森林。", "木", "", "木", "木"}
	for i, v := range want {
		if rows[2][i] != v {
			t.Errorf("row 2 col %d = %q, want %q", i, rows[2][i], v)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.xlsx")
	if err := WriteFile(path, items); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1][0] != "好" || rows[1][4] != "女" || rows[1][6] != "子" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestWriteFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.csv")
	if err := WriteFile(path, nil); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("character,pinyin")) {
		t.Errorf("csv = %q", data)
	}
}
