package anki

import (
	"archive/zip"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
)

const testModels = `{"1001": {"id": 1001, "name": "Chinese Basic", "css": ".card {}", "tmpls": [{"name": "Card 1"}],
 "flds": [{"name": "Hanzi", "ord": 0, "sticky": false, "rtl": false, "font": "Arial", "size": 20, "media": [], "description": "keep me"},
          {"name": "English", "ord": 1, "sticky": false, "rtl": false, "font": "Arial", "size": 20, "media": []}]}}`

const testDecks = `{"1": {"id": 1, "name": "Default"}, "2": {"id": 2, "name": "Chinese"}}`

// buildPackage writes a minimal .apkg with the given (hanzi, english) notes.
func buildPackage(t *testing.T, notes [][2]string) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "collection.anki2")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		`CREATE TABLE col (id integer primary key, mod integer, models text, decks text)`,
		`CREATE TABLE notes (id integer primary key, guid text, mid integer, mod integer, usn integer,
			tags text, flds text, sfld integer, csum integer, flags integer, data text)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.Exec(`INSERT INTO col VALUES (1, 0, ?, ?)`, testModels, testDecks); err != nil {
		t.Fatal(err)
	}
	for i, n := range notes {
		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, 1001, 0, 0, '', ?, ?, 0, 0, '')`,
			i+1, "guid"+n[0], n[0]+fieldSep+n[1], n[0])
		if err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	apkg := filepath.Join(dir, "deck.apkg")
	out, err := os.Create(apkg)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(out)
	w, _ := zw.Create("collection.anki2")
	in, _ := os.Open(dbPath)
	io.Copy(w, in)
	in.Close()
	zw.Close()
	out.Close()
	return apkg
}

var good = hanzcraft.Composition{
	Character:  "好",
	Components: hanzcraft.Slots{"女", "", "子", ""},
	Pinyin:     "hǎo",
	Meaning:    "good",
	Usage:      "你好",
}

func TestOpenPackage(t *testing.T) {
	pkg, err := OpenPackage(buildPackage(t, [][2]string{{"好", "good"}, {"<b>明</b>", "bright"}}))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer pkg.Close()

	if len(pkg.Notes) != 2 || len(pkg.Models) != 1 || len(pkg.Decks) != 2 {
		t.Fatalf("loaded %d notes, %d models, %d decks", len(pkg.Notes), len(pkg.Models), len(pkg.Decks))
	}
	if got := pkg.DetectField(); got != "Hanzi" {
		t.Errorf("DetectField() = %q", got)
	}
	if got := StripHTML(pkg.FieldValue(pkg.Notes[1], "hanzi")); got != "明" {
		t.Errorf("FieldValue = %q", got)
	}
	if !strings.Contains(pkg.Summary(), "Chinese Basic (2 fields)") {
		t.Errorf("Summary() = %s", pkg.Summary())
	}
}

func TestOpenPackageErrors(t *testing.T) {
	if _, err := OpenPackage(filepath.Join(t.TempDir(), "missing.apkg")); err == nil {
		t.Error("missing file: expected error")
	}

	empty := filepath.Join(t.TempDir(), "empty.apkg")
	f, _ := os.Create(empty)
	zw := zip.NewWriter(f)
	w, _ := zw.Create("media")
	w.Write([]byte("{}"))
	zw.Close()
	f.Close()
	if _, err := OpenPackage(empty); err == nil || !strings.Contains(err.Error(), "no Anki collection") {
		t.Errorf("package without collection: err = %v", err)
	}
}

func TestAnnotateAndSave(t *testing.T) {
	pkg, err := OpenPackage(buildPackage(t, [][2]string{{"好", "good"}, {"水", "water"}}))
	if err != nil {
		t.Fatal(err)
	}
	defer pkg.Close()

	bright := hanzcraft.Composition{Character: "明", Components: hanzcraft.Slots{"日", "月", "", ""}}
	res, err := pkg.Annotate([]hanzcraft.Composition{good, bright}, "Hanzi")
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if res.Notes != 1 || len(res.Models) != 1 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Missing) != 1 || res.Missing[0] != "明" {
		t.Errorf("Missing = %v", res.Missing)
	}

	out := filepath.Join(t.TempDir(), "annotated.apkg")
	if err := pkg.SaveAs(out); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	again, err := OpenPackage(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()

	m := again.Models[1001]
	if len(m.Fields) != 6 {
		t.Fatalf("fields after annotate = %d, want 6", len(m.Fields))
	}
	if !strings.Contains(string(m.raw["flds"]), "keep me") {
		t.Error("existing field keys were not preserved")
	}
	if _, ok := m.raw["tmpls"]; !ok {
		t.Error("model templates were dropped")
	}

	tests := []struct {
		field string
		want  string
	}{
		{FieldPinyin, "hǎo"},
		{FieldMeaning, "good"},
		{FieldUsage, "你好"},
		{FieldGrid, GridHTML(good.Components)},
	}
	for _, tt := range tests {
		if got := again.FieldValue(again.Notes[0], tt.field); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.field, got, tt.want)
		}
	}
	if got := again.FieldValue(again.Notes[1], FieldPinyin); got != "" {
		t.Errorf("unmatched note got pinyin %q", got)
	}
}

func TestAnnotatePadsUnmatchedNotes(t *testing.T) {
	pkg, err := OpenPackage(buildPackage(t, [][2]string{{"好", "good"}, {"水", "water"}}))
	if err != nil {
		t.Fatal(err)
	}
	defer pkg.Close()

	if _, err := pkg.Annotate([]hanzcraft.Composition{good}, "Hanzi"); err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	out := filepath.Join(t.TempDir(), "annotated.apkg")
	if err := pkg.SaveAs(out); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	again, err := OpenPackage(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()

	want := len(again.Models[1001].Fields)
	rows, err := again.db.Query("SELECT id, flds FROM notes ORDER BY id")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var flds string
		if err := rows.Scan(&id, &flds); err != nil {
			t.Fatal(err)
		}
		if got := len(strings.Split(flds, fieldSep)); got != want {
			t.Errorf("note %d stores %d fields, note type has %d", id, got, want)
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	if got := again.FieldValue(again.Notes[1], "English"); got != "water" {
		t.Errorf("unmatched note English = %q", got)
	}
}

func TestGridHTML(t *testing.T) {
	got := GridHTML(good.Components)
	want := `<table class="hanzcraft-grid"><tr><td>女</td><td>&nbsp;</td></tr><tr><td>子</td><td>&nbsp;</td></tr></table>`
	if got != want {
		t.Errorf("GridHTML = %s", got)
	}
}
