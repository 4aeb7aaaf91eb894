// Package anki reads Anki .apkg decks and annotates them with collected
// HanzCraft characters.
package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

const fieldSep = "\x1f"

// Package is an extracted .apkg file backed by its SQLite collection.
type Package struct {
	path    string
	tempDir string
	db      *sql.DB
	Models  map[int64]*Model
	Decks   map[int64]*Deck
	Notes   []*Note
}

// Model is an Anki note type.
type Model struct {
	ID     int64
	Name   string
	Fields []Field

	// raw keeps every key of the model JSON so rewriting it loses nothing.
	raw       map[string]json.RawMessage
	rawFields []json.RawMessage
}

// Field is a field of a note type.
type Field struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

// Deck is an Anki deck.
type Deck struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Note is an Anki note.
type Note struct {
	ID      int64
	ModelID int64
	Mod     int64
	Fields  []string
	SFLD    string
	CSum    int64

	dirty bool
}

// OpenPackage extracts an .apkg file and loads its note types and notes.
// Call Close to remove the extracted files.
func OpenPackage(path string) (*Package, error) {
	tempDir, err := os.MkdirTemp("", "hanzcraft-anki-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	pkg := &Package{
		path:    path,
		tempDir: tempDir,
		Models:  make(map[int64]*Model),
		Decks:   make(map[int64]*Deck),
	}

	if err := pkg.extract(); err != nil {
		pkg.Close()
		return nil, err
	}

	dbPath, err := pkg.collectionPath()
	if err != nil {
		pkg.Close()
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("opening collection: %w", err)
	}
	pkg.db = db

	if err := pkg.loadCol(); err != nil {
		pkg.Close()
		return nil, err
	}
	if err := pkg.loadNotes(); err != nil {
		pkg.Close()
		return nil, err
	}
	return pkg, nil
}

// collectionPath prefers collection.anki21, which newer Anki versions use
// while leaving a placeholder collection.anki2 beside it.
func (p *Package) collectionPath() (string, error) {
	for _, name := range []string{"collection.anki21", "collection.anki2"} {
		path := filepath.Join(p.tempDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	if _, err := os.Stat(filepath.Join(p.tempDir, "collection.anki21b")); err == nil {
		return "", fmt.Errorf("%s uses the compressed anki21b format; export it with \"support older Anki versions\" enabled", p.path)
	}
	return "", fmt.Errorf("%s contains no Anki collection", p.path)
}

func (p *Package) extract() error {
	r, err := zip.OpenReader(p.path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	root := filepath.Clean(p.tempDir) + string(os.PathSeparator)
	for _, f := range r.File {
		target := filepath.Join(p.tempDir, f.Name)
		if !strings.HasPrefix(target, root) {
			return fmt.Errorf("illegal file path in package: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (p *Package) loadCol() error {
	var models, decks string
	if err := p.db.QueryRow("SELECT models, decks FROM col").Scan(&models, &decks); err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var rawModels map[string]map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &rawModels); err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}
	for _, raw := range rawModels {
		m, err := parseModel(raw)
		if err != nil {
			continue
		}
		p.Models[m.ID] = m
	}

	var rawDecks map[string]Deck
	if err := json.Unmarshal([]byte(decks), &rawDecks); err != nil {
		return fmt.Errorf("parsing decks: %w", err)
	}
	for _, d := range rawDecks {
		d := d
		p.Decks[d.ID] = &d
	}
	return nil
}

func parseModel(raw map[string]json.RawMessage) (*Model, error) {
	m := &Model{raw: raw}
	if err := json.Unmarshal(raw["id"], &m.ID); err != nil {
		return nil, err
	}
	if name, ok := raw["name"]; ok {
		json.Unmarshal(name, &m.Name)
	}
	if err := json.Unmarshal(raw["flds"], &m.rawFields); err != nil {
		return nil, err
	}
	for _, rf := range m.rawFields {
		var f Field
		if err := json.Unmarshal(rf, &f); err != nil {
			return nil, err
		}
		m.Fields = append(m.Fields, f)
	}
	return m, nil
}

func (p *Package) loadNotes() error {
	rows, err := p.db.Query("SELECT id, mid, mod, flds, sfld, csum FROM notes ORDER BY id")
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			n    Note
			flds string
		)
		if err := rows.Scan(&n.ID, &n.ModelID, &n.Mod, &flds, &n.SFLD, &n.CSum); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}
		n.Fields = strings.Split(flds, fieldSep)
		p.Notes = append(p.Notes, &n)
	}
	return rows.Err()
}

// Model returns the note type of a note.
func (p *Package) Model(n *Note) *Model {
	return p.Models[n.ModelID]
}

// FieldIndex returns the position of the named field, matched case
// insensitively.
func (m *Model) FieldIndex(name string) (int, bool) {
	for _, f := range m.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Ord, true
		}
	}
	return 0, false
}

// FieldValue returns the value of the named field of a note.
func (p *Package) FieldValue(n *Note, name string) string {
	m := p.Model(n)
	if m == nil {
		return ""
	}
	i, ok := m.FieldIndex(name)
	if !ok || i >= len(n.Fields) {
		return ""
	}
	return n.Fields[i]
}

// DetectField returns the first field among the first notes whose value
// contains a Han character.
func (p *Package) DetectField() string {
	for i, n := range p.Notes {
		if i >= 10 {
			break
		}
		m := p.Model(n)
		if m == nil {
			continue
		}
		for _, f := range m.Fields {
			if f.Ord < len(n.Fields) && containsHan(n.Fields[f.Ord]) {
				return f.Name
			}
		}
	}
	return ""
}

// Summary describes the package contents.
func (p *Package) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Anki Package: %s\n", p.path)
	fmt.Fprintf(&sb, "  Decks: %d\n", len(p.Decks))
	for _, name := range sortedNames(p.Decks, func(d *Deck) string { return d.Name }) {
		fmt.Fprintf(&sb, "    - %s\n", name)
	}
	fmt.Fprintf(&sb, "  Note types: %d\n", len(p.Models))
	for _, m := range p.Models {
		fmt.Fprintf(&sb, "    - %s (%d fields)\n", m.Name, len(m.Fields))
	}
	fmt.Fprintf(&sb, "  Notes: %d\n", len(p.Notes))
	return sb.String()
}

func sortedNames[T any](m map[int64]T, name func(T) string) []string {
	names := make([]string, 0, len(m))
	for _, v := range m {
		names = append(names, name(v))
	}
	sort.Strings(names)
	return names
}

// Close removes the extracted files.
func (p *Package) Close() error {
	if p.db != nil {
		p.db.Close()
	}
	if p.tempDir != "" {
		return os.RemoveAll(p.tempDir)
	}
	return nil
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup and surrounding space from a field value.
func StripHTML(s string) string {
	s = htmlTag.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return strings.TrimSpace(s)
}

func containsHan(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
