package anki

import (
	"archive/zip"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
)

// Fields added to annotated note types.
const (
	FieldPinyin  = "HanzCraft_Pinyin"
	FieldMeaning = "HanzCraft_Meaning"
	FieldUsage   = "HanzCraft_Usage"
	FieldGrid    = "HanzCraft_Grid"
)

// Fields lists the annotation fields in the order they are appended.
var Fields = []string{FieldPinyin, FieldMeaning, FieldUsage, FieldGrid}

// AnnotateResult reports what Annotate changed.
type AnnotateResult struct {
	Notes   int      // notes filled in
	Models  []string // note types that gained fields
	Missing []string // collected characters with no matching note
}

// Annotate fills the HanzCraft fields of every note whose field value is a
// collected character. Note types of matching notes gain the fields if
// they lack them.
func (p *Package) Annotate(items []hanzcraft.Composition, field string) (AnnotateResult, error) {
	var res AnnotateResult

	byChar := make(map[string]hanzcraft.Composition, len(items))
	for _, c := range items {
		byChar[c.Character] = c
	}
	matched := make(map[string]bool)
	extended := make(map[int64]bool)

	for _, n := range p.Notes {
		c, ok := byChar[StripHTML(p.FieldValue(n, field))]
		if !ok {
			continue
		}
		m := p.Model(n)
		if m == nil {
			continue
		}
		if !extended[m.ID] {
			if m.addFields(Fields) {
				res.Models = append(res.Models, m.Name)
			}
			extended[m.ID] = true
		}
		if err := p.fill(n, c); err != nil {
			return res, err
		}
		matched[c.Character] = true
		res.Notes++
	}

	// Every note of an extended type needs the new fields, matched or not.
	for _, n := range p.Notes {
		if extended[n.ModelID] {
			p.pad(n)
		}
	}

	for _, c := range items {
		if !matched[c.Character] {
			res.Missing = append(res.Missing, c.Character)
		}
	}
	return res, nil
}

// addFields appends the named fields that the model lacks and reports
// whether any were added.
func (m *Model) addFields(names []string) bool {
	added := false
	for _, name := range names {
		if _, ok := m.FieldIndex(name); ok {
			continue
		}
		f := Field{Name: name, Ord: len(m.Fields), Font: "Arial", Size: 20, Media: []string{}}
		raw, _ := json.Marshal(f)
		m.Fields = append(m.Fields, f)
		m.rawFields = append(m.rawFields, raw)
		added = true
	}
	return added
}

// pad appends empty values until n has a value for every field of its
// note type.
func (p *Package) pad(n *Note) {
	m := p.Model(n)
	if m == nil || len(n.Fields) >= len(m.Fields) {
		return
	}
	for len(n.Fields) < len(m.Fields) {
		n.Fields = append(n.Fields, "")
	}
	n.Mod = time.Now().Unix()
	n.dirty = true
}

func (p *Package) fill(n *Note, c hanzcraft.Composition) error {
	m := p.Model(n)
	p.pad(n)

	values := map[string]string{
		FieldPinyin:  c.Pinyin,
		FieldMeaning: c.Meaning,
		FieldUsage:   c.Usage,
		FieldGrid:    GridHTML(c.Components),
	}
	for name, v := range values {
		i, ok := m.FieldIndex(name)
		if !ok {
			return fmt.Errorf("note type %s has no field %s", m.Name, name)
		}
		n.Fields[i] = v
	}
	n.Mod = time.Now().Unix()
	n.dirty = true
	return nil
}

// GridHTML renders the four slots as a 2x2 table for a card template.
func GridHTML(s hanzcraft.Slots) string {
	cell := func(v string) string {
		if v == "" {
			v = "&nbsp;"
		}
		return "<td>" + v + "</td>"
	}
	return `<table class="hanzcraft-grid">` +
		"<tr>" + cell(s[hanzcraft.TopLeft]) + cell(s[hanzcraft.TopRight]) + "</tr>" +
		"<tr>" + cell(s[hanzcraft.BottomLeft]) + cell(s[hanzcraft.BottomRight]) + "</tr>" +
		"</table>"
}

// SaveAs writes the collection changes and zips the package to path.
func (p *Package) SaveAs(path string) error {
	if err := p.writeModels(); err != nil {
		return err
	}
	if err := p.writeNotes(); err != nil {
		return err
	}
	// Release the file so the zip below sees a consistent database.
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("closing collection: %w", err)
	}
	p.db = nil

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	zw := zip.NewWriter(out)

	err = filepath.Walk(p.tempDir, func(file string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(p.tempDir, file)
		if err != nil {
			return err
		}
		// Skip SQLite side files left by the driver.
		if strings.HasSuffix(rel, "-journal") || strings.HasSuffix(rel, "-wal") || strings.HasSuffix(rel, "-shm") {
			return nil
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		out.Close()
		return fmt.Errorf("writing package: %w", err)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finishing package: %w", err)
	}
	return out.Close()
}

func (p *Package) writeModels() error {
	all := make(map[string]map[string]json.RawMessage, len(p.Models))
	for id, m := range p.Models {
		flds, err := json.Marshal(m.rawFields)
		if err != nil {
			return fmt.Errorf("marshaling fields of %s: %w", m.Name, err)
		}
		m.raw["flds"] = flds
		all[strconv.FormatInt(id, 10)] = m.raw
	}

	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshaling models: %w", err)
	}
	if _, err := p.db.Exec("UPDATE col SET models = ?, mod = ?", string(data), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("updating models: %w", err)
	}
	return nil
}

func (p *Package) writeNotes() error {
	for _, n := range p.Notes {
		if !n.dirty {
			continue
		}
		n.CSum = checksum(n.SFLD)
		_, err := p.db.Exec("UPDATE notes SET mod = ?, usn = -1, flds = ?, csum = ? WHERE id = ?",
			n.Mod, strings.Join(n.Fields, fieldSep), n.CSum, n.ID)
		if err != nil {
			return fmt.Errorf("updating note %d: %w", n.ID, err)
		}
		n.dirty = false
	}
	return nil
}

// checksum is Anki's duplicate-detection value: the first 8 hex digits of
// the SHA-1 of the stripped sort field.
func checksum(sfld string) int64 {
	sum := sha1.Sum([]byte(StripHTML(sfld)))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return v
}
