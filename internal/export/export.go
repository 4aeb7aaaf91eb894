// Package export writes the collection to spreadsheet formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/xuri/excelize/v2"
)

// Header is the column layout shared by every format.
var Header = []string{
	"character", "pinyin", "meaning", "usage",
	"top_left", "top_right", "bottom_left", "bottom_right",
}

const sheet = "Collection"

func record(c hanzcraft.Composition) []string {
	return []string{
		c.Character, c.Pinyin, c.Meaning, c.Usage,
		c.Components[hanzcraft.TopLeft], c.Components[hanzcraft.TopRight],
		c.Components[hanzcraft.BottomLeft], c.Components[hanzcraft.BottomRight],
	}
}

// WriteCSV writes one row per composition after a header row.
func WriteCSV(w io.Writer, items []hanzcraft.Composition) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, c := range items {
		if err := cw.Write(record(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the compositions to a new workbook at path.
func WriteXLSX(path string, items []hanzcraft.Composition) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toRow(Header)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, toRow(record(c))); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// WriteFile picks the format from the file extension: .xlsx for a
// workbook, anything else for CSV.
func WriteFile(path string, items []hanzcraft.Composition) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteXLSX(path, items)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, items); err != nil {
		f.Close()
		return fmt.Errorf("writing csv: %w", err)
	}
	return f.Close()
}

func toRow(fields []string) []interface{} {
	row := make([]interface{}, len(fields))
	for i, v := range fields {
		row[i] = v
	}
	return row
}
