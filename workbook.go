package rapor

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// HeaderFill is the background of the header row of every table sheet.
const HeaderFill = "#E6F3FF"

// Column describes one table column: header label, row key and display width.
type Column struct {
	Header string
	Key    string
	Width  float64
}

// Row is a flat record keyed by Column.Key. Values are written as text.
type Row map[string]string

// Workbook builds an .xlsx file sheet by sheet.
type Workbook struct {
	f      *excelize.File
	sheets int
}

func NewWorkbook() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

// addSheet renames the default sheet on first use and appends afterwards.
func (w *Workbook) addSheet(name string) error {
	if w.sheets == 0 {
		if err := w.f.SetSheetName(w.f.GetSheetName(0), name); err != nil {
			return err
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return err
	}
	w.sheets++
	return nil
}

// AddTable writes a header row (bold, filled) followed by one row per record.
// A key missing from a row yields an empty cell.
func (w *Workbook) AddTable(sheet string, columns []Column, rows []Row) error {
	if len(columns) == 0 {
		return errors.Errorf("sheet %s: no columns", sheet)
	}
	if err := w.addSheet(sheet); err != nil {
		return errors.Wrapf(err, "sheet %s", sheet)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.Header
	}
	if err := w.f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrapf(err, "sheet %s: header", sheet)
	}

	style, err := w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{HeaderFill}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, "header style")
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := w.f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return errors.Wrapf(err, "sheet %s: header style", sheet)
	}

	for i, c := range columns {
		if c.Width <= 0 {
			continue
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := w.f.SetColWidth(sheet, name, name, c.Width); err != nil {
			return errors.Wrapf(err, "sheet %s: width", sheet)
		}
	}

	for r, row := range rows {
		vals := make([]interface{}, len(columns))
		for i, c := range columns {
			vals[i] = row[c.Key]
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := w.f.SetSheetRow(sheet, cell, &vals); err != nil {
			return errors.Wrapf(err, "sheet %s: row %d", sheet, r+2)
		}
	}
	return nil
}

// AddNotes writes an instruction sheet: a bold title, a blank row, then one line per row.
func (w *Workbook) AddNotes(sheet, title string, lines []string) error {
	if err := w.addSheet(sheet); err != nil {
		return errors.Wrapf(err, "sheet %s", sheet)
	}
	if err := w.f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	style, err := w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return errors.Wrap(err, "title style")
	}
	if err := w.f.SetCellStyle(sheet, "A1", "A1", style); err != nil {
		return err
	}
	for i, line := range lines {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := w.f.SetCellValue(sheet, cell, line); err != nil {
			return err
		}
	}
	return nil
}

// Bytes serializes the workbook with the first sheet active.
func (w *Workbook) Bytes() ([]byte, error) {
	w.f.SetActiveSheet(0)
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write xlsx")
	}
	return buf.Bytes(), nil
}

func (w *Workbook) Close() error { return w.f.Close() }

// BuildTable is the single-sheet shortcut for NewWorkbook + AddTable + Bytes.
func BuildTable(sheet string, columns []Column, rows []Row) ([]byte, error) {
	w := NewWorkbook()
	defer w.Close()
	if err := w.AddTable(sheet, columns, rows); err != nil {
		return nil, err
	}
	return w.Bytes()
}

// ReadHeaders returns the first row of the first sheet.
func ReadHeaders(data []byte) ([]string, error) {
	rows, err := readFirstSheet(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
