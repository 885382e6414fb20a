package rapor

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var validate = newValidator()

// newValidator reports fields by their `col` tag so diagnostics name spreadsheet columns.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("col"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Layout is the fixed positional mapping of an import sheet. Columns[i] is
// spreadsheet column i+1; Decode receives exactly len(Columns) trimmed cells.
// The decoded record is validated with its `validate` struct tags.
type Layout[T any] struct {
	Name    string
	Columns []Column
	Decode  func(cells []string) T
}

// Candidate is a parsed record that has not been persisted yet. Row is the
// spreadsheet row number (the first data row is 2).
type Candidate[T any] struct {
	Row    int
	Record T
}

type ParseResult[T any] struct {
	Candidates []Candidate[T]
	// Skipped lists rows dropped because a required field was empty.
	Skipped []ParseError
}

// ParseSheet reads the first worksheet, skips the header row and fully empty
// rows, and decodes the rest in order. It fails only when the workbook cannot be read.
func ParseSheet[T any](data []byte, layout Layout[T]) (*ParseResult[T], error) {
	rows, err := readFirstSheet(data)
	if err != nil {
		return nil, err
	}
	res := &ParseResult[T]{}
	for i := 1; i < len(rows); i++ {
		rowNum := i + 1
		cells := make([]string, len(layout.Columns))
		blank := true
		for c := range cells {
			if c < len(rows[i]) {
				cells[c] = strings.TrimSpace(rows[i][c])
			}
			if cells[c] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rec := layout.Decode(cells)
		if err := validate.Struct(rec); err != nil {
			res.Skipped = append(res.Skipped, rowIssue(rowNum, err))
			continue
		}
		res.Candidates = append(res.Candidates, Candidate[T]{Row: rowNum, Record: rec})
	}
	return res, nil
}

func rowIssue(row int, err error) ParseError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ParseError{Row: row, Message: err.Error()}
	}
	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
	}
	if len(missing) > 0 {
		return ParseError{Row: row, Field: strings.Join(missing, ", "), Message: "required field is empty"}
	}
	return ParseError{Row: row, Field: strings.Join(invalid, ", "), Message: "invalid value"}
}

func readFirstSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %s", sheets[0])
	}
	return rows, nil
}

// NormalizeDate converts D/M/YYYY into YYYY-MM-DD, zero-padding day and month.
// Any other input is returned unchanged.
func NormalizeDate(s string) string {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "-" + pad2(parts[1]) + "-" + pad2(parts[0])
}

func pad2(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}
