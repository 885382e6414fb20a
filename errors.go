package rapor

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTemplateNotFound is returned by Renderer.Render for an unregistered template id.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrNoWorksheet means the uploaded workbook has no sheet to read.
	ErrNoWorksheet = errors.New("worksheet not found")
)

// MissingPlaceholderError is returned when a placeholder or section has no value in
// the render context. Rendering never substitutes an empty string for a missing key.
type MissingPlaceholderError struct {
	Template string
	Name     string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template %s: no value for {%s}", e.Template, e.Name)
}

// TemplateSyntaxError reports unbalanced or malformed tags; Offset is a byte offset
// into the document body.
type TemplateSyntaxError struct {
	Template string
	Offset   int
	Msg      string
}

func (e *TemplateSyntaxError) Error() string {
	return fmt.Sprintf("template %s: offset %d: %s", e.Template, e.Offset, e.Msg)
}

// ParseError describes a spreadsheet row that did not yield a candidate record.
type ParseError struct {
	Row     int
	Field   string
	Message string
}

func (e ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
	}
	return fmt.Sprintf("Row %d: %s: %s", e.Row, e.Field, e.Message)
}
