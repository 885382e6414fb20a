// Package importer persists spreadsheet rows one by one and tallies the outcome.
package importer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nikitaxru/rapor"
	"github.com/nikitaxru/rapor/repository"
)

// Outcome is the tally of one import. Errors has one "Row n: message" entry per
// failed create; Skipped lists rows the parser dropped and is not counted in
// Success or Failed.
type Outcome struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
	Skipped []string `json:"skipped"`
}

func (o Outcome) Summary() string {
	msg := fmt.Sprintf("Import finished. %d succeeded, %d failed.", o.Success, o.Failed)
	if n := len(o.Skipped); n > 0 {
		msg += fmt.Sprintf(" %d rows skipped.", n)
	}
	return msg
}

type Importer struct {
	students repository.StudentRepository
	logger   *zap.Logger
}

func New(students repository.StudentRepository, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{students: students, logger: logger}
}

// ImportStudents parses data with StudentLayout and creates each candidate in
// row order. A failed row is recorded and the loop moves on. The returned error
// is non-nil only when the workbook cannot be parsed or ctx is done.
func (im *Importer) ImportStudents(ctx context.Context, data []byte) (*Outcome, error) {
	parsed, err := rapor.ParseSheet(data, StudentLayout)
	if err != nil {
		return nil, errors.Wrap(err, "parse student import")
	}
	out := &Outcome{Errors: []string{}, Skipped: []string{}}
	for _, p := range parsed.Skipped {
		out.Skipped = append(out.Skipped, p.Error())
	}
	for _, c := range parsed.Candidates {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := im.create(ctx, c.Record); err != nil {
			out.Failed++
			out.Errors = append(out.Errors, rapor.ParseError{Row: c.Row, Message: err.Error()}.Error())
			im.logger.Warn("import row failed",
				zap.Int("row", c.Row),
				zap.String("student_id", c.Record.StudentID),
				zap.Error(err))
			continue
		}
		out.Success++
	}
	im.logger.Info("student import finished",
		zap.Int("success", out.Success),
		zap.Int("failed", out.Failed),
		zap.Int("skipped", len(out.Skipped)))
	return out, nil
}

func (im *Importer) create(ctx context.Context, row StudentRow) error {
	s, err := row.Student()
	if err != nil {
		return err
	}
	return im.students.Create(ctx, &s)
}
