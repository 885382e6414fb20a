package report

import (
	"github.com/pkg/errors"

	"github.com/nikitaxru/rapor/repository"
)

var (
	// ErrNotFound means the student, class or teacher a report is about does not exist.
	ErrNotFound = repository.ErrNotFound
	// ErrEmptyResultSet means the entity exists but has no grades or attendance for the period.
	ErrEmptyResultSet = errors.New("no records for the requested period")
	// ErrInvalidParams rejects malformed report parameters before any lookup.
	ErrInvalidParams = errors.New("invalid report parameters")
)
