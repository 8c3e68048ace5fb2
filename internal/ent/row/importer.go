package row

import (
	"context"
	"errors"
	"fmt"

	"github.com/oeai/oeaimport/pkg/ent/model"
)

var (
	// ErrMissingField means a required column is absent or empty.
	ErrMissingField = errors.New("missing required field")

	// ErrMissingColumn means a structural column is absent from the row.
	ErrMissingColumn = errors.New("missing column")

	// ErrBadScope means a life span column cannot be split into birth and
	// death.
	ErrBadScope = errors.New("cannot split scope")
)

// Importer turns one CSV row into a new entity and its relations.
type Importer interface {
	// Kind is the kind of entities the importer creates.
	Kind() model.Kind

	// ImportRow imports r. It returns the created entity, or an *Error.
	ImportRow(ctx context.Context, r Row) (model.Entity, error)
}

// Error is a row-level import failure. It never aborts a batch.
type Error struct {
	// Kind is the kind of entity that was imported.
	Kind model.Kind

	// Field is the column that caused the failure, if known.
	Field string

	Err error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row import failed: %s: %v: %s", e.Kind, e.Err, e.Field)
	}
	return fmt.Sprintf("row import failed: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap normalizes err into an *Error. Errors that already are *Error keep
// their field.
func Wrap(kind model.Kind, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return re
	}
	return &Error{Kind: kind, Err: err}
}

// Require checks that all cols are present and not empty.
func Require(kind model.Kind, r Row, cols ...string) error {
	for _, col := range cols {
		if !r.Has(col) {
			return &Error{Kind: kind, Field: col, Err: ErrMissingField}
		}
	}
	return nil
}
