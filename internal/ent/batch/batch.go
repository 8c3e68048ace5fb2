package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/oeai/oeaimport/internal/ent/row"
)

var (
	// ErrSourceMissing is a fatal error: the source file does not exist.
	ErrSourceMissing = errors.New("file does not exist")

	// ErrSourceRead is a fatal error: the source cannot be read or decoded.
	ErrSourceRead = errors.New("error reading CSV file")
)

// Runner imports all rows of a CSV source with a row importer. Row-level
// failures are counted and logged, they do not stop the run. Fatal
// failures end the run with an error.
type Runner interface {
	Run(ctx context.Context, src string, imp row.Importer) (Summary, error)
}

// Summary contains counters of a finished run.
type Summary struct {
	// Total is the number of records found during the counting pass.
	Total int

	// Processed is the number of rows handed to the importer.
	Processed int

	// Success is the number of rows imported without error.
	Success int

	// Errors is the number of rows that failed.
	Errors int
}

func (s Summary) String() string {
	return fmt.Sprintf("Import completed. Processed: %d, Success: %d, Errors: %d",
		s.Processed, s.Success, s.Errors)
}
