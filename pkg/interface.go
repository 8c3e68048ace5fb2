package oeaimport

import (
	"context"

	"github.com/oeai/oeaimport/internal/ent/batch"
	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

// OEAImport is an interface for importing CSV exports into the knowledge
// base.
type OEAImport interface {
	// Migrate creates or updates the database schema.
	Migrate(model.Model) error

	// Import imports every row of the src file using the importer.
	Import(
		ctx context.Context,
		r batch.Runner,
		src string,
		imp row.Importer,
	) (batch.Summary, error)
}
