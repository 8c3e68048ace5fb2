package oeaimport

import (
	"context"
	"log/slog"

	"github.com/oeai/oeaimport/internal/ent/batch"
	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/pkg/config"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

var (
	// Version of oeaimport.
	Version = "v0.1.0"

	// Build timestamp.
	Build = "n/a"
)

// oeaimport is an implementation of OEAImport interface.
type oeaimport struct {
	cfg config.Config
}

// New creates a new instance of OEAImport.
func New(
	cfg config.Config,
) OEAImport {
	res := oeaimport{
		cfg: cfg}
	return &res
}

// Migrate creates database tables.
func (o *oeaimport) Migrate(m model.Model) error {
	slog.Info("Running database migrations", "backend", o.cfg.Backend)
	return m.Migrate()
}

// Import imports a CSV file row by row.
func (o *oeaimport) Import(
	ctx context.Context,
	r batch.Runner,
	src string,
	imp row.Importer,
) (batch.Summary, error) {
	return r.Run(ctx, src, imp)
}
