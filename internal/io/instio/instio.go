// Package instio imports institutions from CSV rows, including their place
// in the geographic and administrative hierarchy.
package instio

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/oeai/oeaimport/internal/ent/label"
	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/internal/io/placeio"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

// Columns of institution sources.
const (
	ColLabel          = "skos:prefLabel @de"
	ColAbbreviation   = "Abkürzen"
	ColEasydb4        = "easydb4_reference"
	ColHierarchy      = "hierarchy"
	ColSystemObjectID = "_system_object_id"
)

// URIColumns hold external identifiers of an institution.
var URIColumns = []string{"Link-exact", "Link-related"}

type instio struct {
	st   store.Store
	log  *slog.Logger
	cols []label.Column
	plc  *placeio.Resolver
}

// Option changes settings of the institution importer.
type Option func(*instio)

// OptLabelColumns sets the label columns to extract alternative labels
// from.
func OptLabelColumns(cols []label.Column) Option {
	return func(i *instio) {
		i.cols = cols
	}
}

// New creates an institution importer. Messages about imported rows go to
// log.
func New(st store.Store, log *slog.Logger, opts ...Option) row.Importer {
	res := instio{
		st:   st,
		log:  log,
		cols: label.InstitutionColumns,
		plc:  placeio.New(st),
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

// Kind implements row.Importer.
func (i *instio) Kind() model.Kind {
	return model.KindInstitution
}

// ImportRow implements row.Importer. Every call creates a new institution.
// If placement fails, the institution stays in the store.
func (i *instio) ImportRow(ctx context.Context, r row.Row) (model.Entity, error) {
	inst, plc, err := i.importRow(ctx, r)
	if err != nil {
		i.log.Error("Error importing institution", "row", r.Index, "error", err)
		return nil, row.Wrap(model.KindInstitution, err)
	}

	args := []any{"label", inst.Label, "id", inst.ID}
	if plc.City != nil {
		args = append(args, "city", plc.City.Label)
	}
	if plc.Parent != nil {
		args = append(args, "parent", plc.Parent.Label)
	}
	if plc.Country != nil {
		args = append(args, "country", plc.Country.Label)
	}
	i.log.Info("Created institution", args...)
	return inst, nil
}

func (i *instio) importRow(
	ctx context.Context,
	r row.Row,
) (model.Institution, placeio.Placement, error) {
	var inst model.Institution
	var plc placeio.Placement
	err := row.Require(model.KindInstitution, r, ColLabel)
	if err != nil {
		return inst, plc, err
	}

	inst = model.Institution{
		Label:            r.Value(ColLabel),
		AltLabels:        label.Extract(r, i.cols),
		Abbreviation:     optional(r, ColAbbreviation),
		Easydb4Reference: optional(r, ColEasydb4),
		Hierarchy:        optional(r, ColHierarchy),
		SystemObjectID:   optional(r, ColSystemObjectID),
	}
	inst, err = i.st.CreateInstitution(ctx, inst)
	if err != nil {
		return inst, plc, err
	}

	for _, col := range URIColumns {
		if !r.Has(col) {
			continue
		}
		if _, err = i.st.AttachURI(ctx, inst, r.Value(col)); err != nil {
			return inst, plc, &row.Error{Kind: model.KindInstitution, Field: col, Err: err}
		}
	}

	plc, err = i.plc.Resolve(ctx, r, inst)
	if err != nil {
		return inst, plc, err
	}
	return inst, plc, nil
}

func optional(r row.Row, col string) sql.NullString {
	if !r.Has(col) {
		return sql.NullString{}
	}
	return sql.NullString{String: r.Value(col), Valid: true}
}
