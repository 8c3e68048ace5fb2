// Package personio imports persons from CSV rows.
package personio

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oeai/oeaimport/internal/ent/label"
	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

// Columns of person sources.
const (
	ColLabel        = "skos:prefLabel @de"
	ColOccupation   = "skos:broader occupation"
	ColScope        = "skos:scope"
	ColType         = "skos:broader"
	ColPeriod       = "skos:broader time"
	ColPeriodDetail = "skos:broader time02"
	ColExactMatch   = "skos:exactMatch"
)

type personio struct {
	st   store.Store
	log  *slog.Logger
	cols []label.Column
}

// Option changes settings of the person importer.
type Option func(*personio)

// OptLabelColumns sets the label columns to extract alternative labels
// from.
func OptLabelColumns(cols []label.Column) Option {
	return func(p *personio) {
		p.cols = cols
	}
}

// New creates a person importer. Messages about imported rows go to log.
func New(st store.Store, log *slog.Logger, opts ...Option) row.Importer {
	res := personio{st: st, log: log, cols: label.PersonColumns}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

// Kind implements row.Importer.
func (p *personio) Kind() model.Kind {
	return model.KindPerson
}

// ImportRow implements row.Importer. Every call creates a new person.
func (p *personio) ImportRow(ctx context.Context, r row.Row) (model.Entity, error) {
	prs, err := p.importRow(ctx, r)
	if err != nil {
		p.log.Error("Error importing person", "row", r.Index, "error", err)
		return nil, row.Wrap(model.KindPerson, err)
	}
	p.log.Info("Created person", "label", prs.Label, "id", prs.ID)
	return prs, nil
}

func (p *personio) importRow(ctx context.Context, r row.Row) (model.Person, error) {
	var prs model.Person
	err := row.Require(model.KindPerson, r, ColLabel)
	if err != nil {
		return prs, err
	}

	prs = model.Person{
		Label:        r.Value(ColLabel),
		PersonType:   r.Value(ColType),
		// a missing type column imports the person as not historical
		Historical:   r.Value(ColType) == model.HistoricalPerson,
		Period:       optional(r, ColPeriod),
		PeriodDetail: optional(r, ColPeriodDetail),
		AltLabels:    label.Extract(r, p.cols),
	}
	p.checkCategories(r.Index, prs)

	if r.Has(ColOccupation) {
		prof, _, err := p.st.GetOrCreateProfession(ctx, r.Value(ColOccupation))
		if err != nil {
			return prs, &row.Error{Kind: model.KindPerson, Field: ColOccupation, Err: err}
		}
		prs.ProfessionID = sql.NullString{String: prof.ID, Valid: true}
	}

	if r.Has(ColScope) {
		prs.DateOfBirth, prs.DateOfDeath, err = lifeSpan(r.Value(ColScope))
		if err != nil {
			return prs, &row.Error{Kind: model.KindPerson, Field: ColScope, Err: err}
		}
	}

	prs, err = p.st.CreatePerson(ctx, prs)
	if err != nil {
		return prs, err
	}

	if r.Has(ColExactMatch) {
		_, err = p.st.AttachURI(ctx, prs, r.Value(ColExactMatch))
		if err != nil {
			return prs, &row.Error{Kind: model.KindPerson, Field: ColExactMatch, Err: err}
		}
	}
	return prs, nil
}

// lifeSpan splits "birth-death" into two dates.
func lifeSpan(scope string) (model.FuzzyDate, model.FuzzyDate, error) {
	var birth, death model.FuzzyDate
	parts := strings.Split(scope, "-")
	if len(parts) != 2 {
		return birth, death, fmt.Errorf("%w: %q needs exactly one '-'", row.ErrBadScope, scope)
	}
	birth, err := model.NewFuzzyDate(parts[0])
	if err != nil {
		return birth, death, fmt.Errorf("date of birth: %w", err)
	}
	death, err = model.NewFuzzyDate(parts[1])
	if err != nil {
		return birth, death, fmt.Errorf("date of death: %w", err)
	}
	return birth, death, nil
}

// checkCategories warns about categorical values outside of known lists.
// Such values are still imported.
func (p *personio) checkCategories(idx int, prs model.Person) {
	if !model.Known(model.PersonTypes, prs.PersonType) {
		p.log.Warn("Unknown person type", "row", idx, "value", prs.PersonType)
	}
	if !model.Known(model.Periods, prs.Period.String) {
		p.log.Warn("Unknown period", "row", idx, "value", prs.Period.String)
	}
	if !model.Known(model.PeriodDetails, prs.PeriodDetail.String) {
		p.log.Warn("Unknown period detail", "row", idx, "value", prs.PeriodDetail.String)
	}
}

func optional(r row.Row, col string) sql.NullString {
	if !r.Has(col) {
		return sql.NullString{}
	}
	return sql.NullString{String: r.Value(col), Valid: true}
}
