// Package placeio resolves where an institution is located. It reads the
// country and two "broader" hierarchy columns of an institution row and links
// the institution to places and to a parent institution.
package placeio

import (
	"context"
	"fmt"
	"strings"

	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/pkg/ent/model"
	"golang.org/x/text/cases"
)

// Columns of institution sources used for placement.
const (
	ColLand   = "Land"
	ColLevel1 = "skos:broader name1"
	ColLevel2 = "skos:broader name2"
)

// Placement describes what was resolved for one institution.
type Placement struct {
	// Country is the place from the Land column.
	Country *model.Place

	// City is the place the institution, or its parent, is located in.
	City *model.Place

	// Parent is the intermediate institution that contains the
	// institution.
	Parent *model.Institution

	Contains  *model.Contains
	LocatedIn *model.LocatedIn
	Includes  *model.Includes
}

// Resolver links institutions to places.
type Resolver struct {
	st   store.Store
	fold cases.Caser
}

// New creates a Resolver on top of a store.
func New(st store.Store) *Resolver {
	return &Resolver{st: st, fold: cases.Fold()}
}

// Resolve creates places, the parent institution and edges for inst out of
// r. Both broader name columns must exist in r, empty values are fine.
func (rs *Resolver) Resolve(
	ctx context.Context,
	r row.Row,
	inst model.Institution,
) (Placement, error) {
	var res Placement
	var err error

	lev1, ok := r.Get(ColLevel1)
	if !ok {
		return res, &row.Error{Kind: model.KindInstitution, Field: ColLevel1, Err: row.ErrMissingColumn}
	}
	lev2, ok := r.Get(ColLevel2)
	if !ok {
		return res, &row.Error{Kind: model.KindInstitution, Field: ColLevel2, Err: row.ErrMissingColumn}
	}

	if land := strings.TrimSpace(r.Value(ColLand)); land != "" {
		var country model.Place
		country, _, err = rs.st.GetOrCreatePlace(ctx, land, model.FeatureCountry)
		if err != nil {
			return res, fmt.Errorf("country %q: %w", land, err)
		}
		res.Country = &country
	}

	lev1, lev2 = strings.TrimSpace(lev1), strings.TrimSpace(lev2)
	var cityLabel string
	switch {
	case rs.same(lev1, lev2):
		cityLabel = lev1
	case lev1 != "" && lev2 != "":
		parent, _, err := rs.st.GetOrCreateInstitution(ctx, lev1)
		if err != nil {
			return res, fmt.Errorf("parent institution %q: %w", lev1, err)
		}
		res.Parent = &parent
		cityLabel = lev2
	case lev1 != "":
		cityLabel = lev1
	default:
		cityLabel = lev2
	}

	if cityLabel != "" {
		city, _, err := rs.st.GetOrCreatePlace(ctx, cityLabel, "")
		if err != nil {
			return res, fmt.Errorf("city %q: %w", cityLabel, err)
		}
		res.City = &city
	}

	if res.Parent != nil {
		cnt, err := rs.st.CreateContains(ctx, *res.Parent, inst)
		if err != nil {
			return res, err
		}
		res.Contains = &cnt
		loc, err := rs.st.CreateLocatedIn(ctx, *res.Parent, *res.City)
		if err != nil {
			return res, err
		}
		res.LocatedIn = &loc
	} else if res.City != nil {
		loc, err := rs.st.CreateLocatedIn(ctx, inst, *res.City)
		if err != nil {
			return res, err
		}
		res.LocatedIn = &loc
	}

	if res.Country != nil && res.City != nil {
		inc, _, err := rs.st.GetOrCreateIncludes(ctx, *res.Country, *res.City)
		if err != nil {
			return res, err
		}
		res.Includes = &inc
	}
	return res, nil
}

// same compares hierarchy names ignoring case.
func (rs *Resolver) same(a, b string) bool {
	return rs.fold.String(a) == rs.fold.String(b)
}
