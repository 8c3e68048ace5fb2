// Package pgio implements store.Store on PostgreSQL. Tables are created by
// pkg/io/modelio.
package pgio

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/pkg/config"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

type pgio struct {
	db *pgxpool.Pool
}

// New connects to PostgreSQL and returns a Store.
func New(ctx context.Context, cfg config.Config) (store.Store, error) {
	db, err := pgxConn(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &pgio{db: db}, nil
}

func (p *pgio) CreatePerson(
	ctx context.Context,
	prs model.Person,
) (model.Person, error) {
	prs.ID = store.NewID()
	q := `
INSERT INTO persons
  (id, label, historical, profession_id, person_type, period, period_detail,
   date_of_birth_raw, date_of_birth_sort, date_of_birth_from, date_of_birth_to,
   date_of_death_raw, date_of_death_sort, date_of_death_from, date_of_death_to,
   alt_labels, created_at)
  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
          $16, now())
  RETURNING created_at`
	b, d := prs.DateOfBirth, prs.DateOfDeath
	err := p.db.QueryRow(ctx, q,
		prs.ID, prs.Label, prs.Historical, prs.ProfessionID, prs.PersonType,
		prs.Period, prs.PeriodDetail,
		b.Raw, b.Sort, b.From, b.To,
		d.Raw, d.Sort, d.From, d.To,
		prs.AltLabels,
	).Scan(&prs.CreatedAt)
	if err != nil {
		return prs, fmt.Errorf("pgio: create person: %w", err)
	}
	return prs, nil
}

func (p *pgio) CreateInstitution(
	ctx context.Context,
	inst model.Institution,
) (model.Institution, error) {
	inst.ID = store.NewID()
	err := p.insertInstitution(ctx, &inst)
	if err != nil {
		return inst, fmt.Errorf("pgio: create institution: %w", err)
	}
	return inst, nil
}

func (p *pgio) insertInstitution(ctx context.Context, inst *model.Institution) error {
	q := `
INSERT INTO institutions
  (id, label, hierarchy, abbreviation, easydb4_reference, system_object_id,
   alt_labels, created_at)
  VALUES ($1, $2, $3, $4, $5, $6, $7, now())
  RETURNING created_at`
	return p.db.QueryRow(ctx, q,
		inst.ID, inst.Label, inst.Hierarchy, inst.Abbreviation,
		inst.Easydb4Reference, inst.SystemObjectID, inst.AltLabels,
	).Scan(&inst.CreatedAt)
}

func (p *pgio) GetOrCreateInstitution(
	ctx context.Context,
	label string,
) (model.Institution, bool, error) {
	var inst model.Institution
	label, err := store.NormLabel(label)
	if err != nil {
		return inst, false, err
	}

	q := `
SELECT id, label, hierarchy, abbreviation, easydb4_reference,
       system_object_id, alt_labels, created_at
  FROM institutions
  WHERE label = $1
  ORDER BY created_at, id
  LIMIT 1`
	err = p.db.QueryRow(ctx, q, label).Scan(
		&inst.ID, &inst.Label, &inst.Hierarchy, &inst.Abbreviation,
		&inst.Easydb4Reference, &inst.SystemObjectID, &inst.AltLabels,
		&inst.CreatedAt,
	)
	if err == nil {
		return inst, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return inst, false, fmt.Errorf("pgio: find institution %q: %w", label, err)
	}

	inst = model.Institution{ID: store.NewID(), Label: label}
	if err = p.insertInstitution(ctx, &inst); err != nil {
		return inst, false, fmt.Errorf("pgio: create institution %q: %w", label, err)
	}
	return inst, true, nil
}

func (p *pgio) GetOrCreatePlace(
	ctx context.Context,
	label, featureCode string,
) (model.Place, bool, error) {
	var plc model.Place
	label, err := store.NormLabel(label)
	if err != nil {
		return plc, false, err
	}
	id := store.LookupID(model.KindPlace, label)

	q := `
INSERT INTO places (id, label, feature_code, created_at)
  VALUES ($1, $2, $3, now())
  ON CONFLICT DO NOTHING`
	tag, err := p.db.Exec(ctx, q, id, label, featureCode)
	if err != nil {
		return plc, false, fmt.Errorf("pgio: create place %q: %w", label, err)
	}

	q = `SELECT id, label, feature_code, created_at FROM places WHERE id = $1`
	err = p.db.QueryRow(ctx, q, id).Scan(
		&plc.ID, &plc.Label, &plc.FeatureCode, &plc.CreatedAt,
	)
	if err != nil {
		return plc, false, fmt.Errorf("pgio: get place %q: %w", label, err)
	}
	return plc, tag.RowsAffected() == 1, nil
}

func (p *pgio) GetOrCreateProfession(
	ctx context.Context,
	label string,
) (model.Profession, bool, error) {
	var prof model.Profession
	label, err := store.NormLabel(label)
	if err != nil {
		return prof, false, err
	}
	prof = model.Profession{
		ID:    store.LookupID(model.KindProfession, label),
		Label: label,
	}

	q := `
INSERT INTO professions (id, label)
  VALUES ($1, $2)
  ON CONFLICT DO NOTHING`
	tag, err := p.db.Exec(ctx, q, prof.ID, prof.Label)
	if err != nil {
		return prof, false, fmt.Errorf("pgio: create profession %q: %w", label, err)
	}
	return prof, tag.RowsAffected() == 1, nil
}

func (p *pgio) AttachURI(
	ctx context.Context,
	owner model.Entity,
	uri string,
) (model.URI, error) {
	res := model.URI{
		ID:        store.NewID(),
		OwnerKind: owner.EntityKind(),
		OwnerID:   owner.EntityID(),
		URI:       uri,
	}
	q := `INSERT INTO uris (id, owner_kind, owner_id, uri) VALUES ($1, $2, $3, $4)`
	_, err := p.db.Exec(ctx, q, res.ID, res.OwnerKind, res.OwnerID, res.URI)
	if err != nil {
		return res, fmt.Errorf("pgio: attach uri %q: %w", uri, err)
	}
	return res, nil
}

func (p *pgio) CreateContains(
	ctx context.Context,
	subj, obj model.Institution,
) (model.Contains, error) {
	res := model.Contains{Relation: model.NewRelation(store.NewID(), subj, obj)}
	_, err := p.insertRelation(ctx, "contains", &res.Relation)
	if err != nil {
		return res, fmt.Errorf("pgio: create contains: %w", err)
	}
	return res, nil
}

func (p *pgio) CreateLocatedIn(
	ctx context.Context,
	subj model.Institution,
	obj model.Place,
) (model.LocatedIn, error) {
	res := model.LocatedIn{Relation: model.NewRelation(store.NewID(), subj, obj)}
	_, err := p.insertRelation(ctx, "located_in", &res.Relation)
	if err != nil {
		return res, fmt.Errorf("pgio: create located_in: %w", err)
	}
	return res, nil
}

func (p *pgio) GetOrCreateIncludes(
	ctx context.Context,
	subj, obj model.Place,
) (model.Includes, bool, error) {
	id := store.EdgeID("includes", subj, obj)
	res := model.Includes{Relation: model.NewRelation(id, subj, obj)}
	created, err := p.insertRelation(ctx, "includes", &res.Relation)
	if err != nil {
		return res, false, fmt.Errorf("pgio: create includes: %w", err)
	}
	return res, created, nil
}

// insertRelation saves rel into tbl. Relations with an existing ID are left
// untouched, in that case insertRelation returns false.
func (p *pgio) insertRelation(
	ctx context.Context,
	tbl string,
	rel *model.Relation,
) (bool, error) {
	q := fmt.Sprintf(`
INSERT INTO %s
  (id, subj_kind, subj_id, obj_kind, obj_id,
   begin_raw, begin_sort, begin_from, begin_to,
   end_raw, end_sort, end_from, end_to, created_at)
  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
  ON CONFLICT DO NOTHING`, pgx.Identifier{tbl}.Sanitize())
	b, e := rel.Begin, rel.End
	tag, err := p.db.Exec(ctx, q,
		rel.ID, rel.SubjKind, rel.SubjID, rel.ObjKind, rel.ObjID,
		b.Raw, b.Sort, b.From, b.To,
		e.Raw, e.Sort, e.From, e.To,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (p *pgio) Close() error {
	p.db.Close()
	return nil
}
