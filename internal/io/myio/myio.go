// Package myio implements store.Store on MySQL through database/sql.
package myio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/pkg/config"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

type myio struct {
	db *sql.DB
}

// New connects to MySQL and returns a Store.
func New(ctx context.Context, cfg config.Config) (store.Store, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		slog.Error("Cannot connect to database", "error", err)
		return nil, err
	}
	db.SetMaxOpenConns(2)
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		slog.Error("Cannot reach database", "error", err)
		return nil, err
	}
	return &myio{db: db}, nil
}

func (m *myio) CreatePerson(
	ctx context.Context,
	prs model.Person,
) (model.Person, error) {
	prs.ID = store.NewID()
	prs.CreatedAt = time.Now().UTC()
	q := `
INSERT INTO persons
  (id, label, historical, profession_id, person_type, period, period_detail,
   date_of_birth_raw, date_of_birth_sort, date_of_birth_from, date_of_birth_to,
   date_of_death_raw, date_of_death_sort, date_of_death_from, date_of_death_to,
   alt_labels, created_at)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	b, d := prs.DateOfBirth, prs.DateOfDeath
	_, err := m.db.ExecContext(ctx, q,
		prs.ID, prs.Label, prs.Historical, prs.ProfessionID, prs.PersonType,
		prs.Period, prs.PeriodDetail,
		b.Raw, b.Sort, b.From, b.To,
		d.Raw, d.Sort, d.From, d.To,
		prs.AltLabels, prs.CreatedAt,
	)
	if err != nil {
		return prs, fmt.Errorf("myio: create person: %w", err)
	}
	return prs, nil
}

func (m *myio) CreateInstitution(
	ctx context.Context,
	inst model.Institution,
) (model.Institution, error) {
	inst.ID = store.NewID()
	if err := m.insertInstitution(ctx, &inst); err != nil {
		return inst, fmt.Errorf("myio: create institution: %w", err)
	}
	return inst, nil
}

func (m *myio) insertInstitution(ctx context.Context, inst *model.Institution) error {
	inst.CreatedAt = time.Now().UTC()
	q := `
INSERT INTO institutions
  (id, label, hierarchy, abbreviation, easydb4_reference, system_object_id,
   alt_labels, created_at)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := m.db.ExecContext(ctx, q,
		inst.ID, inst.Label, inst.Hierarchy, inst.Abbreviation,
		inst.Easydb4Reference, inst.SystemObjectID, inst.AltLabels,
		inst.CreatedAt,
	)
	return err
}

func (m *myio) GetOrCreateInstitution(
	ctx context.Context,
	label string,
) (model.Institution, bool, error) {
	var inst model.Institution
	label, err := store.NormLabel(label)
	if err != nil {
		return inst, false, err
	}

	// BINARY keeps the match case-sensitive under MySQL default collations.
	q := `
SELECT id, label, hierarchy, abbreviation, easydb4_reference,
       system_object_id, alt_labels, created_at
  FROM institutions
  WHERE label = BINARY ?
  ORDER BY created_at, id
  LIMIT 1`
	err = m.db.QueryRowContext(ctx, q, label).Scan(
		&inst.ID, &inst.Label, &inst.Hierarchy, &inst.Abbreviation,
		&inst.Easydb4Reference, &inst.SystemObjectID, &inst.AltLabels,
		&inst.CreatedAt,
	)
	if err == nil {
		return inst, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return inst, false, fmt.Errorf("myio: find institution %q: %w", label, err)
	}

	inst = model.Institution{ID: store.NewID(), Label: label}
	if err = m.insertInstitution(ctx, &inst); err != nil {
		return inst, false, fmt.Errorf("myio: create institution %q: %w", label, err)
	}
	return inst, true, nil
}

func (m *myio) GetOrCreatePlace(
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
INSERT IGNORE INTO places (id, label, feature_code, created_at)
  VALUES (?, ?, ?, ?)`
	res, err := m.db.ExecContext(ctx, q, id, label, featureCode, time.Now().UTC())
	if err != nil {
		return plc, false, fmt.Errorf("myio: create place %q: %w", label, err)
	}
	created, err := inserted(res)
	if err != nil {
		return plc, false, fmt.Errorf("myio: create place %q: %w", label, err)
	}

	q = `SELECT id, label, feature_code, created_at FROM places WHERE id = ?`
	err = m.db.QueryRowContext(ctx, q, id).Scan(
		&plc.ID, &plc.Label, &plc.FeatureCode, &plc.CreatedAt,
	)
	if err != nil {
		return plc, false, fmt.Errorf("myio: get place %q: %w", label, err)
	}
	return plc, created, nil
}

func (m *myio) GetOrCreateProfession(
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

	q := `INSERT IGNORE INTO professions (id, label) VALUES (?, ?)`
	res, err := m.db.ExecContext(ctx, q, prof.ID, prof.Label)
	if err != nil {
		return prof, false, fmt.Errorf("myio: create profession %q: %w", label, err)
	}
	created, err := inserted(res)
	if err != nil {
		return prof, false, fmt.Errorf("myio: create profession %q: %w", label, err)
	}
	return prof, created, nil
}

func (m *myio) AttachURI(
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
	q := `INSERT INTO uris (id, owner_kind, owner_id, uri) VALUES (?, ?, ?, ?)`
	_, err := m.db.ExecContext(ctx, q,
		res.ID, string(res.OwnerKind), res.OwnerID, res.URI)
	if err != nil {
		return res, fmt.Errorf("myio: attach uri %q: %w", uri, err)
	}
	return res, nil
}

func (m *myio) CreateContains(
	ctx context.Context,
	subj, obj model.Institution,
) (model.Contains, error) {
	res := model.Contains{Relation: model.NewRelation(store.NewID(), subj, obj)}
	if _, err := m.insertRelation(ctx, "contains", &res.Relation); err != nil {
		return res, fmt.Errorf("myio: create contains: %w", err)
	}
	return res, nil
}

func (m *myio) CreateLocatedIn(
	ctx context.Context,
	subj model.Institution,
	obj model.Place,
) (model.LocatedIn, error) {
	res := model.LocatedIn{Relation: model.NewRelation(store.NewID(), subj, obj)}
	if _, err := m.insertRelation(ctx, "located_in", &res.Relation); err != nil {
		return res, fmt.Errorf("myio: create located_in: %w", err)
	}
	return res, nil
}

func (m *myio) GetOrCreateIncludes(
	ctx context.Context,
	subj, obj model.Place,
) (model.Includes, bool, error) {
	id := store.EdgeID("includes", subj, obj)
	res := model.Includes{Relation: model.NewRelation(id, subj, obj)}
	created, err := m.insertRelation(ctx, "includes", &res.Relation)
	if err != nil {
		return res, false, fmt.Errorf("myio: create includes: %w", err)
	}
	return res, created, nil
}

func (m *myio) insertRelation(
	ctx context.Context,
	tbl string,
	rel *model.Relation,
) (bool, error) {
	rel.CreatedAt = time.Now().UTC()
	q := fmt.Sprintf("INSERT IGNORE INTO `%s`", tbl) + `
  (id, subj_kind, subj_id, obj_kind, obj_id,
   begin_raw, begin_sort, begin_from, begin_to,
   end_raw, end_sort, end_from, end_to, created_at)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	b, e := rel.Begin, rel.End
	res, err := m.db.ExecContext(ctx, q,
		rel.ID, string(rel.SubjKind), rel.SubjID, string(rel.ObjKind), rel.ObjID,
		b.Raw, b.Sort, b.From, b.To,
		e.Raw, e.Sort, e.From, e.To,
		rel.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	return inserted(res)
}

func (m *myio) Close() error {
	return m.db.Close()
}

func inserted(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
