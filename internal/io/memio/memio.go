// Package memio is an in-memory implementation of store.Store. It backs dry
// runs and tests. The zero value is not usable, use New.
package memio

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

// Compile-time assertion that MemStore satisfies the Store interface.
var _ store.Store = (*MemStore)(nil)

// MemStore keeps entities and relations in insertion order.
type MemStore struct {
	mu sync.RWMutex

	persons      []model.Person
	institutions []model.Institution
	places       []model.Place
	professions  []model.Profession
	uris         []model.URI
	contains     []model.Contains
	locatedIn    []model.LocatedIn
	includes     []model.Includes

	instByLabel  map[string]int
	placeByID    map[string]int
	profByID     map[string]int
	includesByID map[string]int
}

// New returns an empty MemStore.
func New() *MemStore {
	return &MemStore{
		instByLabel:  make(map[string]int),
		placeByID:    make(map[string]int),
		profByID:     make(map[string]int),
		includesByID: make(map[string]int),
	}
}

// CreatePerson implements [store.Store.CreatePerson].
func (s *MemStore) CreatePerson(
	_ context.Context,
	p model.Person,
) (model.Person, error) {
	if p.Label == "" {
		return p, store.ErrEmptyLabel
	}
	p.ID = store.NewID()
	p.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = append(s.persons, p)
	return p, nil
}

// CreateInstitution implements [store.Store.CreateInstitution].
func (s *MemStore) CreateInstitution(
	_ context.Context,
	inst model.Institution,
) (model.Institution, error) {
	if inst.Label == "" {
		return inst, store.ErrEmptyLabel
	}
	inst.ID = store.NewID()
	inst.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addInstitution(inst)
	return inst, nil
}

func (s *MemStore) addInstitution(inst model.Institution) {
	s.institutions = append(s.institutions, inst)
	if _, ok := s.instByLabel[inst.Label]; !ok {
		s.instByLabel[inst.Label] = len(s.institutions) - 1
	}
}

// GetOrCreateInstitution implements [store.Store.GetOrCreateInstitution].
func (s *MemStore) GetOrCreateInstitution(
	_ context.Context,
	label string,
) (model.Institution, bool, error) {
	label, err := store.NormLabel(label)
	if err != nil {
		return model.Institution{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.instByLabel[label]; ok {
		return s.institutions[i], false, nil
	}
	inst := model.Institution{
		ID:        store.NewID(),
		Label:     label,
		CreatedAt: time.Now(),
	}
	s.addInstitution(inst)
	return inst, true, nil
}

// GetOrCreatePlace implements [store.Store.GetOrCreatePlace].
func (s *MemStore) GetOrCreatePlace(
	_ context.Context,
	label, featureCode string,
) (model.Place, bool, error) {
	label, err := store.NormLabel(label)
	if err != nil {
		return model.Place{}, false, err
	}
	id := store.LookupID(model.KindPlace, label)

	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.placeByID[id]; ok {
		return s.places[i], false, nil
	}
	p := model.Place{
		ID:          id,
		Label:       label,
		FeatureCode: featureCode,
		CreatedAt:   time.Now(),
	}
	s.places = append(s.places, p)
	s.placeByID[id] = len(s.places) - 1
	return p, true, nil
}

// GetOrCreateProfession implements [store.Store.GetOrCreateProfession].
func (s *MemStore) GetOrCreateProfession(
	_ context.Context,
	label string,
) (model.Profession, bool, error) {
	label, err := store.NormLabel(label)
	if err != nil {
		return model.Profession{}, false, err
	}
	id := store.LookupID(model.KindProfession, label)

	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.profByID[id]; ok {
		return s.professions[i], false, nil
	}
	p := model.Profession{ID: id, Label: label}
	s.professions = append(s.professions, p)
	s.profByID[id] = len(s.professions) - 1
	return p, true, nil
}

// AttachURI implements [store.Store.AttachURI].
func (s *MemStore) AttachURI(
	_ context.Context,
	owner model.Entity,
	uri string,
) (model.URI, error) {
	res := model.URI{
		ID:        store.NewID(),
		OwnerKind: owner.EntityKind(),
		OwnerID:   owner.EntityID(),
		URI:       uri,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uris = append(s.uris, res)
	return res, nil
}

// CreateContains implements [store.Store.CreateContains].
func (s *MemStore) CreateContains(
	_ context.Context,
	subj, obj model.Institution,
) (model.Contains, error) {
	res := model.Contains{Relation: model.NewRelation(store.NewID(), subj, obj)}
	res.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contains = append(s.contains, res)
	return res, nil
}

// CreateLocatedIn implements [store.Store.CreateLocatedIn].
func (s *MemStore) CreateLocatedIn(
	_ context.Context,
	subj model.Institution,
	obj model.Place,
) (model.LocatedIn, error) {
	res := model.LocatedIn{Relation: model.NewRelation(store.NewID(), subj, obj)}
	res.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.locatedIn = append(s.locatedIn, res)
	return res, nil
}

// GetOrCreateIncludes implements [store.Store.GetOrCreateIncludes].
func (s *MemStore) GetOrCreateIncludes(
	_ context.Context,
	subj, obj model.Place,
) (model.Includes, bool, error) {
	id := store.EdgeID("includes", subj, obj)

	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.includesByID[id]; ok {
		return s.includes[i], false, nil
	}
	res := model.Includes{Relation: model.NewRelation(id, subj, obj)}
	res.CreatedAt = time.Now()
	s.includes = append(s.includes, res)
	s.includesByID[id] = len(s.includes) - 1
	return res, true, nil
}

// Close implements [store.Store.Close].
func (s *MemStore) Close() error {
	return nil
}

// Persons returns a copy of stored persons.
func (s *MemStore) Persons() []model.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.persons)
}

// Institutions returns a copy of stored institutions.
func (s *MemStore) Institutions() []model.Institution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.institutions)
}

// Places returns a copy of stored places.
func (s *MemStore) Places() []model.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.places)
}

// Professions returns a copy of stored professions.
func (s *MemStore) Professions() []model.Profession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.professions)
}

// URIs returns a copy of stored URIs.
func (s *MemStore) URIs() []model.URI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.uris)
}

// Contains returns a copy of stored Contains edges.
func (s *MemStore) Contains() []model.Contains {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.contains)
}

// LocatedIn returns a copy of stored LocatedIn edges.
func (s *MemStore) LocatedIn() []model.LocatedIn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.locatedIn)
}

// Includes returns a copy of stored Includes edges.
func (s *MemStore) Includes() []model.Includes {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.includes)
}
