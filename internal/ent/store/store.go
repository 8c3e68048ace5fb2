// Package store defines the persistence contract used by the importers.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

// ErrEmptyLabel is returned when an entity would be stored without a label.
var ErrEmptyLabel = errors.New("empty label")

// Store persists entities and relations. Get-or-create methods look up an
// entity of the same kind by exact label and create it when none exists;
// they report whether a new entity was created.
type Store interface {
	// CreatePerson always creates a new person.
	CreatePerson(ctx context.Context, p model.Person) (model.Person, error)

	// CreateInstitution always creates a new institution.
	CreateInstitution(ctx context.Context, i model.Institution) (model.Institution, error)

	// GetOrCreateInstitution finds the earliest institution with the label
	// or creates one.
	GetOrCreateInstitution(ctx context.Context, label string) (model.Institution, bool, error)

	// GetOrCreatePlace finds a place by label or creates it with the
	// feature code. An existing place keeps its feature code.
	GetOrCreatePlace(ctx context.Context, label, featureCode string) (model.Place, bool, error)

	// GetOrCreateProfession finds a profession by label or creates it.
	GetOrCreateProfession(ctx context.Context, label string) (model.Profession, bool, error)

	// AttachURI attaches an external identifier to an entity.
	AttachURI(ctx context.Context, owner model.Entity, uri string) (model.URI, error)

	// CreateContains creates a new Contains edge.
	CreateContains(ctx context.Context, subj, obj model.Institution) (model.Contains, error)

	// CreateLocatedIn creates a new LocatedIn edge.
	CreateLocatedIn(ctx context.Context, subj model.Institution, obj model.Place) (model.LocatedIn, error)

	// GetOrCreateIncludes finds or creates the Includes edge between two
	// places.
	GetOrCreateIncludes(ctx context.Context, subj, obj model.Place) (model.Includes, bool, error)

	// Close releases resources of the store.
	Close() error
}

// LookupID returns the name-based identifier of an entity that is
// deduplicated by label. Equal kinds and labels always give the same ID.
func LookupID(kind model.Kind, label string) string {
	return gnuuid.New(string(kind) + "|" + label).String()
}

// EdgeID returns the name-based identifier of a deduplicated edge.
func EdgeID(table string, subj, obj model.Entity) string {
	key := strings.Join([]string{
		table,
		string(subj.EntityKind()), subj.EntityID(),
		string(obj.EntityKind()), obj.EntityID(),
	}, "|")
	return gnuuid.New(key).String()
}

// NewID returns a random identifier for entities that are created
// unconditionally.
func NewID() string {
	return uuid.New().String()
}

// NormLabel trims a label and rejects empty ones.
func NormLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", ErrEmptyLabel
	}
	return label, nil
}
