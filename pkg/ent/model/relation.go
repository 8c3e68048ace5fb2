package model

import "time"

// Relation is a directed typed edge between two entities. Endpoints are
// stored as (kind, id) pairs so that one table layout serves all relation
// types.
type Relation struct {
	ID       string `gorm:"type:varchar(36);primary_key;auto_increment:false"`
	SubjKind Kind   `gorm:"type:varchar(20);not null"`
	SubjID   string `gorm:"type:varchar(36);not null;index"`
	ObjKind  Kind   `gorm:"type:varchar(20);not null"`
	ObjID    string `gorm:"type:varchar(36);not null;index"`

	Begin FuzzyDate `gorm:"embedded;embedded_prefix:begin_"`
	End   FuzzyDate `gorm:"embedded;embedded_prefix:end_"`

	CreatedAt time.Time
}

// Contains links an institution to an institution it contains.
type Contains struct{ Relation }

func (Contains) TableName() string { return "contains" }

// LocatedIn links an institution to the place it is located in.
type LocatedIn struct{ Relation }

func (LocatedIn) TableName() string { return "located_in" }

// Includes links a place to a place it includes, e.g. a country to a city.
type Includes struct{ Relation }

func (Includes) TableName() string { return "includes" }

// EngagedIn links a person to an institution. The importer does not create
// these edges.
type EngagedIn struct {
	Relation

	// Typ is one of "employed", "hired", "leading".
	Typ string `gorm:"type:varchar(20)"`
}

func (EngagedIn) TableName() string { return "engaged_in" }

// NewRelation creates an edge between subj and obj.
func NewRelation(id string, subj, obj Entity) Relation {
	return Relation{
		ID:       id,
		SubjKind: subj.EntityKind(),
		SubjID:   subj.EntityID(),
		ObjKind:  obj.EntityKind(),
		ObjID:    obj.EntityID(),
	}
}
