package model

import (
	"database/sql"
	"time"
)

// Model is the interface for creating the database schema.
type Model interface {
	// Migrate creates or updates tables in the database.
	Migrate() error
}

// Kind is an entity kind. Kinds are used as discriminators for polymorphic
// relation endpoints and for URI owners.
type Kind string

const (
	KindPerson      Kind = "person"
	KindInstitution Kind = "institution"
	KindPlace       Kind = "place"
	KindProfession  Kind = "profession"
)

// FeatureCountry is the feature code of places that are countries.
const FeatureCountry = "PCL"

// Entity is a persistent node of the knowledge graph.
type Entity interface {
	EntityKind() Kind
	EntityID() string
	EntityLabel() string
}

// Profession is a lookup table of occupations, deduplicated by label.
type Profession struct {
	// ID is UUID v5 generated from the kind and the label.
	ID string `gorm:"type:varchar(36);primary_key;auto_increment:false"`

	// Label is the name of the profession.
	Label string `gorm:"type:varchar(255);not null;index:profession_label"`
}

func (Profession) TableName() string { return "professions" }

func (p Profession) EntityKind() Kind    { return KindProfession }
func (p Profession) EntityID() string    { return p.ID }
func (p Profession) EntityLabel() string { return p.Label }

// Person is a historical or modern person.
type Person struct {
	// ID is a random UUID, every import creates a new person.
	ID string `gorm:"type:varchar(36);primary_key;auto_increment:false"`

	// Label is the preferred label in German.
	Label string `gorm:"type:varchar(255);not null;index:person_label"`

	// Historical is true for persons of type "historical person".
	Historical bool `gorm:"not null;default:true"`

	// ProfessionID refers to a Profession, if any.
	ProfessionID sql.NullString `gorm:"type:varchar(36);index:person_profession"`

	// PersonType is one of PersonTypes, but unknown values are kept.
	PersonType string `gorm:"type:varchar(255)"`

	// Period is one of Periods.
	Period sql.NullString `gorm:"type:varchar(255)"`

	// PeriodDetail is one of PeriodDetails.
	PeriodDetail sql.NullString `gorm:"type:varchar(255)"`

	DateOfBirth FuzzyDate `gorm:"embedded;embedded_prefix:date_of_birth_"`
	DateOfDeath FuzzyDate `gorm:"embedded;embedded_prefix:date_of_death_"`

	// AltLabels are alternative and preferred labels in other languages.
	AltLabels AltLabels `gorm:"type:text"`

	CreatedAt time.Time
}

func (Person) TableName() string { return "persons" }

func (p Person) EntityKind() Kind    { return KindPerson }
func (p Person) EntityID() string    { return p.ID }
func (p Person) EntityLabel() string { return p.Label }

// Institution is an institution. Institutions are also used as intermediate
// administrative containers of other institutions.
type Institution struct {
	ID string `gorm:"type:varchar(36);primary_key;auto_increment:false"`

	// Label is the preferred label in German.
	Label string `gorm:"type:varchar(255);not null;index:institution_label"`

	// Hierarchy is a free text hierarchy marker.
	Hierarchy sql.NullString `gorm:"type:varchar(100)"`

	Abbreviation sql.NullString `gorm:"type:varchar(255)"`

	// Easydb4Reference is the identifier in the legacy easydb4 system.
	Easydb4Reference sql.NullString `gorm:"column:easydb4_reference;type:varchar(255)"`

	// SystemObjectID is the identifier in the current easydb system.
	SystemObjectID sql.NullString `gorm:"type:varchar(255)"`

	AltLabels AltLabels `gorm:"type:text"`

	CreatedAt time.Time
}

func (Institution) TableName() string { return "institutions" }

func (i Institution) EntityKind() Kind    { return KindInstitution }
func (i Institution) EntityID() string    { return i.ID }
func (i Institution) EntityLabel() string { return i.Label }

// Place is a geographic place. Countries have FeatureCountry as their
// feature code.
type Place struct {
	// ID is UUID v5 generated from the kind and the label.
	ID string `gorm:"type:varchar(36);primary_key;auto_increment:false"`

	Label string `gorm:"type:varchar(255);not null;index:place_label"`

	// FeatureCode is a GeoNames-like feature classification.
	FeatureCode string `gorm:"type:varchar(10)"`

	CreatedAt time.Time
}

func (Place) TableName() string { return "places" }

func (p Place) EntityKind() Kind    { return KindPlace }
func (p Place) EntityID() string    { return p.ID }
func (p Place) EntityLabel() string { return p.Label }

// URI is an external identifier attached to an entity.
type URI struct {
	ID        string `gorm:"type:varchar(36);primary_key;auto_increment:false"`
	OwnerKind Kind   `gorm:"type:varchar(20);not null;index:uri_owner"`
	OwnerID   string `gorm:"type:varchar(36);not null;index:uri_owner"`
	URI       string `gorm:"type:varchar(500);not null"`
}

func (URI) TableName() string { return "uris" }
