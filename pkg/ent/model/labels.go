package model

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/oeai/oeaimport/internal/ent/fuzzydate"
)

// Label types.
const (
	TypPref = "pref"
	TypAlt  = "alt"
)

// AltLabel is an alternative or preferred label of an entity in some
// language.
type AltLabel struct {
	Label string `json:"label"`
	Lang  string `json:"lang"`
	Typ   string `json:"typ"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// AltLabels is stored as a JSON array.
type AltLabels []AltLabel

// Value implements driver.Valuer.
func (a AltLabels) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	enc := gnfmt.GNjson{}
	res, err := enc.Encode(a)
	if err != nil {
		return nil, err
	}
	return string(res), nil
}

// Scan implements sql.Scanner.
func (a *AltLabels) Scan(src any) error {
	var bs []byte
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		bs = v
	case string:
		bs = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AltLabels", src)
	}
	enc := gnfmt.GNjson{}
	return enc.Decode(bs, a)
}

// FuzzyDate is the persisted form of an imprecise date: the raw string
// together with the interval it covers.
type FuzzyDate struct {
	Raw  sql.NullString `gorm:"type:varchar(100)"`
	Sort *time.Time     `gorm:"type:date"`
	From *time.Time     `gorm:"type:date"`
	To   *time.Time     `gorm:"type:date"`
}

// NewFuzzyDate parses s. Empty s gives a NULL date.
func NewFuzzyDate(s string) (FuzzyDate, error) {
	var res FuzzyDate
	d, err := fuzzydate.Parse(s)
	if err != nil {
		return res, err
	}
	if d.IsZero() {
		return res, nil
	}
	res.Raw = sql.NullString{String: d.Raw, Valid: true}
	res.Sort = &d.Sort
	res.From = &d.From
	res.To = &d.To
	return res, nil
}

// IsNull is true if there is no date.
func (f FuzzyDate) IsNull() bool {
	return !f.Raw.Valid
}
