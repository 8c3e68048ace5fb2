// Package label extracts multilingual labels from CSV rows. Language and
// label type are inferred from conventions in column headers, like
// "skos:altLabel @fr".
package label

import (
	"strings"

	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

// marker is a language marker that can appear in a header.
type marker struct {
	tag, lang string
}

// markers are checked in this order, the first match wins.
var markers = []marker{
	{"@de", "de"},
	{"@en", ""},
	{"@fr", "fr"},
	{"@esp", "es"},
	{"@ita", "it"},
	{"@Local", "loc"},
}

// LangTag returns the language of a header. For "@en" headers the header
// itself is returned, this is what existing data was imported with.
func LangTag(col string) (string, bool) {
	for _, m := range markers {
		if !strings.Contains(col, m.tag) {
			continue
		}
		if m.tag == "@en" {
			return col, true
		}
		return m.lang, true
	}
	return "", false
}

// Column describes a label column of a CSV source.
type Column struct {
	// Name is the header of the column.
	Name string

	// Typ is model.TypAlt or model.TypPref.
	Typ string

	// Lang is the language of the labels in the column, empty if unknown.
	Lang string
}

// NewColumns creates columns from headers.
func NewColumns(names ...string) []Column {
	res := make([]Column, len(names))
	for i, name := range names {
		typ := model.TypPref
		if strings.Contains(name, "altLabel") {
			typ = model.TypAlt
		}
		lang, _ := LangTag(name)
		res[i] = Column{Name: name, Typ: typ, Lang: lang}
	}
	return res
}

// PersonColumns are label columns of person sources.
var PersonColumns = NewColumns(
	"skos:altLabel @de",
	"skos:altLabel @de 2",
	"skos:altLabel @de 3",
	"skos:altLabel @de 4",
	"skos:altLabel @de 5",
	"skos:altLabel @en",
	"skos:prefLabel @en",
)

// InstitutionColumns are label columns of institution sources. Headers are
// spelled as in the exports, typos included.
var InstitutionColumns = NewColumns(
	"skos:altLabel @de",
	"skos:altLabel @de 2",
	"skos:altLabel @en",
	"skos:prefLabel @en",
	"skos:prefLabel @fr",
	"skos:altLabel @fr",
	"skos:prefLabel @esp",
	"skos:prefLable@ita",
	"skos:prefLabel@Local Language",
	"skos:altLabel@Local Language",
)

// Extract collects labels from cols that exist in r and are not empty.
func Extract(r row.Row, cols []Column) model.AltLabels {
	var res model.AltLabels
	for _, col := range cols {
		v, ok := r.Get(col.Name)
		if !ok || len(v) == 0 {
			continue
		}
		res = append(res, model.AltLabel{Label: v, Lang: col.Lang, Typ: col.Typ})
	}
	return res
}
