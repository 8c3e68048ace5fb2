package label_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/oeai/oeaimport/internal/ent/label"
	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

var _ = Describe("Label", func() {
	Describe("LangTag", func() {
		DescribeTable("detects language markers",
			func(col, lang string, ok bool) {
				res, found := label.LangTag(col)
				Expect(found).To(Equal(ok))
				Expect(res).To(Equal(lang))
			},
			Entry("german", "skos:altLabel @de 2", "de", true),
			Entry("french", "skos:prefLabel @fr", "fr", true),
			Entry("spanish", "skos:prefLabel @esp", "es", true),
			Entry("italian", "skos:prefLable@ita", "it", true),
			Entry("local", "skos:altLabel@Local Language", "loc", true),
			Entry("no marker", "skos:prefLabel", "", false),
			Entry("empty", "", "", false),
		)

		It("returns the whole header for english columns", func() {
			res, ok := label.LangTag("skos:altLabel @en")
			Expect(ok).To(BeTrue())
			Expect(res).To(Equal("skos:altLabel @en"))
		})

		It("uses the first marker in fixed order", func() {
			res, _ := label.LangTag("x @fr @de")
			Expect(res).To(Equal("de"))
			res, _ = label.LangTag("x @esp @en")
			Expect(res).To(Equal("x @esp @en"))
		})
	})

	Describe("NewColumns", func() {
		It("derives label type and language", func() {
			cols := label.NewColumns("skos:altLabel @fr", "skos:prefLabel @esp")
			Expect(cols).To(Equal([]label.Column{
				{Name: "skos:altLabel @fr", Typ: model.TypAlt, Lang: "fr"},
				{Name: "skos:prefLabel @esp", Typ: model.TypPref, Lang: "es"},
			}))
		})

		It("knows person and institution headers", func() {
			Expect(label.PersonColumns).To(HaveLen(7))
			Expect(label.InstitutionColumns).To(HaveLen(10))
			Expect(label.InstitutionColumns[7].Lang).To(Equal("it"))
			Expect(label.InstitutionColumns[7].Typ).To(Equal(model.TypPref))
		})
	})

	Describe("Extract", func() {
		It("keeps non-empty columns in column order", func() {
			r := row.New(1,
				[]string{"skos:prefLabel @en", "skos:altLabel @de", "skos:altLabel @de 2"},
				[]string{"Berlin Academy", "Akademie", ""},
			)
			res := label.Extract(r, label.PersonColumns)
			Expect(res).To(Equal(model.AltLabels{
				{Label: "Akademie", Lang: "de", Typ: model.TypAlt},
				{Label: "Berlin Academy", Lang: "skos:prefLabel @en", Typ: model.TypPref},
			}))
		})

		It("does not trim values", func() {
			r := row.New(1, []string{"skos:altLabel @fr"}, []string{" Académie "})
			res := label.Extract(r, label.InstitutionColumns)
			Expect(res).To(HaveLen(1))
			Expect(res[0].Label).To(Equal(" Académie "))
		})

		It("returns nothing when no label columns exist", func() {
			r := row.New(1, []string{"other"}, []string{"value"})
			Expect(label.Extract(r, label.InstitutionColumns)).To(BeEmpty())
		})
	})
})
