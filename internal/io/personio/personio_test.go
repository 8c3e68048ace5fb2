package personio_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/internal/io/memio"
	"github.com/oeai/oeaimport/internal/io/personio"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

var order = []string{
	personio.ColLabel,
	"skos:altLabel @de",
	"skos:prefLabel @en",
	personio.ColOccupation,
	personio.ColScope,
	personio.ColType,
	personio.ColPeriod,
	personio.ColPeriodDetail,
	personio.ColExactMatch,
}

var _ = Describe("Personio", func() {
	var (
		ctx context.Context
		st  *memio.MemStore
		imp row.Importer
	)

	BeforeEach(func() {
		ctx = context.Background()
		st = memio.New()
		imp = personio.New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("imports a complete person", func() {
		r := row.FromMap(order, map[string]string{
			personio.ColLabel:        "Winckelmann, Johann Joachim",
			"skos:altLabel @de":      "J. J. Winckelmann",
			"skos:prefLabel @en":     "Johann Joachim Winckelmann",
			personio.ColOccupation:   "archaeologist",
			personio.ColScope:        "1717-1768",
			personio.ColType:         "historical person",
			personio.ColPeriod:       "",
			personio.ColPeriodDetail: "",
			personio.ColExactMatch:   "https://d-nb.info/gnd/118633600",
		})
		ent, err := imp.ImportRow(ctx, r)
		Expect(err).ToNot(HaveOccurred())
		Expect(imp.Kind()).To(Equal(model.KindPerson))

		prs := ent.(model.Person)
		Expect(prs.Label).To(Equal("Winckelmann, Johann Joachim"))
		Expect(prs.Historical).To(BeTrue())
		Expect(prs.PersonType).To(Equal("historical person"))
		Expect(prs.Period.Valid).To(BeFalse())
		Expect(prs.PeriodDetail.Valid).To(BeFalse())
		Expect(prs.AltLabels).To(HaveLen(2))
		Expect(prs.AltLabels[0].Lang).To(Equal("de"))
		Expect(prs.AltLabels[1].Lang).To(Equal("skos:prefLabel @en"))
		Expect(prs.DateOfBirth.Raw.String).To(Equal("1717"))
		Expect(prs.DateOfDeath.Raw.String).To(Equal("1768"))
		Expect(prs.DateOfDeath.To.Year()).To(Equal(1768))

		profs := st.Professions()
		Expect(profs).To(HaveLen(1))
		Expect(prs.ProfessionID.String).To(Equal(profs[0].ID))

		uris := st.URIs()
		Expect(uris).To(HaveLen(1))
		Expect(uris[0].OwnerID).To(Equal(prs.ID))
	})

	It("creates a new person for every row", func() {
		r := row.FromMap(order, map[string]string{personio.ColLabel: "Anonymus"})
		_, err := imp.ImportRow(ctx, r)
		Expect(err).ToNot(HaveOccurred())
		_, err = imp.ImportRow(ctx, r)
		Expect(err).ToNot(HaveOccurred())
		Expect(st.Persons()).To(HaveLen(2))
		Expect(st.Persons()[0].Historical).To(BeFalse())
		Expect(st.Professions()).To(BeEmpty())
	})

	It("shares professions between persons", func() {
		for _, name := range []string{"A", "B"} {
			r := row.FromMap(order, map[string]string{
				personio.ColLabel:      name,
				personio.ColOccupation: "painter",
			})
			_, err := imp.ImportRow(ctx, r)
			Expect(err).ToNot(HaveOccurred())
		}
		Expect(st.Professions()).To(HaveLen(1))
	})

	It("imports a modern person without a type column", func() {
		r := row.New(1,
			[]string{personio.ColLabel, personio.ColOccupation},
			[]string{"Schliemann, Heinrich", "archaeologist"},
		)
		_, ok := r.Get(personio.ColType)
		Expect(ok).To(BeFalse())

		ent, err := imp.ImportRow(ctx, r)
		Expect(err).ToNot(HaveOccurred())
		prs := ent.(model.Person)
		Expect(prs.Historical).To(BeFalse())
		Expect(prs.PersonType).To(Equal(""))
		Expect(st.Persons()).To(HaveLen(1))
	})

	It("keeps unknown categorical values", func() {
		r := row.FromMap(order, map[string]string{
			personio.ColLabel:  "X",
			personio.ColType:   "astronaut",
			personio.ColPeriod: "Moderne",
		})
		ent, err := imp.ImportRow(ctx, r)
		Expect(err).ToNot(HaveOccurred())
		prs := ent.(model.Person)
		Expect(prs.PersonType).To(Equal("astronaut"))
		Expect(prs.Period.String).To(Equal("Moderne"))
	})

	It("fails without a preferred label", func() {
		r := row.FromMap(order, map[string]string{
			personio.ColLabel:      "",
			personio.ColOccupation: "painter",
		})
		_, err := imp.ImportRow(ctx, r)
		Expect(errors.Is(err, row.ErrMissingField)).To(BeTrue())
		var re *row.Error
		Expect(errors.As(err, &re)).To(BeTrue())
		Expect(re.Field).To(Equal(personio.ColLabel))
		Expect(st.Persons()).To(BeEmpty())
		Expect(st.Professions()).To(BeEmpty())
	})

	It("fails when the scope has no single dash", func() {
		for _, scope := range []string{"1717", "1-2-3"} {
			r := row.FromMap(order, map[string]string{
				personio.ColLabel: "X",
				personio.ColScope: scope,
			})
			_, err := imp.ImportRow(ctx, r)
			Expect(errors.Is(err, row.ErrBadScope)).To(BeTrue())
		}
		Expect(st.Persons()).To(BeEmpty())
	})

	It("accepts open life spans", func() {
		r := row.FromMap(order, map[string]string{
			personio.ColLabel: "X",
			personio.ColScope: "ca. 1800-",
		})
		ent, err := imp.ImportRow(ctx, r)
		Expect(err).ToNot(HaveOccurred())
		prs := ent.(model.Person)
		Expect(prs.DateOfBirth.IsNull()).To(BeFalse())
		Expect(prs.DateOfDeath.IsNull()).To(BeTrue())
	})
})
