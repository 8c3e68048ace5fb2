package instio_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/internal/io/instio"
	"github.com/oeai/oeaimport/internal/io/memio"
	"github.com/oeai/oeaimport/internal/io/placeio"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

var order = []string{
	instio.ColLabel,
	instio.ColAbbreviation,
	instio.ColEasydb4,
	instio.ColHierarchy,
	instio.ColSystemObjectID,
	"skos:prefLabel @fr",
	"Link-exact",
	"Link-related",
	placeio.ColLand,
	placeio.ColLevel1,
	placeio.ColLevel2,
}

var _ = Describe("Instio", func() {
	var (
		ctx context.Context
		st  *memio.MemStore
		imp row.Importer
	)

	BeforeEach(func() {
		ctx = context.Background()
		st = memio.New()
		imp = instio.New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("imports an institution with its place", func() {
		r := row.FromMap(order, map[string]string{
			instio.ColLabel:          "Deutsches Archäologisches Institut",
			instio.ColAbbreviation:   "DAI",
			instio.ColEasydb4:        "",
			instio.ColHierarchy:      "1",
			instio.ColSystemObjectID: "42",
			"skos:prefLabel @fr":     "Institut archéologique allemand",
			"Link-exact":             "https://www.dainst.org",
			"Link-related":           "",
			placeio.ColLand:          "Deutschland",
			placeio.ColLevel1:        "Berlin",
			placeio.ColLevel2:        "Berlin",
		})
		ent, err := imp.ImportRow(ctx, r)
		Expect(err).ToNot(HaveOccurred())
		Expect(imp.Kind()).To(Equal(model.KindInstitution))

		inst := ent.(model.Institution)
		Expect(inst.Abbreviation.String).To(Equal("DAI"))
		Expect(inst.Easydb4Reference.Valid).To(BeFalse())
		Expect(inst.Hierarchy.String).To(Equal("1"))
		Expect(inst.SystemObjectID.String).To(Equal("42"))
		Expect(inst.AltLabels).To(Equal(model.AltLabels{
			{Label: "Institut archéologique allemand", Lang: "fr", Typ: model.TypPref},
		}))

		Expect(st.URIs()).To(HaveLen(1))
		Expect(st.Places()).To(HaveLen(2))
		Expect(st.LocatedIn()).To(HaveLen(1))
		Expect(st.LocatedIn()[0].SubjID).To(Equal(inst.ID))
		Expect(st.Includes()).To(HaveLen(1))
	})

	It("attaches both kinds of links", func() {
		r := row.FromMap(order, map[string]string{
			instio.ColLabel:   "Museum",
			"Link-exact":      "https://example.org/1",
			"Link-related":    "https://example.org/2",
			placeio.ColLevel1: "",
			placeio.ColLevel2: "",
		})
		_, err := imp.ImportRow(ctx, r)
		Expect(err).ToNot(HaveOccurred())
		uris := st.URIs()
		Expect(uris).To(HaveLen(2))
		Expect(uris[1].URI).To(Equal("https://example.org/2"))
	})

	It("creates a new institution for every row", func() {
		r := row.FromMap(order, map[string]string{
			instio.ColLabel:   "Museum",
			placeio.ColLevel1: "",
			placeio.ColLevel2: "",
		})
		for range 2 {
			_, err := imp.ImportRow(ctx, r)
			Expect(err).ToNot(HaveOccurred())
		}
		Expect(st.Institutions()).To(HaveLen(2))
	})

	It("fails without a preferred label", func() {
		r := row.FromMap(order, map[string]string{
			placeio.ColLand:   "Italien",
			placeio.ColLevel1: "Rom",
			placeio.ColLevel2: "Rom",
		})
		_, err := imp.ImportRow(ctx, r)
		Expect(errors.Is(err, row.ErrMissingField)).To(BeTrue())
		Expect(st.Institutions()).To(BeEmpty())
		Expect(st.Places()).To(BeEmpty())
	})

	It("keeps the institution when placement fails", func() {
		r := row.FromMap(order, map[string]string{
			instio.ColLabel: "Museum",
			placeio.ColLand: "Italien",
		})
		_, err := imp.ImportRow(ctx, r)
		Expect(errors.Is(err, row.ErrMissingColumn)).To(BeTrue())
		Expect(st.Institutions()).To(HaveLen(1))
	})
})
