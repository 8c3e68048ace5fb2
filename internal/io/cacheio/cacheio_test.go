package cacheio_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/internal/io/cacheio"
	"github.com/oeai/oeaimport/internal/io/kvio"
	"github.com/oeai/oeaimport/internal/io/memio"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

var _ = Describe("Cacheio", func() {
	var (
		ctx context.Context
		dir string
		mem *memio.MemStore
		st  store.Store
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		dir, err = os.MkdirTemp("", "oeaimport-cache")
		Expect(err).ToNot(HaveOccurred())
		kv, err := kvio.New(filepath.Join(dir, "lookup"))
		Expect(err).ToNot(HaveOccurred())
		mem = memio.New()
		st, err = cacheio.New(mem, kv)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(st.Close()).To(Succeed())
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("returns cached places", func() {
		p1, created, err := st.GetOrCreatePlace(ctx, "Rom", "")
		Expect(err).ToNot(HaveOccurred())
		Expect(created).To(BeTrue())
		p2, created, err := st.GetOrCreatePlace(ctx, " Rom", "")
		Expect(err).ToNot(HaveOccurred())
		Expect(created).To(BeFalse())
		Expect(p2.ID).To(Equal(p1.ID))
		Expect(p2.Label).To(Equal("Rom"))
		Expect(mem.Places()).To(HaveLen(1))
	})

	It("returns cached professions and institutions", func() {
		prof, _, err := st.GetOrCreateProfession(ctx, "potter")
		Expect(err).ToNot(HaveOccurred())
		res, created, err := st.GetOrCreateProfession(ctx, "potter")
		Expect(err).ToNot(HaveOccurred())
		Expect(created).To(BeFalse())
		Expect(res).To(Equal(prof))

		inst, _, err := st.GetOrCreateInstitution(ctx, "Universität X")
		Expect(err).ToNot(HaveOccurred())
		again, created, err := st.GetOrCreateInstitution(ctx, "Universität X")
		Expect(err).ToNot(HaveOccurred())
		Expect(created).To(BeFalse())
		Expect(again.ID).To(Equal(inst.ID))
	})

	It("returns cached includes edges", func() {
		c, _, _ := st.GetOrCreatePlace(ctx, "Italien", model.FeatureCountry)
		r, _, _ := st.GetOrCreatePlace(ctx, "Rom", "")
		e1, created, err := st.GetOrCreateIncludes(ctx, c, r)
		Expect(err).ToNot(HaveOccurred())
		Expect(created).To(BeTrue())
		e2, created, err := st.GetOrCreateIncludes(ctx, c, r)
		Expect(err).ToNot(HaveOccurred())
		Expect(created).To(BeFalse())
		Expect(e2.ID).To(Equal(e1.ID))
	})

	It("passes other calls to the store", func() {
		_, err := st.CreatePerson(ctx, model.Person{Label: "X"})
		Expect(err).ToNot(HaveOccurred())
		Expect(mem.Persons()).To(HaveLen(1))
	})

	It("rejects empty labels", func() {
		_, _, err := st.GetOrCreatePlace(ctx, " ", "")
		Expect(err).To(MatchError(store.ErrEmptyLabel))
	})
})
