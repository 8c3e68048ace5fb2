package row_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

var _ = Describe("Row", func() {
	Describe("New", func() {
		It("maps header to values", func() {
			r := row.New(3, []string{"a", "b"}, []string{"1", ""})
			Expect(r.Index).To(Equal(3))
			v, ok := r.Get("b")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(""))
			Expect(r.Has("b")).To(BeFalse())
			Expect(r.Has("a")).To(BeTrue())
			Expect(r.Value("a")).To(Equal("1"))
		})

		It("treats missing trailing fields as absent", func() {
			r := row.New(1, []string{"a", "b", "c"}, []string{"1"})
			_, ok := r.Get("b")
			Expect(ok).To(BeFalse())
			Expect(r.Columns()).To(Equal([]string{"a"}))
		})

		It("keeps the first of repeated headers", func() {
			r := row.New(1, []string{"a", "a"}, []string{"1", "2"})
			Expect(r.Value("a")).To(Equal("1"))
			Expect(r.Columns()).To(HaveLen(1))
		})
	})

	It("builds a row from a map", func() {
		r := row.FromMap([]string{"b", "a", "x"}, map[string]string{"a": "1", "b": "2"})
		Expect(r.Columns()).To(Equal([]string{"b", "a"}))
		Expect(r.String()).To(Equal(`{"b": "2", "a": "1"}`))
	})

	Describe("Require", func() {
		It("reports the first missing column", func() {
			r := row.New(1, []string{"a", "b"}, []string{"1", ""})
			err := row.Require(model.KindPerson, r, "a", "b")
			Expect(errors.Is(err, row.ErrMissingField)).To(BeTrue())
			var re *row.Error
			Expect(errors.As(err, &re)).To(BeTrue())
			Expect(re.Field).To(Equal("b"))
			Expect(err.Error()).To(Equal("row import failed: person: missing required field: b"))
		})

		It("passes complete rows", func() {
			r := row.New(1, []string{"a"}, []string{"1"})
			Expect(row.Require(model.KindPerson, r, "a")).To(Succeed())
		})
	})

	Describe("Wrap", func() {
		It("keeps existing row errors", func() {
			orig := &row.Error{Kind: model.KindPerson, Field: "x", Err: row.ErrBadScope}
			err := row.Wrap(model.KindInstitution, fmt.Errorf("ctx: %w", orig))
			Expect(err).To(BeIdenticalTo(orig))
		})

		It("wraps other errors", func() {
			base := errors.New("boom")
			err := row.Wrap(model.KindInstitution, base)
			Expect(errors.Is(err, base)).To(BeTrue())
			Expect(err.Error()).To(Equal("row import failed: institution: boom"))
			Expect(row.Wrap(model.KindPerson, nil)).To(BeNil())
		})
	})
})
