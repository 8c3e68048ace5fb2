package batchio_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oeai/oeaimport/internal/ent/batch"
	"github.com/oeai/oeaimport/internal/io/batchio"
	"github.com/oeai/oeaimport/internal/io/logio"
	"github.com/oeai/oeaimport/internal/io/memio"
	"github.com/oeai/oeaimport/internal/io/personio"
	"github.com/oeai/oeaimport/pkg/config"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

type closer struct {
	n int
}

func (c *closer) Close() error {
	c.n++
	return nil
}

const header = "skos:prefLabel @de,skos:broader occupation,skos:scope\n"

// personsCSV creates n person records. Record bad has no label.
func personsCSV(n, bad int) string {
	var sb strings.Builder
	sb.WriteString(header)
	for i := 1; i <= n; i++ {
		label := fmt.Sprintf("Person %d", i)
		if i == bad {
			label = ""
		}
		fmt.Fprintf(&sb, "%s,painter,1800-1850\n", label)
	}
	return sb.String()
}

var _ = Describe("Batchio", func() {
	var (
		ctx            context.Context
		dir            string
		st             *memio.MemStore
		logBuf         *bytes.Buffer
		stdout, stderr *bytes.Buffer
		cls            *closer
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		dir, err = os.MkdirTemp("", "oeaimport-batch")
		Expect(err).ToNot(HaveOccurred())
		st = memio.New()
		logBuf = &bytes.Buffer{}
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
		cls = &closer{}
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	writeFile := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())
		return path
	}

	run := func(src string, opts ...config.Option) (batch.Summary, error) {
		cfg := config.New(opts...)
		log := slog.New(logio.NewHandler(logBuf, slog.LevelInfo))
		r := batchio.New(cfg, log, cls, batchio.OptOutput(stdout, stderr))
		imp := personio.New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
		return r.Run(ctx, src, imp)
	}

	It("imports all rows and counts failures", func() {
		src := writeFile("persons.csv", []byte(personsCSV(5, 3)))
		res, err := run(src)
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(Equal(batch.Summary{Total: 5, Processed: 5, Success: 4, Errors: 1}))
		Expect(st.Persons()).To(HaveLen(4))
		Expect(st.Persons()[0].Label).To(Equal("Person 1"))

		Expect(stderr.String()).To(HavePrefix("Error processing row 3: "))
		Expect(stdout.String()).To(ContainSubstring("Processing row 5/5..."))
		Expect(stdout.String()).To(HaveSuffix(
			"Import completed. Processed: 5, Success: 4, Errors: 1\n"))

		log := logBuf.String()
		Expect(log).To(ContainSubstring(" - INFO - Starting import"))
		Expect(log).To(ContainSubstring(" - ERROR - Error processing row 3: "))
		Expect(log).To(ContainSubstring(`Row data: {"skos:prefLabel @de": ""`))
		Expect(log).To(ContainSubstring("Detail: *row.Error"))
		Expect(log).To(ContainSubstring("Import completed. Processed: 5"))
		Expect(cls.n).To(Equal(1))
	})

	It("reports progress in intervals and on the last row", func() {
		src := writeFile("persons.csv", []byte(personsCSV(250, 0)))
		res, err := run(src)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Success).To(Equal(250))
		out := stdout.String()
		Expect(strings.Count(out, "Processing row")).To(Equal(3))
		Expect(out).To(ContainSubstring("Processing row 100/250..."))
		Expect(out).To(ContainSubstring("Processing row 200/250..."))
		Expect(out).To(ContainSubstring("Processing row 250/250..."))
	})

	It("formats large counts with commas", func() {
		src := writeFile("persons.csv", []byte(personsCSV(1000, 0)))
		_, err := run(src, config.OptProgressEvery(1000))
		Expect(err).ToNot(HaveOccurred())
		Expect(stdout.String()).To(ContainSubstring("Processing row 1,000/1,000..."))
	})

	It("does not skip the first record", func() {
		src := writeFile("persons.csv", []byte(personsCSV(1, 0)))
		res, err := run(src)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Processed).To(Equal(1))
		Expect(stdout.String()).To(ContainSubstring("Processing row 1/1..."))
	})

	It("handles sources with a header only", func() {
		src := writeFile("persons.csv", []byte(header))
		res, err := run(src)
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(Equal(batch.Summary{}))
		Expect(stdout.String()).To(Equal(
			"Import completed. Processed: 0, Success: 0, Errors: 0\n"))
	})

	It("fails on a missing source and closes the log", func() {
		_, err := run(filepath.Join(dir, "nope.csv"))
		Expect(errors.Is(err, batch.ErrSourceMissing)).To(BeTrue())
		Expect(st.Persons()).To(BeEmpty())
		Expect(logBuf.String()).To(ContainSubstring("file does not exist"))
		Expect(cls.n).To(Equal(1))
	})

	It("fails on an unknown encoding", func() {
		src := writeFile("persons.csv", []byte(personsCSV(1, 0)))
		_, err := run(src, config.OptEncoding("no-such-encoding"))
		Expect(errors.Is(err, batch.ErrSourceRead)).To(BeTrue())
		Expect(cls.n).To(Equal(1))
	})

	It("fails on invalid UTF-8 and stores nothing", func() {
		src := writeFile("persons.csv", []byte("skos:prefLabel @de\nM\xfcller\nOK\n"))
		res, err := run(src)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, batch.ErrSourceRead)).To(BeTrue())
		Expect(errors.Is(err, encoding.ErrInvalidUTF8)).To(BeTrue())
		Expect(res.Processed).To(Equal(0))
		Expect(st.Persons()).To(BeEmpty())
		Expect(cls.n).To(Equal(1))
	})

	It("reads other delimiters and encodings", func() {
		data := "skos:prefLabel @de;skos:broader occupation\nMüller;Töpfer\n"
		enc, err := charmap.Windows1252.NewEncoder().String(data)
		Expect(err).ToNot(HaveOccurred())
		src := writeFile("persons.csv", []byte(enc))
		res, err := run(src, config.OptDelimiter(';'), config.OptEncoding("windows-1252"))
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Success).To(Equal(1))
		Expect(st.Persons()[0].Label).To(Equal("Müller"))
		Expect(st.Professions()[0].Label).To(Equal("Töpfer"))
	})

	It("strips a byte order mark", func() {
		data := append([]byte("\xef\xbb\xbf"), []byte(personsCSV(2, 0))...)
		src := writeFile("persons.csv", data)
		res, err := run(src)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Success).To(Equal(2))
	})
})
