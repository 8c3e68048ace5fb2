// Package csvio reads CSV sources in any supported text encoding and turns
// records into rows keyed by the header.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/oeai/oeaimport/internal/ent/row"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoHeader is returned for empty sources.
var ErrNoHeader = errors.New("missing header")

// Reader reads rows from a CSV source.
type Reader struct {
	f      *os.File
	r      *csv.Reader
	header []string
	idx    int
}

// Open opens a CSV file with the field delimiter and text encoding given.
// A byte order mark at the start of the file is dropped. UTF-8 sources with
// invalid byte sequences fail with encoding.ErrInvalidUTF8.
func Open(path string, delim rune, enc string) (*Reader, error) {
	if delim == 0 || delim == '"' || delim == '\r' || delim == '\n' ||
		delim == utf8.RuneError {
		return nil, fmt.Errorf("invalid delimiter %q", delim)
	}
	e, err := Encoding(enc)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var dec transform.Transformer = unicode.BOMOverride(e.NewDecoder())
	if e == unicode.UTF8 {
		// the UTF-8 decoder replaces invalid bytes with U+FFFD silently
		dec = transform.Chain(dec, encoding.UTF8Validator)
	}
	r := csv.NewReader(transform.NewReader(f, dec))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return &Reader{f: f, r: r}, nil
}

// Header reads the header record. It must be called before Next.
func (r *Reader) Header() ([]string, error) {
	if r.header != nil {
		return r.header, nil
	}
	h, err := r.r.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}
	r.header = h
	return h, nil
}

// Next returns the next row. At the end of the source it returns io.EOF.
func (r *Reader) Next() (row.Row, error) {
	if _, err := r.Header(); err != nil {
		return row.Row{}, err
	}
	rec, err := r.r.Read()
	if err != nil {
		return row.Row{}, err
	}
	r.idx++
	return row.New(r.idx, r.header, rec), nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Count returns the number of records after the header.
func Count(path string, delim rune, enc string) (int, error) {
	r, err := Open(path, delim, enc)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	var res int
	for {
		_, err = r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		res++
	}
	if res > 0 {
		res--
	}
	return res, nil
}

// Encoding finds a text encoding by its WHATWG or IANA name. Python style
// names like "latin-1" or "utf-8-sig" are accepted as well.
func Encoding(name string) (encoding.Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "-sig")
	if n == "" || n == "utf8" {
		n = "utf-8"
	}
	if strings.HasPrefix(n, "latin-") {
		n = "latin" + strings.TrimPrefix(n, "latin-")
	}
	if e, err := htmlindex.Get(n); err == nil {
		return e, nil
	}
	if e, err := ianaindex.IANA.Encoding(n); err == nil && e != nil {
		return e, nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

// Delimiter converts a flag value to a delimiter rune. Escaped tabs ("\t")
// and the word "tab" are understood.
func Delimiter(s string) (rune, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	d, _ := utf8.DecodeRuneInString(s)
	return d, nil
}
