// Package row contains the CSV record type handed to row importers and the
// importer contract itself.
package row

import (
	"fmt"
	"strings"
)

// Row is one CSV record keyed by header names. Columns keep the order of the
// header.
type Row struct {
	// Index is the 1-based position of the record after the header.
	Index int

	header []string
	values map[string]string
}

// New creates a Row from a header and a record. Missing trailing fields are
// treated as absent columns, extra fields are ignored. When a header name
// repeats, the first occurrence wins.
func New(idx int, header, record []string) Row {
	res := Row{
		Index:  idx,
		header: make([]string, 0, len(header)),
		values: make(map[string]string, len(header)),
	}
	for i, h := range header {
		if i >= len(record) {
			break
		}
		if _, ok := res.values[h]; ok {
			continue
		}
		res.header = append(res.header, h)
		res.values[h] = record[i]
	}
	return res
}

// FromMap creates a Row from a map. Columns are ordered as given in order,
// keys not listed in order are dropped.
func FromMap(order []string, m map[string]string) Row {
	var header, record []string
	for _, k := range order {
		if v, ok := m[k]; ok {
			header = append(header, k)
			record = append(record, v)
		}
	}
	return New(0, header, record)
}

// Get returns the raw value of col and true if the column exists.
func (r Row) Get(col string) (string, bool) {
	v, ok := r.values[col]
	return v, ok
}

// Value returns the raw value of col or an empty string.
func (r Row) Value(col string) string {
	return r.values[col]
}

// Has is true if col exists and its raw value is not empty.
func (r Row) Has(col string) bool {
	return len(r.values[col]) > 0
}

// Columns returns header names in order.
func (r Row) Columns() []string {
	return r.header
}

// String renders the row for audit logs.
func (r Row) String() string {
	parts := make([]string, len(r.header))
	for i, h := range r.header {
		parts[i] = fmt.Sprintf("%q: %q", h, r.values[h])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
