// Package tabular loads the TSV side-tables that accompany a BIDS tree
// (subjects.tsv, *_scans.tsv) into a plain in-memory table.
package tabular

import (
	"encoding/csv"
	"fmt"

	billy "github.com/go-git/go-billy/v5"
)

// Table holds one parsed TSV file: the header row as Columns and every
// following row as a string slice. The zero value is the explicit empty
// table used when no side-file exists.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty returns the explicitly-empty table standing in for an absent file.
func Empty() *Table {
	return &Table{}
}

// Load reads a tab-separated file from fsys. The first record is the
// header; rows are not required to be rectangular.
func Load(fsys billy.Basic, path string) (*Table, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if len(records) == 0 {
		return Empty(), nil
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the values of the named column, one per row, in row order.
// Rows too short to reach the column contribute an empty string.
func (t *Table) Column(name string) ([]string, bool) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, true
}
