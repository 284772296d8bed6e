// Package table holds the in-memory tabular result shared by the query,
// stats and export layers.
package table

import (
	"fmt"
	"slices"
)

type missing struct{}

func (missing) String() string { return "<missing>" }

func (missing) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Missing marks a cell whose value is absent or could not be parsed.
var Missing any = missing{}

// IsMissing reports whether v is nil or the Missing marker.
func IsMissing(v any) bool {
	return v == nil || v == Missing
}

// Table is a column-ordered set of rows. Every row has len(Columns) cells.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns)}
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{}
}

// Append adds a row. The number of cells must match the number of columns.
func (t *Table) Append(cells ...any) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("appending row: got %d cells for %d columns", len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, slices.Clone(cells))
	return nil
}

// MustAppend is Append for rows built by the caller with a known shape.
func (t *Table) MustAppend(cells ...any) {
	if err := t.Append(cells...); err != nil {
		panic(err)
	}
}

// Len returns the number of rows. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of a column, or -1.
func (t *Table) Index(column string) int {
	if t == nil {
		return -1
	}
	return slices.Index(t.Columns, column)
}

// Has reports whether the table has the column.
func (t *Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// Value returns a single cell, or Missing when the column does not exist.
func (t *Table) Value(row int, column string) any {
	i := t.Index(column)
	if i < 0 {
		return Missing
	}
	return t.Rows[row][i]
}

// Column returns a copy of every value in a column, or nil when absent.
func (t *Table) Column(column string) []any {
	i := t.Index(column)
	if i < 0 {
		return nil
	}
	out := make([]any, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// Filter returns a new table holding the rows keep accepts.
func (t *Table) Filter(keep func(row []any) bool) *Table {
	out := New(t.Columns...)
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, slices.Clone(row))
		}
	}
	return out
}

// SortStable returns a copy sorted with cmp, preserving the order of equal rows.
func (t *Table) SortStable(cmp func(a, b []any) int) *Table {
	out := t.Clone()
	slices.SortStableFunc(out.Rows, cmp)
	return out
}

// Clone returns a deep copy of the row and column slices. Cell values are
// shared; they are treated as immutable.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{Columns: slices.Clone(t.Columns)}
	if t.Rows != nil {
		out.Rows = make([][]any, len(t.Rows))
		for i, row := range t.Rows {
			out.Rows[i] = slices.Clone(row)
		}
	}
	return out
}
