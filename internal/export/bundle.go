package export

import (
	"fmt"
	"time"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/stats"
	"github.com/erazemk/lostfound/internal/table"
)

// MaxSheetNameLength is the spreadsheet format's limit on sheet names.
const MaxSheetNameLength = 31

// Sheet is one named table of a report.
type Sheet struct {
	Name  string
	Table *table.Table
}

// Bundle is an ordered set of sheets staged for serialization.
type Bundle []Sheet

// Get returns the table of the first sheet called name.
func (b Bundle) Get(name string) (*table.Table, bool) {
	for _, s := range b {
		if s.Name == name {
			return s.Table, true
		}
	}
	return nil, false
}

// HasData reports whether any sheet has at least one row.
func (b Bundle) HasData() bool {
	for _, s := range b {
		if s.Table.Len() > 0 {
			return true
		}
	}
	return false
}

// Rows returns the total number of data rows.
func (b Bundle) Rows() int {
	n := 0
	for _, s := range b {
		n += s.Table.Len()
	}
	return n
}

// SheetName truncates name to MaxSheetNameLength characters. Distinct names
// sharing a prefix end up with the same sheet name.
func SheetName(name string) string {
	r := []rune(name)
	if len(r) <= MaxSheetNameLength {
		return name
	}
	return string(r[:MaxSheetNameLength])
}

// Builder partitions items into report sheets. The zero value uses
// stats.DefaultStatusMapping.
type Builder struct {
	Statuses stats.StatusMapper
}

// Partition is Builder{}.Partition.
func Partition(items *table.Table, rt ReportType) (Bundle, error) {
	return Builder{}.Partition(items, rt)
}

// Partition splits items by status into the sheets of rt. Each sheet is
// sorted by DateLost, oldest first, with undated rows last.
func (b Builder) Partition(items *table.Table, rt ReportType) (Bundle, error) {
	secs, ok := sections[rt]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportType, string(rt))
	}

	m := b.Statuses
	if m == nil {
		m = stats.DefaultStatusMapping
	}
	if items == nil {
		items = table.New(model.ItemColumns...)
	}
	si, di := items.Index(model.ColStatus), items.Index(model.ColDateLost)

	bundle := make(Bundle, 0, len(secs))
	for _, sec := range secs {
		subset := items.Filter(func(row []any) bool {
			if si < 0 {
				return false
			}
			st, ok := m.Status(row[si])
			return ok && st == sec.status
		})
		if di >= 0 {
			subset = subset.SortStable(func(x, y []any) int {
				return compareDates(x[di], y[di])
			})
		}
		bundle = append(bundle, Sheet{Name: sec.sheet, Table: subset})
	}
	return bundle, nil
}

func compareDates(x, y any) int {
	tx, okx := stats.ParseDate(x).(time.Time)
	ty, oky := stats.ParseDate(y).(time.Time)
	switch {
	case okx && oky:
		return tx.Compare(ty)
	case okx:
		return -1
	case oky:
		return 1
	}
	return 0
}
