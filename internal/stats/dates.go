package stats

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/erazemk/lostfound/internal/table"
)

// DateLayout is the fixed layout used for database and spreadsheet text.
const DateLayout = "2006-01-02 15:04:05"

// NormalizeDates returns a copy of t where every named column holds either
// a time.Time or table.Missing. Columns t does not have are ignored.
func NormalizeDates(t *table.Table, columns ...string) *table.Table {
	out := t.Clone()
	if out == nil {
		return table.Empty()
	}
	for _, column := range columns {
		i := out.Index(column)
		if i < 0 {
			continue
		}
		for _, row := range out.Rows {
			row[i] = ParseDate(row[i])
		}
	}
	return out
}

// ParseDate converts one cell to a time.Time, or table.Missing when the
// value is empty or unparseable.
func ParseDate(v any) any {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return table.Missing
		}
		return x
	case *time.Time:
		if x == nil {
			return table.Missing
		}
		return ParseDate(*x)
	case []byte:
		return ParseDate(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return table.Missing
		}
		if ts, err := time.Parse(DateLayout, s); err == nil {
			return ts
		}
		if ts, err := dateparse.ParseStrict(s); err == nil {
			return ts
		}
	}
	return table.Missing
}
