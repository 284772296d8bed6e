package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/lostfound/internal/stats"
	"github.com/erazemk/lostfound/internal/table"
)

const defaultSheet = "Sheet1"

// Serialize writes one worksheet per sheet of b, header row first. Time
// values are written as text in stats.DateLayout and missing values as
// empty cells. Sheets whose truncated names collide share a worksheet, the
// later sheet overwriting the cells it covers.
func Serialize(b Bundle) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range b {
		name := SheetName(s.Name)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, fmt.Errorf("naming sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("creating sheet %q: %w", name, err)
		}

		if err := writeTable(f, name, s.Table); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, t *table.Table) error {
	if t == nil {
		return nil
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header of %q: %w", sheet, err)
	}

	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d of %q: %w", r+1, sheet, err)
		}
	}
	return nil
}

func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		return x.Format(stats.DateLayout)
	case []byte:
		return string(x)
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return x
	}
	if table.IsMissing(v) {
		return nil
	}
	return fmt.Sprint(v)
}
