package stats

import (
	"fmt"
	"strconv"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/table"
)

// Data quality problem kinds.
const (
	IssueUnknownStatus = "unknown_status"
	IssueMissingDate   = "missing_date"
	IssueOrphanClaim   = "orphan_claim"
)

// DataQualityError describes one row that cannot be interpreted as stored.
// The row stays in the table; the error is reported alongside the figures.
type DataQualityError struct {
	Table  string `json:"table"`
	Row    int    `json:"row"`
	Column string `json:"column"`
	Kind   string `json:"kind"`
	Value  any    `json:"value"`
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("%s row %d: %s %s: %v", e.Table, e.Row, e.Kind, e.Column, e.Value)
}

// Validate reports unknown status values and missing DateLost values in
// items, and claims whose ItemId does not match any item.
func Validate(items, claims *table.Table) []*DataQualityError {
	return defaultAggregator.Validate(items, claims)
}

// OrphanClaims reports claims whose ItemId is not among the ItemId values of
// known.
func OrphanClaims(claims, known *table.Table) []*DataQualityError {
	return defaultAggregator.OrphanClaims(claims, known)
}

func (a Aggregator) Validate(items, claims *table.Table) []*DataQualityError {
	issues := a.ValidateItems(items)
	return append(issues, a.OrphanClaims(claims, items)...)
}

// ValidateItems reports unknown status values and missing DateLost values.
func (a Aggregator) ValidateItems(items *table.Table) []*DataQualityError {
	var issues []*DataQualityError
	m := a.statuses()

	si, di := items.Index(model.ColStatus), items.Index(model.ColDateLost)
	for r := range items.Len() {
		row := items.Rows[r]
		if si >= 0 {
			if _, ok := m.Status(row[si]); !ok {
				issues = append(issues, &DataQualityError{"Items", r, model.ColStatus, IssueUnknownStatus, row[si]})
			}
		}
		if di >= 0 {
			if table.IsMissing(ParseDate(row[di])) {
				issues = append(issues, &DataQualityError{"Items", r, model.ColDateLost, IssueMissingDate, row[di]})
			}
		}
	}
	return issues
}

func (a Aggregator) OrphanClaims(claims, known *table.Table) []*DataQualityError {
	ci, ki := claims.Index(model.ColItemID), known.Index(model.ColItemID)
	if ci < 0 || ki < 0 {
		return nil
	}

	ids := map[string]bool{}
	for _, row := range known.Rows {
		if !table.IsMissing(row[ki]) {
			ids[idKey(row[ki])] = true
		}
	}

	var issues []*DataQualityError
	for r := range claims.Len() {
		v := claims.Rows[r][ci]
		if table.IsMissing(v) || !ids[idKey(v)] {
			issues = append(issues, &DataQualityError{"Claims", r, model.ColItemID, IssueOrphanClaim, v})
		}
	}
	return issues
}

// idKey lets an integer ItemId match regardless of the width or text form
// the driver returned it in.
func idKey(v any) string {
	if n, ok := model.IntegerCode(v); ok {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprint(v)
}
