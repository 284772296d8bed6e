// Package store holds the read queries against the Items and Claims tables.
package store

import (
	"context"
	"fmt"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/table"
)

// DateField is the Items column a date range filters on.
type DateField string

// Item date fields. Reports filter on the event date, the stats dashboard
// on the record creation date.
const (
	ByDateLost    DateField = model.ColDateLost
	ByCreatedDate DateField = model.ColCreatedDate
)

// ItemsQuery returns the Items query filtered on field. Placeholders are
// '?' and are rebound by the executor.
func ItemsQuery(field DateField) (string, error) {
	switch field {
	case ByDateLost, ByCreatedDate:
	default:
		return "", fmt.Errorf("unsupported items date field: %q", string(field))
	}
	return fmt.Sprintf(
		`SELECT ItemId, UserId, Title, LostDescription, Category, Location, DateLost, Status, CreatedBy, CreatedDate
		 FROM Items
		 WHERE %s BETWEEN ? AND ?
		 ORDER BY %s DESC`, field, field), nil
}

// ListItems loads the items whose field falls inside rng. When the query
// fails the result carries fallback instead.
func ListItems(ctx context.Context, r query.Runner, rng model.DateRange, field DateField, fallback *table.Table) (query.Result, error) {
	q, err := ItemsQuery(field)
	if err != nil {
		return query.Result{}, err
	}
	return r.Run(ctx, q, []any{rng.Start, rng.End}, fallback), nil
}
