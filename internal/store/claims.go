package store

import (
	"context"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/table"
)

// ClaimsQuery selects claims created inside a date range.
const ClaimsQuery = `SELECT ClaimId, ItemId, UserId, CreatedBy, CreatedDate, FoundDescription
	FROM Claims
	WHERE CreatedDate BETWEEN ? AND ?
	ORDER BY CreatedDate DESC`

// ListClaims loads the claims created inside rng.
func ListClaims(ctx context.Context, r query.Runner, rng model.DateRange, fallback *table.Table) query.Result {
	return r.Run(ctx, ClaimsQuery, []any{rng.Start, rng.End}, fallback)
}

// ClaimedItemsQuery selects the items referenced by claims created inside a
// date range, wherever the items themselves fall.
const ClaimedItemsQuery = `SELECT DISTINCT Items.ItemId
	FROM Claims
	JOIN Items ON Items.ItemId = Claims.ItemId
	WHERE Claims.CreatedDate BETWEEN ? AND ?`

// ListClaimedItems loads the ItemId of every stored item claimed inside rng.
func ListClaimedItems(ctx context.Context, r query.Runner, rng model.DateRange, fallback *table.Table) query.Result {
	return r.Run(ctx, ClaimedItemsQuery, []any{rng.Start, rng.End}, fallback)
}
