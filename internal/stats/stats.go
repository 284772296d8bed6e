// Package stats computes dashboard figures from items tables.
package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/table"
)

// KPIs are the headline status counts.
type KPIs struct {
	TotalLost    int     `json:"total_lost"`
	TotalFound   int     `json:"total_found"`
	TotalClaimed int     `json:"total_claimed"`
	RecoveryRate float64 `json:"recovery_rate"`
}

// CategoryCount is one row of the category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// MonthlyCount is one (month, status) cell of the lost-vs-found series.
type MonthlyCount struct {
	Month  string `json:"month"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Aggregator computes figures using a status mapping. The zero value uses
// DefaultStatusMapping.
type Aggregator struct {
	Statuses StatusMapper
}

var defaultAggregator Aggregator

// ComputeKPIs counts items by status using DefaultStatusMapping.
func ComputeKPIs(items *table.Table) KPIs { return defaultAggregator.KPIs(items) }

// CategoryBreakdown counts items per category.
func CategoryBreakdown(items *table.Table) []CategoryCount {
	return defaultAggregator.CategoryBreakdown(items)
}

// MonthlyLostVsFound counts Lost and Found items per DateLost month.
func MonthlyLostVsFound(items *table.Table) []MonthlyCount {
	return defaultAggregator.MonthlyLostVsFound(items)
}

func (a Aggregator) statuses() StatusMapper {
	if a.Statuses == nil {
		return DefaultStatusMapping
	}
	return a.Statuses
}

// RecoveryRate is the percentage of lost items that were claimed. It is
// exactly 0 when nothing was lost.
func RecoveryRate(lost, claimed int) float64 {
	if lost <= 0 {
		return 0.0
	}
	return float64(claimed) / float64(lost) * 100
}

// KPIs counts items by status. Rows with an unknown status are not counted;
// Validate reports them. A table without a Status column yields zeros.
func (a Aggregator) KPIs(items *table.Table) KPIs {
	var k KPIs
	i := items.Index(model.ColStatus)
	if i < 0 {
		return k
	}

	m := a.statuses()
	for _, row := range items.Rows {
		st, ok := m.Status(row[i])
		if !ok {
			continue
		}
		switch st {
		case model.StatusLost:
			k.TotalLost++
		case model.StatusFound:
			k.TotalFound++
		case model.StatusClaimed:
			k.TotalClaimed++
		}
	}
	k.RecoveryRate = RecoveryRate(k.TotalLost, k.TotalClaimed)
	return k
}

// CategoryBreakdown counts items per category in order of first appearance.
// Rows without a category are skipped.
func (a Aggregator) CategoryBreakdown(items *table.Table) []CategoryCount {
	i := items.Index(model.ColCategory)
	if i < 0 {
		return []CategoryCount{}
	}

	out := []CategoryCount{}
	pos := map[string]int{}
	for _, row := range items.Rows {
		category, ok := row[i].(string)
		if !ok || category == "" {
			continue
		}
		if p, seen := pos[category]; seen {
			out[p].Count++
			continue
		}
		pos[category] = len(out)
		out = append(out, CategoryCount{Category: category, Count: 1})
	}
	return out
}

// MonthlyLostVsFound groups Lost and Found items by DateLost month. Claimed
// items and rows without a parseable date are left out. The result is
// ordered by month, then status label.
func (a Aggregator) MonthlyLostVsFound(items *table.Table) []MonthlyCount {
	si, di := items.Index(model.ColStatus), items.Index(model.ColDateLost)
	if si < 0 || di < 0 {
		return []MonthlyCount{}
	}

	type key struct{ month, status string }
	counts := map[key]int{}
	m := a.statuses()
	for _, row := range items.Rows {
		st, ok := m.Status(row[si])
		if !ok || (st != model.StatusLost && st != model.StatusFound) {
			continue
		}
		lost, ok := ParseDate(row[di]).(time.Time)
		if !ok {
			continue
		}
		counts[key{lost.Format("2006-01"), st.String()}]++
	}

	out := make([]MonthlyCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, MonthlyCount{Month: k.month, Status: k.status, Count: n})
	}
	slices.SortFunc(out, func(x, y MonthlyCount) int {
		return cmp.Or(cmp.Compare(x.Month, y.Month), cmp.Compare(x.Status, y.Status))
	})
	return out
}
