// Package mock synthesizes Items and Claims tables shaped like the live
// schema. They stand in for live data when the database is unreachable.
package mock

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/table"
)

// Defaults used by the reporting service.
const (
	DefaultItemCount = 300
	DefaultSeed      = 123
)

// ClaimFraction is the share of items that receive claims.
const ClaimFraction = 0.2

// MaxUserID bounds the synthetic user ids.
const MaxUserID = 50

// Generator produces deterministic datasets. Now decides the latest month
// an item can fall in; it defaults to time.Now.
type Generator struct {
	Now func() time.Time
}

// GenerateItems is Generator{}.Items.
func GenerateItems(count, year int, seed uint64) *table.Table {
	return Generator{}.Items(count, year, seed)
}

// GenerateClaims is Generator{}.Claims.
func GenerateClaims(items *table.Table, seed uint64) *table.Table {
	return Generator{}.Claims(items, seed)
}

func (g Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

var itemStatuses = []weighted{
	{model.StatusLost.String(), 0.45},
	{model.StatusFound.String(), 0.45},
	{model.StatusClaimed.String(), 0.10},
}

var claimStatuses = []weighted{
	{model.ClaimPending, 0.5},
	{model.ClaimApproved, 0.3},
	{model.ClaimRejected, 0.2},
}

type weighted struct {
	label string
	p     float64
}

func pick(r *rand.Rand, choices []weighted) string {
	x := r.Float64()
	for _, c := range choices {
		if x < c.p {
			return c.label
		}
		x -= c.p
	}
	return choices[len(choices)-1].label
}

// Items returns count rows with ids 1..count. Status is stored as a label.
func (g Generator) Items(count, year int, seed uint64) *table.Table {
	r := newRand(seed)
	maxMonth := min(12, int(g.now().Month()))

	t := table.New(model.ItemColumns...)
	t.Rows = make([][]any, 0, max(count, 0))
	for id := 1; id <= count; id++ {
		userID := int64(1 + r.IntN(MaxUserID))
		category := model.Categories[r.IntN(len(model.Categories))]
		status := pick(r, itemStatuses)
		lost := time.Date(year,
			time.Month(1+r.IntN(maxMonth)),
			1+r.IntN(28),
			8+r.IntN(10),
			r.IntN(60), 0, 0, time.UTC)

		vocab := vocabulary[category]
		title := vocab.titles[r.IntN(len(vocab.titles))]
		colour := colours[r.IntN(len(colours))]
		location := locations[r.IntN(len(locations))]

		t.MustAppend(
			int64(id),
			userID,
			title,
			colour+" "+lowerFirst(title)+" "+vocab.detail,
			category,
			location,
			lost,
			status,
			userID,
			lost,
		)
	}
	return t
}

// Claims samples ClaimFraction of the items and gives each 0-2 claims
// created within ten days of the item's DateLost.
func (g Generator) Claims(items *table.Table, seed uint64) *table.Table {
	r := newRand(seed)

	t := table.New(append(append([]string{}, model.ClaimColumns...), model.ColStatus)...)
	t.Rows = [][]any{}

	n := items.Len()
	k := int(math.Round(ClaimFraction * float64(n)))
	if k == 0 {
		return t
	}
	sample := r.Perm(n)[:k]

	var claimID int64
	for _, row := range sample {
		itemID := items.Value(row, model.ColItemID)
		lost, ok := items.Value(row, model.ColDateLost).(time.Time)
		if !ok || table.IsMissing(itemID) {
			continue
		}

		for range r.IntN(3) {
			claimID++
			status := pick(r, claimStatuses)
			userID := int64(1 + r.IntN(MaxUserID))
			offset := time.Duration(r.Float64() * float64(10*24*time.Hour))
			t.MustAppend(
				claimID,
				itemID,
				userID,
				userID,
				lost.Add(offset),
				reasons[r.IntN(len(reasons))],
				status,
			)
		}
	}
	return t
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
