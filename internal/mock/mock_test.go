package mock

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/table"
)

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time { return time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC) }
}

func TestItemsDeterministic(t *testing.T) {
	g := Generator{Now: fixedClock(time.December)}

	a := g.Items(300, 2025, 123)
	b := g.Items(300, 2025, 123)
	assert.Equal(t, a, b)

	c := g.Items(300, 2025, 124)
	assert.NotEqual(t, a.Rows, c.Rows)
}

func TestItemsShape(t *testing.T) {
	g := Generator{Now: fixedClock(time.December)}
	items := g.Items(300, 2025, 123)

	require.Equal(t, model.ItemColumns, items.Columns)
	require.Equal(t, 300, items.Len())

	statuses := []string{"Lost", "Found", "Claimed"}
	for i := range items.Len() {
		assert.Equal(t, int64(i+1), items.Value(i, model.ColItemID))

		user := items.Value(i, model.ColUserID).(int64)
		assert.True(t, user >= 1 && user <= MaxUserID, "user %d", user)
		assert.Equal(t, user, items.Value(i, model.ColCreatedBy))

		assert.Contains(t, model.Categories, items.Value(i, model.ColCategory))
		assert.Contains(t, statuses, items.Value(i, model.ColStatus))

		lost := items.Value(i, model.ColDateLost).(time.Time)
		assert.Equal(t, 2025, lost.Year())
		assert.True(t, lost.Day() >= 1 && lost.Day() <= 28, "day %d", lost.Day())
		assert.True(t, lost.Hour() >= 8 && lost.Hour() < 18, "hour %d", lost.Hour())
		assert.Equal(t, lost, items.Value(i, model.ColCreatedDate))
	}
}

func TestItemsStatusWeights(t *testing.T) {
	g := Generator{Now: fixedClock(time.December)}
	items := g.Items(5000, 2025, 7)

	counts := map[any]int{}
	for i := range items.Len() {
		counts[items.Value(i, model.ColStatus)]++
	}

	assert.InDelta(t, 0.45, float64(counts["Lost"])/5000, 0.04)
	assert.InDelta(t, 0.45, float64(counts["Found"])/5000, 0.04)
	assert.InDelta(t, 0.10, float64(counts["Claimed"])/5000, 0.03)
}

func TestItemsMonthCappedByClock(t *testing.T) {
	g := Generator{Now: fixedClock(time.March)}
	items := g.Items(500, 2025, 123)

	for i := range items.Len() {
		month := items.Value(i, model.ColDateLost).(time.Time).Month()
		if month > time.March {
			t.Fatalf("row %d: month %s after clock month", i, month)
		}
	}
}

func TestItemsZeroCount(t *testing.T) {
	items := GenerateItems(0, 2025, 1)
	assert.Equal(t, 0, items.Len())
	assert.Equal(t, model.ItemColumns, items.Columns)
}

func TestClaimsReferenceItems(t *testing.T) {
	g := Generator{Now: fixedClock(time.December)}
	items := g.Items(300, 2025, 123)
	claims := g.Claims(items, 123)

	require.True(t, claims.Has(model.ColStatus))
	require.Positive(t, claims.Len())
	assert.LessOrEqual(t, claims.Len(), 2*60)

	lostByID := map[any]time.Time{}
	for i := range items.Len() {
		lostByID[items.Value(i, model.ColItemID)] = items.Value(i, model.ColDateLost).(time.Time)
	}

	claimed := map[any]bool{}
	for i := range claims.Len() {
		assert.Equal(t, int64(i+1), claims.Value(i, model.ColClaimID))

		itemID := claims.Value(i, model.ColItemID)
		lost, ok := lostByID[itemID]
		require.True(t, ok, "claim %d references unknown item %v", i, itemID)
		claimed[itemID] = true

		created := claims.Value(i, model.ColCreatedDate).(time.Time)
		assert.False(t, created.Before(lost))
		assert.True(t, created.Before(lost.Add(10*24*time.Hour)))

		assert.Contains(t, []string{model.ClaimPending, model.ClaimApproved, model.ClaimRejected},
			claims.Value(i, model.ColStatus))
	}
	assert.LessOrEqual(t, len(claimed), 60)
}

func TestClaimsDeterministic(t *testing.T) {
	items := GenerateItems(100, 2024, 5)
	assert.Equal(t, GenerateClaims(items, 9), GenerateClaims(items, 9))
}

func TestClaimsSkipUndatedItems(t *testing.T) {
	items := table.New(model.ItemColumns...)
	for id := range 10 {
		row := make([]any, len(model.ItemColumns))
		for i := range row {
			row[i] = table.Missing
		}
		row[0] = int64(id + 1)
		items.MustAppend(row...)
	}

	claims := GenerateClaims(items, 1)
	assert.Equal(t, 0, claims.Len())
	assert.True(t, slices.Contains(claims.Columns, model.ColClaimID))
}
