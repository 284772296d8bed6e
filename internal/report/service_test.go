package report

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/export"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/stats"
	"github.com/erazemk/lostfound/internal/table"
)

var clock = func() time.Time { return time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC) }

type downConnector struct{}

func (downConnector) Connect(context.Context) (*sql.DB, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func (downConnector) Rebind(q string) string { return q }

func at(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 11, 30, 0, 0, time.UTC)
}

func liveService(t *testing.T) (*Service, *db.Provider) {
	t.Helper()
	cfg, database := db.NewTestFileDB(t)
	ctx := context.Background()

	items := table.New(model.ItemColumns...)
	items.MustAppend(int64(1), int64(1), "Wallet", "brown", "Personal", "Library", at(6, 3), int64(0), int64(1), at(6, 3))
	items.MustAppend(int64(2), int64(2), "Phone", "cracked", "Electronics", "Cafeteria", at(6, 1), int64(0), int64(2), at(6, 1))
	items.MustAppend(int64(3), int64(3), "Hoodie", "grey", "Clothing", "Gym", at(6, 9), int64(1), int64(3), at(6, 9))
	items.MustAppend(int64(4), int64(4), "Charger", "", "Electronics", "Lab", at(6, 12), int64(2), int64(4), at(6, 12))
	items.MustAppend(int64(5), int64(5), "Cap", "", "Clothing", "Gym", at(5, 2), int64(1), int64(5), at(7, 1))
	require.NoError(t, db.InsertItems(ctx, database, items))

	claims := table.New(model.ClaimColumns...)
	claims.MustAppend(int64(1), int64(4), int64(7), int64(7), at(6, 13), "mine")
	require.NoError(t, db.InsertClaims(ctx, database, claims))

	p, err := db.NewProvider(cfg)
	require.NoError(t, err)
	return NewService(query.NewExecutor(p, nil), p, nil, WithClock(clock)), p
}

func june(t *testing.T) model.DateRange {
	t.Helper()
	rng, err := model.NewDateRange(at(6, 1), at(6, 30))
	require.NoError(t, err)
	return rng
}

func TestDashboardLive(t *testing.T) {
	s, _ := liveService(t)

	d, err := s.Dashboard(context.Background(), june(t))
	require.NoError(t, err)

	assert.Equal(t, SourceLive, d.Source)
	assert.Empty(t, d.Notices)
	assert.Equal(t, 2, d.KPIs.TotalLost)
	assert.Equal(t, 1, d.KPIs.TotalFound)
	assert.Equal(t, 1, d.KPIs.TotalClaimed)
	assert.Equal(t, 50.0, d.KPIs.RecoveryRate)
	assert.Equal(t, 1, d.Claims)
	assert.Empty(t, d.Issues)

	got := map[string]int{}
	for _, c := range d.Categories {
		got[c.Category] = c.Count
	}
	assert.Equal(t, map[string]int{"Personal": 1, "Electronics": 2, "Clothing": 1}, got)
}

func TestDashboardFallsBackToMock(t *testing.T) {
	var notified int
	exec := query.NewExecutor(downConnector{}, nil, query.WithNotifier(func(query.Diagnostic) { notified++ }))
	s := NewService(exec, nil, nil, WithClock(clock))

	d, err := s.Dashboard(context.Background(), june(t))
	require.NoError(t, err)

	assert.Equal(t, SourceMock, d.Source)
	require.Len(t, d.Notices, 3)
	assert.Equal(t, query.FallbackMessage, d.Notices[0].Message)
	assert.Equal(t, 3, notified)

	k := d.KPIs
	assert.Equal(t, 300, k.TotalLost+k.TotalFound+k.TotalClaimed)
	assert.Positive(t, d.Claims)
	assert.Empty(t, d.Issues)
	assert.False(t, s.Health(context.Background()))
}

func TestExportLive(t *testing.T) {
	s, _ := liveService(t)

	f, notices, err := s.Export(context.Background(), june(t), export.ReportLost)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, "LostAndFound_Lost_Report_2024-07-15.xlsx", f.Name)
	assert.Equal(t, export.ContentType, f.ContentType)
	assert.Equal(t, SourceLive, f.Source)
	assert.Equal(t, 2, f.Rows)

	x, err := excelize.OpenReader(bytes.NewReader(f.Data))
	require.NoError(t, err)
	defer x.Close()

	rows, err := x.GetRows(export.SheetLost)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "2024-06-01 11:30:00", rows[1][6])
	assert.Equal(t, "1", rows[2][0])
}

func TestExportNothingToExport(t *testing.T) {
	s, _ := liveService(t)
	rng, err := model.NewDateRange(at(1, 1), at(1, 31))
	require.NoError(t, err)

	f, _, err := s.Export(context.Background(), rng, export.ReportAll)
	assert.ErrorIs(t, err, export.ErrNothingToExport)
	assert.True(t, IsWarning(err))
	require.NotNil(t, f)
	assert.Nil(t, f.Data)
	assert.Equal(t, SourceLive, f.Source)
	assert.Empty(t, f.Issues)
}

func seededService(t *testing.T, items, claims *table.Table) *Service {
	t.Helper()
	cfg, database := db.NewTestFileDB(t)
	ctx := context.Background()
	require.NoError(t, db.InsertItems(ctx, database, items))
	require.NoError(t, db.InsertClaims(ctx, database, claims))

	p, err := db.NewProvider(cfg)
	require.NoError(t, err)
	return NewService(query.NewExecutor(p, nil), p, nil, WithClock(clock))
}

func TestDashboardClaimOnItemCreatedBeforeRange(t *testing.T) {
	items := table.New(model.ItemColumns...)
	items.MustAppend(int64(4), int64(4), "Charger", "", "Electronics", "Lab", at(6, 12), int64(1), int64(4), at(6, 12))
	claims := table.New(model.ClaimColumns...)
	claims.MustAppend(int64(1), int64(4), int64(7), int64(7), at(7, 3), "mine")
	claims.MustAppend(int64(2), int64(99), int64(8), int64(8), at(7, 4), "no such item")
	s := seededService(t, items, claims)

	july, err := model.NewDateRange(at(7, 1), at(7, 31))
	require.NoError(t, err)
	d, err := s.Dashboard(context.Background(), july)
	require.NoError(t, err)

	assert.Equal(t, SourceLive, d.Source)
	assert.Equal(t, 2, d.Claims)
	require.Len(t, d.Issues, 1)
	assert.Equal(t, stats.IssueOrphanClaim, d.Issues[0].Kind)
	assert.Equal(t, int64(99), d.Issues[0].Value)
}

func TestExportReportsUnknownStatus(t *testing.T) {
	items := table.New(model.ItemColumns...)
	items.MustAppend(int64(1), int64(1), "Wallet", "", "Personal", "Library", at(6, 3), int64(0), int64(1), at(6, 3))
	items.MustAppend(int64(2), int64(2), "Umbrella", "", "Miscellaneous", "Gym", at(6, 4), int64(7), int64(2), at(6, 4))
	s := seededService(t, items, table.New(model.ClaimColumns...))

	f, _, err := s.Export(context.Background(), june(t), export.ReportAll)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Rows)
	require.Len(t, f.Issues, 1)
	assert.Equal(t, stats.IssueUnknownStatus, f.Issues[0].Kind)
	assert.Equal(t, int64(7), f.Issues[0].Value)

	// Nothing placeable is still reported.
	f, _, err = s.Export(context.Background(), june(t), export.ReportFound)
	assert.True(t, IsWarning(err))
	require.NotNil(t, f)
	assert.Len(t, f.Issues, 1)
}

func TestExportFallback(t *testing.T) {
	s := NewService(query.NewExecutor(downConnector{}, nil), nil, nil, WithClock(clock), WithMock(40, 9))

	f, notices, err := s.Export(context.Background(), june(t), export.ReportAll)
	require.NoError(t, err)
	assert.Len(t, notices, 1)
	assert.Equal(t, SourceMock, f.Source)
	assert.Equal(t, 40, f.Rows)
}

func TestExportUnknownType(t *testing.T) {
	s, _ := liveService(t)
	_, _, err := s.Export(context.Background(), june(t), export.ReportType("Weekly"))
	assert.ErrorIs(t, err, export.ErrUnknownReportType)
	assert.False(t, IsWarning(err))
}

func TestCachedLoadsReportSource(t *testing.T) {
	cfg, _ := db.NewTestFileDB(t)
	p, err := db.NewProvider(cfg)
	require.NoError(t, err)
	runner := query.NewCachedRunner(query.NewExecutor(p, nil), query.NewCache(8, time.Minute))
	s := NewService(runner, p, nil, WithClock(clock))

	first := s.LoadClaims(context.Background(), june(t))
	second := s.LoadClaims(context.Background(), june(t))
	assert.Equal(t, SourceLive, first.Source)
	assert.Equal(t, SourceCache, second.Source)
	assert.True(t, s.Health(context.Background()))
}

func TestHealthUnreachable(t *testing.T) {
	p, err := db.NewProvider(db.Config{
		Dialect:  db.DialectSQLite,
		Database: filepath.Join(t.TempDir(), "missing", "dir", "x.db"),
	})
	require.NoError(t, err)
	s := NewService(query.NewExecutor(p, nil), p, nil)
	assert.False(t, s.Health(context.Background()))
}
