package query

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/table"
)

type failingConnector struct{ err error }

func (f failingConnector) Connect(context.Context) (*sql.DB, error) { return nil, f.err }
func (f failingConnector) Rebind(q string) string                  { return q }

func fallbackTable(n int) *table.Table {
	t := table.New(model.ColItemID, model.ColStatus)
	for i := 1; i <= n; i++ {
		t.MustAppend(int64(i), "Lost")
	}
	return t
}

func seededProvider(t *testing.T) *db.Provider {
	t.Helper()
	cfg, conn := db.NewTestFileDB(t)

	items := table.New(model.ItemColumns...)
	day := func(d int) time.Time { return time.Date(2024, 3, d, 10, 0, 0, 0, time.UTC) }
	items.MustAppend(int64(1), int64(7), "Phone", "Black phone", "Electronics", "Library", day(1), int64(0), int64(7), day(1))
	items.MustAppend(int64(2), int64(8), "Scarf", nil, "Clothing", "Gym", day(5), int64(1), int64(8), day(5))
	items.MustAppend(int64(3), int64(9), "Pen", "Blue pen", "Stationery", "Hall B", day(20), int64(2), int64(9), day(20))
	require.NoError(t, db.InsertItems(context.Background(), conn, items))

	p, err := db.NewProvider(cfg)
	require.NoError(t, err)
	return p
}

func TestRunReturnsLiveRows(t *testing.T) {
	p := seededProvider(t)
	exec := NewExecutor(p, zap.NewNop())

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 23, 59, 59, 999999000, time.UTC)
	res := exec.Run(context.Background(),
		`SELECT ItemId, Title, LostDescription, DateLost, Status FROM Items WHERE DateLost BETWEEN ? AND ? ORDER BY ItemId`,
		[]any{from, to}, fallbackTable(5))

	require.False(t, res.Fallback)
	assert.Nil(t, res.Diagnostic)
	assert.Equal(t, []string{"ItemId", "Title", "LostDescription", "DateLost", "Status"}, res.Table.Columns)
	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, "Phone", res.Table.Value(0, "Title"))
	assert.Equal(t, table.Missing, res.Table.Value(1, "LostDescription"))

	st, ok := model.ParseStatus(res.Table.Value(1, "Status"))
	require.True(t, ok)
	assert.Equal(t, model.StatusFound, st)
}

func TestRunFallbackOnConnectionFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	var notices []Diagnostic
	exec := NewExecutor(failingConnector{err: errors.New("login timeout expired")}, zap.New(core),
		WithNotifier(func(d Diagnostic) { notices = append(notices, d) }))

	res := exec.Run(context.Background(), "SELECT 1", nil, fallbackTable(50))

	assert.True(t, res.Fallback)
	assert.Equal(t, 50, res.Table.Len())
	require.Len(t, notices, 1)
	assert.Equal(t, FallbackMessage, notices[0].Message)
	assert.Contains(t, notices[0].Detail, "login timeout expired")
	assert.Equal(t, 1, logs.Len())

	var connErr *db.ConnectionError
	assert.True(t, errors.As(res.Diagnostic.Err, &connErr))
}

func TestRunQueryErrorWithoutFallback(t *testing.T) {
	p := seededProvider(t)
	var calls int
	exec := NewExecutor(p, zap.NewNop(), WithNotifier(func(Diagnostic) { calls++ }))

	res := exec.Run(context.Background(), "SELEC nonsense FROM", nil, nil)

	assert.True(t, res.Fallback)
	assert.Equal(t, 1, calls)
	require.NotNil(t, res.Table)
	assert.Empty(t, res.Table.Columns)
	assert.Equal(t, 0, res.Table.Len())

	var qErr *QueryError
	assert.True(t, errors.As(res.Diagnostic.Err, &qErr))
}

func TestRunUnreachableSQLiteFallsBack(t *testing.T) {
	p, err := db.NewProvider(db.Config{Dialect: db.DialectSQLite, Database: t.TempDir() + "/no/such/dir/x.db"})
	require.NoError(t, err)

	exec := NewExecutor(p, zap.NewNop())
	res := exec.Run(context.Background(), "SELECT * FROM Items", nil, fallbackTable(3))

	assert.True(t, res.Fallback)
	assert.Equal(t, 3, res.Table.Len())
}
