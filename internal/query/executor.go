// Package query runs parameterized reporting queries and degrades to a
// caller supplied fallback table when the database cannot answer.
package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/table"
)

// FallbackMessage is shown to users whenever synthetic data replaces a live result.
const FallbackMessage = "Database connection/query failed. Using fallback/mocked data if provided."

// Connector opens a scoped database handle and adapts placeholders.
// *db.Provider implements it.
type Connector interface {
	Connect(ctx context.Context) (*sql.DB, error)
	Rebind(query string) string
}

// Runner is anything that can answer a query with a table.
type Runner interface {
	Run(ctx context.Context, query string, params []any, fallback *table.Table) Result
}

// Diagnostic describes why a fallback was used.
type Diagnostic struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Err     error  `json:"-"`
}

// Notifier receives every fallback diagnostic, e.g. to show a notice in the UI.
type Notifier func(Diagnostic)

// Result is the outcome of a Run. Table is never nil.
type Result struct {
	Table      *table.Table
	Fallback   bool
	Cached     bool
	Diagnostic *Diagnostic
}

// Executor runs queries on a fresh connection per call.
type Executor struct {
	conn    Connector
	l       *zap.Logger
	notify  Notifier
	timeout time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithNotifier registers a callback invoked once per fallback.
func WithNotifier(n Notifier) Option {
	return func(e *Executor) { e.notify = n }
}

// WithTimeout bounds the query phase of each Run.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// NewExecutor creates an executor on top of conn.
func NewExecutor(conn Connector, l *zap.Logger, opts ...Option) *Executor {
	if conn == nil {
		panic("query: connector is required")
	}
	if l == nil {
		l = zap.NewNop()
	}
	e := &Executor{conn: conn, l: l, timeout: db.DefaultConnectTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes query with params bound by position. Any failure is
// reported through the result diagnostic and the notifier, and the
// fallback table (or an empty one) is returned instead.
func (e *Executor) Run(ctx context.Context, query string, params []any, fallback *table.Table) Result {
	t, err := e.fetch(ctx, query, params)
	if err == nil {
		return Result{Table: t}
	}

	d := Diagnostic{
		Message: FallbackMessage,
		Detail:  err.Error(),
		Err:     err,
	}
	e.l.Warn("query failed, using fallback data",
		zap.String("query", compact(query)),
		zap.Int("params", len(params)),
		zap.Bool("has_fallback", fallback != nil),
		zap.Error(err),
	)
	if e.notify != nil {
		e.notify(d)
	}

	if fallback == nil {
		fallback = table.Empty()
	}
	return Result{Table: fallback, Fallback: true, Diagnostic: &d}
}

func (e *Executor) fetch(ctx context.Context, query string, params []any) (*table.Table, error) {
	conn, err := e.conn.Connect(ctx)
	if err != nil {
		var connErr *db.ConnectionError
		if errors.As(err, &connErr) {
			return nil, err
		}
		return nil, &db.ConnectionError{Target: "database", Err: err}
	}
	defer conn.Close()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rows, err := conn.QueryContext(ctx, e.conn.Rebind(query), params...)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	t, err := materialize(rows)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	return t, nil
}

// materialize reads every row into memory.
func materialize(rows *sql.Rows) (*table.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	t := table.New(columns...)
	t.Rows = [][]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		for i, v := range values {
			switch x := v.(type) {
			case nil:
				values[i] = table.Missing
			case []byte:
				values[i] = string(x)
			}
		}
		t.Rows = append(t.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return t, nil
}

// compact collapses whitespace so queries log on one line.
func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
