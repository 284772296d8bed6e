package db

import (
	"context"
	"database/sql"
	"fmt"
)

// ConnectionError reports a failed handshake, authentication or timeout.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Provider opens short-lived connections to the reporting database.
type Provider struct {
	cfg     Config
	dialect dialect
}

// NewProvider validates cfg and returns a provider for it.
func NewProvider(cfg Config) (*Provider, error) {
	d, ok := dialects[cfg.Dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported database dialect: %q", cfg.Dialect)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database name is required")
	}
	if cfg.Dialect != DialectSQLite && cfg.Host == "" {
		return nil, fmt.Errorf("database host is required for %s", cfg.Dialect)
	}
	return &Provider{cfg: cfg, dialect: d}, nil
}

// Config returns the provider's configuration.
func (p *Provider) Config() Config { return p.cfg }

// DSN returns the driver connection string.
func (p *Provider) DSN() string { return p.dialect.dsn(p.cfg) }

// Rebind converts '?' placeholders to the dialect's positional form.
func (p *Provider) Rebind(query string) string { return p.dialect.rebind(query) }

// Connect opens a single connection and verifies it within the configured
// timeout. The caller owns the returned handle and must close it.
func (p *Provider) Connect(ctx context.Context) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout())
	defer cancel()

	conn, err := sql.Open(p.dialect.driver, p.DSN())
	if err != nil {
		return nil, &ConnectionError{Target: p.cfg.String(), Err: err}
	}
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, &ConnectionError{Target: p.cfg.String(), Err: err}
	}

	if p.cfg.Dialect == DialectSQLite {
		if err := applyPragmas(ctx, conn); err != nil {
			conn.Close()
			return nil, &ConnectionError{Target: p.cfg.String(), Err: err}
		}
	}

	return conn, nil
}

// Check performs a trivial round trip. It never returns an error: any
// failure is reported as false.
func (p *Provider) Check(ctx context.Context) bool {
	conn, err := p.Connect(ctx)
	if err != nil {
		return false
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout())
	defer cancel()

	var one int
	if err := conn.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return false
	}
	return one == 1
}

// Open opens a SQLite database file for the development tooling and
// configures pragmas.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := applyPragmas(context.Background(), conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func applyPragmas(ctx context.Context, conn *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}
	return nil
}
