package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/erazemk/lostfound/internal/config"
	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/logger"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/report"
)

// app is what every command builds from the global options.
type app struct {
	cfg      *config.Resolved
	l        *zap.Logger
	provider *db.Provider
	reports  *report.Service
}

func newApp() (*app, error) {
	l, err := logger.New(opts.Log)
	if err != nil {
		return nil, err
	}

	cfg, err := opts.Resolve()
	if err != nil {
		return nil, err
	}

	provider, err := db.NewProvider(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("configuring database: %w", err)
	}

	var runner query.Runner = query.NewExecutor(provider, l.Named("query"),
		query.WithTimeout(cfg.Database.Timeout()))
	if cfg.CacheTTL > 0 {
		runner = query.NewCachedRunner(runner, query.NewCache(cfg.CacheSize, cfg.CacheTTL))
	}

	reports := report.NewService(runner, provider, l.Named("report"),
		report.WithMock(cfg.MockCount, cfg.MockSeed))

	l.Debug("configuration loaded",
		zap.String("database", cfg.Database.String()),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("accounts", len(cfg.Accounts)),
	)
	return &app{cfg: cfg, l: l, provider: provider, reports: reports}, nil
}

func (a *app) close() {
	a.l.Sync()
}
