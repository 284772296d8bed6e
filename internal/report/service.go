// Package report loads items and claims for a date range and turns them
// into dashboard figures and spreadsheet exports.
package report

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/lostfound/internal/export"
	"github.com/erazemk/lostfound/internal/mock"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/stats"
	"github.com/erazemk/lostfound/internal/store"
	"github.com/erazemk/lostfound/internal/table"
)

// Data sources of a Load.
const (
	SourceLive  = "live"
	SourceCache = "cache"
	SourceMock  = "mock"
)

// HealthChecker reports whether the database answers. *db.Provider
// implements it.
type HealthChecker interface {
	Check(ctx context.Context) bool
}

// Load is a table together with where it came from.
type Load struct {
	Table   *table.Table
	Source  string
	Notices []query.Diagnostic
}

// Service answers report and stats requests.
type Service struct {
	runner  query.Runner
	health  HealthChecker
	l       *zap.Logger
	gen     mock.Generator
	count   int
	seed    uint64
	agg     stats.Aggregator
	builder export.Builder
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithMock sets the size and seed of the fallback dataset.
func WithMock(count int, seed uint64) Option {
	return func(s *Service) {
		s.count = count
		s.seed = seed
	}
}

// WithStatusMapping replaces stats.DefaultStatusMapping.
func WithStatusMapping(m stats.StatusMapper) Option {
	return func(s *Service) {
		s.agg = stats.Aggregator{Statuses: m}
		s.builder = export.Builder{Statuses: m}
	}
}

// WithClock sets the clock used for file names and the mock month cap.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.gen = mock.Generator{Now: now}
	}
}

// NewService creates a service that queries through r. health may be nil,
// in which case Health always reports false.
func NewService(r query.Runner, health HealthChecker, l *zap.Logger, opts ...Option) *Service {
	if l == nil {
		l = zap.NewNop()
	}
	s := &Service{
		runner: r,
		health: health,
		l:      l,
		count:  mock.DefaultItemCount,
		seed:   mock.DefaultSeed,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock.
func (s *Service) Now() time.Time { return s.now() }

func (s *Service) mockItems(rng model.DateRange) *table.Table {
	return s.gen.Items(s.count, rng.End.Year(), s.seed)
}

// LoadItems loads items whose field lies in rng. Date columns are
// normalized.
func (s *Service) LoadItems(ctx context.Context, rng model.DateRange, field store.DateField) (Load, error) {
	res, err := store.ListItems(ctx, s.runner, rng, field, s.mockItems(rng))
	if err != nil {
		return Load{}, fmt.Errorf("loading items: %w", err)
	}
	ld := s.load(res)
	ld.Table = stats.NormalizeDates(ld.Table, model.ColDateLost, model.ColCreatedDate)
	return ld, nil
}

// LoadClaims loads claims created in rng.
func (s *Service) LoadClaims(ctx context.Context, rng model.DateRange) Load {
	fallback := s.gen.Claims(s.mockItems(rng), s.seed)
	ld := s.load(store.ListClaims(ctx, s.runner, rng, fallback))
	ld.Table = stats.NormalizeDates(ld.Table, model.ColCreatedDate)
	return ld
}

func (s *Service) load(res query.Result) Load {
	ld := Load{Table: res.Table, Source: SourceLive}
	switch {
	case res.Fallback:
		ld.Source = SourceMock
	case res.Cached:
		ld.Source = SourceCache
	}
	if res.Diagnostic != nil {
		ld.Notices = append(ld.Notices, *res.Diagnostic)
	}
	return ld
}

// Dashboard is the stats view of a date range.
type Dashboard struct {
	Range      model.DateRange           `json:"range"`
	Source     string                    `json:"source"`
	KPIs       stats.KPIs                `json:"kpis"`
	Categories []stats.CategoryCount     `json:"categories"`
	Monthly    []stats.MonthlyCount      `json:"monthly"`
	Claims     int                       `json:"claims"`
	Issues     []*stats.DataQualityError `json:"issues,omitempty"`
	Notices    []query.Diagnostic        `json:"notices,omitempty"`
}

// Dashboard computes the stats view. Items and claims are selected by
// CreatedDate. A claim is an orphan only when its item is missing from the
// whole Items table, not merely from the range.
func (s *Service) Dashboard(ctx context.Context, rng model.DateRange) (*Dashboard, error) {
	items, err := s.LoadItems(ctx, rng, store.ByCreatedDate)
	if err != nil {
		return nil, err
	}
	claims := s.LoadClaims(ctx, rng)
	claimed := s.load(store.ListClaimedItems(ctx, s.runner, rng, s.mockItems(rng)))

	d := &Dashboard{
		Range:      rng,
		Source:     combineSources(items.Source, claims.Source, claimed.Source),
		KPIs:       s.agg.KPIs(items.Table),
		Categories: s.agg.CategoryBreakdown(items.Table),
		Monthly:    s.agg.MonthlyLostVsFound(items.Table),
		Claims:     claims.Table.Len(),
		Issues:     append(s.agg.ValidateItems(items.Table), s.agg.OrphanClaims(claims.Table, claimed.Table)...),
		Notices:    slices.Concat(items.Notices, claims.Notices, claimed.Notices),
	}
	if len(d.Issues) > 0 {
		s.l.Warn("data quality issues in range",
			zap.Time("start", rng.Start),
			zap.Time("end", rng.End),
			zap.Int("issues", len(d.Issues)),
		)
	}
	return d, nil
}

func combineSources(sources ...string) string {
	out := SourceLive
	for _, src := range sources {
		switch {
		case src == SourceMock:
			return SourceMock
		case src == SourceCache:
			out = SourceCache
		}
	}
	return out
}

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Source      string
	Rows        int
	// Issues lists rows that could not be placed or dated as stored.
	Issues      []*stats.DataQualityError
}

// Export builds the spreadsheet for rt over items selected by DateLost.
// It returns export.ErrNothingToExport when every sheet is empty; the File
// then carries only Source and Issues. Notices are returned in both cases.
func (s *Service) Export(ctx context.Context, rng model.DateRange, rt export.ReportType) (*File, []query.Diagnostic, error) {
	items, err := s.LoadItems(ctx, rng, store.ByDateLost)
	if err != nil {
		return nil, nil, err
	}

	bundle, err := s.builder.Partition(items.Table, rt)
	if err != nil {
		return nil, items.Notices, err
	}

	issues := s.agg.ValidateItems(items.Table)
	for _, issue := range issues {
		s.l.Warn("data quality issue in export",
			zap.String("type", string(rt)),
			zap.String("issue", issue.Kind),
			zap.Int("row", issue.Row),
			zap.Any("value", issue.Value),
		)
	}

	if !bundle.HasData() {
		return &File{Source: items.Source, Issues: issues}, items.Notices, export.ErrNothingToExport
	}

	data, err := export.Serialize(bundle)
	if err != nil {
		return nil, items.Notices, fmt.Errorf("serializing %s report: %w", rt, err)
	}

	f := &File{
		Name:        export.FileName(rt, s.now()),
		ContentType: export.ContentType,
		Data:        data,
		Source:      items.Source,
		Rows:        bundle.Rows(),
		Issues:      issues,
	}
	s.l.Info("report exported",
		zap.String("type", string(rt)),
		zap.String("file", f.Name),
		zap.String("source", f.Source),
		zap.Int("rows", f.Rows),
		zap.Int("bytes", len(data)),
		zap.Int("issues", len(issues)),
	)
	return f, items.Notices, nil
}

// Health reports whether the database answers a trivial query.
func (s *Service) Health(ctx context.Context) bool {
	if s.health == nil {
		return false
	}
	return s.health.Check(ctx)
}

// IsWarning reports whether err is an expected empty result rather than a
// failure.
func IsWarning(err error) bool {
	return errors.Is(err, export.ErrNothingToExport)
}
