package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/lostfound/internal/export"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/report"
	"github.com/erazemk/lostfound/internal/stats"
)

type rangeOptions struct {
	Start string `long:"start" description:"First day, YYYY-MM-DD (default: 90 days ago)"`
	End   string `long:"end" description:"Last day, YYYY-MM-DD (default: today)"`
}

func (r rangeOptions) parse(now time.Time) (model.DateRange, error) {
	return model.ParseDateRange(r.Start, r.End, now)
}

func printNotices(notices []query.Diagnostic) {
	for _, n := range notices {
		fmt.Fprintf(os.Stderr, "warning: %s (%s)\n", n.Message, n.Detail)
	}
}

func printIssues(issues []*stats.DataQualityError) {
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "data issue: %v\n", issue)
	}
}

type exportCommand struct {
	rangeOptions
	Type string `short:"t" long:"type" default:"All" choice:"All" choice:"Lost" choice:"Found" choice:"Claims" description:"Report type"`
	Dir  string `short:"o" long:"out-dir" default:"." description:"Directory to write the spreadsheet to"`
}

func (c *exportCommand) Execute([]string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	rng, err := c.parse(a.reports.Now())
	if err != nil {
		return err
	}
	rt, err := export.ParseReportType(c.Type)
	if err != nil {
		return err
	}

	f, notices, err := a.reports.Export(context.Background(), rng, rt)
	printNotices(notices)
	if f != nil {
		printIssues(f.Issues)
	}
	if report.IsWarning(err) {
		fmt.Fprintln(os.Stderr, "No data for type of report and date range.")
		return nil
	}
	if err != nil {
		return err
	}

	path := filepath.Join(c.Dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	a.l.Info("report written", zap.String("path", path), zap.Int("rows", f.Rows), zap.String("source", f.Source))
	fmt.Println(path)
	return nil
}

type statsCommand struct {
	rangeOptions
}

func (c *statsCommand) Execute([]string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	rng, err := c.parse(a.reports.Now())
	if err != nil {
		return err
	}

	d, err := a.reports.Dashboard(context.Background(), rng)
	if err != nil {
		return err
	}
	printNotices(d.Notices)
	printIssues(d.Issues)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

type checkCommand struct{}

func (checkCommand) Execute([]string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if !a.reports.Health(context.Background()) {
		return fmt.Errorf("database %s is not reachable", a.cfg.Database)
	}
	fmt.Printf("database %s is reachable\n", a.cfg.Database)
	return nil
}
