// Package export turns items tables into spreadsheet reports.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/lostfound/internal/model"
)

var (
	// ErrUnknownReportType is returned for a report type outside All, Lost,
	// Found and Claims.
	ErrUnknownReportType = errors.New("unknown report type")

	// ErrNothingToExport means every sheet of a report is empty. Callers
	// show it as a warning; it is not a failure.
	ErrNothingToExport = errors.New("no data for type of report and date range")
)

// ContentType is the MIME type of the generated files.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportType selects which sheets a report contains.
type ReportType string

// Report types.
const (
	ReportAll    ReportType = "All"
	ReportLost   ReportType = "Lost"
	ReportFound  ReportType = "Found"
	ReportClaims ReportType = "Claims"
)

// ReportTypes lists every report type.
var ReportTypes = []ReportType{ReportAll, ReportLost, ReportFound, ReportClaims}

// Sheet names.
const (
	SheetLost   = "Lost Items"
	SheetFound  = "Found Items"
	SheetClaims = "Claims"
)

type section struct {
	sheet  string
	status model.Status
}

var sections = map[ReportType][]section{
	ReportAll: {
		{SheetLost, model.StatusLost},
		{SheetFound, model.StatusFound},
		{SheetClaims, model.StatusClaimed},
	},
	ReportLost:   {{SheetLost, model.StatusLost}},
	ReportFound:  {{SheetFound, model.StatusFound}},
	ReportClaims: {{SheetClaims, model.StatusClaimed}},
}

// ParseReportType matches s case-insensitively against the report types.
func ParseReportType(s string) (ReportType, error) {
	s = strings.TrimSpace(s)
	for _, rt := range ReportTypes {
		if strings.EqualFold(s, string(rt)) {
			return rt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReportType, s)
}

// FileName returns the download name of a report generated at now.
func FileName(rt ReportType, now time.Time) string {
	return fmt.Sprintf("LostAndFound_%s_Report_%s.xlsx", rt, now.Format(time.DateOnly))
}
