package api

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erazemk/lostfound/internal/export"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/report"
)

// NothingToExportWarning is returned instead of a file when the selected
// report would be empty.
const NothingToExportWarning = "No data for type of report and date range."

func (s *Server) dateRange(c *gin.Context) (model.DateRange, bool) {
	rng, err := model.ParseDateRange(c.Query("start"), c.Query("end"), s.reports.Now())
	if err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return model.DateRange{}, false
	}
	return rng, true
}

// health handles GET /api/health.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"database": s.reports.Health(c.Request.Context())})
}

// stats handles GET /api/stats.
func (s *Server) stats(c *gin.Context) {
	rng, ok := s.dateRange(c)
	if !ok {
		return
	}

	d, err := s.reports.Dashboard(c.Request.Context(), rng)
	if err != nil {
		s.l.Error("building dashboard", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "failed to build statistics")
		return
	}
	c.JSON(http.StatusOK, d)
}

// exportReport handles GET /api/reports/export.
func (s *Server) exportReport(c *gin.Context) {
	rng, ok := s.dateRange(c)
	if !ok {
		return
	}
	rt, err := export.ParseReportType(c.DefaultQuery("type", string(export.ReportAll)))
	if err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	f, notices, err := s.reports.Export(c.Request.Context(), rng, rt)
	setNotices(c, notices)
	switch {
	case report.IsWarning(err):
		resp := gin.H{"warning": NothingToExportWarning, "notices": notices}
		if f != nil && len(f.Issues) > 0 {
			resp["issues"] = f.Issues
		}
		c.JSON(http.StatusOK, resp)
		return
	case errors.Is(err, export.ErrUnknownReportType):
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.l.Error("exporting report", zap.String("type", string(rt)), zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "failed to generate report")
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	c.Header("X-Data-Source", f.Source)
	c.Header("X-Report-Rows", strconv.Itoa(f.Rows))
	c.Header("X-Data-Issues", strconv.Itoa(len(f.Issues)))
	c.Data(http.StatusOK, f.ContentType, f.Data)
}

func setNotices(c *gin.Context, notices []query.Diagnostic) {
	for _, n := range notices {
		c.Writer.Header().Add("X-Fallback-Notice", n.Message)
	}
}
