package api

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"talentdash/internal/api/middleware"
	"talentdash/internal/export"
	"talentdash/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the CSV and XLSX downloads.
type ExportHandler struct {
	store store.Store
}

// NewExportHandler builds the export handler.
func NewExportHandler(st store.Store) *ExportHandler {
	return &ExportHandler{store: st}
}

// CandidatesCSV downloads every candidate as CSV.
func (h *ExportHandler) CandidatesCSV(c *gin.Context) {
	candidates, err := h.store.ListCandidates(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to export candidates")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCandidatesCSV(&buf, candidates); err != nil {
		middleware.LoggerFromContext(c).Error("render candidates csv failed", slog.Any("error", err))
		Internal(c, "failed to export candidates")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="candidates.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// CandidatesXLSX downloads the candidate pipeline workbook.
func (h *ExportHandler) CandidatesXLSX(c *gin.Context) {
	candidates, err := h.store.ListCandidates(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to export candidates")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCandidatesWorkbook(&buf, candidates); err != nil {
		middleware.LoggerFromContext(c).Error("render candidates workbook failed", slog.Any("error", err))
		Internal(c, "failed to export candidates")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// JobsCSV downloads every job posting as CSV.
func (h *ExportHandler) JobsCSV(c *gin.Context) {
	jobs, err := h.store.ListJobs(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list jobs failed", slog.Any("error", err))
		Internal(c, "failed to export jobs")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteJobsCSV(&buf, jobs); err != nil {
		middleware.LoggerFromContext(c).Error("render jobs csv failed", slog.Any("error", err))
		Internal(c, "failed to export jobs")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="jobs.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
