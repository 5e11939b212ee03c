package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"talentdash/internal/analysis"
	"talentdash/internal/api/middleware"
	"talentdash/internal/export"
	"talentdash/internal/scan"
	"talentdash/internal/storage"
	"talentdash/internal/store"
	"talentdash/internal/tasks"
	"talentdash/internal/worker"
)

const maxResumeUploadBytes = 5 << 20

// AnalysisHandler serves single and bulk resume analysis. The single
// endpoint is ephemeral: it returns the full analysis without creating a
// candidate. The bulk endpoint enqueues a worker task, or runs the batch
// inline when no queue client is wired (demo mode).
type AnalysisHandler struct {
	store       store.Store
	jitter      analysis.Jitter
	storage     *storage.Client
	scanner     *scan.Scanner
	asynqClient *asynq.Client
	bulkRunner  *worker.BulkAnalyzeHandler
}

// NewAnalysisHandler builds the analysis handler. storageClient, asynqClient
// and bulkRunner may be nil depending on the deployment mode.
func NewAnalysisHandler(
	st store.Store,
	jitter analysis.Jitter,
	storageClient *storage.Client,
	scanner *scan.Scanner,
	asynqClient *asynq.Client,
	bulkRunner *worker.BulkAnalyzeHandler,
) *AnalysisHandler {
	return &AnalysisHandler{
		store:       st,
		jitter:      jitter,
		storage:     storageClient,
		scanner:     scanner,
		asynqClient: asynqClient,
		bulkRunner:  bulkRunner,
	}
}

type analyzeResponse struct {
	Analysis  analysis.CompleteAnalysis `json:"analysis"`
	ResumeURL string                    `json:"resume_url,omitempty"`
}

// Analyze runs one resume through the engine. The request is either JSON
// {resume_text, job_id?} or multipart with a "file" part; an uploaded file
// is virus-scanned and stored, and its object key returned.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	logger := middleware.LoggerFromContext(c)
	ctx := c.Request.Context()

	resumeText, jobID, resumeURL, ok := h.readAnalyzeInput(c)
	if !ok {
		return
	}
	if strings.TrimSpace(resumeText) == "" {
		BadRequest(c, "resume text is required")
		return
	}

	var requirements string
	if jobID != nil {
		job, err := store.FindJob(ctx, h.store, *jobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				BadRequest(c, "job does not exist")
				return
			}
			logger.Error("resolve job failed", slog.Any("error", err))
			Internal(c, "failed to analyze resume")
			return
		}
		requirements = job.Requirements
	}

	engine := analysis.NewEngine(
		analysis.WithJitter(h.jitter),
		analysis.WithCustomKeywords(h.customKeywords(c)),
	)
	result := engine.Analyze(resumeText, requirements)

	c.JSON(http.StatusOK, analyzeResponse{
		Analysis:  result,
		ResumeURL: resumeURL,
	})
}

// readAnalyzeInput pulls resume text, optional job ID and an optional stored
// file key out of the request. On failure it writes the error response and
// returns ok=false.
func (h *AnalysisHandler) readAnalyzeInput(c *gin.Context) (resumeText string, jobID *uint, resumeURL string, ok bool) {
	logger := middleware.LoggerFromContext(c)

	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req struct {
			ResumeText string `json:"resume_text" binding:"required"`
			JobID      *uint  `json:"job_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, err.Error())
			return "", nil, "", false
		}
		return req.ResumeText, req.JobID, "", true
	}

	var form struct {
		ResumeText string `form:"resume_text"`
		JobID      *uint  `form:"job_id"`
	}
	if err := c.ShouldBind(&form); err != nil {
		BadRequest(c, err.Error())
		return "", nil, "", false
	}
	resumeText = form.ResumeText
	jobID = form.JobID

	file, err := c.FormFile("file")
	if err != nil {
		// Text-only multipart submission.
		return resumeText, jobID, "", true
	}
	if file.Size > maxResumeUploadBytes {
		BadRequest(c, "file too large")
		return "", nil, "", false
	}

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return "", nil, "", false
	}
	if err := h.scanner.ScanReader(reader); err != nil {
		reader.Close()
		if errors.Is(err, scan.ErrInfected) {
			BadRequest(c, "malicious file detected")
			return "", nil, "", false
		}
		logger.Error("scan file failed", slog.Any("error", err))
		Internal(c, "failed to scan file")
		return "", nil, "", false
	}
	reader.Close()

	reader, err = file.Open()
	if err != nil {
		Internal(c, "failed to reopen file")
		return "", nil, "", false
	}
	defer reader.Close()

	// Plain-text resumes double as the analysis input when no separate
	// text was supplied. Binary formats are stored as-is; extracting text
	// from them is out of scope.
	if resumeText == "" && strings.HasPrefix(file.Header.Get("Content-Type"), "text/") {
		data, err := io.ReadAll(io.LimitReader(reader, maxResumeUploadBytes))
		if err != nil {
			Internal(c, "failed to read file")
			return "", nil, "", false
		}
		resumeText = string(data)
		if _, err := reader.Seek(0, io.SeekStart); err != nil {
			Internal(c, "failed to rewind file")
			return "", nil, "", false
		}
	}

	if h.storage == nil {
		return resumeText, jobID, "", true
	}

	ext := path.Ext(file.Filename)
	objectKey := fmt.Sprintf("resumes/%s%s", uuid.NewString(), ext)
	contentType = file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := h.storage.UploadFile(c.Request.Context(), objectKey, reader, file.Size, contentType); err != nil {
		logger.Error("upload resume failed", slog.Any("error", err))
		Internal(c, "failed to store file")
		return "", nil, "", false
	}

	return resumeText, jobID, objectKey, true
}

// ExportAnalysis runs one resume through the engine and returns the result
// as a downloadable JSON document instead of an inline response.
func (h *AnalysisHandler) ExportAnalysis(c *gin.Context) {
	var req struct {
		ResumeText string `json:"resume_text" binding:"required"`
		JobID      *uint  `json:"job_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		BadRequest(c, "resume text is required")
		return
	}

	logger := middleware.LoggerFromContext(c)
	ctx := c.Request.Context()

	var requirements string
	if req.JobID != nil {
		job, err := store.FindJob(ctx, h.store, *req.JobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				BadRequest(c, "job does not exist")
				return
			}
			logger.Error("resolve job failed", slog.Any("error", err))
			Internal(c, "failed to export analysis")
			return
		}
		requirements = job.Requirements
	}

	engine := analysis.NewEngine(
		analysis.WithJitter(h.jitter),
		analysis.WithCustomKeywords(h.customKeywords(c)),
	)
	result := engine.Analyze(req.ResumeText, requirements)

	data, err := export.AnalysisJSON(result)
	if err != nil {
		logger.Error("render analysis export failed", slog.Any("error", err))
		Internal(c, "failed to export analysis")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="analysis.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

type bulkAnalyzeRequest struct {
	JobID   uint `json:"job_id" binding:"required"`
	Resumes []struct {
		Filename string `json:"filename"`
		Text     string `json:"text" binding:"required"`
	} `json:"resumes" binding:"required,min=1,max=100"`
}

// AnalyzeBulk queues a batch of resumes for analysis against one job.
func (h *AnalysisHandler) AnalyzeBulk(c *gin.Context) {
	var req bulkAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	logger := middleware.LoggerFromContext(c)
	ctx := c.Request.Context()

	if _, err := store.FindJob(ctx, h.store, req.JobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			BadRequest(c, "job does not exist")
			return
		}
		logger.Error("resolve job failed", slog.Any("error", err))
		Internal(c, "failed to queue bulk analysis")
		return
	}

	resumes := make([]tasks.BulkResume, 0, len(req.Resumes))
	for _, r := range req.Resumes {
		resumes = append(resumes, tasks.BulkResume{Filename: r.Filename, Text: r.Text})
	}
	correlationID := middleware.GetCorrelationID(c)

	if h.asynqClient == nil {
		processed, failed, err := h.bulkRunner.Run(ctx, tasks.BulkAnalyzePayload{
			JobID:         req.JobID,
			Resumes:       resumes,
			CorrelationID: correlationID,
			UserID:        userID,
		})
		if err != nil {
			logger.Error("inline bulk analysis failed", slog.Any("error", err))
			Internal(c, "failed to run bulk analysis")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "completed",
			"processed": processed,
			"failed":    failed,
		})
		return
	}

	task, err := tasks.NewBulkAnalyzeTask(req.JobID, resumes, correlationID, userID)
	if err != nil {
		logger.Error("build bulk task failed", slog.Any("error", err))
		Internal(c, "failed to queue bulk analysis")
		return
	}
	if _, err := h.asynqClient.EnqueueContext(ctx, task); err != nil {
		logger.Error("enqueue bulk task failed", slog.Any("error", err))
		Internal(c, "failed to queue bulk analysis")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":         "queued",
		"correlation_id": correlationID,
	})
}

// customKeywords reads the custom_keywords setting; failures just mean an
// empty extension vocabulary.
func (h *AnalysisHandler) customKeywords(c *gin.Context) []string {
	settings, err := h.store.ListSettings(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Warn("load settings for analysis failed", slog.Any("error", err))
		return nil
	}
	for _, s := range settings {
		if s.Key != "custom_keywords" {
			continue
		}
		var keywords []string
		if err := json.Unmarshal(s.Value, &keywords); err != nil {
			return nil
		}
		return keywords
	}
	return nil
}
