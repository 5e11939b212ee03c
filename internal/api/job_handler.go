package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"talentdash/internal/api/middleware"
	"talentdash/internal/store"
)

// JobHandler serves the job posting CRUD endpoints.
type JobHandler struct {
	store store.Store
}

// NewJobHandler builds the job handler.
func NewJobHandler(st store.Store) *JobHandler {
	return &JobHandler{store: st}
}

var errInvalidID = errors.New("invalid id")

func idFromParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// ListJobs returns all jobs, newest first.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.store.ListJobs(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list jobs failed", slog.Any("error", err))
		Internal(c, "failed to list jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

type createJobRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Department   string `json:"department"`
	Location     string `json:"location"`
	Status       string `json:"status"`
}

// CreateJob saves a new job posting and logs the activity.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Status != "" && req.Status != "active" && req.Status != "closed" {
		BadRequest(c, "status must be active or closed")
		return
	}

	ctx := c.Request.Context()
	job, err := h.store.CreateJob(ctx, store.NewJob{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Department:   req.Department,
		Location:     req.Location,
		Status:       req.Status,
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("create job failed", slog.Any("error", err))
		Internal(c, "failed to create job")
		return
	}

	// Activity logging is advisory; a failure never rolls back the write.
	if _, err := h.store.LogActivity(ctx, "job_created", fmt.Sprintf("Job %q created", job.Title)); err != nil {
		middleware.LoggerFromContext(c).Warn("log job activity failed", slog.Any("error", err))
	}

	c.JSON(http.StatusCreated, job)
}

type updateJobRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Department   *string `json:"department"`
	Location     *string `json:"location"`
	Status       *string `json:"status"`
}

// UpdateJob applies a partial update to a job posting.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, err := idFromParam(c)
	if err != nil {
		BadRequest(c, "invalid job id")
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Title != nil && *req.Title == "" {
		BadRequest(c, "title must not be empty")
		return
	}
	if req.Status != nil && *req.Status != "active" && *req.Status != "closed" {
		BadRequest(c, "status must be active or closed")
		return
	}

	job, err := h.store.UpdateJob(c.Request.Context(), id, store.JobUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Department:   req.Department,
		Location:     req.Location,
		Status:       req.Status,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "job not found")
			return
		}
		middleware.LoggerFromContext(c).Error("update job failed", slog.Any("error", err))
		Internal(c, "failed to update job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob removes a job posting. Candidates linked to it keep existing;
// their job title simply stops resolving.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, err := idFromParam(c)
	if err != nil {
		BadRequest(c, "invalid job id")
		return
	}

	if err := h.store.DeleteJob(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "job not found")
			return
		}
		middleware.LoggerFromContext(c).Error("delete job failed", slog.Any("error", err))
		Internal(c, "failed to delete job")
		return
	}
	c.Status(http.StatusNoContent)
}
