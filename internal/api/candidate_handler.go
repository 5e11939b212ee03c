package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"talentdash/internal/api/middleware"
	"talentdash/internal/storage"
	"talentdash/internal/store"
)

// resumeLinkTTL bounds how long a presigned resume download link stays
// valid.
const resumeLinkTTL = 15 * time.Minute

// CandidateHandler serves the candidate pipeline CRUD endpoints and the
// stored-resume view. storageClient is nil in demo mode.
type CandidateHandler struct {
	store   store.Store
	storage *storage.Client
}

// NewCandidateHandler builds the candidate handler.
func NewCandidateHandler(st store.Store, storageClient *storage.Client) *CandidateHandler {
	return &CandidateHandler{store: st, storage: storageClient}
}

// ListCandidates returns all candidates, newest first.
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.store.ListCandidates(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to list candidates")
		return
	}
	c.JSON(http.StatusOK, candidates)
}

type createCandidateRequest struct {
	Name      string   `json:"name" binding:"required"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	JobID     *uint    `json:"job_id"`
	Score     int      `json:"score"`
	Status    string   `json:"status"`
	Keywords  []string `json:"keywords"`
	Feedback  string   `json:"feedback"`
	ResumeURL string   `json:"resume_url"`
}

// CreateCandidate files a candidate manually. When no status is given it is
// derived from the score.
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = store.StatusForScore(store.ClampScore(req.Score))
	} else if !store.KnownStatus(status) {
		BadRequest(c, "unknown candidate status")
		return
	}

	ctx := c.Request.Context()

	if req.JobID != nil {
		if _, err := store.FindJob(ctx, h.store, *req.JobID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				BadRequest(c, "job does not exist")
				return
			}
			middleware.LoggerFromContext(c).Error("resolve job failed", slog.Any("error", err))
			Internal(c, "failed to create candidate")
			return
		}
	}

	candidate, err := h.store.CreateCandidate(ctx, store.NewCandidate{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		JobID:     req.JobID,
		Score:     req.Score,
		Status:    status,
		Keywords:  req.Keywords,
		Feedback:  req.Feedback,
		ResumeURL: req.ResumeURL,
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("create candidate failed", slog.Any("error", err))
		Internal(c, "failed to create candidate")
		return
	}

	if _, err := h.store.LogActivity(ctx, "candidate_created", fmt.Sprintf("Candidate %s added", candidate.Name)); err != nil {
		middleware.LoggerFromContext(c).Warn("log candidate activity failed", slog.Any("error", err))
	}

	c.JSON(http.StatusCreated, candidate)
}

type updateCandidateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Status   *string `json:"status"`
	Score    *int    `json:"score"`
	Feedback *string `json:"feedback"`
}

// UpdateCandidate applies a partial update. Status moves are free-form
// within the known set; recruiters can move candidates between any stages.
func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id, err := idFromParam(c)
	if err != nil {
		BadRequest(c, "invalid candidate id")
		return
	}

	var req updateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Name != nil && *req.Name == "" {
		BadRequest(c, "name must not be empty")
		return
	}
	if req.Status != nil && !store.KnownStatus(*req.Status) {
		BadRequest(c, "unknown candidate status")
		return
	}

	ctx := c.Request.Context()
	candidate, err := h.store.UpdateCandidate(ctx, id, store.CandidateUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Status:   req.Status,
		Score:    req.Score,
		Feedback: req.Feedback,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "candidate not found")
			return
		}
		middleware.LoggerFromContext(c).Error("update candidate failed", slog.Any("error", err))
		Internal(c, "failed to update candidate")
		return
	}

	if req.Status != nil {
		description := fmt.Sprintf("Candidate %s moved to %s", candidate.Name, candidate.Status)
		if _, err := h.store.LogActivity(ctx, "status_changed", description); err != nil {
			middleware.LoggerFromContext(c).Warn("log status activity failed", slog.Any("error", err))
		}
	}

	c.JSON(http.StatusOK, candidate)
}

// DeleteCandidate removes a candidate and its application record, then
// removes the stored resume object best-effort.
func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	id, err := idFromParam(c)
	if err != nil {
		BadRequest(c, "invalid candidate id")
		return
	}

	ctx := c.Request.Context()
	candidate, err := store.FindCandidate(ctx, h.store, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "candidate not found")
			return
		}
		middleware.LoggerFromContext(c).Error("load candidate failed", slog.Any("error", err))
		Internal(c, "failed to delete candidate")
		return
	}

	if err := h.store.DeleteCandidate(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "candidate not found")
			return
		}
		middleware.LoggerFromContext(c).Error("delete candidate failed", slog.Any("error", err))
		Internal(c, "failed to delete candidate")
		return
	}

	// The record is already gone; a leaked object only costs storage.
	if h.storage != nil && candidate.ResumeURL != "" {
		if err := h.storage.DeleteObject(ctx, candidate.ResumeURL); err != nil {
			middleware.LoggerFromContext(c).Warn("remove resume object failed",
				slog.String("object_key", candidate.ResumeURL),
				slog.Any("error", err),
			)
		}
	}

	c.Status(http.StatusNoContent)
}

// ViewResume redirects to a presigned, time-limited download link for the
// candidate's stored resume file.
func (h *CandidateHandler) ViewResume(c *gin.Context) {
	id, err := idFromParam(c)
	if err != nil {
		BadRequest(c, "invalid candidate id")
		return
	}

	ctx := c.Request.Context()
	candidate, err := store.FindCandidate(ctx, h.store, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "candidate not found")
			return
		}
		middleware.LoggerFromContext(c).Error("load candidate failed", slog.Any("error", err))
		Internal(c, "failed to load candidate")
		return
	}
	if candidate.ResumeURL == "" {
		NotFound(c, "candidate has no stored resume")
		return
	}
	if h.storage == nil {
		NotFound(c, "resume storage is not configured")
		return
	}

	url, err := h.storage.GeneratePresignedURL(ctx, candidate.ResumeURL, resumeLinkTTL)
	if err != nil {
		middleware.LoggerFromContext(c).Error("presign resume link failed",
			slog.String("object_key", candidate.ResumeURL),
			slog.Any("error", err),
		)
		Internal(c, "failed to generate resume link")
		return
	}

	c.Redirect(http.StatusFound, url)
}
