// Package worker consumes queued analysis tasks.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"talentdash/internal/analysis"
	"talentdash/internal/store"
	"talentdash/internal/tasks"
)

// BulkAnalyzeHandler consumes bulk resume analysis tasks: it scores every
// resume in the batch against the target job and files the results as
// candidates.
type BulkAnalyzeHandler struct {
	store       store.Store
	engine      *analysis.Engine
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBulkAnalyzeHandler creates the task handler.
func NewBulkAnalyzeHandler(
	st store.Store,
	engine *analysis.Engine,
	redisClient *redis.Client,
	logger *slog.Logger,
) *BulkAnalyzeHandler {
	return &BulkAnalyzeHandler{
		store:       st,
		engine:      engine,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessTask implements asynq.Handler.
func (h *BulkAnalyzeHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.BulkAnalyzePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("job_id", int(payload.JobID)),
		slog.Int("resume_count", len(payload.Resumes)),
	)
	log.Info("starting bulk resume analysis task")

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := BulkAnalysisNotifyMessage{
			Status:        "error",
			JobID:         payload.JobID,
			CorrelationID: payload.CorrelationID,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishNotify(ctx, payload.UserID, notify); err != nil {
			log.Error("publish bulk analysis error notification failed", slog.Any("error", err))
		}
	}()

	processed, failed, err := h.Run(ctx, payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("job not found, skipping task")
			return nil
		}
		log.Error("resolve job failed", slog.Any("error", err))
		return err
	}

	notify := BulkAnalysisNotifyMessage{
		Status:        "completed",
		JobID:         payload.JobID,
		CorrelationID: payload.CorrelationID,
		Processed:     processed,
		Failed:        failed,
	}
	if err := h.publishNotify(ctx, payload.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("bulk resume analysis task completed",
		slog.Int("processed", processed),
		slog.Int("failed", failed),
	)
	return nil
}

// Run executes the batch itself: resolve the job, analyze every resume and
// log a summary activity. It is called from ProcessTask and, in demo mode,
// inline from the API since there is no queue to consume from.
func (h *BulkAnalyzeHandler) Run(ctx context.Context, payload tasks.BulkAnalyzePayload) (processed, failed int, err error) {
	job, err := store.FindJob(ctx, h.store, payload.JobID)
	if err != nil {
		return 0, 0, err
	}

	for _, resume := range payload.Resumes {
		if err := h.analyzeOne(ctx, job, resume); err != nil {
			failed++
			h.logger.Error("analyze resume failed",
				slog.String("filename", resume.Filename),
				slog.Any("error", err),
			)
			continue
		}
		processed++
	}

	summary := fmt.Sprintf("Bulk analysis for %q: %d resumes processed, %d failed", job.Title, processed, failed)
	if _, err := h.store.LogActivity(ctx, "bulk_analysis", summary); err != nil {
		h.logger.Warn("log bulk analysis activity failed", slog.Any("error", err))
	}
	return processed, failed, nil
}

func (h *BulkAnalyzeHandler) analyzeOne(ctx context.Context, job store.Job, resume tasks.BulkResume) error {
	result := h.engine.Analyze(resume.Text, job.Requirements)

	analysisDoc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	jobID := job.ID
	candidate, err := h.store.CreateCandidate(ctx, store.NewCandidate{
		Name:       result.PersonalInfo.Name,
		Email:      result.PersonalInfo.Email,
		Phone:      result.PersonalInfo.Phone,
		JobID:      &jobID,
		Score:      result.CompatibilityScore,
		Status:     store.StatusForScore(result.CompatibilityScore),
		Keywords:   result.Keywords,
		ResumeText: resume.Text,
		Analysis:   analysisDoc,
	})
	if err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}

	description := fmt.Sprintf("Candidate %s analyzed for %q with score %d", candidate.Name, job.Title, candidate.Score)
	if _, err := h.store.LogActivity(ctx, "candidate_analyzed", description); err != nil {
		h.logger.Warn("log candidate activity failed", slog.Any("error", err))
	}
	return nil
}

func (h *BulkAnalyzeHandler) publishNotify(ctx context.Context, userID uint, notify BulkAnalysisNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
