// Package store is the data access layer for the dashboard. It exposes one
// Store contract with two interchangeable implementations: an in-memory
// demo store and a GORM-backed relational store. Both must produce the same
// observable results for the same call sequence, modulo assigned IDs, so
// handlers never know which one is active.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by update and delete operations for unknown IDs.
var ErrNotFound = errors.New("record not found")

// Job is an open or closed position as surfaced to the API.
type Job struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Department   string    `json:"department"`
	Location     string    `json:"location"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewJob carries the caller-supplied fields for a job creation.
type NewJob struct {
	Title        string
	Description  string
	Requirements string
	Department   string
	Location     string
	Status       string
}

// JobUpdate is a partial update; nil fields are left untouched.
type JobUpdate struct {
	Title        *string
	Description  *string
	Requirements *string
	Department   *string
	Location     *string
	Status       *string
}

// Candidate is the merged candidate+application view the dashboard works
// with: person fields, pipeline state and the analysis-derived extras in
// one record.
type Candidate struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	JobID     *uint     `json:"job_id"`
	JobTitle  string    `json:"job_title"`
	Score     int       `json:"score"`
	Status    string    `json:"status"`
	Keywords  []string  `json:"keywords"`
	Feedback  string    `json:"feedback"`
	ResumeURL string    `json:"resume_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCandidate carries the fields for a candidate creation. Analysis, when
// present, is the serialized CompleteAnalysis kept alongside the record.
type NewCandidate struct {
	Name       string
	Email      string
	Phone      string
	JobID      *uint
	Score      int
	Status     string
	Keywords   []string
	Feedback   string
	ResumeURL  string
	ResumeText string
	Analysis   json.RawMessage
}

// CandidateUpdate is a partial update; nil fields are left untouched.
// Status moves are unrestricted: any status may be set at any time.
type CandidateUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Status   *string
	Score    *int
	Feedback *string
}

// Activity is an append-only audit entry.
type Activity struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Setting is an upsert-by-key configuration value with an opaque JSON body.
type Setting struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// DashboardStats are the headline aggregates on the dashboard page.
type DashboardStats struct {
	TotalJobs          int `json:"total_jobs"`
	TotalCandidates    int `json:"total_candidates"`
	ApprovedCandidates int `json:"approved_candidates"`
	PendingCandidates  int `json:"pending_candidates"`
}

// Store is the CRUD contract shared by the demo and relational backends.
// Lists are ordered newest first. Creating a candidate or job does not log
// an activity; that pairing is the caller's responsibility. The activity
// log is advisory, not authoritative.
type Store interface {
	ListJobs(ctx context.Context) ([]Job, error)
	CreateJob(ctx context.Context, j NewJob) (Job, error)
	UpdateJob(ctx context.Context, id uint, u JobUpdate) (Job, error)
	DeleteJob(ctx context.Context, id uint) error

	ListCandidates(ctx context.Context) ([]Candidate, error)
	CreateCandidate(ctx context.Context, c NewCandidate) (Candidate, error)
	UpdateCandidate(ctx context.Context, id uint, u CandidateUpdate) (Candidate, error)
	DeleteCandidate(ctx context.Context, id uint) error

	ListActivities(ctx context.Context, limit int) ([]Activity, error)
	LogActivity(ctx context.Context, activityType, description string) (Activity, error)

	ListSettings(ctx context.Context) ([]Setting, error)
	UpsertSetting(ctx context.Context, key string, value json.RawMessage) (Setting, error)
	ResetSettings(ctx context.Context) error

	Stats(ctx context.Context) (DashboardStats, error)
}

// FindJob resolves a job by ID through the list operation, which keeps the
// Store contract minimal. Job counts on this dashboard are small.
func FindJob(ctx context.Context, s Store, id uint) (Job, error) {
	jobs, err := s.ListJobs(ctx)
	if err != nil {
		return Job{}, err
	}
	for _, j := range jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return Job{}, ErrNotFound
}

// FindCandidate resolves a candidate by ID through the list operation, the
// same way FindJob does for jobs.
func FindCandidate(ctx context.Context, s Store, id uint) (Candidate, error) {
	candidates, err := s.ListCandidates(ctx)
	if err != nil {
		return Candidate{}, err
	}
	for _, c := range candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return Candidate{}, ErrNotFound
}

// ClampScore forces a compatibility score into [0,100]. Both backends apply
// it on every write so the range invariant holds regardless of caller input.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// DefaultSettings are the values a fresh installation (or a settings reset)
// starts from. The analysis criteria weights conceptually sum to 100; that
// is checked in the settings handler, never here.
func DefaultSettings() []Setting {
	return []Setting{
		{
			Key:   "analysis_criteria",
			Value: json.RawMessage(`{"keywords_weight":40,"experience_weight":30,"education_weight":20,"skills_weight":10}`),
		},
		{
			Key:   "theme",
			Value: json.RawMessage(`{"mode":"light","primary_color":"#B91C1C","secondary_color":"#D97706"}`),
		},
		{
			Key:   "custom_keywords",
			Value: json.RawMessage(`[]`),
		},
		{
			Key:   "ai_enabled",
			Value: json.RawMessage(`true`),
		},
		{
			Key:   "language",
			Value: json.RawMessage(`"pt-BR"`),
		},
		{
			Key:   "auto_backup",
			Value: json.RawMessage(`false`),
		},
		{
			Key:   "data_retention",
			Value: json.RawMessage(`{"days":365}`),
		},
	}
}
