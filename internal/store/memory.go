package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Memory is the demo-mode backend: plain slices with newest-first insertion
// and linear ID lookup. A single mutex serializes all access; the original
// design assumed one interactive user and offered no protection at all, so
// the lock is the explicit serialization point for concurrent API requests.
type Memory struct {
	mu sync.Mutex

	jobs       []Job
	candidates []Candidate
	activities []Activity
	settings   []Setting

	nextJobID       uint
	nextCandidateID uint
	nextActivityID  uint
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store seeded with default settings.
func NewMemory() *Memory {
	return &Memory{
		settings:        DefaultSettings(),
		nextJobID:       1,
		nextCandidateID: 1,
		nextActivityID:  1,
	}
}

// Reset drops all data and restores default settings. Used by tests and the
// admin CLI to get an isolated, known state.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = nil
	m.candidates = nil
	m.activities = nil
	m.settings = DefaultSettings()
	m.nextJobID = 1
	m.nextCandidateID = 1
	m.nextActivityID = 1
}

func (m *Memory) ListJobs(_ context.Context) ([]Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Job, len(m.jobs))
	copy(out, m.jobs)
	return out, nil
}

func (m *Memory) CreateJob(_ context.Context, j NewJob) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := j.Status
	if status == "" {
		status = "active"
	}
	job := Job{
		ID:           m.nextJobID,
		Title:        j.Title,
		Description:  j.Description,
		Requirements: j.Requirements,
		Department:   j.Department,
		Location:     j.Location,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	m.nextJobID++
	m.jobs = append([]Job{job}, m.jobs...)
	return job, nil
}

func (m *Memory) UpdateJob(_ context.Context, id uint, u JobUpdate) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.jobs {
		if m.jobs[i].ID != id {
			continue
		}
		job := &m.jobs[i]
		if u.Title != nil {
			job.Title = *u.Title
		}
		if u.Description != nil {
			job.Description = *u.Description
		}
		if u.Requirements != nil {
			job.Requirements = *u.Requirements
		}
		if u.Department != nil {
			job.Department = *u.Department
		}
		if u.Location != nil {
			job.Location = *u.Location
		}
		if u.Status != nil {
			job.Status = *u.Status
		}
		return *job, nil
	}
	return Job{}, ErrNotFound
}

func (m *Memory) DeleteJob(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.jobs {
		if m.jobs[i].ID == id {
			m.jobs = append(m.jobs[:i], m.jobs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListCandidates(_ context.Context) ([]Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Candidate, len(m.candidates))
	copy(out, m.candidates)
	for i := range out {
		out[i].JobTitle = m.jobTitleLocked(out[i].JobID)
	}
	return out, nil
}

// jobTitleLocked resolves a job title at read time, like the relational
// backend does. Renamed or deleted jobs are reflected immediately; a
// dangling reference yields an empty title.
func (m *Memory) jobTitleLocked(jobID *uint) string {
	if jobID == nil {
		return ""
	}
	for i := range m.jobs {
		if m.jobs[i].ID == *jobID {
			return m.jobs[i].Title
		}
	}
	return ""
}

func (m *Memory) CreateCandidate(_ context.Context, c NewCandidate) (Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := c.Status
	if status == "" {
		status = StatusPending
	}

	keywords := c.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	candidate := Candidate{
		ID:        m.nextCandidateID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		JobID:     c.JobID,
		JobTitle:  m.jobTitleLocked(c.JobID),
		Score:     ClampScore(c.Score),
		Status:    status,
		Keywords:  keywords,
		Feedback:  c.Feedback,
		ResumeURL: c.ResumeURL,
		CreatedAt: time.Now().UTC(),
	}
	m.nextCandidateID++
	m.candidates = append([]Candidate{candidate}, m.candidates...)
	return candidate, nil
}

func (m *Memory) UpdateCandidate(_ context.Context, id uint, u CandidateUpdate) (Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.candidates {
		if m.candidates[i].ID != id {
			continue
		}
		candidate := &m.candidates[i]
		if u.Name != nil {
			candidate.Name = *u.Name
		}
		if u.Email != nil {
			candidate.Email = *u.Email
		}
		if u.Phone != nil {
			candidate.Phone = *u.Phone
		}
		if u.Status != nil {
			candidate.Status = *u.Status
		}
		if u.Score != nil {
			candidate.Score = ClampScore(*u.Score)
		}
		if u.Feedback != nil {
			candidate.Feedback = *u.Feedback
		}
		out := *candidate
		out.JobTitle = m.jobTitleLocked(out.JobID)
		return out, nil
	}
	return Candidate{}, ErrNotFound
}

func (m *Memory) DeleteCandidate(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.candidates {
		if m.candidates[i].ID == id {
			m.candidates = append(m.candidates[:i], m.candidates[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListActivities(_ context.Context, limit int) ([]Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.activities)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Activity, n)
	copy(out, m.activities[:n])
	return out, nil
}

func (m *Memory) LogActivity(_ context.Context, activityType, description string) (Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity := Activity{
		ID:          m.nextActivityID,
		Type:        activityType,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	m.nextActivityID++
	m.activities = append([]Activity{activity}, m.activities...)
	return activity, nil
}

func (m *Memory) ListSettings(_ context.Context) ([]Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Setting, len(m.settings))
	copy(out, m.settings)
	return out, nil
}

func (m *Memory) UpsertSetting(_ context.Context, key string, value json.RawMessage) (Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.settings {
		if m.settings[i].Key == key {
			m.settings[i].Value = value
			return m.settings[i], nil
		}
	}
	setting := Setting{Key: key, Value: value}
	m.settings = append(m.settings, setting)
	return setting, nil
}

func (m *Memory) ResetSettings(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = DefaultSettings()
	return nil
}

func (m *Memory) Stats(_ context.Context) (DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := DashboardStats{
		TotalJobs:       len(m.jobs),
		TotalCandidates: len(m.candidates),
	}
	for i := range m.candidates {
		switch m.candidates[i].Status {
		case StatusApproved, StatusHired:
			stats.ApprovedCandidates++
		case StatusPending:
			stats.PendingCandidates++
		}
	}
	return stats, nil
}
