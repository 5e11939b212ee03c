package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMemoryJobCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	first, err := m.CreateJob(ctx, NewJob{Title: "Backend Developer"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if first.Status != "active" {
		t.Errorf("default status = %q, want active", first.Status)
	}

	second, err := m.CreateJob(ctx, NewJob{Title: "Data Analyst", Status: "closed"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	jobs, err := m.ListJobs(ctx)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("job count = %d, want 2", len(jobs))
	}
	// Newest first.
	if jobs[0].ID != second.ID || jobs[1].ID != first.ID {
		t.Errorf("order = %d,%d, want %d,%d", jobs[0].ID, jobs[1].ID, second.ID, first.ID)
	}

	title := "Senior Backend Developer"
	updated, err := m.UpdateJob(ctx, first.ID, JobUpdate{Title: &title})
	if err != nil {
		t.Fatalf("update job: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title = %q, want %q", updated.Title, title)
	}
	if updated.Status != "active" {
		t.Errorf("partial update touched status: %q", updated.Status)
	}

	if _, err := m.UpdateJob(ctx, 999, JobUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update unknown job err = %v, want ErrNotFound", err)
	}

	if err := m.DeleteJob(ctx, second.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	if err := m.DeleteJob(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete twice err = %v, want ErrNotFound", err)
	}
}

func TestMemoryCandidateLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	job, err := m.CreateJob(ctx, NewJob{Title: "Frontend Developer"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	candidate, err := m.CreateCandidate(ctx, NewCandidate{
		Name:  "Maria Santos",
		JobID: &job.ID,
		Score: 130,
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if candidate.Score != 100 {
		t.Errorf("score = %d, want clamped 100", candidate.Score)
	}
	if candidate.Status != StatusPending {
		t.Errorf("default status = %q, want pending", candidate.Status)
	}
	if candidate.JobTitle != job.Title {
		t.Errorf("job title = %q, want %q", candidate.JobTitle, job.Title)
	}
	if candidate.Keywords == nil {
		t.Error("keywords should be an empty slice, not nil")
	}

	status := StatusHired
	score := -5
	updated, err := m.UpdateCandidate(ctx, candidate.ID, CandidateUpdate{Status: &status, Score: &score})
	if err != nil {
		t.Fatalf("update candidate: %v", err)
	}
	if updated.Status != StatusHired {
		t.Errorf("status = %q, want hired", updated.Status)
	}
	if updated.Score != 0 {
		t.Errorf("score = %d, want clamped 0", updated.Score)
	}

	if err := m.DeleteCandidate(ctx, candidate.ID); err != nil {
		t.Fatalf("delete candidate: %v", err)
	}
	if _, err := m.UpdateCandidate(ctx, candidate.ID, CandidateUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update deleted candidate err = %v, want ErrNotFound", err)
	}
}

func TestMemoryActivitiesLimit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for i := 0; i < 15; i++ {
		if _, err := m.LogActivity(ctx, "candidate_created", "entry"); err != nil {
			t.Fatalf("log activity: %v", err)
		}
	}

	activities, err := m.ListActivities(ctx, 10)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(activities) != 10 {
		t.Fatalf("activity count = %d, want 10", len(activities))
	}
	// Newest first: the last logged entry has the highest ID.
	if activities[0].ID != 15 {
		t.Errorf("first activity ID = %d, want 15", activities[0].ID)
	}
}

func TestMemorySettings(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	settings, err := m.ListSettings(ctx)
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	if len(settings) != len(DefaultSettings()) {
		t.Fatalf("settings count = %d, want %d", len(settings), len(DefaultSettings()))
	}

	value := json.RawMessage(`["golang","kubernetes"]`)
	setting, err := m.UpsertSetting(ctx, "custom_keywords", value)
	if err != nil {
		t.Fatalf("upsert setting: %v", err)
	}
	if string(setting.Value) != string(value) {
		t.Errorf("value = %s, want %s", setting.Value, value)
	}

	// Upsert replaces, never duplicates.
	settings, _ = m.ListSettings(ctx)
	if len(settings) != len(DefaultSettings()) {
		t.Errorf("settings count after upsert = %d, want %d", len(settings), len(DefaultSettings()))
	}

	if err := m.ResetSettings(ctx); err != nil {
		t.Fatalf("reset settings: %v", err)
	}
	settings, _ = m.ListSettings(ctx)
	for _, s := range settings {
		if s.Key == "custom_keywords" && string(s.Value) != "[]" {
			t.Errorf("custom_keywords after reset = %s, want []", s.Value)
		}
	}
}

func TestMemoryStats(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.CreateJob(ctx, NewJob{Title: "Job"}); err != nil {
		t.Fatalf("create job: %v", err)
	}
	for _, status := range []string{StatusApproved, StatusHired, StatusPending, StatusRejected} {
		if _, err := m.CreateCandidate(ctx, NewCandidate{Name: "C", Status: status}); err != nil {
			t.Fatalf("create candidate: %v", err)
		}
	}

	stats, err := m.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := DashboardStats{TotalJobs: 1, TotalCandidates: 4, ApprovedCandidates: 2, PendingCandidates: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestStatusForScore(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{85, StatusInterview},
		{80, StatusInterview},
		{79, StatusPending},
		{70, StatusPending},
		{60, StatusPending},
		{59, StatusRejected},
		{45, StatusRejected},
		{0, StatusRejected},
	}
	for _, tc := range cases {
		if got := StatusForScore(tc.score); got != tc.want {
			t.Errorf("StatusForScore(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
