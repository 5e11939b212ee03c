package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talentdash/internal/database"
)

var sqliteSeq int

func newSQLiteStore(t *testing.T) *Gorm {
	t.Helper()
	sqliteSeq++
	dsn := fmt.Sprintf("file:equiv%d?mode=memory&cache=shared", sqliteSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGorm(db)
}

// normalizeCandidates strips timestamps, which necessarily differ between
// backends.
func normalizeCandidates(in []Candidate) []Candidate {
	out := make([]Candidate, len(in))
	copy(out, in)
	for i := range out {
		out[i].CreatedAt = time.Time{}
	}
	return out
}

func normalizeJobs(in []Job) []Job {
	out := make([]Job, len(in))
	copy(out, in)
	for i := range out {
		out[i].CreatedAt = time.Time{}
	}
	return out
}

// runSharedSequence drives one backend through the reference call sequence
// and returns its observable final state.
func runSharedSequence(t *testing.T, s Store) (jobs []Job, candidates []Candidate, settings []Setting, stats DashboardStats) {
	t.Helper()
	ctx := context.Background()

	frontend, err := s.CreateJob(ctx, NewJob{Title: "Frontend Developer", Requirements: "React, TypeScript"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	backend, err := s.CreateJob(ctx, NewJob{Title: "Backend Developer", Status: "closed"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	first, err := s.CreateCandidate(ctx, NewCandidate{
		Name:     "João Silva",
		Email:    "joao@email.com",
		JobID:    &frontend.ID,
		Score:    85,
		Status:   StatusInterview,
		Keywords: []string{"React", "TypeScript"},
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	second, err := s.CreateCandidate(ctx, NewCandidate{
		Name:  "Maria Santos",
		JobID: &backend.ID,
		Score: 150,
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	third, err := s.CreateCandidate(ctx, NewCandidate{
		Name:  "Pedro Costa",
		Score: 40,
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	status := StatusHired
	if _, err := s.UpdateCandidate(ctx, first.ID, CandidateUpdate{Status: &status}); err != nil {
		t.Fatalf("update candidate: %v", err)
	}
	score := -10
	if _, err := s.UpdateCandidate(ctx, second.ID, CandidateUpdate{Score: &score}); err != nil {
		t.Fatalf("update candidate: %v", err)
	}
	if err := s.DeleteCandidate(ctx, third.ID); err != nil {
		t.Fatalf("delete candidate: %v", err)
	}

	title := "Senior Backend Developer"
	if _, err := s.UpdateJob(ctx, backend.ID, JobUpdate{Title: &title}); err != nil {
		t.Fatalf("update job: %v", err)
	}

	// One known key overridden, one unknown key added.
	if _, err := s.UpsertSetting(ctx, "language", []byte(`"en-US"`)); err != nil {
		t.Fatalf("upsert setting: %v", err)
	}
	if _, err := s.UpsertSetting(ctx, "notify_email", []byte(`true`)); err != nil {
		t.Fatalf("upsert setting: %v", err)
	}

	jobs, err = s.ListJobs(ctx)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	candidates, err = s.ListCandidates(ctx)
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	settings, err = s.ListSettings(ctx)
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	stats, err = s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	return jobs, candidates, settings, stats
}

// Both backends must produce the same observable results for the same call
// sequence, so handlers never need to know which one is wired.
func TestMemoryAndGormEquivalence(t *testing.T) {
	memJobs, memCandidates, memSettings, memStats := runSharedSequence(t, NewMemory())
	dbJobs, dbCandidates, dbSettings, dbStats := runSharedSequence(t, newSQLiteStore(t))

	if got, want := fmt.Sprint(normalizeJobs(dbJobs)), fmt.Sprint(normalizeJobs(memJobs)); got != want {
		t.Errorf("jobs diverge:\n gorm: %s\n  mem: %s", got, want)
	}
	if got, want := fmt.Sprint(normalizeCandidates(dbCandidates)), fmt.Sprint(normalizeCandidates(memCandidates)); got != want {
		t.Errorf("candidates diverge:\n gorm: %s\n  mem: %s", got, want)
	}
	if got, want := fmt.Sprint(dbSettings), fmt.Sprint(memSettings); got != want {
		t.Errorf("settings diverge:\n gorm: %s\n  mem: %s", got, want)
	}
	if dbStats != memStats {
		t.Errorf("stats diverge: gorm %+v, mem %+v", dbStats, memStats)
	}

	// Spot-check the shared invariants directly.
	for _, c := range memCandidates {
		if c.Score < 0 || c.Score > 100 {
			t.Errorf("memory candidate %d score %d outside [0,100]", c.ID, c.Score)
		}
	}
	for _, c := range dbCandidates {
		if c.Score < 0 || c.Score > 100 {
			t.Errorf("gorm candidate %d score %d outside [0,100]", c.ID, c.Score)
		}
	}
}

func settingValue(settings []Setting, key string) (string, bool) {
	for _, s := range settings {
		if s.Key == key {
			return string(s.Value), true
		}
	}
	return "", false
}

func TestGormSettingsUpsertAndReset(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	// Fresh installation surfaces defaults without persisting them.
	settings, err := s.ListSettings(ctx)
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	if len(settings) != len(DefaultSettings()) {
		t.Fatalf("settings count = %d, want %d", len(settings), len(DefaultSettings()))
	}

	if _, err := s.UpsertSetting(ctx, "language", []byte(`"en-US"`)); err != nil {
		t.Fatalf("upsert setting: %v", err)
	}
	if _, err := s.UpsertSetting(ctx, "language", []byte(`"en-GB"`)); err != nil {
		t.Fatalf("upsert setting again: %v", err)
	}

	// Saved keys override their default; every other default stays listed.
	settings, err = s.ListSettings(ctx)
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	if len(settings) != len(DefaultSettings()) {
		t.Fatalf("settings count after upsert = %d, want %d", len(settings), len(DefaultSettings()))
	}
	if value, ok := settingValue(settings, "language"); !ok || value != `"en-GB"` {
		t.Errorf("language = %s, want \"en-GB\"", value)
	}

	var persisted int64
	if err := s.db.Model(&database.Setting{}).Count(&persisted).Error; err != nil {
		t.Fatalf("count persisted settings: %v", err)
	}
	if persisted != 1 {
		t.Errorf("persisted rows = %d, want 1 (upsert must not duplicate)", persisted)
	}

	if err := s.ResetSettings(ctx); err != nil {
		t.Fatalf("reset settings: %v", err)
	}
	settings, err = s.ListSettings(ctx)
	if err != nil {
		t.Fatalf("list settings after reset: %v", err)
	}
	if len(settings) != len(DefaultSettings()) {
		t.Errorf("settings after reset = %d, want defaults", len(settings))
	}
	if value, ok := settingValue(settings, "language"); !ok || value != `"pt-BR"` {
		t.Errorf("language after reset = %s, want default \"pt-BR\"", value)
	}
}
