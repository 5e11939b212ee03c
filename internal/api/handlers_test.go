package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"talentdash/internal/analysis"
	"talentdash/internal/scan"
	"talentdash/internal/store"
	"talentdash/internal/worker"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestRouter wires the data-plane handlers against a fresh memory store,
// with a stub auth layer that fixes the user ID.
func newTestRouter(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	memory := store.NewMemory()
	logger := testLogger()
	engine := analysis.NewEngine()
	bulkRunner := worker.NewBulkAnalyzeHandler(memory, engine, nil, logger)

	jobHandler := NewJobHandler(memory)
	candidateHandler := NewCandidateHandler(memory, nil)
	analysisHandler := NewAnalysisHandler(memory, analysis.Deterministic(), nil, scan.NewScanner(""), nil, bulkRunner)
	dashboardHandler := NewDashboardHandler(memory)
	settingsHandler := NewSettingsHandler(memory)
	exportHandler := NewExportHandler(memory)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Next()
	})

	router.GET("/v1/jobs", jobHandler.ListJobs)
	router.POST("/v1/jobs", jobHandler.CreateJob)
	router.PUT("/v1/jobs/:id", jobHandler.UpdateJob)
	router.DELETE("/v1/jobs/:id", jobHandler.DeleteJob)
	router.GET("/v1/candidates", candidateHandler.ListCandidates)
	router.POST("/v1/candidates", candidateHandler.CreateCandidate)
	router.PUT("/v1/candidates/:id", candidateHandler.UpdateCandidate)
	router.DELETE("/v1/candidates/:id", candidateHandler.DeleteCandidate)
	router.GET("/v1/candidates/:id/resume", candidateHandler.ViewResume)
	router.POST("/v1/analysis", analysisHandler.Analyze)
	router.POST("/v1/analysis/export", analysisHandler.ExportAnalysis)
	router.POST("/v1/analysis/bulk", analysisHandler.AnalyzeBulk)
	router.GET("/v1/dashboard/stats", dashboardHandler.Stats)
	router.GET("/v1/activities", dashboardHandler.Activities)
	router.GET("/v1/settings", settingsHandler.List)
	router.PUT("/v1/settings", settingsHandler.Upsert)
	router.POST("/v1/settings/reset", settingsHandler.Reset)
	router.GET("/v1/export/candidates.csv", exportHandler.CandidatesCSV)

	return router, memory
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateCandidateDerivesStatusFromScore(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		score      int
		wantStatus string
	}{
		{85, store.StatusInterview},
		{70, store.StatusPending},
		{45, store.StatusRejected},
	}
	for _, tc := range cases {
		w := doJSON(t, router, http.MethodPost, "/v1/candidates", gin.H{
			"name":  "Candidate",
			"score": tc.score,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("score %d: status code = %d, body %s", tc.score, w.Code, w.Body)
		}
		var got store.Candidate
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got.Status != tc.wantStatus {
			t.Errorf("score %d: status = %q, want %q", tc.score, got.Status, tc.wantStatus)
		}
	}
}

func TestCreateCandidateRejectsUnknownStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/candidates", gin.H{
		"name":   "Candidate",
		"status": "on-hold",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want 400", w.Code)
	}
}

func TestUpdateCandidateNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/v1/candidates/42", gin.H{"name": "X"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status code = %d, want 404", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, "/v1/candidates/abc", gin.H{"name": "X"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid id status code = %d, want 400", w.Code)
	}
}

func TestJobCreateAndDelete(t *testing.T) {
	router, memory := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/jobs", gin.H{
		"title":        "Frontend Developer",
		"requirements": "React, TypeScript",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status code = %d, body %s", w.Code, w.Body)
	}
	var job store.Job
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if job.Status != "active" {
		t.Errorf("default status = %q, want active", job.Status)
	}

	// The paired activity entry is written alongside the job.
	activities, err := memory.ListActivities(context.Background(), 10)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(activities) != 1 || activities[0].Type != "job_created" {
		t.Errorf("activities = %+v, want one job_created entry", activities)
	}

	w = doJSON(t, router, http.MethodDelete, "/v1/jobs/1", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status code = %d, want 204", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/v1/jobs/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status code = %d, want 404", w.Code)
	}
}

func TestSettingsWeightsValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/v1/settings", gin.H{
		"key": "analysis_criteria",
		"value": gin.H{
			"keywords_weight":   50,
			"experience_weight": 30,
			"education_weight":  10,
			"skills_weight":     5,
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("weights sum 95: status code = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, "/v1/settings", gin.H{
		"key": "analysis_criteria",
		"value": gin.H{
			"keywords_weight":   50,
			"experience_weight": 30,
			"education_weight":  10,
			"skills_weight":     10,
		},
	})
	if w.Code != http.StatusOK {
		t.Errorf("weights sum 100: status code = %d, body %s", w.Code, w.Body)
	}

	// Other keys carry opaque values and skip the weights check.
	w = doJSON(t, router, http.MethodPut, "/v1/settings", gin.H{
		"key":   "theme",
		"value": gin.H{"mode": "dark"},
	})
	if w.Code != http.StatusOK {
		t.Errorf("theme upsert: status code = %d", w.Code)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/analysis", gin.H{
		"resume_text": "Maria Santos\nmaria@email.com\nExperiência com React e TypeScript.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d, body %s", w.Code, w.Body)
	}

	var resp struct {
		Analysis analysis.CompleteAnalysis `json:"analysis"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Analysis.PersonalInfo.Name != "Maria Santos" {
		t.Errorf("name = %q", resp.Analysis.PersonalInfo.Name)
	}
	// No job requirements: deterministic fallback score.
	if resp.Analysis.CompatibilityScore != 85 {
		t.Errorf("score = %d, want 85", resp.Analysis.CompatibilityScore)
	}

	w = doJSON(t, router, http.MethodPost, "/v1/analysis", gin.H{"resume_text": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty resume: status code = %d, want 400", w.Code)
	}
}

func TestExportAnalysisEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/analysis/export", gin.H{
		"resume_text": "Maria Santos\nmaria@email.com\nExperiência com React e TypeScript.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d, body %s", w.Code, w.Body)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "analysis.json") {
		t.Errorf("content disposition = %q, want attachment filename", cd)
	}

	var doc struct {
		Kind     string                    `json:"kind"`
		Analysis analysis.CompleteAnalysis `json:"analysis"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.Kind != "resume_analysis" {
		t.Errorf("kind = %q, want resume_analysis", doc.Kind)
	}
	if doc.Analysis.PersonalInfo.Name != "Maria Santos" {
		t.Errorf("name = %q", doc.Analysis.PersonalInfo.Name)
	}

	w = doJSON(t, router, http.MethodPost, "/v1/analysis/export", gin.H{"resume_text": "  "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank resume: status code = %d, want 400", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/v1/analysis/export", gin.H{
		"resume_text": "Maria Santos",
		"job_id":      42,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown job: status code = %d, want 400", w.Code)
	}
}

func TestViewResumeUnavailableCases(t *testing.T) {
	router, memory := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/v1/candidates/42/resume", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown candidate: status code = %d, want 404", w.Code)
	}

	bare, err := memory.CreateCandidate(context.Background(), store.NewCandidate{Name: "Pedro Costa"})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/candidates/%d/resume", bare.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("no stored resume: status code = %d, want 404", w.Code)
	}

	// A stored key without a storage client (demo mode) is also unavailable.
	stored, err := memory.CreateCandidate(context.Background(), store.NewCandidate{
		Name:      "Maria Santos",
		ResumeURL: "resumes/maria.pdf",
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/candidates/%d/resume", stored.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("no storage client: status code = %d, want 404", w.Code)
	}
}

func TestDeleteCandidateWithStoredResume(t *testing.T) {
	router, memory := newTestRouter(t)

	candidate, err := memory.CreateCandidate(context.Background(), store.NewCandidate{
		Name:      "Maria Santos",
		ResumeURL: "resumes/maria.pdf",
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	// Without a storage client the row delete alone must succeed.
	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/v1/candidates/%d", candidate.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status code = %d, want 204", w.Code)
	}

	candidates, err := memory.ListCandidates(context.Background())
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("candidate count after delete = %d, want 0", len(candidates))
	}
}

func TestAnalyzeBulkInlineFallback(t *testing.T) {
	router, memory := newTestRouter(t)

	job, err := memory.CreateJob(context.Background(), store.NewJob{
		Title:        "Frontend Developer",
		Requirements: "React, TypeScript, Next.js",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, "/v1/analysis/bulk", gin.H{
		"job_id": job.ID,
		"resumes": []gin.H{
			{"filename": "joao.txt", "text": "João Silva\nDesenvolvedor com experiência em React, TypeScript e Next.js."},
			{"filename": "pedro.txt", "text": "Pedro Costa\nAnalista de suporte."},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d, body %s", w.Code, w.Body)
	}

	var resp struct {
		Status    string `json:"status"`
		Processed int    `json:"processed"`
		Failed    int    `json:"failed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "completed" || resp.Processed != 2 || resp.Failed != 0 {
		t.Errorf("response = %+v", resp)
	}

	candidates, err := memory.ListCandidates(context.Background())
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("candidate count = %d, want 2", len(candidates))
	}
	for _, c := range candidates {
		if c.Status != store.StatusForScore(c.Score) {
			t.Errorf("candidate %q status %q does not match score %d", c.Name, c.Status, c.Score)
		}
		if c.JobID == nil || *c.JobID != job.ID {
			t.Errorf("candidate %q not linked to job", c.Name)
		}
	}
}

func TestExportCandidatesCSVEndpoint(t *testing.T) {
	router, memory := newTestRouter(t)

	if err := store.SeedDemo(context.Background(), memory); err != nil {
		t.Fatalf("seed demo: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/export/candidates.csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	// Header plus the three seeded candidates.
	if len(lines) != 4 {
		t.Errorf("line count = %d, want 4", len(lines))
	}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	router, memory := newTestRouter(t)

	if err := store.SeedDemo(context.Background(), memory); err != nil {
		t.Fatalf("seed demo: %v", err)
	}

	w := doJSON(t, router, http.MethodGet, "/v1/dashboard/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	var stats store.DashboardStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.TotalJobs != 2 || stats.TotalCandidates != 3 {
		t.Errorf("stats = %+v", stats)
	}
}
