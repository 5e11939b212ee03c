package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"talentdash/internal/store"
)

func TestWriteCandidatesCSV(t *testing.T) {
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	candidates := []store.Candidate{
		{
			ID:        2,
			Name:      "Maria Santos",
			Email:     "maria@email.com",
			JobTitle:  "UX/UI Designer",
			Score:     72,
			Status:    store.StatusPending,
			Keywords:  []string{"Figma", "Prototyping"},
			CreatedAt: created,
		},
		{
			ID:        1,
			Name:      `João "JP" Silva, Jr.`,
			JobTitle:  "Frontend Developer",
			Score:     85,
			Status:    store.StatusApproved,
			Keywords:  []string{"React"},
			CreatedAt: created,
		},
	}

	var buf bytes.Buffer
	if err := WriteCandidatesCSV(&buf, candidates); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want header plus 2 rows", len(lines))
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("reparse csv: %v", err)
	}

	wantHeader := strings.Join(CandidateCSVHeader, ",")
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}

	// Embedded commas and quotes must survive a round trip.
	if records[2][1] != `João "JP" Silva, Jr.` {
		t.Errorf("name = %q", records[2][1])
	}
	if records[1][7] != "Figma;Prototyping" {
		t.Errorf("keywords = %q", records[1][7])
	}
	if records[1][8] != "2024-03-10T12:00:00Z" {
		t.Errorf("created_at = %q", records[1][8])
	}
}

func TestWriteJobsCSV(t *testing.T) {
	jobs := []store.Job{
		{
			ID:           1,
			Title:        "Frontend Developer (React)",
			Department:   "Engineering",
			Location:     "São Paulo, SP",
			Status:       "active",
			Requirements: "React, TypeScript, Next.js",
			CreatedAt:    time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteJobsCSV(&buf, jobs); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("reparse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count = %d, want 2", len(records))
	}
	if records[1][5] != "React, TypeScript, Next.js" {
		t.Errorf("requirements = %q", records[1][5])
	}
}
