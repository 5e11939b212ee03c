package store

import (
	"context"
	"fmt"
)

// SeedDemo loads the sample dataset shown in demo mode. It goes through the
// Store interface so the same seed works against either backend.
func SeedDemo(ctx context.Context, s Store) error {
	frontend, err := s.CreateJob(ctx, NewJob{
		Title:        "Frontend Developer (React)",
		Description:  "React developer with TypeScript experience",
		Requirements: "React, TypeScript, Next.js",
		Department:   "Engineering",
		Location:     "São Paulo, SP",
		Status:       "active",
	})
	if err != nil {
		return fmt.Errorf("seed job: %w", err)
	}
	designer, err := s.CreateJob(ctx, NewJob{
		Title:        "UX/UI Designer",
		Description:  "Designer focused on user experience",
		Requirements: "Figma, Adobe XD, Prototyping",
		Department:   "Design",
		Location:     "Remote",
		Status:       "active",
	})
	if err != nil {
		return fmt.Errorf("seed job: %w", err)
	}

	candidates := []NewCandidate{
		{
			Name:     "João Silva",
			Email:    "joao@email.com",
			JobID:    &frontend.ID,
			Score:    85,
			Status:   StatusApproved,
			Keywords: []string{"React", "TypeScript", "JavaScript"},
			Feedback: "Solid React experience",
		},
		{
			Name:     "Maria Santos",
			Email:    "maria@email.com",
			JobID:    &frontend.ID,
			Score:    72,
			Status:   StatusPending,
			Keywords: []string{"React", "CSS", "HTML"},
		},
		{
			Name:     "Pedro Costa",
			Email:    "pedro@email.com",
			JobID:    &designer.ID,
			Score:    90,
			Status:   StatusHired,
			Keywords: []string{"Figma", "UX", "UI", "Prototyping"},
			Feedback: "Excellent portfolio and experience",
		},
	}
	for _, c := range candidates {
		created, err := s.CreateCandidate(ctx, c)
		if err != nil {
			return fmt.Errorf("seed candidate: %w", err)
		}
		desc := fmt.Sprintf("%s applied for %s", created.Name, created.JobTitle)
		if _, err := s.LogActivity(ctx, "candidate_added", desc); err != nil {
			return fmt.Errorf("seed activity: %w", err)
		}
	}

	if _, err := s.LogActivity(ctx, "job_created", "New job UX/UI Designer was created"); err != nil {
		return fmt.Errorf("seed activity: %w", err)
	}
	return nil
}
