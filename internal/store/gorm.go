package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"talentdash/internal/database"
)

// Gorm is the connected-mode backend: a passthrough to the relational
// schema (jobs, candidates, applications, activities, settings). The
// candidate view joins candidates and applications the same way the demo
// store's flat records look, so callers see one shape either way.
type Gorm struct {
	db *gorm.DB
}

var _ Store = (*Gorm)(nil)

// NewGorm wraps an initialized GORM connection.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// aiAnalysisDoc is the JSONB payload stored on an application row.
type aiAnalysisDoc struct {
	Keywords []string        `json:"keywords"`
	Analysis json.RawMessage `json:"analysis,omitempty"`
}

func (g *Gorm) ListJobs(ctx context.Context) ([]Job, error) {
	var rows []database.Job
	if err := g.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	out := make([]Job, 0, len(rows))
	for _, r := range rows {
		out = append(out, jobFromModel(r))
	}
	return out, nil
}

func (g *Gorm) CreateJob(ctx context.Context, j NewJob) (Job, error) {
	status := j.Status
	if status == "" {
		status = "active"
	}
	row := database.Job{
		Title:        j.Title,
		Description:  j.Description,
		Requirements: j.Requirements,
		Department:   j.Department,
		Location:     j.Location,
		Status:       status,
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Job{}, fmt.Errorf("create job: %w", err)
	}
	return jobFromModel(row), nil
}

func (g *Gorm) UpdateJob(ctx context.Context, id uint, u JobUpdate) (Job, error) {
	var row database.Job
	if err := g.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Job{}, ErrNotFound
		}
		return Job{}, fmt.Errorf("load job: %w", err)
	}

	updates := map[string]any{}
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Requirements != nil {
		updates["requirements"] = *u.Requirements
	}
	if u.Department != nil {
		updates["department"] = *u.Department
	}
	if u.Location != nil {
		updates["location"] = *u.Location
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if len(updates) > 0 {
		if err := g.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
			return Job{}, fmt.Errorf("update job: %w", err)
		}
	}
	return jobFromModel(row), nil
}

func (g *Gorm) DeleteJob(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Delete(&database.Job{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm) ListCandidates(ctx context.Context) ([]Candidate, error) {
	var rows []database.Application
	if err := g.db.WithContext(ctx).
		Preload("Candidate").
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	titles, err := g.jobTitles(ctx, rows)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, candidateFromModel(r, titles))
	}
	return out, nil
}

func (g *Gorm) CreateCandidate(ctx context.Context, c NewCandidate) (Candidate, error) {
	status := c.Status
	if status == "" {
		status = StatusPending
	}

	doc := aiAnalysisDoc{Keywords: c.Keywords, Analysis: c.Analysis}
	if doc.Keywords == nil {
		doc.Keywords = []string{}
	}
	analysisJSON, err := json.Marshal(doc)
	if err != nil {
		return Candidate{}, fmt.Errorf("marshal analysis: %w", err)
	}

	var app database.Application
	// The candidate and its application describe one logical record, so
	// both rows land in a single transaction. The paired activity entry is
	// the caller's problem and stays best-effort.
	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		person := database.Candidate{
			Name:       c.Name,
			Email:      c.Email,
			Phone:      c.Phone,
			ResumeURL:  c.ResumeURL,
			ResumeText: c.ResumeText,
		}
		if err := tx.Create(&person).Error; err != nil {
			return fmt.Errorf("create candidate: %w", err)
		}

		app = database.Application{
			JobID:              c.JobID,
			CandidateID:        person.ID,
			Candidate:          person,
			Status:             status,
			CompatibilityScore: ClampScore(c.Score),
			AIAnalysis:         datatypes.JSON(analysisJSON),
			Feedback:           c.Feedback,
		}
		if err := tx.Create(&app).Error; err != nil {
			return fmt.Errorf("create application: %w", err)
		}
		return nil
	})
	if err != nil {
		return Candidate{}, err
	}

	titles, err := g.jobTitles(ctx, []database.Application{app})
	if err != nil {
		return Candidate{}, err
	}
	return candidateFromModel(app, titles), nil
}

func (g *Gorm) UpdateCandidate(ctx context.Context, id uint, u CandidateUpdate) (Candidate, error) {
	var app database.Application
	if err := g.db.WithContext(ctx).Preload("Candidate").First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, fmt.Errorf("load application: %w", err)
	}

	personUpdates := map[string]any{}
	if u.Name != nil {
		personUpdates["name"] = *u.Name
	}
	if u.Email != nil {
		personUpdates["email"] = *u.Email
	}
	if u.Phone != nil {
		personUpdates["phone"] = *u.Phone
	}

	appUpdates := map[string]any{}
	if u.Status != nil {
		appUpdates["status"] = *u.Status
	}
	if u.Score != nil {
		appUpdates["compatibility_score"] = ClampScore(*u.Score)
	}
	if u.Feedback != nil {
		appUpdates["feedback"] = *u.Feedback
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(personUpdates) > 0 {
			if err := tx.Model(&app.Candidate).Updates(personUpdates).Error; err != nil {
				return fmt.Errorf("update candidate: %w", err)
			}
		}
		if len(appUpdates) > 0 {
			if err := tx.Model(&app).Updates(appUpdates).Error; err != nil {
				return fmt.Errorf("update application: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Candidate{}, err
	}

	titles, err := g.jobTitles(ctx, []database.Application{app})
	if err != nil {
		return Candidate{}, err
	}
	return candidateFromModel(app, titles), nil
}

func (g *Gorm) DeleteCandidate(ctx context.Context, id uint) error {
	var app database.Application
	if err := g.db.WithContext(ctx).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load application: %w", err)
	}

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&database.Application{}, app.ID).Error; err != nil {
			return fmt.Errorf("delete application: %w", err)
		}
		if err := tx.Delete(&database.Candidate{}, app.CandidateID).Error; err != nil {
			return fmt.Errorf("delete candidate: %w", err)
		}
		return nil
	})
}

func (g *Gorm) ListActivities(ctx context.Context, limit int) ([]Activity, error) {
	q := g.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []database.Activity
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	out := make([]Activity, 0, len(rows))
	for _, r := range rows {
		out = append(out, Activity{
			ID:          r.ID,
			Type:        r.Type,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

func (g *Gorm) LogActivity(ctx context.Context, activityType, description string) (Activity, error) {
	row := database.Activity{Type: activityType, Description: description}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Activity{}, fmt.Errorf("create activity: %w", err)
	}
	return Activity{
		ID:          row.ID,
		Type:        row.Type,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (g *Gorm) ListSettings(ctx context.Context) ([]Setting, error) {
	var rows []database.Setting
	if err := g.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	// Only saved keys are persisted; defaults fill the rest at read time.
	// The demo store seeds all defaults up front, so merging here keeps the
	// two backends listing the same keys for the same call sequence.
	out := DefaultSettings()
	index := make(map[string]int, len(out))
	for i, s := range out {
		index[s.Key] = i
	}
	for _, r := range rows {
		if i, ok := index[r.Key]; ok {
			out[i].Value = json.RawMessage(r.Value)
			continue
		}
		out = append(out, Setting{Key: r.Key, Value: json.RawMessage(r.Value)})
	}
	return out, nil
}

func (g *Gorm) UpsertSetting(ctx context.Context, key string, value json.RawMessage) (Setting, error) {
	row := database.Setting{Key: key, Value: datatypes.JSON(value)}
	if err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error; err != nil {
		return Setting{}, fmt.Errorf("upsert setting %q: %w", key, err)
	}
	return Setting{Key: key, Value: value}, nil
}

func (g *Gorm) ResetSettings(ctx context.Context) error {
	if err := g.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().
		Delete(&database.Setting{}).Error; err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}

func (g *Gorm) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	var jobCount int64
	if err := g.db.WithContext(ctx).Model(&database.Job{}).Count(&jobCount).Error; err != nil {
		return stats, fmt.Errorf("count jobs: %w", err)
	}
	var candidateCount int64
	if err := g.db.WithContext(ctx).Model(&database.Application{}).Count(&candidateCount).Error; err != nil {
		return stats, fmt.Errorf("count applications: %w", err)
	}

	var statuses []string
	if err := g.db.WithContext(ctx).
		Model(&database.Application{}).
		Pluck("status", &statuses).Error; err != nil {
		return stats, fmt.Errorf("pluck statuses: %w", err)
	}

	stats.TotalJobs = int(jobCount)
	stats.TotalCandidates = int(candidateCount)
	for _, s := range statuses {
		switch s {
		case StatusApproved, StatusHired:
			stats.ApprovedCandidates++
		case StatusPending:
			stats.PendingCandidates++
		}
	}
	return stats, nil
}

func (g *Gorm) jobTitles(ctx context.Context, apps []database.Application) (map[uint]string, error) {
	ids := make([]uint, 0, len(apps))
	seen := make(map[uint]struct{})
	for _, a := range apps {
		if a.JobID == nil {
			continue
		}
		if _, ok := seen[*a.JobID]; ok {
			continue
		}
		seen[*a.JobID] = struct{}{}
		ids = append(ids, *a.JobID)
	}
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}

	var jobs []database.Job
	if err := g.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("load job titles: %w", err)
	}
	titles := make(map[uint]string, len(jobs))
	for _, j := range jobs {
		titles[j.ID] = j.Title
	}
	return titles, nil
}

func jobFromModel(r database.Job) Job {
	return Job{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Department:   r.Department,
		Location:     r.Location,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
}

func candidateFromModel(r database.Application, titles map[uint]string) Candidate {
	var doc aiAnalysisDoc
	if len(r.AIAnalysis) > 0 {
		_ = json.Unmarshal(r.AIAnalysis, &doc)
	}
	if doc.Keywords == nil {
		doc.Keywords = []string{}
	}

	jobTitle := ""
	if r.JobID != nil {
		jobTitle = titles[*r.JobID]
	}

	return Candidate{
		ID:        r.ID,
		Name:      r.Candidate.Name,
		Email:     r.Candidate.Email,
		Phone:     r.Candidate.Phone,
		JobID:     r.JobID,
		JobTitle:  jobTitle,
		Score:     r.CompatibilityScore,
		Status:    r.Status,
		Keywords:  doc.Keywords,
		Feedback:  r.Feedback,
		ResumeURL: r.Candidate.ResumeURL,
		CreatedAt: r.CreatedAt,
	}
}
