package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants keep queue producers and consumers in sync.
const (
	TypeBulkAnalyze = "analysis:bulk"
)

// BulkResume is one resume inside a bulk upload.
type BulkResume struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// BulkAnalyzePayload describes the minimum information needed to analyze a
// batch of resumes against a job posting.
type BulkAnalyzePayload struct {
	JobID         uint         `json:"job_id"`
	Resumes       []BulkResume `json:"resumes"`
	CorrelationID string       `json:"correlation_id"`
	UserID        uint         `json:"user_id"`
}

// NewBulkAnalyzeTask builds a bulk analysis task.
func NewBulkAnalyzeTask(jobID uint, resumes []BulkResume, correlationID string, userID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(BulkAnalyzePayload{
		JobID:         jobID,
		Resumes:       resumes,
		CorrelationID: correlationID,
		UserID:        userID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBulkAnalyze, payload), nil
}
