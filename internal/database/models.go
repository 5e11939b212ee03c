package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is a recruiter account.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:64"`
	PasswordHash string `gorm:"size:255"`
}

// Job is an open or closed position.
type Job struct {
	gorm.Model
	Title        string `gorm:"size:255"`
	Description  string `gorm:"type:text"`
	Requirements string `gorm:"type:text"`
	Department   string `gorm:"size:128"`
	Location     string `gorm:"size:128"`
	Status       string `gorm:"size:32;default:active"`
}

// Candidate holds the person-level fields extracted from a resume.
// Pipeline state lives on the Application row.
type Candidate struct {
	gorm.Model
	Name       string `gorm:"size:255"`
	Email      string `gorm:"size:255"`
	Phone      string `gorm:"size:64"`
	ResumeURL  string `gorm:"size:512"`
	ResumeText string `gorm:"type:text"`
}

// Application links a candidate to a job and carries score, status and the
// stored analysis payload.
type Application struct {
	gorm.Model
	JobID              *uint          `gorm:"index"`
	CandidateID        uint           `gorm:"index"`
	Candidate          Candidate      `gorm:"constraint:OnDelete:CASCADE"`
	Status             string         `gorm:"size:32;default:pending"`
	CompatibilityScore int
	AIAnalysis         datatypes.JSON `gorm:"type:jsonb"`
	Feedback           string         `gorm:"type:text"`
}

// Activity is an append-only audit entry. Advisory only, never authoritative.
type Activity struct {
	gorm.Model
	Type        string `gorm:"size:64;index"`
	Description string `gorm:"type:text"`
}

// Setting is an upsert-by-key configuration value with an opaque JSON body.
type Setting struct {
	gorm.Model
	Key   string         `gorm:"uniqueIndex;size:64"`
	Value datatypes.JSON `gorm:"type:jsonb"`
}
