package store

// Candidate pipeline statuses. Status is a display/filter tag rather than a
// workflow gate: reviewers may move a candidate between any two statuses.
const (
	StatusPending   = "pending"
	StatusInterview = "interview"
	StatusApproved  = "approved"
	StatusHired     = "hired"
	StatusRejected  = "rejected"
)

// KnownStatus reports whether s is one of the recognized status tags.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusInterview, StatusApproved, StatusHired, StatusRejected:
		return true
	}
	return false
}

// StatusForScore maps a compatibility score to the initial pipeline status.
// Applied exactly once, when an analysis is persisted as a candidate; the
// reviewer owns the field afterwards.
func StatusForScore(score int) string {
	switch {
	case score >= 80:
		return StatusInterview
	case score >= 60:
		return StatusPending
	default:
		return StatusRejected
	}
}
