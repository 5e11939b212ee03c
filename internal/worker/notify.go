package worker

// WebSocket message protocol, forwarded to the frontend via Redis Pub/Sub.
// Field names must stay in sync with the frontend parser.
type BulkAnalysisNotifyMessage struct {
	Status        string `json:"status"`
	JobID         uint   `json:"job_id"`
	CorrelationID string `json:"correlation_id"`
	Processed     int    `json:"processed"`
	Failed        int    `json:"failed"`
	ErrorMessage  string `json:"error_message,omitempty"`
}
