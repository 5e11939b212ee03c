// Package export renders candidate and job data as CSV, XLSX and JSON
// documents for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"talentdash/internal/store"
)

// CandidateCSVHeader is the fixed column order of the candidate export.
var CandidateCSVHeader = []string{
	"id", "name", "email", "phone", "job_title", "score", "status", "keywords", "created_at",
}

// JobCSVHeader is the fixed column order of the job export.
var JobCSVHeader = []string{
	"id", "title", "department", "location", "status", "requirements", "created_at",
}

// WriteCandidatesCSV writes header plus one row per candidate. encoding/csv
// quotes embedded commas and quotes, which the original comma-join export
// did not.
func WriteCandidatesCSV(w io.Writer, candidates []store.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CandidateCSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range candidates {
		row := []string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.Name,
			c.Email,
			c.Phone,
			c.JobTitle,
			strconv.Itoa(c.Score),
			c.Status,
			strings.Join(c.Keywords, ";"),
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJobsCSV writes header plus one row per job.
func WriteJobsCSV(w io.Writer, jobs []store.Job) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(JobCSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, j := range jobs {
		row := []string{
			strconv.FormatUint(uint64(j.ID), 10),
			j.Title,
			j.Department,
			j.Location,
			j.Status,
			j.Requirements,
			j.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
