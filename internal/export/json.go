package export

import (
	"encoding/json"
	"fmt"
	"time"

	"talentdash/internal/analysis"
	"talentdash/internal/store"
)

// AnalysisJSON renders a complete analysis as a pretty-printed document
// with a fixed top-level key set.
func AnalysisJSON(a analysis.CompleteAnalysis) ([]byte, error) {
	doc := struct {
		ExportedAt string                    `json:"exported_at"`
		Kind       string                    `json:"kind"`
		Analysis   analysis.CompleteAnalysis `json:"analysis"`
	}{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Kind:       "resume_analysis",
		Analysis:   a,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis export: %w", err)
	}
	return data, nil
}

// SettingsJSON renders all settings as a pretty-printed key/value document.
func SettingsJSON(settings []store.Setting) ([]byte, error) {
	values := make(map[string]json.RawMessage, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	doc := struct {
		ExportedAt string                     `json:"exported_at"`
		Kind       string                     `json:"kind"`
		Settings   map[string]json.RawMessage `json:"settings"`
	}{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Kind:       "settings",
		Settings:   values,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal settings export: %w", err)
	}
	return data, nil
}
