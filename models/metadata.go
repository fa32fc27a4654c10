package models

import "time"

// ExtractionMetadata tracks the outcome of a single hybrid LLM extraction
// run: which phases completed, whether the algorithmic fallback replaced the
// merged output, and any errors or warnings gathered along the way. It is
// read once at the end of the run and not persisted.
type ExtractionMetadata struct {
	Phase1Complete  bool `json:"phase1_complete"`
	Phase2AComplete bool `json:"phase2a_complete"`
	Phase2BComplete bool `json:"phase2b_complete"`
	Phase2CComplete bool `json:"phase2c_complete"`
	Phase2DComplete bool `json:"phase2d_complete"`

	Success      bool     `json:"success"`
	UsedFallback bool     `json:"used_fallback"`
	Errors       []string `json:"errors"`
	Warnings     []string `json:"warnings"`
	DurationMs   int64    `json:"duration_ms"`

	startedAt time.Time
}

// NewExtractionMetadata starts the run clock.
func NewExtractionMetadata() *ExtractionMetadata {
	return &ExtractionMetadata{
		Errors:    []string{},
		Warnings:  []string{},
		startedAt: time.Now(),
	}
}

// Finish stamps the total run duration.
func (m *ExtractionMetadata) Finish() {
	m.DurationMs = time.Since(m.startedAt).Milliseconds()
}

// AddError appends a phase error message.
func (m *ExtractionMetadata) AddError(msg string) {
	m.Errors = append(m.Errors, msg)
}

// AddWarning appends a non-fatal warning message.
func (m *ExtractionMetadata) AddWarning(msg string) {
	m.Warnings = append(m.Warnings, msg)
}
