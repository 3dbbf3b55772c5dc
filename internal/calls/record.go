package calls

import (
	"time"
)

// Internal call status vocabulary. Provider statuses are remapped through
// MapProviderStatus; anything unrecognized becomes StatusUnknown, which a
// later refresh can still move to a known state.
const (
	StatusQueued     = "queued"
	StatusInitiated  = "initiated"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusUnknown    = "unknown"
)

var providerStatusMap = map[string]string{
	"queued":      StatusQueued,
	"ringing":     StatusInitiated,
	"in-progress": StatusInProgress,
	"completed":   StatusCompleted,
	"busy":        StatusFailed,
	"no-answer":   StatusFailed,
	"failed":      StatusFailed,
	"canceled":    StatusFailed,
}

// terminalProviderStatuses are provider states after which a call never
// changes again.
var terminalProviderStatuses = map[string]bool{
	"completed": true,
	"busy":      true,
	"no-answer": true,
	"failed":    true,
	"canceled":  true,
}

// MapProviderStatus converts a provider status to the internal vocabulary.
func MapProviderStatus(providerStatus string) string {
	if status, ok := providerStatusMap[providerStatus]; ok {
		return status
	}
	return StatusUnknown
}

func isTerminalProviderStatus(providerStatus string) bool {
	return terminalProviderStatuses[providerStatus]
}

// Record tracks one outbound notification call through its lifecycle.
// CompletedAt is set once, on the first observed terminal provider status,
// and never overwritten.
type Record struct {
	CallID          string     `json:"call_id"`
	ProviderSID     string     `json:"call_sid"`
	PatientID       string     `json:"patient_id"`
	SummaryText     string     `json:"summary_text"`
	Status          string     `json:"status"`
	To              string     `json:"to"`
	From            string     `json:"from"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	DurationSeconds *int       `json:"duration_seconds"`
}

// clone returns a copy so callers never alias stored state.
func (r *Record) clone() *Record {
	cp := *r
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		cp.CompletedAt = &t
	}
	if r.DurationSeconds != nil {
		d := *r.DurationSeconds
		cp.DurationSeconds = &d
	}
	return &cp
}
