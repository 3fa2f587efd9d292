package dtos

import (
	"encoding/json"
	"time"
)

type AssessmentSubmission struct {
	ApplicationID string          `json:"applicationId" binding:"required"`
	Responses     json.RawMessage `json:"responses" binding:"required"`
}

type AssessmentSubmissionResult struct {
	ApplicationID string    `json:"application_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
	// GateClosed is false when no assessment was pending for the pair.
	GateClosed bool `json:"gate_closed"`
}

type AssessmentResponses struct {
	ApplicationID string          `json:"application_id"`
	SubmittedAt   time.Time       `json:"submitted_at"`
	Responses     json.RawMessage `json:"responses"`
}

type AssessmentStatusSummary struct {
	// Statuses maps candidate id to "pending" or "submitted".
	Statuses  map[string]string `json:"statuses"`
	Pending   int               `json:"pending"`
	Submitted int               `json:"submitted"`
}
