package dtos

import "github.com/justsurfingit/talentflow/internal/pipeline"

type ApplyRequest struct {
	CandidateID string `json:"candidate_id" binding:"required"`
	JobID       string `json:"job_id" binding:"required"`
}

// ApplicationFilter mirrors the list query string
// (?jobId=&candidateId=&stage=&search=&appliedWithinDays=).
type ApplicationFilter struct {
	JobID       string         `form:"jobId"`
	CandidateID string         `form:"candidateId"`
	Stage       pipeline.Stage `form:"stage" binding:"omitempty,stage"`
	// Search matches the candidate's name or email.
	Search            string `form:"search"`
	AppliedWithinDays int    `form:"appliedWithinDays" binding:"omitempty,min=1"`
}

type StageTransitionRequest struct {
	Stage pipeline.Stage `json:"stage" binding:"required,stage"`
}
