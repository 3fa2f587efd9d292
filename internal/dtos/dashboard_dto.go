package dtos

import "github.com/justsurfingit/talentflow/internal/pipeline"

type DashboardStats struct {
	TotalJobs         int64 `json:"totalJobs"`
	ActiveJobs        int64 `json:"activeJobs"`
	TotalCandidates   int64 `json:"totalCandidates"`
	TotalApplications int64 `json:"totalApplications"`
	TotalHired        int64 `json:"totalHired"`
}

// StageCount is one bar of the pipeline funnel.
type StageCount struct {
	Stage pipeline.Stage `json:"stage"`
	Label string         `json:"label"`
	Count int64          `json:"count"`
}
