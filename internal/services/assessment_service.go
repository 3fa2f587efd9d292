package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssessmentService is the submission side of the gate: it stores what the
// candidate answered and reports completion to the AssessmentGate.
type AssessmentService struct {
	DB   *gorm.DB
	Gate *AssessmentGate
}

func NewAssessmentService(db *gorm.DB, gate *AssessmentGate) *AssessmentService {
	return &AssessmentService{DB: db, Gate: gate}
}

func (s *AssessmentService) SubmitResponses(ctx context.Context, jobID string, req *dtos.AssessmentSubmission) (*dtos.AssessmentSubmissionResult, error) {
	if !json.Valid(req.Responses) {
		return nil, common.NewValidationError("invalid responses", map[string]string{"responses": "must be valid JSON"})
	}
	now := s.Gate.now().UTC()
	result := &dtos.AssessmentSubmissionResult{ApplicationID: req.ApplicationID, SubmittedAt: now}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		err := tx.Where("id = ?", req.ApplicationID).Take(&app).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewError(common.CodeNotFound, "application not found", err)
		}
		if err != nil {
			return common.NewError(common.CodeStorage, "failed to load application", err)
		}
		if app.JobID != jobID {
			return common.NewValidationError("application belongs to another job", map[string]string{"applicationId": "job mismatch"})
		}

		row := models.AssessmentResponse{
			ApplicationID: app.ID,
			CandidateID:   app.CandidateID,
			JobID:         app.JobID,
			Responses:     string(req.Responses),
			SubmittedAt:   now,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"responses", "submitted_at"}),
		}).Create(&row).Error
		if err != nil {
			return common.NewError(common.CodeStorage, "failed to save assessment responses", err)
		}

		result.GateClosed, err = s.Gate.submit(tx, app.CandidateID, app.JobID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AssessmentService) GetResponses(ctx context.Context, applicationID string) (*dtos.AssessmentResponses, error) {
	var row models.AssessmentResponse
	err := s.DB.WithContext(ctx).Where("application_id = ?", applicationID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewError(common.CodeNotFound, "no responses submitted", err)
	}
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to load assessment responses", err)
	}
	return &dtos.AssessmentResponses{
		ApplicationID: row.ApplicationID,
		SubmittedAt:   row.SubmittedAt,
		Responses:     json.RawMessage(row.Responses),
	}, nil
}

// StatusSummary counts pending and submitted gates for a job.
func (s *AssessmentService) StatusSummary(ctx context.Context, jobID string) (*dtos.AssessmentStatusSummary, error) {
	statuses, err := s.Gate.StatusesForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	summary := &dtos.AssessmentStatusSummary{Statuses: make(map[string]string, len(statuses))}
	for candidateID, status := range statuses {
		summary.Statuses[candidateID] = string(status)
		switch status {
		case models.GatePending:
			summary.Pending++
		case models.GateSubmitted:
			summary.Submitted++
		}
	}
	return summary, nil
}
