package services

import (
	"context"
	"errors"
	"strings"

	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/models"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"gorm.io/gorm"
)

type CandidateService struct {
	DB *gorm.DB
}

func NewCandidateService(db *gorm.DB) *CandidateService {
	return &CandidateService{DB: db}
}

func (s *CandidateService) CreateCandidate(ctx context.Context, req *dtos.CandidateCreationRequest) (*models.Candidate, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	candidate := &models.Candidate{Name: strings.TrimSpace(req.Name), Email: email}
	err := s.DB.WithContext(ctx).Create(candidate).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, common.NewError(common.CodeConflict, "candidate with this email already exists", err)
	}
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to create candidate", err)
	}
	return candidate, nil
}

func (s *CandidateService) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&candidate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewError(common.CodeNotFound, "candidate not found", err)
	}
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to load candidate", err)
	}
	return &candidate, nil
}

// Timeline returns the candidate's stage history across all jobs, newest first.
func (s *CandidateService) Timeline(ctx context.Context, candidateID string) ([]models.TimelineEvent, error) {
	if _, err := s.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	var events []models.TimelineEvent
	err := s.DB.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("id DESC").
		Find(&events).Error
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to load timeline", err)
	}
	return events, nil
}

// CurrentStage derives the stage from a newest-first timeline.
func CurrentStage(timeline []models.TimelineEvent) pipeline.Stage {
	if len(timeline) == 0 {
		return pipeline.StageApplied
	}
	return timeline[0].NewStage
}
