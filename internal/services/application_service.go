package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/models"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB         *gorm.DB
	Jobs       *JobService
	Candidates *CandidateService
	now        func() time.Time
}

func NewApplicationService(db *gorm.DB, jobs *JobService, candidates *CandidateService) *ApplicationService {
	return &ApplicationService{DB: db, Jobs: jobs, Candidates: candidates, now: time.Now}
}

// Apply creates the application at the applied stage. A candidate applies to
// an active job at most once.
func (s *ApplicationService) Apply(ctx context.Context, req *dtos.ApplyRequest) (*models.Application, error) {
	job, err := s.Jobs.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusActive {
		return nil, common.NewError(common.CodeValidation, "job is not accepting applications", nil)
	}
	if _, err := s.Candidates.GetCandidate(ctx, req.CandidateID); err != nil {
		return nil, err
	}

	app := &models.Application{
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		Stage:       pipeline.StageApplied,
		AppliedAt:   s.now().UTC(),
	}
	// the (candidate_id, job_id) unique index is the duplicate check
	err = s.DB.WithContext(ctx).Create(app).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, common.NewError(common.CodeConflict, "already applied", err)
	}
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to create application", err)
	}
	return app, nil
}

func (s *ApplicationService) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).Preload("Candidate").Where("id = ?", id).Take(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewError(common.CodeNotFound, "application not found", err)
	}
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to load application", err)
	}
	return &app, nil
}

func (s *ApplicationService) ListApplications(ctx context.Context, filter dtos.ApplicationFilter) ([]models.Application, error) {
	query := s.DB.WithContext(ctx).Preload("Candidate").Order("applied_at ASC").Order("id ASC")
	if filter.JobID != "" {
		query = query.Where("job_id = ?", filter.JobID)
	}
	if filter.CandidateID != "" {
		query = query.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.Stage != "" {
		if !filter.Stage.Valid() {
			return nil, common.NewValidationError("invalid stage", map[string]string{"stage": "unknown stage"})
		}
		query = query.Where("stage = ?", filter.Stage)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := containsPattern(term)
		matching := s.DB.Model(&models.Candidate{}).Select("id").
			Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\'", pattern, pattern)
		query = query.Where("candidate_id IN (?)", matching)
	}
	if filter.AppliedWithinDays < 0 {
		return nil, common.NewValidationError("invalid applied window", map[string]string{"appliedWithinDays": "must be positive"})
	}
	if filter.AppliedWithinDays > 0 {
		cutoff := s.now().UTC().AddDate(0, 0, -filter.AppliedWithinDays)
		query = query.Where("applied_at >= ?", cutoff)
	}
	var apps []models.Application
	if err := query.Find(&apps).Error; err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to list applications", err)
	}
	return apps, nil
}

// ListForJob loads the full board for one job.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	if _, err := s.Jobs.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	return s.ListApplications(ctx, dtos.ApplicationFilter{JobID: jobID})
}
