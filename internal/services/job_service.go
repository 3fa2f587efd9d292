package services

import (
	"context"
	"errors"
	"strings"

	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/models"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

func (s *JobService) CreateJob(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	status := req.Status
	if status == "" {
		status = models.JobStatusActive
	}
	if !validJobStatus(status) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be active or archived"})
	}

	job := &models.Job{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       status,
	}
	// new jobs go to the end of the list
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		if err := tx.Model(&models.Job{}).Select("COALESCE(MAX(sort_order), 0)").Scan(&maxOrder).Error; err != nil {
			return err
		}
		job.Order = maxOrder + 1
		return tx.Create(job).Error
	})
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to create job", err)
	}
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewError(common.CodeNotFound, "job not found", err)
	}
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to load job", err)
	}
	return &job, nil
}

// ListJobs returns jobs in board order. An empty status lists everything.
// Search matches title, description or requirements, case-insensitively.
func (s *JobService) ListJobs(ctx context.Context, filter dtos.JobFilter) ([]models.Job, error) {
	query := s.DB.WithContext(ctx).Order("sort_order ASC").Order("created_at ASC")
	if filter.Status != "" {
		if !validJobStatus(filter.Status) {
			return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be active or archived"})
		}
		query = query.Where("status = ?", filter.Status)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := containsPattern(term)
		query = query.Where(
			"LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(requirements) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern,
		)
	}
	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to list jobs", err)
	}
	return jobs, nil
}

// ReorderJobs moves the listed jobs to the front of the board in the given
// order. Jobs left out keep their relative order behind them. Either every
// position is rewritten or none is.
func (s *JobService) ReorderJobs(ctx context.Context, orderedIDs []string) ([]models.Job, error) {
	if len(orderedIDs) == 0 {
		return nil, common.NewValidationError("nothing to reorder", map[string]string{"orderedIds": "at least one job id is required"})
	}
	seen := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, dup := seen[id]; dup {
			return nil, common.NewValidationError("duplicate job id", map[string]string{"orderedIds": "job " + id + " is listed twice"})
		}
		seen[id] = struct{}{}
	}

	var ordered []models.Job
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var jobs []models.Job
		if err := tx.Order("sort_order ASC").Order("created_at ASC").Find(&jobs).Error; err != nil {
			return common.NewError(common.CodeStorage, "failed to load jobs", err)
		}
		byID := make(map[string]models.Job, len(jobs))
		for _, job := range jobs {
			byID[job.ID] = job
		}

		ordered = make([]models.Job, 0, len(jobs))
		for _, id := range orderedIDs {
			job, ok := byID[id]
			if !ok {
				return common.NewError(common.CodeNotFound, "job not found: "+id, nil)
			}
			ordered = append(ordered, job)
		}
		for _, job := range jobs {
			if _, listed := seen[job.ID]; !listed {
				ordered = append(ordered, job)
			}
		}

		for i := range ordered {
			position := i + 1
			if ordered[i].Order == position {
				continue
			}
			if err := tx.Model(&models.Job{}).Where("id = ?", ordered[i].ID).Update("sort_order", position).Error; err != nil {
				return common.NewError(common.CodeStorage, "failed to save job order", err)
			}
			ordered[i].Order = position
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ordered, nil
}

func (s *JobService) UpdateJob(ctx context.Context, id string, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	if req.Status != nil {
		if !validJobStatus(*req.Status) {
			return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be active or archived"})
		}
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return job, nil
	}
	if err := s.DB.WithContext(ctx).Model(job).Updates(updates).Error; err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to update job", err)
	}
	return s.GetJob(ctx, id)
}

func validJobStatus(status string) bool {
	return status == models.JobStatusActive || status == models.JobStatusArchived
}

// containsPattern builds a lower-case LIKE pattern that matches term
// literally anywhere in the column. Backslash is the escape character.
func containsPattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}
