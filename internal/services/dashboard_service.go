package services

import (
	"context"

	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/models"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// Stats runs the headline counts concurrently.
func (s *DashboardService) Stats(ctx context.Context) (*dtos.DashboardStats, error) {
	var stats dtos.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, model any, query string, args ...any) {
		g.Go(func() error {
			q := s.DB.WithContext(ctx).Model(model)
			if query != "" {
				q = q.Where(query, args...)
			}
			return q.Count(dst).Error
		})
	}
	count(&stats.TotalJobs, &models.Job{}, "")
	count(&stats.ActiveJobs, &models.Job{}, "status = ?", models.JobStatusActive)
	count(&stats.TotalCandidates, &models.Candidate{}, "")
	count(&stats.TotalApplications, &models.Application{}, "")
	count(&stats.TotalHired, &models.Application{}, "stage = ?", pipeline.StageHired)

	if err := g.Wait(); err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to fetch dashboard stats", err)
	}
	return &stats, nil
}

// PipelineCounts returns one entry per stage in column order, zero-filled.
// An empty jobID counts across all jobs.
func (s *DashboardService) PipelineCounts(ctx context.Context, jobID string) ([]dtos.StageCount, error) {
	var rows []struct {
		Stage string
		Count int64
	}
	q := s.DB.WithContext(ctx).Model(&models.Application{}).Select("stage, COUNT(*) AS count")
	if jobID != "" {
		q = q.Where("job_id = ?", jobID)
	}
	if err := q.Group("stage").Find(&rows).Error; err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to count pipeline stages", err)
	}

	byStage := make(map[string]int64, len(rows))
	for _, r := range rows {
		byStage[r.Stage] = r.Count
	}
	stages := pipeline.Stages()
	out := make([]dtos.StageCount, 0, len(stages))
	for _, st := range stages {
		out = append(out, dtos.StageCount{Stage: st, Label: st.Label(), Count: byStage[string(st)]})
	}
	return out, nil
}
