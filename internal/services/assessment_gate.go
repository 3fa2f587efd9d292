package services

import (
	"context"
	"errors"
	"time"

	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssessmentGate tracks whether a (candidate, job) pair still owes the
// assessment that guards the tech stage.
type AssessmentGate struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewAssessmentGate(db *gorm.DB, clock func() time.Time) *AssessmentGate {
	if clock == nil {
		clock = time.Now
	}
	return &AssessmentGate{DB: db, now: clock}
}

// EnterGate opens the gate for the pair. Calling it again while the gate is
// still pending restarts the open timing instead of adding a second one.
func (g *AssessmentGate) EnterGate(ctx context.Context, candidateID, jobID string) error {
	return g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return g.enter(tx, candidateID, jobID, g.now().UTC())
	})
}

func (g *AssessmentGate) enter(tx *gorm.DB, candidateID, jobID string, now time.Time) error {
	status, err := g.status(tx, candidateID, jobID)
	if err != nil {
		return err
	}

	if status == models.GatePending {
		res := tx.Model(&models.AssessmentTiming{}).
			Where("candidate_id = ? AND job_id = ? AND ended_at IS NULL", candidateID, jobID).
			Update("started_at", now)
		if res.Error != nil {
			return common.NewError(common.CodeStorage, "failed to restart assessment timing", res.Error)
		}
		if res.RowsAffected > 0 {
			err := tx.Model(&models.AssessmentStatus{}).
				Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
				Update("updated_at", now).Error
			if err != nil {
				return common.NewError(common.CodeStorage, "failed to refresh assessment gate", err)
			}
			return nil
		}
	}

	row := models.AssessmentStatus{
		CandidateID: candidateID,
		JobID:       jobID,
		Status:      models.GatePending,
		UpdatedAt:   now,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return common.NewError(common.CodeStorage, "failed to open assessment gate", err)
	}

	timing := models.AssessmentTiming{CandidateID: candidateID, JobID: jobID, StartedAt: now}
	if err := tx.Create(&timing).Error; err != nil {
		return common.NewError(common.CodeStorage, "failed to start assessment timing", err)
	}
	return nil
}

// CurrentStatus returns GateNone when the pair never entered the gate.
func (g *AssessmentGate) CurrentStatus(ctx context.Context, candidateID, jobID string) (models.GateStatus, error) {
	return g.status(g.DB.WithContext(ctx), candidateID, jobID)
}

func (g *AssessmentGate) status(tx *gorm.DB, candidateID, jobID string) (models.GateStatus, error) {
	var row models.AssessmentStatus
	err := tx.Where("candidate_id = ? AND job_id = ?", candidateID, jobID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.GateNone, nil
	}
	if err != nil {
		return "", common.NewError(common.CodeStorage, "failed to load assessment status", err)
	}
	return row.Status, nil
}

func (g *AssessmentGate) MayLeaveGate(ctx context.Context, candidateID, jobID string) (bool, error) {
	return g.mayLeave(g.DB.WithContext(ctx), candidateID, jobID)
}

func (g *AssessmentGate) mayLeave(tx *gorm.DB, candidateID, jobID string) (bool, error) {
	status, err := g.status(tx, candidateID, jobID)
	if err != nil {
		return false, err
	}
	return status != models.GatePending, nil
}

// Submit closes a pending gate and stamps the end of the open timing. It
// reports false without error when nothing was pending, so duplicate
// submission events are harmless.
func (g *AssessmentGate) Submit(ctx context.Context, candidateID, jobID string) (bool, error) {
	var submitted bool
	err := g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		submitted, err = g.submit(tx, candidateID, jobID, g.now().UTC())
		return err
	})
	if err != nil {
		return false, err
	}
	return submitted, nil
}

func (g *AssessmentGate) submit(tx *gorm.DB, candidateID, jobID string, now time.Time) (bool, error) {
	res := tx.Model(&models.AssessmentStatus{}).
		Where("candidate_id = ? AND job_id = ? AND status = ?", candidateID, jobID, models.GatePending).
		Updates(map[string]any{"status": models.GateSubmitted, "updated_at": now})
	if res.Error != nil {
		return false, common.NewError(common.CodeStorage, "failed to submit assessment", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	err := tx.Model(&models.AssessmentTiming{}).
		Where("candidate_id = ? AND job_id = ? AND ended_at IS NULL", candidateID, jobID).
		Update("ended_at", now).Error
	if err != nil {
		return false, common.NewError(common.CodeStorage, "failed to close assessment timing", err)
	}
	return true, nil
}

// StatusesForJob maps candidate id to gate status for every pair of the job.
func (g *AssessmentGate) StatusesForJob(ctx context.Context, jobID string) (map[string]models.GateStatus, error) {
	var rows []models.AssessmentStatus
	if err := g.DB.WithContext(ctx).Where("job_id = ?", jobID).Find(&rows).Error; err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to list assessment statuses", err)
	}
	out := make(map[string]models.GateStatus, len(rows))
	for _, row := range rows {
		out[row.CandidateID] = row.Status
	}
	return out, nil
}

// Timings lists every gate visit of the pair, oldest first.
func (g *AssessmentGate) Timings(ctx context.Context, candidateID, jobID string) ([]models.AssessmentTiming, error) {
	var rows []models.AssessmentTiming
	err := g.DB.WithContext(ctx).
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to list assessment timings", err)
	}
	return rows, nil
}
