package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/models"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkflowService is the only writer of Application.Stage. Every accepted
// transition updates the application, appends a timeline event and, when
// entering the gated stage, opens the assessment gate in one transaction.
type WorkflowService struct {
	DB     *gorm.DB
	Gate   *AssessmentGate
	logger *slog.Logger
	now    func() time.Time
}

type WorkflowOption func(*WorkflowService)

// WithClock injects a deterministic clock (primarily for tests).
func WithClock(clock func() time.Time) WorkflowOption {
	return func(s *WorkflowService) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithLogger(logger *slog.Logger) WorkflowOption {
	return func(s *WorkflowService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewWorkflowService(db *gorm.DB, gate *AssessmentGate, opts ...WorkflowOption) *WorkflowService {
	s := &WorkflowService{
		DB:     db,
		Gate:   gate,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestTransition moves an application to target. Same-stage requests
// succeed as OutcomeNoOp. Rejections come back as coded errors
// (CodeNotFound, CodeGateBlocked, CodeIllegalMove, CodeConflict, CodeStorage)
// and leave every table untouched.
func (s *WorkflowService) RequestTransition(ctx context.Context, applicationID string, target pipeline.Stage) (*pipeline.TransitionResult, error) {
	if !target.Valid() {
		return nil, common.NewValidationError("invalid stage", map[string]string{"stage": fmt.Sprintf("unknown stage %q", target)})
	}

	var result *pipeline.TransitionResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", applicationID).Take(&app).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewError(common.CodeNotFound, "application not found", err)
		}
		if err != nil {
			return common.NewError(common.CodeStorage, "failed to load application", err)
		}

		from := app.Stage
		now := s.now().UTC()
		if from == target {
			result = &pipeline.TransitionResult{Outcome: pipeline.OutcomeNoOp, ApplicationID: app.ID, From: from, To: target, At: now}
			return nil
		}

		if from == pipeline.GatedStage {
			ok, err := s.Gate.mayLeave(tx, app.CandidateID, app.JobID)
			if err != nil {
				return err
			}
			if !ok {
				return common.NewError(common.CodeGateBlocked, "assessment is still pending", nil)
			}
		}

		if !pipeline.IsLegalTransition(from, target) {
			return common.NewError(common.CodeIllegalMove, fmt.Sprintf("cannot move application from %s to %s", from, target), nil)
		}

		res := tx.Model(&models.Application{}).
			Where("id = ? AND stage = ?", app.ID, from).
			Updates(map[string]any{"stage": target, "updated_at": now})
		if res.Error != nil {
			return common.NewError(common.CodeStorage, "failed to update application stage", res.Error)
		}
		if res.RowsAffected != 1 {
			return common.NewError(common.CodeConflict, "application stage changed concurrently", nil)
		}

		event := models.TimelineEvent{
			ApplicationID: app.ID,
			CandidateID:   app.CandidateID,
			JobID:         app.JobID,
			PreviousStage: from,
			NewStage:      target,
			Timestamp:     now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return common.NewError(common.CodeStorage, "failed to append timeline event", err)
		}

		if target == pipeline.GatedStage && from != pipeline.GatedStage {
			if err := s.Gate.enter(tx, app.CandidateID, app.JobID, now); err != nil {
				return err
			}
		}

		result = &pipeline.TransitionResult{
			Outcome:       pipeline.OutcomeAccepted,
			ApplicationID: app.ID,
			From:          from,
			To:            target,
			EventID:       event.ID,
			At:            now,
		}
		return nil
	})
	if err != nil {
		var appErr *common.Error
		if !errors.As(err, &appErr) {
			err = common.NewError(common.CodeStorage, "transition transaction failed", err)
		}
		s.logger.Info("stage transition rejected",
			slog.String("application_id", applicationID),
			slog.String("to", target.String()),
			slog.String("code", string(common.CodeOf(err))),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("stage transition",
		slog.String("application_id", result.ApplicationID),
		slog.String("from", result.From.String()),
		slog.String("to", result.To.String()),
		slog.String("outcome", string(result.Outcome)),
	)
	return result, nil
}

// History returns the timeline of one application in append order.
func (s *WorkflowService) History(ctx context.Context, applicationID string) ([]models.TimelineEvent, error) {
	var events []models.TimelineEvent
	err := s.DB.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to load timeline", err)
	}
	return events, nil
}
