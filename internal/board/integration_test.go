package board_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/justsurfingit/talentflow/internal/board"
	"github.com/justsurfingit/talentflow/internal/database/dbtest"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"github.com/justsurfingit/talentflow/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardAgainstWorkflowService(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	gate := services.NewAssessmentGate(db, nil)
	jobs := services.NewJobService(db)
	candidates := services.NewCandidateService(db)
	apps := services.NewApplicationService(db, jobs, candidates)
	workflow := services.NewWorkflowService(db, gate, services.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	job, err := jobs.CreateJob(ctx, &dtos.JobCreationRequest{Title: "Compiler Engineer"})
	require.NoError(t, err)
	c, err := candidates.CreateCandidate(ctx, &dtos.CandidateCreationRequest{Name: "Frances", Email: "frances@example.com"})
	require.NoError(t, err)
	app, err := apps.Apply(ctx, &dtos.ApplyRequest{CandidateID: c.ID, JobID: job.ID})
	require.NoError(t, err)

	rec := &recorder{}
	b := board.New(job.ID, workflow, board.WithNotifier(rec))
	require.NoError(t, b.Load([]board.Card{{
		ApplicationID: app.ID,
		CandidateID:   c.ID,
		CandidateName: c.Name,
		JobID:         job.ID,
		Stage:         app.Stage,
		AppliedAt:     app.AppliedAt,
	}}))

	drag := func(target pipeline.Stage) board.DropOutcome {
		require.NoError(t, b.BeginDrag(app.ID))
		b.DragOver(target)
		return b.Drop(ctx, target)
	}

	assert.Equal(t, board.DropAccepted, drag(pipeline.StageTech))
	assert.Equal(t, board.DropRejected, drag(pipeline.StageOffer))
	stage, _ := b.View().StageOf(app.ID)
	assert.Equal(t, pipeline.StageTech, stage)

	_, err = gate.Submit(ctx, c.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, board.DropRejected, drag(pipeline.StageScreen))
	assert.Equal(t, board.DropAccepted, drag(pipeline.StageOffer))

	stored, err := apps.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	stage, _ = b.View().StageOf(app.ID)
	assert.Equal(t, stored.Stage, stage)

	messages := make([]string, 0, 4)
	for _, n := range rec.all() {
		messages = append(messages, n.Message)
	}
	assert.Equal(t, []string{
		"Candidate moved to Technical Interview",
		board.MsgGateBlocked,
		board.MsgBackwardMove,
		"Candidate moved to Offer",
	}, messages)
}
