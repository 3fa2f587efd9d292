package client_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talentflow/internal/board"
	"github.com/justsurfingit/talentflow/internal/client"
	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/database/dbtest"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/handlers"
	"github.com/justsurfingit/talentflow/internal/models"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"github.com/justsurfingit/talentflow/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	api  *client.Client
	gate *services.AssessmentGate
	app  *models.Application
	name string
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	db := dbtest.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gate := services.NewAssessmentGate(db, nil)
	jobs := services.NewJobService(db)
	candidates := services.NewCandidateService(db)
	apps := services.NewApplicationService(db, jobs, candidates)
	r, err := handlers.NewRouter(handlers.Services{
		Jobs:         jobs,
		Candidates:   candidates,
		Applications: apps,
		Notes:        services.NewNoteService(db, candidates),
		Assessments:  services.NewAssessmentService(db, gate),
		Dashboard:    services.NewDashboardService(db),
		Workflow:     services.NewWorkflowService(db, gate, services.WithLogger(logger)),
	}, handlers.RouterOptions{Logger: logger})
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	job, err := jobs.CreateJob(ctx, &dtos.JobCreationRequest{Title: "Data Engineer"})
	require.NoError(t, err)
	c, err := candidates.CreateCandidate(ctx, &dtos.CandidateCreationRequest{Name: "Edgar Codd", Email: "edgar@example.com"})
	require.NoError(t, err)
	app, err := apps.Apply(ctx, &dtos.ApplyRequest{CandidateID: c.ID, JobID: job.ID})
	require.NoError(t, err)

	return &env{api: client.New(srv.URL+"/", srv.Client()), gate: gate, app: app, name: c.Name}
}

func TestLoadBoard(t *testing.T) {
	e := setup(t)

	cards, err := e.api.LoadBoard(context.Background(), e.app.JobID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, e.app.ID, cards[0].ApplicationID)
	assert.Equal(t, e.name, cards[0].CandidateName)
	assert.Equal(t, pipeline.StageApplied, cards[0].Stage)

	_, err = e.api.LoadBoard(context.Background(), "missing")
	assert.True(t, common.Is(err, common.CodeNotFound))
}

func TestRequestTransitionPreservesErrorCodes(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	res, err := e.api.RequestTransition(ctx, e.app.ID, pipeline.StageTech)
	require.NoError(t, err)
	assert.True(t, res.Accepted())
	assert.Equal(t, pipeline.StageTech, res.To)

	_, err = e.api.RequestTransition(ctx, e.app.ID, pipeline.StageOffer)
	assert.True(t, common.Is(err, common.CodeGateBlocked))
	assert.Equal(t, "assessment is still pending", common.MessageOf(err))

	_, err = e.gate.Submit(ctx, e.app.CandidateID, e.app.JobID)
	require.NoError(t, err)

	_, err = e.api.RequestTransition(ctx, e.app.ID, pipeline.StageApplied)
	assert.True(t, common.Is(err, common.CodeIllegalMove))

	_, err = e.api.RequestTransition(ctx, "missing", pipeline.StageScreen)
	assert.True(t, common.Is(err, common.CodeNotFound))
}

func TestBoardOverHTTP(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	var messages []string
	b := board.New(e.app.JobID, e.api, board.WithNotifier(board.NotifierFunc(func(n board.Notification) {
		messages = append(messages, n.Message)
	})))

	cards, err := e.api.LoadBoard(ctx, e.app.JobID)
	require.NoError(t, err)
	require.NoError(t, b.Load(cards))

	require.NoError(t, b.BeginDrag(e.app.ID))
	assert.Equal(t, board.DropAccepted, b.Drop(ctx, pipeline.StageScreen))
	require.NoError(t, b.BeginDrag(e.app.ID))
	assert.Equal(t, board.DropRejected, b.Drop(ctx, pipeline.StageApplied))

	stage, _ := b.View().StageOf(e.app.ID)
	assert.Equal(t, pipeline.StageScreen, stage)
	assert.Equal(t, []string{"Candidate moved to Screening", board.MsgBackwardMove}, messages)
}

func TestTransportFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	api := client.New(srv.URL, srv.Client())

	_, err := api.RequestTransition(context.Background(), "a1", pipeline.StageScreen)
	assert.True(t, common.Is(err, common.CodeInternal))

	srv.Close()
	_, err = api.RequestTransition(context.Background(), "a1", pipeline.StageScreen)
	assert.True(t, common.Is(err, common.CodeUnavailable))
}
