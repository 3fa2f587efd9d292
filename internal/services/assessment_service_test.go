package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitResponsesOpensTheGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.application(t, "katherine")

	_, err := f.workflow.RequestTransition(ctx, app.ID, pipeline.StageTech)
	require.NoError(t, err)

	res, err := f.assessments.SubmitResponses(ctx, app.JobID, &dtos.AssessmentSubmission{
		ApplicationID: app.ID,
		Responses:     json.RawMessage(`{"q1":"b","q2":["x","y"]}`),
	})
	require.NoError(t, err)
	assert.True(t, res.GateClosed)

	_, err = f.workflow.RequestTransition(ctx, app.ID, pipeline.StageOffer)
	require.NoError(t, err)

	stored, err := f.assessments.GetResponses(ctx, app.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"q1":"b","q2":["x","y"]}`, string(stored.Responses))
}

func TestSubmitResponsesReplacesEarlierAnswers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.application(t, "dorothy")

	first, err := f.assessments.SubmitResponses(ctx, app.JobID, &dtos.AssessmentSubmission{
		ApplicationID: app.ID,
		Responses:     json.RawMessage(`{"q1":"a"}`),
	})
	require.NoError(t, err)
	assert.False(t, first.GateClosed)

	_, err = f.assessments.SubmitResponses(ctx, app.JobID, &dtos.AssessmentSubmission{
		ApplicationID: app.ID,
		Responses:     json.RawMessage(`{"q1":"c"}`),
	})
	require.NoError(t, err)

	stored, err := f.assessments.GetResponses(ctx, app.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"q1":"c"}`, string(stored.Responses))
}

func TestSubmitResponsesValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.application(t, "mary")
	other := f.job(t, "Other")

	_, err := f.assessments.SubmitResponses(ctx, app.JobID, &dtos.AssessmentSubmission{
		ApplicationID: app.ID,
		Responses:     json.RawMessage(`{not json`),
	})
	assert.True(t, common.Is(err, common.CodeValidation))

	_, err = f.assessments.SubmitResponses(ctx, other.ID, &dtos.AssessmentSubmission{
		ApplicationID: app.ID,
		Responses:     json.RawMessage(`{}`),
	})
	assert.True(t, common.Is(err, common.CodeValidation))

	_, err = f.assessments.SubmitResponses(ctx, app.JobID, &dtos.AssessmentSubmission{
		ApplicationID: "missing",
		Responses:     json.RawMessage(`{}`),
	})
	assert.True(t, common.Is(err, common.CodeNotFound))

	_, err = f.assessments.GetResponses(ctx, app.ID)
	assert.True(t, common.Is(err, common.CodeNotFound))
}

func TestStatusSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.job(t, "Backend")
	a := f.apply(t, f.candidate(t, "ida").ID, job.ID)
	b := f.apply(t, f.candidate(t, "joan").ID, job.ID)
	f.apply(t, f.candidate(t, "sophie").ID, job.ID)

	for _, app := range []string{a.ID, b.ID} {
		_, err := f.workflow.RequestTransition(ctx, app, pipeline.StageTech)
		require.NoError(t, err)
	}
	_, err := f.assessments.SubmitResponses(ctx, job.ID, &dtos.AssessmentSubmission{
		ApplicationID: b.ID,
		Responses:     json.RawMessage(`[]`),
	})
	require.NoError(t, err)

	summary, err := f.assessments.StatusSummary(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 1, summary.Submitted)
	assert.Equal(t, "pending", summary.Statuses[a.CandidateID])
	assert.Equal(t, "submitted", summary.Statuses[b.CandidateID])
	assert.Len(t, summary.Statuses, 2)
}
