package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/talentflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.application(t, "hedy")

	status, err := f.gate.CurrentStatus(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.GateNone, status)
	ok, err := f.gate.MayLeaveGate(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.gate.EnterGate(ctx, app.CandidateID, app.JobID))
	ok, err = f.gate.MayLeaveGate(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.False(t, ok)

	submitted, err := f.gate.Submit(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.True(t, submitted)

	status, err = f.gate.CurrentStatus(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.GateSubmitted, status)
	ok, err = f.gate.MayLeaveGate(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.True(t, ok)

	timings, err := f.gate.Timings(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	require.Len(t, timings, 1)
	require.NotNil(t, timings[0].EndedAt)
	assert.True(t, timings[0].EndedAt.After(timings[0].StartedAt))
}

func TestGateSubmitWithoutPendingIsIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.application(t, "frances")

	submitted, err := f.gate.Submit(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.False(t, submitted)

	require.NoError(t, f.gate.EnterGate(ctx, app.CandidateID, app.JobID))
	_, err = f.gate.Submit(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)

	submitted, err = f.gate.Submit(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.False(t, submitted)

	status, err := f.gate.CurrentStatus(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.GateSubmitted, status)
}

func TestGateReentryStartsNewTiming(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.application(t, "radia")

	require.NoError(t, f.gate.EnterGate(ctx, app.CandidateID, app.JobID))
	_, err := f.gate.Submit(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	require.NoError(t, f.gate.EnterGate(ctx, app.CandidateID, app.JobID))

	status, err := f.gate.CurrentStatus(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.GatePending, status)

	timings, err := f.gate.Timings(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	require.Len(t, timings, 2)
	assert.NotNil(t, timings[0].EndedAt)
	assert.Nil(t, timings[1].EndedAt)
	assert.True(t, timings[1].StartedAt.After(*timings[0].EndedAt))
}

func TestGateEnterWhilePendingRestartsTiming(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.application(t, "annie")

	require.NoError(t, f.gate.EnterGate(ctx, app.CandidateID, app.JobID))
	first, err := f.gate.Timings(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	require.NoError(t, f.gate.EnterGate(ctx, app.CandidateID, app.JobID))

	timings, err := f.gate.Timings(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	require.Len(t, timings, 1)
	assert.True(t, timings[0].StartedAt.After(first[0].StartedAt))
}

func TestGateEnterWhilePendingRefreshesStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.application(t, "barbara")

	loadStatus := func() models.AssessmentStatus {
		var row models.AssessmentStatus
		require.NoError(t, f.db.Where("candidate_id = ? AND job_id = ?", app.CandidateID, app.JobID).Take(&row).Error)
		return row
	}

	require.NoError(t, f.gate.EnterGate(ctx, app.CandidateID, app.JobID))
	before := loadStatus()
	require.NoError(t, f.gate.EnterGate(ctx, app.CandidateID, app.JobID))
	after := loadStatus()

	assert.Equal(t, models.GatePending, after.Status)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	timings, err := f.gate.Timings(ctx, app.CandidateID, app.JobID)
	require.NoError(t, err)
	require.Len(t, timings, 1)
	assert.True(t, after.UpdatedAt.Equal(timings[0].StartedAt))
}

func TestGateStatusesAreScopedToPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.job(t, "Platform")
	alice := f.candidate(t, "alice")
	bob := f.candidate(t, "bob")
	carol := f.candidate(t, "carol")

	require.NoError(t, f.gate.EnterGate(ctx, alice.ID, job.ID))
	require.NoError(t, f.gate.EnterGate(ctx, bob.ID, job.ID))
	_, err := f.gate.Submit(ctx, bob.ID, job.ID)
	require.NoError(t, err)

	other := f.job(t, "Data")
	require.NoError(t, f.gate.EnterGate(ctx, carol.ID, other.ID))

	statuses, err := f.gate.StatusesForJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]models.GateStatus{
		alice.ID: models.GatePending,
		bob.ID:   models.GateSubmitted,
	}, statuses)

	status, err := f.gate.CurrentStatus(ctx, alice.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GateNone, status)
}
