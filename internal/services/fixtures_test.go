package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/talentflow/internal/database/dbtest"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/models"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stepClock advances one second on every reading so that timestamps are
// distinct and ordered.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	db          *gorm.DB
	clock       *stepClock
	gate        *AssessmentGate
	jobs        *JobService
	candidates  *CandidateService
	apps        *ApplicationService
	notes       *NoteService
	assessments *AssessmentService
	workflow    *WorkflowService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	clock := newStepClock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gate := NewAssessmentGate(db, clock.Now)
	jobs := NewJobService(db)
	candidates := NewCandidateService(db)
	apps := NewApplicationService(db, jobs, candidates)
	apps.now = clock.Now

	return &fixture{
		db:          db,
		clock:       clock,
		gate:        gate,
		jobs:        jobs,
		candidates:  candidates,
		apps:        apps,
		notes:       NewNoteService(db, candidates),
		assessments: NewAssessmentService(db, gate),
		workflow:    NewWorkflowService(db, gate, WithClock(clock.Now), WithLogger(logger)),
	}
}

func (f *fixture) job(t *testing.T, title string) *models.Job {
	t.Helper()
	job, err := f.jobs.CreateJob(context.Background(), &dtos.JobCreationRequest{Title: title})
	require.NoError(t, err)
	return job
}

func (f *fixture) candidate(t *testing.T, name string) *models.Candidate {
	t.Helper()
	c, err := f.candidates.CreateCandidate(context.Background(), &dtos.CandidateCreationRequest{
		Name:  name,
		Email: name + "@example.com",
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) apply(t *testing.T, candidateID, jobID string) *models.Application {
	t.Helper()
	app, err := f.apps.Apply(context.Background(), &dtos.ApplyRequest{CandidateID: candidateID, JobID: jobID})
	require.NoError(t, err)
	return app
}

// application creates a fresh job, candidate and application at applied.
func (f *fixture) application(t *testing.T, name string) *models.Application {
	t.Helper()
	job := f.job(t, "Engineer "+name)
	c := f.candidate(t, name)
	return f.apply(t, c.ID, job.ID)
}

// placeAt writes the stage directly, bypassing the workflow.
func (f *fixture) placeAt(t *testing.T, appID string, stage pipeline.Stage) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.Application{}).Where("id = ?", appID).Update("stage", stage).Error)
}

func (f *fixture) stageOf(t *testing.T, appID string) pipeline.Stage {
	t.Helper()
	var app models.Application
	require.NoError(t, f.db.Where("id = ?", appID).Take(&app).Error)
	return app.Stage
}

func (f *fixture) eventCount(t *testing.T, appID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.TimelineEvent{}).Where("application_id = ?", appID).Count(&n).Error)
	return n
}
