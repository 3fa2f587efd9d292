package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talentflow/internal/services"
)

// Services groups everything the router dispatches to.
type Services struct {
	Jobs         *services.JobService
	Candidates   *services.CandidateService
	Applications *services.ApplicationService
	Notes        *services.NoteService
	Assessments  *services.AssessmentService
	Dashboard    *services.DashboardService
	Workflow     *services.WorkflowService
}

type RouterOptions struct {
	AllowOrigins      []string
	TransitionLimiter *RateLimiter
	Logger            *slog.Logger
}

func NewRouter(svc Services, opts RouterOptions) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger))

	config := cors.DefaultConfig()
	if len(opts.AllowOrigins) == 0 || (len(opts.AllowOrigins) == 1 && opts.AllowOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = opts.AllowOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	r.Use(cors.New(config))

	jobHandler := NewJobHandler(svc.Jobs, svc.Applications, svc.Assessments)
	candidateHandler := NewCandidateHandler(svc.Candidates, svc.Notes)
	applicationHandler := NewApplicationHandler(svc.Applications, svc.Workflow)
	assessmentHandler := NewAssessmentHandler(svc.Assessments)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		api.POST("/jobs", jobHandler.CreateJob)
		api.GET("/jobs", jobHandler.ListJobs)
		api.PATCH("/jobs/reorder", jobHandler.ReorderJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.PATCH("/jobs/:id", jobHandler.UpdateJob)
		api.GET("/jobs/:id/applications", jobHandler.ListApplications)
		api.GET("/jobs/:id/assessment-statuses", jobHandler.AssessmentStatuses)

		api.POST("/candidates", candidateHandler.CreateCandidate)
		api.GET("/candidates/:id", candidateHandler.GetCandidate)
		api.GET("/candidates/:id/timeline", candidateHandler.Timeline)
		api.POST("/candidates/:id/notes", candidateHandler.AddNote)
		api.GET("/candidates/:id/notes", candidateHandler.ListNotes)

		api.POST("/applications", applicationHandler.Apply)
		api.GET("/applications", applicationHandler.ListApplications)
		api.GET("/applications/:id", applicationHandler.GetApplication)
		api.GET("/applications/:id/timeline", applicationHandler.History)
		api.PATCH("/applications/:id/stage", RateLimit(opts.TransitionLimiter), applicationHandler.TransitionStage)

		api.POST("/assessments/:jobId/submit", assessmentHandler.Submit)
		api.GET("/assessment-responses/:applicationId", assessmentHandler.Responses)

		api.GET("/dashboard/stats", dashboardHandler.Stats)
		api.GET("/dashboard/pipeline", dashboardHandler.Pipeline)
	}
	return r, nil
}
