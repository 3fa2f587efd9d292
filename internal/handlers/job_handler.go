package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/services"
)

type JobHandler struct {
	JobService         *services.JobService
	ApplicationService *services.ApplicationService
	AssessmentService  *services.AssessmentService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService, a *services.ApplicationService, as *services.AssessmentService) *JobHandler {
	return &JobHandler{
		JobService:         j,
		ApplicationService: a,
		AssessmentService:  as,
	}
}

// CreateJob is the POST /jobs endpoint
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	var filter dtos.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBindError(c, err)
		return
	}
	jobs, err := h.JobService.ListJobs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateJob is PATCH /jobs/:id, used for edits and archive/restore.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	job, err := h.JobService.UpdateJob(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ReorderJobs is PATCH /jobs/reorder, sent after a job card is dragged on
// the dashboard. The answer is the full list in its new order.
func (h *JobHandler) ReorderJobs(c *gin.Context) {
	var req dtos.JobReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	jobs, err := h.JobService.ReorderJobs(c.Request.Context(), req.OrderedIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// ListApplications feeds the board for one job.
func (h *JobHandler) ListApplications(c *gin.Context) {
	apps, err := h.ApplicationService.ListForJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *JobHandler) AssessmentStatuses(c *gin.Context) {
	jobID := c.Param("id")
	if _, err := h.JobService.GetJob(c.Request.Context(), jobID); err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.AssessmentService.StatusSummary(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
