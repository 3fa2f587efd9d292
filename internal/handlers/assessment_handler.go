package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/services"
)

type AssessmentHandler struct {
	AssessmentService *services.AssessmentService
}

func NewAssessmentHandler(a *services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{AssessmentService: a}
}

// Submit is called by the assessment runtime when a candidate finishes.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req dtos.AssessmentSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.AssessmentService.SubmitResponses(c.Request.Context(), c.Param("jobId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AssessmentHandler) Responses(c *gin.Context) {
	responses, err := h.AssessmentService.GetResponses(c.Request.Context(), c.Param("applicationId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}
