package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	WorkflowService    *services.WorkflowService
}

func NewApplicationHandler(a *services.ApplicationService, w *services.WorkflowService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: a, WorkflowService: w}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	app, err := h.ApplicationService.Apply(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var filter dtos.ApplicationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBindError(c, err)
		return
	}
	apps, err := h.ApplicationService.ListApplications(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	app, err := h.ApplicationService.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// TransitionStage is PATCH /applications/:id/stage. Every rejection comes
// back as a coded error body so the board can roll back and explain why.
func (h *ApplicationHandler) TransitionStage(c *gin.Context) {
	var req dtos.StageTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.WorkflowService.RequestTransition(c.Request.Context(), c.Param("id"), req.Stage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ApplicationHandler) History(c *gin.Context) {
	if _, err := h.ApplicationService.GetApplication(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	events, err := h.WorkflowService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
