package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/services"
)

type CandidateHandler struct {
	CandidateService *services.CandidateService
	NoteService      *services.NoteService
}

func NewCandidateHandler(c *services.CandidateService, n *services.NoteService) *CandidateHandler {
	return &CandidateHandler{CandidateService: c, NoteService: n}
}

func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req dtos.CandidateCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	candidate, err := h.CandidateService.CreateCandidate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	candidate, err := h.CandidateService.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// Timeline answers newest first, like the profile page expects.
func (h *CandidateHandler) Timeline(c *gin.Context) {
	events, err := h.CandidateService.Timeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *CandidateHandler) AddNote(c *gin.Context) {
	var req dtos.NoteCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	note, err := h.NoteService.AddNote(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *CandidateHandler) ListNotes(c *gin.Context) {
	notes, err := h.NoteService.ListNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}
