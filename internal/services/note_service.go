package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/dtos"
	"github.com/justsurfingit/talentflow/internal/models"
	"gorm.io/gorm"
)

type NoteService struct {
	DB         *gorm.DB
	Candidates *CandidateService
}

func NewNoteService(db *gorm.DB, candidates *CandidateService) *NoteService {
	return &NoteService{DB: db, Candidates: candidates}
}

func (s *NoteService) AddNote(ctx context.Context, candidateID string, req *dtos.NoteCreationRequest) (*models.Note, error) {
	if _, err := s.Candidates.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, common.NewValidationError("note is empty", map[string]string{"content": "content is required"})
	}
	note := &models.Note{
		CandidateID: candidateID,
		JobID:       req.JobID,
		Author:      req.Author,
		Content:     content,
	}
	if err := s.DB.WithContext(ctx).Create(note).Error; err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to save note", err)
	}
	return note, nil
}

func (s *NoteService) ListNotes(ctx context.Context, candidateID string) ([]models.Note, error) {
	var notes []models.Note
	err := s.DB.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to list notes", err)
	}
	return notes, nil
}
