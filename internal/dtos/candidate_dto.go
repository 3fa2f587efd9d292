package dtos

type CandidateCreationRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type NoteCreationRequest struct {
	Content string `json:"content" binding:"required"`
	JobID   string `json:"job_id"`
	Author  string `json:"author"`
}
