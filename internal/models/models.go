package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/talentflow/internal/pipeline"
	"gorm.io/gorm"
)

const (
	JobStatusActive   = "active"
	JobStatusArchived = "archived"
)

// GateStatus is the state of a gating assessment for one (candidate, job) pair.
type GateStatus string

const (
	GateNone      GateStatus = "none"
	GatePending   GateStatus = "pending"
	GateSubmitted GateStatus = "submitted"
)

func (s GateStatus) Value() (driver.Value, error) {
	return string(s), nil
}

type Job struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title        string `gorm:"not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Requirements string `gorm:"type:text" json:"requirements"`
	Status       string `gorm:"index;not null;default:'active'" json:"status"`
	Order        int    `gorm:"column:sort_order;index" json:"order"`
}

type Candidate struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
}

// Application is one candidate's pursuit of one job. Its Stage is only ever
// written by the workflow service.
type Application struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	CandidateID string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_candidate_job" json:"candidate_id"`
	JobID       string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_candidate_job;index" json:"job_id"`
	Stage       pipeline.Stage `gorm:"type:varchar(16);not null;index;default:'applied'" json:"stage"`
	AppliedAt   time.Time      `gorm:"not null" json:"applied_at"`

	// Association: filled by Preload("Candidate") for board cards
	Candidate *Candidate `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}

// TimelineEvent is an append-only record of one accepted stage change.
// The auto-increment ID is the append order.
type TimelineEvent struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID string         `gorm:"type:varchar(36);not null;index" json:"application_id"`
	CandidateID   string         `gorm:"type:varchar(36);not null;index:idx_timeline_pair" json:"candidate_id"`
	JobID         string         `gorm:"type:varchar(36);not null;index:idx_timeline_pair" json:"job_id"`
	PreviousStage pipeline.Stage `gorm:"type:varchar(16);not null" json:"previous_stage"`
	NewStage      pipeline.Stage `gorm:"type:varchar(16);not null" json:"new_stage"`
	Timestamp     time.Time      `gorm:"not null" json:"timestamp"`
}

type Note struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	CandidateID string `gorm:"type:varchar(36);not null;index" json:"candidate_id"`
	JobID       string `gorm:"type:varchar(36)" json:"job_id,omitempty"`
	Author      string `json:"author"`
	Content     string `gorm:"type:text;not null" json:"content"`
}

type AssessmentStatus struct {
	CandidateID string     `gorm:"primaryKey;type:varchar(36)" json:"candidate_id"`
	JobID       string     `gorm:"primaryKey;type:varchar(36)" json:"job_id"`
	Status      GateStatus `gorm:"type:varchar(16);not null" json:"status"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (AssessmentStatus) TableName() string {
	return "assessment_statuses"
}

// AssessmentTiming is one visit to the gated stage. EndedAt stays nil until
// the assessment is submitted.
type AssessmentTiming struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID string     `gorm:"type:varchar(36);not null;index:idx_timing_pair" json:"candidate_id"`
	JobID       string     `gorm:"type:varchar(36);not null;index:idx_timing_pair" json:"job_id"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
}

type AssessmentResponse struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`

	ApplicationID string `gorm:"type:varchar(36);not null;uniqueIndex" json:"application_id"`
	CandidateID   string `gorm:"type:varchar(36);not null" json:"candidate_id"`
	JobID         string `gorm:"type:varchar(36);not null;index" json:"job_id"`
	Responses     string `gorm:"type:text;not null" json:"responses"`
}

// All lists every table for migrations.
func All() []any {
	return []any{
		&Job{},
		&Candidate{},
		&Application{},
		&TimelineEvent{},
		&Note{},
		&AssessmentStatus{},
		&AssessmentTiming{},
		&AssessmentResponse{},
	}
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

func (r *AssessmentResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
