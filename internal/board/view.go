package board

import (
	"sort"
	"time"

	"github.com/justsurfingit/talentflow/internal/pipeline"
)

// Card is one application as the board renders it.
type Card struct {
	ApplicationID string         `json:"application_id"`
	CandidateID   string         `json:"candidate_id"`
	CandidateName string         `json:"candidate_name"`
	JobID         string         `json:"job_id"`
	Stage         pipeline.Stage `json:"stage"`
	AppliedAt     time.Time      `json:"applied_at"`
}

type Column struct {
	Stage pipeline.Stage `json:"stage"`
	Label string         `json:"label"`
	Cards []Card         `json:"cards"`
}

// View is a read-only copy of the board, partitioned by stage in pipeline
// order. Cards inside a column are ordered by applied-at, then id.
type View struct {
	JobID   string   `json:"job_id"`
	Columns []Column `json:"columns"`
}

// Column returns the cards currently shown under stage.
func (v View) Column(stage pipeline.Stage) []Card {
	for _, col := range v.Columns {
		if col.Stage == stage {
			return col.Cards
		}
	}
	return nil
}

// StageOf finds the column holding the application.
func (v View) StageOf(applicationID string) (pipeline.Stage, bool) {
	for _, col := range v.Columns {
		for _, card := range col.Cards {
			if card.ApplicationID == applicationID {
				return col.Stage, true
			}
		}
	}
	return "", false
}

func buildView(jobID string, cards map[string]Card) View {
	grouped := make(map[pipeline.Stage][]Card, len(cards))
	for _, card := range cards {
		if !card.Stage.Valid() {
			continue
		}
		grouped[card.Stage] = append(grouped[card.Stage], card)
	}

	stages := pipeline.Stages()
	view := View{JobID: jobID, Columns: make([]Column, 0, len(stages))}
	for _, stage := range stages {
		colCards := grouped[stage]
		sort.Slice(colCards, func(i, j int) bool {
			if !colCards[i].AppliedAt.Equal(colCards[j].AppliedAt) {
				return colCards[i].AppliedAt.Before(colCards[j].AppliedAt)
			}
			return colCards[i].ApplicationID < colCards[j].ApplicationID
		})
		if colCards == nil {
			colCards = []Card{}
		}
		view.Columns = append(view.Columns, Column{Stage: stage, Label: stage.Label(), Cards: colCards})
	}
	return view
}

func cloneCards(src map[string]Card) map[string]Card {
	dst := make(map[string]Card, len(src))
	for id, card := range src {
		dst[id] = card
	}
	return dst
}
