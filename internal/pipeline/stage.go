package pipeline

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Stage is one step of the hiring pipeline.
type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// GatedStage cannot be left while its assessment is pending.
const GatedStage = StageTech

// stageOrder is the declared forward order. Rejected sits outside it.
var stageOrder = []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired}

var stageLabels = map[Stage]string{
	StageApplied:  "Applied",
	StageScreen:   "Screening",
	StageTech:     "Technical Interview",
	StageOffer:    "Offer",
	StageHired:    "Hired",
	StageRejected: "Rejected",
}

// RejectedIndex is the position reported for StageRejected. It lies past the
// last ordered stage, so nothing is ever "forward" of a rejected application.
var RejectedIndex = len(stageOrder)

// Stages lists every stage in board column order, rejected last.
func Stages() []Stage {
	out := make([]Stage, 0, len(stageOrder)+1)
	out = append(out, stageOrder...)
	return append(out, StageRejected)
}

// ParseStage normalizes user input into a known stage.
func ParseStage(value string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(value)))
	if !stage.Valid() {
		return "", fmt.Errorf("unknown stage %q", value)
	}
	return stage, nil
}

func (s Stage) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

func (s Stage) Label() string {
	if label, ok := stageLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Stage) String() string {
	return string(s)
}

// Value stores the stage as plain text.
func (s Stage) Value() (driver.Value, error) {
	return string(s), nil
}

// IndexOf returns the position of s in the declared order, RejectedIndex for
// StageRejected, and -1 for unknown stages.
func IndexOf(s Stage) int {
	if s == StageRejected {
		return RejectedIndex
	}
	for i, stage := range stageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// IsLegalTransition reports whether an application may move from one stage to
// another. Moves are strictly forward and may skip stages; rejected is always
// a legal destination.
func IsLegalTransition(from, to Stage) bool {
	if from == to {
		return false
	}
	if !from.Valid() || !to.Valid() {
		return false
	}
	if to == StageRejected {
		return true
	}
	return IndexOf(to) > IndexOf(from)
}
