package pipeline

import "time"

type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeNoOp     Outcome = "noop"
)

// TransitionResult is the successful answer to a stage change request.
// Rejections are reported as errors, never as results.
type TransitionResult struct {
	Outcome       Outcome   `json:"outcome"`
	ApplicationID string    `json:"application_id"`
	From          Stage     `json:"from"`
	To            Stage     `json:"to"`
	EventID       uint      `json:"event_id,omitempty"`
	At            time.Time `json:"at"`
}

func (r *TransitionResult) Accepted() bool {
	return r != nil && r.Outcome == OutcomeAccepted
}
