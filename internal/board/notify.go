package board

import (
	"github.com/justsurfingit/talentflow/internal/common"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// Notification is a transient message for the host UI. No acknowledgment is
// expected.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

const (
	MsgGateBlocked  = "Assessment is still pending"
	MsgBackwardMove = "Cannot move candidate to a previous stage."
	MsgNotFound     = "Application not found"
	MsgConflict     = "Candidate was moved elsewhere, refresh the board"
	MsgFailed       = "Failed to update application stage"
)

func rejectionMessage(err error) string {
	switch common.CodeOf(err) {
	case common.CodeGateBlocked:
		return MsgGateBlocked
	case common.CodeIllegalMove:
		return MsgBackwardMove
	case common.CodeNotFound:
		return MsgNotFound
	case common.CodeConflict:
		return MsgConflict
	default:
		return MsgFailed
	}
}
