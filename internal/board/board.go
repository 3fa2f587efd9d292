// Package board keeps the client-side pipeline board for one job. Drag moves
// are shown immediately and reconciled with the workflow service's answer:
// accepted moves become the baseline, anything else is rolled back.
package board

//go:generate mockgen -destination=../mocks/transitioner.go -package=mocks github.com/justsurfingit/talentflow/internal/board Transitioner

import (
	"context"
	"errors"
	"sync"

	"github.com/justsurfingit/talentflow/internal/pipeline"
)

var (
	ErrUnknownCard       = errors.New("board: unknown application")
	ErrDragInProgress    = errors.New("board: another drag is in progress")
	ErrTransitionPending = errors.New("board: a stage change for this application is still pending")
	ErrBusy              = errors.New("board: cannot reload while moves are in progress")
)

// Transitioner is the authority that accepts or rejects a stage change.
type Transitioner interface {
	RequestTransition(ctx context.Context, applicationID string, target pipeline.Stage) (*pipeline.TransitionResult, error)
}

type DropOutcome string

const (
	DropNoOp     DropOutcome = "noop"
	DropAccepted DropOutcome = "accepted"
	DropRejected DropOutcome = "rejected"
)

type Board struct {
	mu       sync.Mutex
	jobID    string
	engine   Transitioner
	notifier Notifier

	cards map[string]Card

	// gesture state; original is nil when no drag is active
	dragging string
	original map[string]Card

	inFlight map[string]struct{}
}

type Option func(*Board)

func WithNotifier(n Notifier) Option {
	return func(b *Board) {
		if n != nil {
			b.notifier = n
		}
	}
}

func New(jobID string, engine Transitioner, opts ...Option) *Board {
	b := &Board{
		jobID:    jobID,
		engine:   engine,
		notifier: NotifierFunc(func(Notification) {}),
		cards:    make(map[string]Card),
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load replaces the board with a fresh copy from the store.
func (b *Board) Load(cards []Card) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.original != nil || len(b.inFlight) > 0 {
		return ErrBusy
	}
	b.cards = make(map[string]Card, len(cards))
	for _, card := range cards {
		b.cards[card.ApplicationID] = card
	}
	return nil
}

// View returns a deep copy of the live board.
func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return buildView(b.jobID, b.cards)
}

// Dragging reports the application of the active gesture, if any.
func (b *Board) Dragging() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dragging, b.original != nil
}

// Pending reports whether a stage change for the application is in flight.
func (b *Board) Pending(applicationID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.inFlight[applicationID]
	return ok
}

// BeginDrag snapshots the board and starts a gesture. A card whose previous
// move has not been answered yet cannot be picked up again.
func (b *Board) BeginDrag(applicationID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.original != nil {
		return ErrDragInProgress
	}
	if _, ok := b.cards[applicationID]; !ok {
		return ErrUnknownCard
	}
	if _, ok := b.inFlight[applicationID]; ok {
		return ErrTransitionPending
	}
	b.original = cloneCards(b.cards)
	b.dragging = applicationID
	return nil
}

// DragOver moves the dragged card into the hovered column, locally only.
func (b *Board) DragOver(target pipeline.Stage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.original == nil || !target.Valid() {
		return
	}
	card := b.cards[b.dragging]
	if card.Stage == target {
		return
	}
	card.Stage = target
	b.cards[b.dragging] = card
}

// Cancel abandons the gesture (released outside any column).
func (b *Board) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.restoreLocked()
}

// Drop ends the gesture. An empty or unknown target, or the card's original
// stage, restores the board without asking the engine. Otherwise the move is
// sent to the engine with the lock released, so other cards stay draggable,
// and then committed or rolled back.
func (b *Board) Drop(ctx context.Context, target pipeline.Stage) DropOutcome {
	b.mu.Lock()
	if b.original == nil {
		b.mu.Unlock()
		return DropNoOp
	}
	id := b.dragging
	before := b.original[id]
	if !target.Valid() || target == before.Stage {
		b.restoreLocked()
		b.mu.Unlock()
		return DropNoOp
	}

	moved := b.cards[id]
	moved.Stage = target
	b.cards[id] = moved
	b.inFlight[id] = struct{}{}
	b.original = nil
	b.dragging = ""
	b.mu.Unlock()

	result, err := b.engine.RequestTransition(ctx, id, target)

	b.mu.Lock()
	delete(b.inFlight, id)
	if err != nil {
		// only the dragged card is restored; other cards may have been
		// confirmed while this move was in flight
		b.cards[id] = before
		b.mu.Unlock()
		b.notifier.Notify(Notification{Message: rejectionMessage(err), Severity: SeverityError})
		return DropRejected
	}
	confirmed := b.cards[id]
	confirmed.Stage = result.To
	b.cards[id] = confirmed
	b.mu.Unlock()

	if result.Outcome == pipeline.OutcomeNoOp {
		b.notifier.Notify(Notification{Message: "Candidate is already in " + result.To.Label(), Severity: SeverityInfo})
	} else {
		b.notifier.Notify(Notification{Message: "Candidate moved to " + result.To.Label(), Severity: SeveritySuccess})
	}
	return DropAccepted
}

func (b *Board) restoreLocked() {
	if b.original == nil {
		return
	}
	if card, ok := b.original[b.dragging]; ok {
		b.cards[b.dragging] = card
	}
	b.original = nil
	b.dragging = ""
}
