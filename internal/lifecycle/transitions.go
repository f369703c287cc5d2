package lifecycle

import (
	"time"

	"room-booking-backend/internal/models"
)

// Action is a request to move a borrowing along its lifecycle.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// transition is a single allowed edge in the borrowing state machine.
type transition struct {
	From   BorrowingStatus
	Action Action
	To     BorrowingStatus
}

// The full set of legal edges. Everything not listed is rejected;
// rejected, cancelled and completed are terminal.
var transitionsTable = []transition{
	{From: StatusPending, Action: ActionApprove, To: StatusApproved},
	{From: StatusPending, Action: ActionReject, To: StatusRejected},
	{From: StatusPending, Action: ActionCancel, To: StatusCancelled},
	{From: StatusApproved, Action: ActionStart, To: StatusActive},
	{From: StatusApproved, Action: ActionCancel, To: StatusCancelled},
	{From: StatusActive, Action: ActionComplete, To: StatusCompleted},
}

// historyAction maps an action to the verb recorded in the audit trail.
var historyAction = map[Action]string{
	ActionApprove:  "approved",
	ActionReject:   "rejected",
	ActionStart:    "started",
	ActionComplete: "completed",
	ActionCancel:   "cancelled",
}

// CanTransition reports whether action is legal from the given status.
func CanTransition(from BorrowingStatus, action Action) bool {
	_, err := NextStatus(from, action)
	return err == nil
}

// NextStatus returns the status the borrowing moves to when action is
// applied, or an IllegalTransitionError naming the current status and
// the rejected action.
func NextStatus(from BorrowingStatus, action Action) (BorrowingStatus, error) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Action == action {
			return tr.To, nil
		}
	}
	return "", &IllegalTransitionError{Current: from, Action: action}
}

// Apply validates action against the borrowing's current status and, on
// success, mutates the status and its side fields in place. It returns
// the history verb to record for the transition. Persistence is the
// caller's responsibility; Apply itself touches no storage.
func Apply(b *models.Borrowing, action Action, actorID *uint, reason string, now time.Time) (string, error) {
	current, err := ParseBorrowingStatus(b.Status)
	if err != nil {
		return "", err
	}

	next, err := NextStatus(current, action)
	if err != nil {
		return "", err
	}

	switch action {
	case ActionApprove:
		b.ApprovedBy = actorID
		t := now
		b.ApprovedAt = &t
	case ActionReject:
		if reason == "" {
			return "", ErrReasonRequired
		}
		b.RejectionReason = reason
	case ActionCancel:
		if reason == "" {
			return "", ErrReasonRequired
		}
		b.CancelReason = reason
	case ActionComplete:
		t := now
		b.ActualReturnDate = &t
	}

	b.Status = string(next)
	return historyAction[action], nil
}
