package lifecycle

import (
	"errors"
	"fmt"
)

var (
	// ErrRoomNotFound is returned when a room lookup yields no active row.
	ErrRoomNotFound = errors.New("room not found")

	// ErrBorrowingNotFound is returned when a borrowing lookup yields no row.
	ErrBorrowingNotFound = errors.New("borrowing not found")

	// ErrRoomInUse is returned when deleting a room that is still
	// referenced by a non-terminal borrowing.
	ErrRoomInUse = errors.New("room has pending or active borrowings")

	// ErrConcurrentModification is returned when an optimistic version
	// check fails because another writer updated the row first.
	ErrConcurrentModification = errors.New("borrowing was modified concurrently")

	// ErrReasonRequired is returned when a rejection or cancellation is
	// attempted without a human-readable reason.
	ErrReasonRequired = errors.New("a reason is required")
)

// InvalidStatusError reports an unrecognized status key encountered at a
// boundary (corrupted or legacy data).
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q", e.Value)
}

// IllegalTransitionError reports an action not permitted from the
// borrowing's current status. It names both so the caller can surface a
// structured rejection.
type IllegalTransitionError struct {
	Current BorrowingStatus
	Action  Action
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a borrowing in status %q", e.Action, e.Current)
}
