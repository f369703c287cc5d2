package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-booking-backend/internal/models"
)

var allStatuses = []BorrowingStatus{
	StatusPending, StatusApproved, StatusRejected,
	StatusActive, StatusCompleted, StatusCancelled,
}

var allActions = []Action{
	ActionApprove, ActionReject, ActionStart, ActionComplete, ActionCancel,
}

func TestTransitionTableCompleteness(t *testing.T) {
	legal := map[BorrowingStatus]map[Action]BorrowingStatus{
		StatusPending: {
			ActionApprove: StatusApproved,
			ActionReject:  StatusRejected,
			ActionCancel:  StatusCancelled,
		},
		StatusApproved: {
			ActionStart:  StatusActive,
			ActionCancel: StatusCancelled,
		},
		StatusActive: {
			ActionComplete: StatusCompleted,
		},
	}

	for _, from := range allStatuses {
		for _, action := range allActions {
			next, err := NextStatus(from, action)
			if to, ok := legal[from][action]; ok {
				require.NoError(t, err, "%s + %s", from, action)
				assert.Equal(t, to, next)
				assert.True(t, CanTransition(from, action))
				continue
			}

			assert.False(t, CanTransition(from, action), "%s + %s", from, action)
			var illegal *IllegalTransitionError
			require.ErrorAs(t, err, &illegal, "%s + %s", from, action)
			assert.Equal(t, from, illegal.Current)
			assert.Equal(t, action, illegal.Action)
		}
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	for _, from := range []BorrowingStatus{StatusRejected, StatusCompleted, StatusCancelled} {
		assert.True(t, from.IsTerminal())
		for _, action := range allActions {
			b := &models.Borrowing{Status: string(from)}
			_, err := Apply(b, action, nil, "some reason", time.Now())
			var illegal *IllegalTransitionError
			assert.ErrorAs(t, err, &illegal, "%s + %s", from, action)
			assert.Equal(t, string(from), b.Status, "status must not change")
		}
	}
}

func TestApplyApprove(t *testing.T) {
	actor := uint(7)
	now := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	b := &models.Borrowing{Status: string(StatusPending)}

	verb, err := Apply(b, ActionApprove, &actor, "", now)
	require.NoError(t, err)
	assert.Equal(t, "approved", verb)
	assert.Equal(t, string(StatusApproved), b.Status)
	require.NotNil(t, b.ApprovedBy)
	assert.Equal(t, actor, *b.ApprovedBy)
	require.NotNil(t, b.ApprovedAt)
	assert.Equal(t, now, *b.ApprovedAt)

	// A second approval must fail and name both sides of the rejection.
	_, err = Apply(b, ActionApprove, &actor, "", now)
	var illegal *IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, StatusApproved, illegal.Current)
	assert.Equal(t, ActionApprove, illegal.Action)
}

func TestApplyRejectRequiresReason(t *testing.T) {
	b := &models.Borrowing{Status: string(StatusPending)}
	_, err := Apply(b, ActionReject, nil, "", time.Now())
	assert.ErrorIs(t, err, ErrReasonRequired)
	assert.Equal(t, string(StatusPending), b.Status)

	verb, err := Apply(b, ActionReject, nil, "double booked", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "rejected", verb)
	assert.Equal(t, string(StatusRejected), b.Status)
	assert.Equal(t, "double booked", b.RejectionReason)
}

func TestApplyCancelRequiresReason(t *testing.T) {
	b := &models.Borrowing{Status: string(StatusApproved)}
	_, err := Apply(b, ActionCancel, nil, "", time.Now())
	assert.ErrorIs(t, err, ErrReasonRequired)

	verb, err := Apply(b, ActionCancel, nil, "event moved", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "cancelled", verb)
	assert.Equal(t, "event moved", b.CancelReason)
	assert.Equal(t, string(StatusCancelled), b.Status)
}

func TestApplyCompleteSetsReturnDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 11, 5, 0, 0, time.UTC)
	b := &models.Borrowing{Status: string(StatusActive)}

	verb, err := Apply(b, ActionComplete, nil, "", now)
	require.NoError(t, err)
	assert.Equal(t, "completed", verb)
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.ActualReturnDate)
	assert.Equal(t, now, *b.ActualReturnDate)
}

func TestApplyRejectsCorruptStatus(t *testing.T) {
	b := &models.Borrowing{Status: "frobnicated"}
	_, err := Apply(b, ActionApprove, nil, "", time.Now())
	var invalid *InvalidStatusError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "frobnicated", invalid.Value)
}

func TestParseBorrowingStatus(t *testing.T) {
	s, err := ParseBorrowingStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, s)
	assert.Equal(t, "Pending Approval", s.Label())
	assert.Equal(t, "yellow", s.Color())

	_, err = ParseBorrowingStatus("PENDING")
	var invalid *InvalidStatusError
	assert.ErrorAs(t, err, &invalid)

	_, err = ParseRoomStatus("broken")
	assert.ErrorAs(t, err, &invalid)
}

func TestApplyErrorsAreNotIllegalTransition(t *testing.T) {
	// Reason validation failures must stay distinguishable from
	// transition-table rejections.
	b := &models.Borrowing{Status: string(StatusPending)}
	_, err := Apply(b, ActionReject, nil, "", time.Now())
	var illegal *IllegalTransitionError
	assert.False(t, errors.As(err, &illegal))
}
