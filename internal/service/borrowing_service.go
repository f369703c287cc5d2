package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"room-booking-backend/internal/lifecycle"
	"room-booking-backend/internal/models"
	"room-booking-backend/internal/repository"

	"gorm.io/gorm"
)

// ErrNotAllowed is returned when a user acts on a borrowing they do not
// own without admin role.
var ErrNotAllowed = errors.New("not allowed to act on this borrowing")

type BorrowingService struct {
	db            *gorm.DB
	borrowingRepo *repository.BorrowingRepository
	historyRepo   *repository.HistoryRepository
	roomRepo      *repository.RoomRepository
	notifier      *NotificationService
}

func NewBorrowingService(
	db *gorm.DB,
	borrowingRepo *repository.BorrowingRepository,
	historyRepo *repository.HistoryRepository,
	roomRepo *repository.RoomRepository,
	notifier *NotificationService,
) *BorrowingService {
	return &BorrowingService{
		db:            db,
		borrowingRepo: borrowingRepo,
		historyRepo:   historyRepo,
		roomRepo:      roomRepo,
		notifier:      notifier,
	}
}

// CreateBorrowingInput carries the user-entered fields of a new request.
type CreateBorrowingInput struct {
	RoomID           uint
	BorrowerName     string
	BorrowerPhone    string
	BorrowerCategory string
	Purpose          string
	BorrowDate       string
	StartTime        string
	ReturnDate       string
	EndTime          string
}

// Create registers a new borrowing in pending status, derives its
// timestamps, and appends the opening history row in the same
// transaction. Admins are notified after commit.
func (s *BorrowingService) Create(input CreateBorrowingInput, userID uint) (*models.Borrowing, error) {
	room, err := s.roomRepo.GetRoomByID(input.RoomID)
	if err != nil {
		return nil, err
	}

	borrowedAt, plannedReturnAt, err := lifecycle.DeriveTimestamps(
		input.BorrowDate, input.StartTime, input.ReturnDate, input.EndTime)
	if err != nil {
		return nil, err
	}

	b := &models.Borrowing{
		RoomID:           room.ID,
		UserID:           userID,
		BorrowerName:     input.BorrowerName,
		BorrowerPhone:    input.BorrowerPhone,
		BorrowerCategory: input.BorrowerCategory,
		Purpose:          input.Purpose,
		BorrowDate:       input.BorrowDate,
		StartTime:        input.StartTime,
		ReturnDate:       input.ReturnDate,
		EndTime:          input.EndTime,
		BorrowedAt:       borrowedAt,
		PlannedReturnAt:  plannedReturnAt,
		Status:           string(lifecycle.StatusPending),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.borrowingRepo.WithTx(tx).CreateBorrowing(b); err != nil {
			return fmt.Errorf("failed to create borrowing: %w", err)
		}
		newStatus := b.Status
		return s.historyRepo.WithTx(tx).Record(b.ID, "created", nil, &newStatus, input.Purpose, &userID)
	})
	if err != nil {
		return nil, err
	}

	// Notifications are fire-and-forget; delivery failure never fails
	// the request.
	if err := s.notifier.NotifyAdmins(
		NotifyBorrowingCreated,
		"New borrowing request",
		fmt.Sprintf("%s requested room %s for %s %s-%s",
			b.BorrowerName, room.Code, b.BorrowDate, b.StartTime, b.EndTime),
		map[string]interface{}{"borrowing_id": b.ID, "room_id": room.ID},
	); err != nil {
		log.Printf("Failed to notify admins about borrowing %d: %v", b.ID, err)
	}

	return b, nil
}

// Approve moves a pending borrowing to approved and notifies the owner.
func (s *BorrowingService) Approve(id uint, actorID uint, note string) (*models.Borrowing, error) {
	b, err := s.transition(id, lifecycle.ActionApprove, &actorID, "", note)
	if err != nil {
		return nil, err
	}

	s.notifyOwner(b, NotifyBorrowingApproved, "Borrowing approved",
		fmt.Sprintf("Your request for room %s on %s was approved", b.Room.Code, b.BorrowDate))
	return b, nil
}

// Reject moves a pending borrowing to rejected. The reason is mandatory
// and stored both on the borrowing and in its history.
func (s *BorrowingService) Reject(id uint, actorID uint, reason, note string) (*models.Borrowing, error) {
	b, err := s.transition(id, lifecycle.ActionReject, &actorID, reason, note)
	if err != nil {
		return nil, err
	}

	s.notifyOwner(b, NotifyBorrowingRejected, "Borrowing rejected",
		fmt.Sprintf("Your request for room %s on %s was rejected: %s", b.Room.Code, b.BorrowDate, reason))
	return b, nil
}

// Start moves an approved borrowing to active. An explicit admin start
// is not time-guarded; only the sweep's automatic start is.
func (s *BorrowingService) Start(id uint, actorID uint) (*models.Borrowing, error) {
	return s.transition(id, lifecycle.ActionStart, &actorID, "", "")
}

// Complete moves an active borrowing to completed and records the
// actual return time.
func (s *BorrowingService) Complete(id uint, actorID uint) (*models.Borrowing, error) {
	return s.transition(id, lifecycle.ActionComplete, &actorID, "", "")
}

// Cancel cancels a pending or approved borrowing. Owners may cancel
// their own; admins may cancel any. A user-initiated cancellation
// notifies the admins, an admin-initiated one notifies the owner.
func (s *BorrowingService) Cancel(id uint, actor *models.User, reason string) (*models.Borrowing, error) {
	existing, err := s.borrowingRepo.GetBorrowingByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role != "admin" && existing.UserID != actor.ID {
		return nil, ErrNotAllowed
	}

	b, err := s.transition(id, lifecycle.ActionCancel, &actor.ID, reason, "")
	if err != nil {
		return nil, err
	}

	if actor.ID == b.UserID {
		if err := s.notifier.NotifyAdmins(
			NotifyBorrowingCancelled,
			"Borrowing cancelled",
			fmt.Sprintf("%s cancelled the booking of room %s on %s: %s",
				b.BorrowerName, b.Room.Code, b.BorrowDate, reason),
			map[string]interface{}{"borrowing_id": b.ID, "room_id": b.RoomID},
		); err != nil {
			log.Printf("Failed to notify admins about cancellation of borrowing %d: %v", b.ID, err)
		}
	} else {
		s.notifyOwner(b, NotifyBorrowingCancelled, "Borrowing cancelled",
			fmt.Sprintf("Your booking of room %s on %s was cancelled: %s", b.Room.Code, b.BorrowDate, reason))
	}
	return b, nil
}

// AutoStart is the sweep's entry point: it starts an approved borrowing
// only once its start time has arrived, with no acting user.
func (s *BorrowingService) AutoStart(id uint, now time.Time) (*models.Borrowing, error) {
	existing, err := s.borrowingRepo.GetBorrowingByID(id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.StartDue(existing, now) {
		return existing, nil
	}
	return s.transition(id, lifecycle.ActionStart, nil, "", "started automatically at scheduled time")
}

// GetBorrowings lists all borrowings for admins, the user's own
// otherwise.
func (s *BorrowingService) GetBorrowings(userID uint, role string) ([]models.Borrowing, error) {
	if role == "admin" {
		return s.borrowingRepo.GetAllBorrowings()
	}
	return s.borrowingRepo.GetBorrowingsByUserID(userID)
}

// GetBorrowingByID retrieves a borrowing, enforcing ownership for
// non-admin users.
func (s *BorrowingService) GetBorrowingByID(id, userID uint, role string) (*models.Borrowing, error) {
	b, err := s.borrowingRepo.GetBorrowingByID(id)
	if err != nil {
		return nil, err
	}
	if role != "admin" && b.UserID != userID {
		return nil, ErrNotAllowed
	}
	return b, nil
}

// GetHistory returns the audit trail of a borrowing, oldest first.
func (s *BorrowingService) GetHistory(id, userID uint, role string) ([]models.BorrowingHistory, error) {
	if _, err := s.GetBorrowingByID(id, userID, role); err != nil {
		return nil, err
	}
	return s.historyRepo.GetByBorrowingID(id)
}

// transition loads the borrowing, applies the action through the
// lifecycle engine, and persists the status change together with its
// history row in one transaction. The optimistic version check makes
// two racing writers fail loudly instead of overwriting each other.
func (s *BorrowingService) transition(id uint, action lifecycle.Action, actorID *uint, reason, note string) (*models.Borrowing, error) {
	b, err := s.borrowingRepo.GetBorrowingByID(id)
	if err != nil {
		return nil, err
	}

	oldStatus := b.Status
	verb, err := lifecycle.Apply(b, action, actorID, reason, time.Now())
	if err != nil {
		return nil, err
	}

	comment := note
	if comment == "" {
		comment = reason
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.borrowingRepo.WithTx(tx).UpdateTransition(b, b.Version); err != nil {
			return err
		}
		newStatus := b.Status
		if err := s.historyRepo.WithTx(tx).Record(b.ID, verb, &oldStatus, &newStatus, comment, actorID); err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := refreshRoomStatusByID(s.roomRepo, s.borrowingRepo, b.RoomID); err != nil {
		log.Printf("Failed to refresh status of room %d: %v", b.RoomID, err)
	}

	return b, nil
}

func (s *BorrowingService) notifyOwner(b *models.Borrowing, ntype, title, message string) {
	err := s.notifier.NotifyUser(b.UserID, ntype, title, message,
		map[string]interface{}{"borrowing_id": b.ID, "room_id": b.RoomID})
	if err != nil {
		log.Printf("Failed to notify user %d about borrowing %d: %v", b.UserID, b.ID, err)
	}
}
