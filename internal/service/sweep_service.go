package service

import (
	"context"
	"log"
	"time"

	"room-booking-backend/internal/repository"
)

// SweepService is the periodic reconciliation pass. It catches
// time-based transitions no user action triggers (approved borrowings
// whose start time arrived) and re-derives every room's status.
type SweepService struct {
	borrowingRepo    *repository.BorrowingRepository
	roomRepo         *repository.RoomRepository
	borrowingService *BorrowingService
	interval         time.Duration
}

func NewSweepService(
	borrowingRepo *repository.BorrowingRepository,
	roomRepo *repository.RoomRepository,
	borrowingService *BorrowingService,
	interval time.Duration,
) *SweepService {
	return &SweepService{
		borrowingRepo:    borrowingRepo,
		roomRepo:         roomRepo,
		borrowingService: borrowingService,
		interval:         interval,
	}
}

// Start begins the background sweep loop
func (s *SweepService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("Reconciliation sweep started - running every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Reconciliation sweep stopped")
			return
		case <-ticker.C:
			s.RunOnce(time.Now())
		}
	}
}

// RunOnce performs one full sweep. A failure on one row never aborts
// the rest; this is best-effort housekeeping, not a user transaction.
func (s *SweepService) RunOnce(now time.Time) {
	s.startDueBorrowings(now)
	s.refreshRoomStatuses()
}

// startDueBorrowings auto-starts approved borrowings whose start time
// has arrived, going through the same validated transition path as a
// user action so history and room status stay consistent.
func (s *SweepService) startDueBorrowings(now time.Time) {
	due, err := s.borrowingRepo.GetDueToStart(now)
	if err != nil {
		log.Printf("Sweep: error fetching due borrowings: %v", err)
		return
	}

	for _, b := range due {
		if _, err := s.borrowingService.AutoStart(b.ID, now); err != nil {
			log.Printf("Sweep: error auto-starting borrowing %d: %v", b.ID, err)
			continue
		}
		log.Printf("Sweep: borrowing %d started (scheduled %s %s)", b.ID, b.BorrowDate, b.StartTime)
	}
}

// refreshRoomStatuses re-derives every active room's status from its
// current borrowing and persists changes.
func (s *SweepService) refreshRoomStatuses() {
	rooms, err := s.roomRepo.GetAllRooms()
	if err != nil {
		log.Printf("Sweep: error fetching rooms: %v", err)
		return
	}

	for i := range rooms {
		if err := refreshRoomStatus(s.roomRepo, s.borrowingRepo, &rooms[i]); err != nil {
			log.Printf("Sweep: error refreshing room %d: %v", rooms[i].ID, err)
			continue
		}
	}
}
