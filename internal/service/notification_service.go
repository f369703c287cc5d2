package service

import (
	"encoding/json"
	"fmt"

	"room-booking-backend/internal/models"
	"room-booking-backend/internal/repository"

	"gorm.io/datatypes"
)

// Notification types emitted by the borrowing lifecycle.
const (
	NotifyBorrowingCreated   = "borrowing_created"
	NotifyBorrowingApproved  = "borrowing_approved"
	NotifyBorrowingRejected  = "borrowing_rejected"
	NotifyBorrowingCancelled = "borrowing_cancelled"
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
}

func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// NotifyUser stores an in-app notification for a single user
func (s *NotificationService) NotifyUser(userID uint, ntype, title, message string, data map[string]interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode notification data: %w", err)
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Data:    datatypes.JSON(payload),
	}
	return s.notificationRepo.CreateNotification(n)
}

// NotifyAdmins stores the same notification for every admin user
func (s *NotificationService) NotifyAdmins(ntype, title, message string, data map[string]interface{}) error {
	adminIDs, err := s.userRepo.FindAdminIDs()
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	var lastErr error
	for _, id := range adminIDs {
		if err := s.NotifyUser(id, ntype, title, message, data); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// GetForUser retrieves a user's notifications
func (s *NotificationService) GetForUser(userID uint) ([]models.Notification, error) {
	return s.notificationRepo.GetByUserID(userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.notificationRepo.MarkRead(id, userID)
}

// CountUnread counts the user's unread notifications
func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}
