package handler

import (
	"net/http"
	"strconv"

	"room-booking-backend/internal/service"
	"room-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GetNotifications lists the authenticated user's notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")

	notifications, err := h.notificationService.GetForUser(userID.(uint))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	userID, _ := c.Get("userID")

	if err := h.notificationService.MarkRead(uint(id), userID.(uint)); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark notification read")
		return
	}

	utils.MessageResponse(c, "Notification marked read")
}

// UnreadCount returns the number of unread notifications
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, _ := c.Get("userID")

	count, err := h.notificationService.CountUnread(userID.(uint))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to count notifications")
		return
	}

	utils.SuccessResponse(c, gin.H{"unread": count})
}
