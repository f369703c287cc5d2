package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"room-booking-backend/internal/lifecycle"
	"room-booking-backend/internal/models"
	"room-booking-backend/internal/service"
	"room-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BorrowingHandler struct {
	borrowingService *service.BorrowingService
	userRepo         userFinder
}

// userFinder is the slice of the user repository the cancel flow needs.
type userFinder interface {
	FindUserByID(id uint) (*models.User, error)
}

func NewBorrowingHandler(borrowingService *service.BorrowingService, userRepo userFinder) *BorrowingHandler {
	return &BorrowingHandler{
		borrowingService: borrowingService,
		userRepo:         userRepo,
	}
}

type createBorrowingRequest struct {
	RoomID           uint   `json:"room_id" binding:"required"`
	BorrowerName     string `json:"borrower_name" binding:"required"`
	BorrowerPhone    string `json:"borrower_phone"`
	BorrowerCategory string `json:"borrower_category"`
	Purpose          string `json:"purpose"`
	BorrowDate       string `json:"borrow_date" binding:"required"`
	StartTime        string `json:"start_time" binding:"required"`
	ReturnDate       string `json:"return_date" binding:"required"`
	EndTime          string `json:"end_time" binding:"required"`
}

type noteRequest struct {
	Note string `json:"note"`
}

type reasonRequest struct {
	Reason string `json:"reason" binding:"required"`
	Note   string `json:"note"`
}

// CreateBorrowing registers a new borrowing request
func (h *BorrowingHandler) CreateBorrowing(c *gin.Context) {
	var req createBorrowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	b, err := h.borrowingService.Create(service.CreateBorrowingInput{
		RoomID:           req.RoomID,
		BorrowerName:     req.BorrowerName,
		BorrowerPhone:    req.BorrowerPhone,
		BorrowerCategory: req.BorrowerCategory,
		Purpose:          req.Purpose,
		BorrowDate:       req.BorrowDate,
		StartTime:        req.StartTime,
		ReturnDate:       req.ReturnDate,
		EndTime:          req.EndTime,
	}, userID.(uint))
	if err != nil {
		if errors.Is(err, lifecycle.ErrRoomNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   "Borrowing request created",
		"borrowing": b,
	})
}

// GetBorrowings lists all borrowings for admins, own borrowings for users
func (h *BorrowingHandler) GetBorrowings(c *gin.Context) {
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	borrowings, err := h.borrowingService.GetBorrowings(userID.(uint), role.(string))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch borrowings")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"borrowings": borrowings,
		"count":      len(borrowings),
	})
}

// GetBorrowing retrieves one borrowing with an overdue marker
func (h *BorrowingHandler) GetBorrowing(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	b, err := h.borrowingService.GetBorrowingByID(id, userID.(uint), role.(string))
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"borrowing": b,
		"overdue":   lifecycle.IsOverdue(b, time.Now()),
	})
}

// GetHistory returns the borrowing's audit trail
func (h *BorrowingHandler) GetHistory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	rows, err := h.borrowingService.GetHistory(id, userID.(uint), role.(string))
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"history": rows,
		"count":   len(rows),
	})
}

// Approve approves a pending borrowing (admin only)
func (h *BorrowingHandler) Approve(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req noteRequest
	_ = c.ShouldBindJSON(&req)

	userID, _ := c.Get("userID")

	b, err := h.borrowingService.Approve(id, userID.(uint), req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"borrowing": b})
}

// Reject rejects a pending borrowing with a mandatory reason (admin only)
func (h *BorrowingHandler) Reject(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "reason is required")
		return
	}

	userID, _ := c.Get("userID")

	b, err := h.borrowingService.Reject(id, userID.(uint), req.Reason, req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"borrowing": b})
}

// Start moves an approved borrowing to active (admin only)
func (h *BorrowingHandler) Start(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, _ := c.Get("userID")

	b, err := h.borrowingService.Start(id, userID.(uint))
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"borrowing": b})
}

// Complete finishes an active borrowing (admin only)
func (h *BorrowingHandler) Complete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, _ := c.Get("userID")

	b, err := h.borrowingService.Complete(id, userID.(uint))
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"borrowing": b})
}

// Cancel cancels a borrowing; owners cancel their own, admins any
func (h *BorrowingHandler) Cancel(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "reason is required")
		return
	}

	userID, _ := c.Get("userID")
	actor, err := h.userRepo.FindUserByID(userID.(uint))
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unknown user")
		return
	}

	b, err := h.borrowingService.Cancel(id, actor, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"borrowing": b})
}

func (h *BorrowingHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid borrowing ID")
		return 0, false
	}
	return uint(id), true
}

// writeError maps domain errors to HTTP status codes.
func (h *BorrowingHandler) writeError(c *gin.Context, err error) {
	var illegal *lifecycle.IllegalTransitionError
	var invalid *lifecycle.InvalidStatusError

	switch {
	case errors.As(err, &illegal):
		utils.ErrorResponse(c, http.StatusConflict, illegal.Error())
	case errors.As(err, &invalid):
		utils.ErrorResponse(c, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, lifecycle.ErrBorrowingNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, lifecycle.ErrConcurrentModification):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, lifecycle.ErrReasonRequired):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotAllowed):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Operation failed")
	}
}
