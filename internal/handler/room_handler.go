package handler

import (
	"errors"
	"net/http"
	"strconv"

	"room-booking-backend/internal/lifecycle"
	"room-booking-backend/internal/models"
	"room-booking-backend/internal/service"
	"room-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// GetAllRooms retrieves all active rooms
func (h *RoomHandler) GetAllRooms(c *gin.Context) {
	rooms, err := h.roomService.GetAllRooms()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// GetRoom retrieves a specific room by ID
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := h.roomService.GetRoomByID(uint(id))
	if err != nil {
		if errors.Is(err, lifecycle.ErrRoomNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch room")
		}
		return
	}

	utils.SuccessResponse(c, room)
}

// CreateRoom creates a new room (admin only)
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if room.Code == "" || room.Name == "" || room.Capacity <= 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "code, name and a positive capacity are required")
		return
	}

	userID, _ := c.Get("userID")

	if err := h.roomService.CreateRoom(&room, userID.(uint)); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Room created successfully",
		"room":    room,
	})
}

// UpdateRoom updates an existing room (admin only)
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	room.ID = uint(id)

	userID, _ := c.Get("userID")

	if err := h.roomService.UpdateRoom(&room, userID.(uint)); err != nil {
		if errors.Is(err, lifecycle.ErrRoomNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Room updated successfully",
		"room":    room,
	})
}

// DeleteRoom soft deletes a room (admin only)
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	userID, _ := c.Get("userID")

	if err := h.roomService.DeleteRoom(uint(id), userID.(uint)); err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrRoomNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, lifecycle.ErrRoomInUse):
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete room")
		}
		return
	}

	utils.MessageResponse(c, "Room deleted successfully")
}

type maintenanceRequest struct {
	UnderMaintenance *bool `json:"under_maintenance" binding:"required"`
}

// SetMaintenance flips the operator-set maintenance flag (admin only)
func (h *RoomHandler) SetMaintenance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "under_maintenance is required")
		return
	}

	userID, _ := c.Get("userID")

	room, err := h.roomService.SetMaintenance(uint(id), *req.UnderMaintenance, userID.(uint))
	if err != nil {
		if errors.Is(err, lifecycle.ErrRoomNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update maintenance flag")
		}
		return
	}

	utils.SuccessResponse(c, room)
}
