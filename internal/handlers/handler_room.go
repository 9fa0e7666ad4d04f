package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/innlodge/lodgebook_app/internal/apperrors"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
	"github.com/innlodge/lodgebook_app/internal/middleware"
)

// roomHandler handles HTTP requests related to rooms.
type roomHandler struct {
	roomService portssvc.RoomSvcFacade
}

// newRoomHandler creates a new roomHandler.
func newRoomHandler(rs portssvc.RoomSvcFacade) *roomHandler {
	return &roomHandler{
		roomService: rs,
	}
}

// registerRoomRoutes registers room routes nested under a specific property.
func registerRoomRoutes(rg *gin.RouterGroup, roomService portssvc.RoomSvcFacade) {
	h := newRoomHandler(roomService)

	rooms := rg.Group("/rooms")
	{
		rooms.POST("", h.createRoom)
		rooms.GET("", h.listRooms)
		rooms.GET("/:room_id", h.getRoom)
		rooms.PUT("/:room_id", h.updateRoom)
		rooms.PUT("/:room_id/status", h.setRoomStatus)
	}
}

// createRoom godoc
// @Summary Create a new room
// @Description Creates a new room in a property. New rooms start available.
// @Tags rooms
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   room body dto.CreateRoomRequest true "Room details"
// @Success 201 {object} dto.RoomResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create room"
// @Security BearerAuth
// @Router /properties/{property_id}/rooms [post]
func (h *roomHandler) createRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRoom", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create room", slog.String("room_name", req.Name))

	newRoom, err := h.roomService.CreateRoom(c.Request.Context(), propertyID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to create room in property")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Property not found for room creation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		} else {
			logger.Error("Failed to create room in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		}
		return
	}

	logger.Info("Room created successfully", slog.String("room_id", newRoom.RoomID))
	c.JSON(http.StatusCreated, dto.ToRoomResponse(newRoom))
}

// listRooms godoc
// @Summary List rooms of a property
// @Description Retrieves all rooms of a property with their current status.
// @Tags rooms
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Success 200 {object} dto.ListRoomsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list rooms"
// @Security BearerAuth
// @Router /properties/{property_id}/rooms [get]
func (h *roomHandler) listRooms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID))
	logger.Info("Received request to list rooms")

	rooms, err := h.roomService.ListRooms(c.Request.Context(), propertyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to list rooms of property")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to list rooms from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rooms"})
		}
		return
	}

	logger.Info("Rooms listed successfully", slog.Int("count", len(rooms)))
	c.JSON(http.StatusOK, dto.ToListRoomsResponse(rooms))
}

// getRoom godoc
// @Summary Get a room by ID
// @Description Retrieves details for a specific room of a property.
// @Tags rooms
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   room_id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Failed to retrieve room"
// @Security BearerAuth
// @Router /properties/{property_id}/rooms/{room_id} [get]
func (h *roomHandler) getRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")
	roomID := c.Param("room_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("room_id", roomID))
	logger.Info("Received request to get room")

	room, err := h.roomService.GetRoomByID(c.Request.Context(), propertyID, roomID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Room not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to access room")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get room from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve room"})
		}
		return
	}

	logger.Info("Room retrieved successfully")
	c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

// updateRoom godoc
// @Summary Update a room
// @Description Updates a room's details (currently only name).
// @Tags rooms
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   room_id path string true "Room ID to update"
// @Param   room body dto.UpdateRoomRequest true "Room details to update"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Failed to update room"
// @Security BearerAuth
// @Router /properties/{property_id}/rooms/{room_id} [put]
func (h *roomHandler) updateRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")
	roomID := c.Param("room_id")

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRoom", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("room_id", roomID), slog.String("updater_user_id", userID))
	logger.Info("Received request to update room")

	updatedRoom, err := h.roomService.UpdateRoom(c.Request.Context(), propertyID, roomID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Room not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to update room")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to update room in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
		}
		return
	}

	logger.Info("Room updated successfully")
	c.JSON(http.StatusOK, dto.ToRoomResponse(updatedRoom))
}

// setRoomStatus godoc
// @Summary Set a room's status
// @Description Moves a room through its status machine (AVAILABLE, OCCUPIED, CLEANING, MAINTENANCE). Transitions the machine does not allow are rejected.
// @Tags rooms
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   room_id path string true "Room ID"
// @Param   status body dto.SetRoomStatusRequest true "Target status"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} map[string]string "Invalid input or transition not allowed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Failed to set room status"
// @Security BearerAuth
// @Router /properties/{property_id}/rooms/{room_id}/status [put]
func (h *roomHandler) setRoomStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")
	roomID := c.Param("room_id")

	var req dto.SetRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetRoomStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("room_id", roomID), slog.String("target_status", string(req.Status)))
	logger.Info("Received request to set room status")

	updatedRoom, err := h.roomService.SetRoomStatus(c.Request.Context(), propertyID, roomID, req.Status, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Room not found for status change")
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Room status transition rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to change room status")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to set room status in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set room status"})
		}
		return
	}

	logger.Info("Room status changed successfully")
	c.JSON(http.StatusOK, dto.ToRoomResponse(updatedRoom))
}
