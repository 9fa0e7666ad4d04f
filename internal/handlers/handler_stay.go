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

// stayHandler handles HTTP requests related to guest stays.
type stayHandler struct {
	stayService portssvc.StaySvcFacade
}

// newStayHandler creates a new stayHandler.
func newStayHandler(ss portssvc.StaySvcFacade) *stayHandler {
	return &stayHandler{
		stayService: ss,
	}
}

// registerStayRoutes registers stay routes nested under a specific property.
func registerStayRoutes(rg *gin.RouterGroup, stayService portssvc.StaySvcFacade) {
	h := newStayHandler(stayService)

	stays := rg.Group("/stays")
	{
		stays.POST("", h.checkIn)
		stays.GET("", h.listStays)
		stays.GET("/:stay_id", h.getStay)
		stays.POST("/:stay_id/checkout", h.checkOut)
		stays.POST("/:stay_id/cancel", h.cancelStay)
	}
}

// checkIn godoc
// @Summary Check a guest in
// @Description Opens a stay on an available room and marks the room occupied.
// @Tags stays
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   stay body dto.CheckInRequest true "Check-in details"
// @Success 201 {object} dto.StayResponse
// @Failure 400 {object} map[string]string "Invalid input or room not available"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Failed to check in"
// @Security BearerAuth
// @Router /properties/{property_id}/stays [post]
func (h *stayHandler) checkIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("room_id", req.RoomID), slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to check in guest", slog.String("guest_name", req.GuestName))

	newStay, err := h.stayService.CheckIn(c.Request.Context(), propertyID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Room not found for check-in")
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Check-in rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to check in guest")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to check in guest in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check in"})
		}
		return
	}

	logger.Info("Guest checked in successfully", slog.String("stay_id", newStay.StayID))
	c.JSON(http.StatusCreated, dto.ToStayResponse(newStay))
}

// listStays godoc
// @Summary List stays of a property
// @Description Retrieves a paginated list of stays, newest check-in first.
// @Tags stays
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListStaysResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list stays"
// @Security BearerAuth
// @Router /properties/{property_id}/stays [get]
func (h *stayHandler) listStays(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListStaysParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListStays", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID))
	logger.Info("Received request to list stays", slog.Int("limit", params.Limit))

	resp, err := h.stayService.ListStays(c.Request.Context(), propertyID, userID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to list stays of property")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to list stays from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stays"})
		}
		return
	}

	logger.Info("Stays listed successfully", slog.Int("count", len(resp.Stays)))
	c.JSON(http.StatusOK, resp)
}

// getStay godoc
// @Summary Get a stay by ID
// @Description Retrieves details for a specific stay of a property.
// @Tags stays
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   stay_id path string true "Stay ID"
// @Success 200 {object} dto.StayResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Stay not found"
// @Failure 500 {object} map[string]string "Failed to retrieve stay"
// @Security BearerAuth
// @Router /properties/{property_id}/stays/{stay_id} [get]
func (h *stayHandler) getStay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")
	stayID := c.Param("stay_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("stay_id", stayID))
	logger.Info("Received request to get stay")

	stay, err := h.stayService.GetStayByID(c.Request.Context(), propertyID, stayID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Stay not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Stay not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to access stay")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get stay from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stay"})
		}
		return
	}

	logger.Info("Stay retrieved successfully")
	c.JSON(http.StatusOK, dto.ToStayResponse(stay))
}

// checkOut godoc
// @Summary Check a guest out
// @Description Closes a stay, posts its total as an income ledger entry and sends the room to cleaning. Stay update, ledger entry and room status change happen atomically.
// @Tags stays
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   stay_id path string true "Stay ID"
// @Param   checkout body dto.CheckOutRequest true "Checkout details"
// @Success 200 {object} dto.StayResponse
// @Failure 400 {object} map[string]string "Invalid input, amount not positive, or stay not active"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Stay not found"
// @Failure 500 {object} map[string]string "Failed to check out"
// @Security BearerAuth
// @Router /properties/{property_id}/stays/{stay_id}/checkout [post]
func (h *stayHandler) checkOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")
	stayID := c.Param("stay_id")

	var req dto.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckOut", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("stay_id", stayID), slog.String("updater_user_id", userID))
	logger.Info("Received request to check out guest")

	stay, err := h.stayService.CheckOut(c.Request.Context(), propertyID, stayID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Stay not found for checkout")
			c.JSON(http.StatusNotFound, gin.H{"error": "Stay not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Checkout rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to check out stay")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to check out stay in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out"})
		}
		return
	}

	logger.Info("Guest checked out successfully")
	c.JSON(http.StatusOK, dto.ToStayResponse(stay))
}

// cancelStay godoc
// @Summary Cancel a stay
// @Description Voids an active stay without posting income and frees the room.
// @Tags stays
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   stay_id path string true "Stay ID"
// @Success 200 {object} dto.StayResponse
// @Failure 400 {object} map[string]string "Stay not active"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Stay not found"
// @Failure 500 {object} map[string]string "Failed to cancel stay"
// @Security BearerAuth
// @Router /properties/{property_id}/stays/{stay_id}/cancel [post]
func (h *stayHandler) cancelStay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")
	stayID := c.Param("stay_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("stay_id", stayID), slog.String("updater_user_id", userID))
	logger.Info("Received request to cancel stay")

	stay, err := h.stayService.Cancel(c.Request.Context(), propertyID, stayID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Stay not found for cancellation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Stay not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Cancellation rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to cancel stay")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to cancel stay in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel stay"})
		}
		return
	}

	logger.Info("Stay cancelled successfully")
	c.JSON(http.StatusOK, dto.ToStayResponse(stay))
}
