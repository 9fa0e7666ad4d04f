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

// propertyHandler handles HTTP requests related to properties.
type propertyHandler struct {
	propertyService portssvc.PropertySvcFacade
}

// newPropertyHandler creates a new propertyHandler.
func newPropertyHandler(ps portssvc.PropertySvcFacade) *propertyHandler {
	return &propertyHandler{
		propertyService: ps,
	}
}

// registerPropertyRoutes registers routes related to properties and their
// nested resources (rooms, stays, cashbook).
func registerPropertyRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPropertyHandler(services.Property)

	// Routes for managing properties themselves
	propertiesTopLevel := rg.Group("/properties")
	{
		propertiesTopLevel.POST("", h.createProperty)
		propertiesTopLevel.GET("", h.listProperties) // List properties the calling user owns
	}

	// Routes specific to a single property (identified by property_id)
	propertySpecific := rg.Group("/properties/:property_id")
	{
		propertySpecific.GET("", h.getProperty)
		propertySpecific.PUT("", h.updateProperty)
		propertySpecific.DELETE("", h.deleteProperty)

		// -- NESTED ROOM ROUTES --
		registerRoomRoutes(propertySpecific, services.Room)

		// -- NESTED STAY ROUTES --
		registerStayRoutes(propertySpecific, services.Stay)

		// -- NESTED CASHBOOK ROUTES --
		RegisterCashbookRoutes(propertySpecific, services.Cashbook)
	}
}

// createProperty godoc
// @Summary Create a new property
// @Description Creates a new property owned by the logged-in user.
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   property body dto.CreatePropertyRequest true "Property details"
// @Success 201 {object} dto.PropertyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create property"
// @Security BearerAuth
// @Router /properties [post]
func (h *propertyHandler) createProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProperty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create property", slog.String("property_name", req.Name))

	newProperty, err := h.propertyService.CreateProperty(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create property in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	logger.Info("Property created successfully", slog.String("property_id", newProperty.PropertyID))
	c.JSON(http.StatusCreated, dto.ToPropertyResponse(newProperty))
}

// listProperties godoc
// @Summary List properties for current user
// @Description Retrieves the properties owned by the authenticated user.
// @Tags properties
// @Produce  json
// @Success 200 {object} dto.ListPropertiesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list properties"
// @Security BearerAuth
// @Router /properties [get]
func (h *propertyHandler) listProperties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to list user's properties")

	properties, err := h.propertyService.ListProperties(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list properties from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}

	logger.Info("Properties listed successfully", slog.Int("count", len(properties)))
	c.JSON(http.StatusOK, dto.ToListPropertiesResponse(properties))
}

// getProperty godoc
// @Summary Get a property by ID
// @Description Retrieves details for a specific property.
// @Tags properties
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Success 200 {object} dto.PropertyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not the owner)"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 500 {object} map[string]string "Failed to retrieve property"
// @Security BearerAuth
// @Router /properties/{property_id} [get]
func (h *propertyHandler) getProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID))
	logger.Info("Received request to get property")

	property, err := h.propertyService.GetPropertyByID(c.Request.Context(), propertyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Property not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to access property")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get property from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve property"})
		}
		return
	}

	logger.Info("Property retrieved successfully")
	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// updateProperty godoc
// @Summary Update a property
// @Description Updates a property's details (name, address).
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID to update"
// @Param   property body dto.UpdatePropertyRequest true "Property details to update"
// @Success 200 {object} dto.PropertyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 500 {object} map[string]string "Failed to update property"
// @Security BearerAuth
// @Router /properties/{property_id} [put]
func (h *propertyHandler) updateProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProperty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("updater_user_id", userID))
	logger.Info("Received request to update property")

	updatedProperty, err := h.propertyService.UpdateProperty(c.Request.Context(), propertyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Property not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to update property")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating property", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update property in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		}
		return
	}

	logger.Info("Property updated successfully")
	c.JSON(http.StatusOK, dto.ToPropertyResponse(updatedProperty))
}

// deleteProperty godoc
// @Summary Delete a property
// @Description Marks a property as deleted (soft delete).
// @Tags properties
// @Produce  json
// @Param   property_id path string true "Property ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 500 {object} map[string]string "Failed to delete property"
// @Security BearerAuth
// @Router /properties/{property_id} [delete]
func (h *propertyHandler) deleteProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("deleter_user_id", userID))
	logger.Info("Received request to delete property")

	err := h.propertyService.DeleteProperty(c.Request.Context(), propertyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Property not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to delete property")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to delete property in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		}
		return
	}

	logger.Info("Property deleted successfully")
	c.Status(http.StatusNoContent)
}
