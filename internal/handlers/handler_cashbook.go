package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/innlodge/lodgebook_app/internal/apperrors"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
	"github.com/innlodge/lodgebook_app/internal/middleware"
)

// xlsxContentType is the MIME type for .xlsx workbooks.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// cashbookHandler handles HTTP requests for a property's cashbook session.
type cashbookHandler struct {
	cashbookService portssvc.CashbookSvcFacade
}

// newCashbookHandler creates a new cashbookHandler.
func newCashbookHandler(cs portssvc.CashbookSvcFacade) *cashbookHandler {
	return &cashbookHandler{
		cashbookService: cs,
	}
}

// RegisterCashbookRoutes registers cashbook routes nested under a specific property.
func RegisterCashbookRoutes(rg *gin.RouterGroup, cashbookService portssvc.CashbookSvcFacade) {
	h := newCashbookHandler(cashbookService)

	cashbook := rg.Group("/cashbook")
	{
		cashbook.GET("", h.getCashbook)
		cashbook.POST("/refresh", h.refreshCashbook)
		cashbook.PUT("/window-mode", h.setWindowMode)
		cashbook.PUT("/anchor", h.setAnchorDate)
		cashbook.PUT("/range", h.setCustomRange)
		cashbook.POST("/expenses", h.submitExpense)
		cashbook.GET("/export", h.exportCashbook)
		cashbook.DELETE("", h.closeCashbook)
	}
}

// respondCashbookError maps a cashbook service error onto an HTTP response.
// The fallback message is used for errors outside the known taxonomy.
func respondCashbookError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		// Covers invalid amounts, bad dates and rejected window modes.
		logger.Warn("Cashbook request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Cashbook request without a signed-in user", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden to access cashbook")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Cashbook resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNothingToExport):
		logger.Warn("Cashbook export refused", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRemote):
		logger.Error("Cashbook backend query failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// getCashbook godoc
// @Summary Get the cashbook state
// @Description Returns the current cashbook session for the property, opening it with today's window on first access.
// @Tags cashbook
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Success 200 {object} dto.CashbookResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to load cashbook"
// @Security BearerAuth
// @Router /properties/{property_id}/cashbook [get]
func (h *cashbookHandler) getCashbook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID))
	logger.Info("Received request to get cashbook")

	snapshot, err := h.cashbookService.Snapshot(c.Request.Context(), userID, propertyID)
	if err != nil {
		respondCashbookError(c, logger, err, "Failed to load cashbook")
		return
	}

	logger.Info("Cashbook retrieved successfully", slog.Int("entry_count", len(snapshot.Entries)))
	c.JSON(http.StatusOK, dto.ToCashbookResponse(snapshot))
}

// refreshCashbook godoc
// @Summary Refresh the cashbook
// @Description Re-queries the entry list, day totals and month totals. Slots that fail are zeroed and reported; the rest still apply.
// @Tags cashbook
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Success 200 {object} dto.CashbookResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to refresh cashbook"
// @Security BearerAuth
// @Router /properties/{property_id}/cashbook/refresh [post]
func (h *cashbookHandler) refreshCashbook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID))
	logger.Info("Received request to refresh cashbook")

	snapshot, err := h.cashbookService.Refresh(c.Request.Context(), userID, propertyID)
	if err != nil {
		respondCashbookError(c, logger, err, "Failed to refresh cashbook")
		return
	}

	logger.Info("Cashbook refreshed successfully", slog.Int("entry_count", len(snapshot.Entries)), slog.Int("failed_slots", len(snapshot.Failures)))
	c.JSON(http.StatusOK, dto.ToCashbookResponse(snapshot))
}

// setWindowMode godoc
// @Summary Set the cashbook window mode
// @Description Switches the active window mode (TODAY, LAST_7_DAYS, LAST_30_DAYS, CUSTOM_RANGE) and refreshes.
// @Tags cashbook
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   mode body dto.SetWindowModeRequest true "Target window mode"
// @Success 200 {object} dto.CashbookResponse
// @Failure 400 {object} map[string]string "Invalid window mode"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to set window mode"
// @Security BearerAuth
// @Router /properties/{property_id}/cashbook/window-mode [put]
func (h *cashbookHandler) setWindowMode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	var req dto.SetWindowModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetWindowMode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("window_mode", string(req.Mode)))
	logger.Info("Received request to set cashbook window mode")

	snapshot, err := h.cashbookService.SetWindowMode(c.Request.Context(), userID, propertyID, req.Mode)
	if err != nil {
		respondCashbookError(c, logger, err, "Failed to set window mode")
		return
	}

	logger.Info("Cashbook window mode set successfully")
	c.JSON(http.StatusOK, dto.ToCashbookResponse(snapshot))
}

// setAnchorDate godoc
// @Summary Set the cashbook anchor date
// @Description Moves the anchor date and refreshes. Outside of custom-range mode the custom bounds reset to the anchor.
// @Tags cashbook
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   anchor body dto.SetAnchorRequest true "Anchor date (YYYY-MM-DD)"
// @Success 200 {object} dto.CashbookResponse
// @Failure 400 {object} map[string]string "Unparsable anchor date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to set anchor date"
// @Security BearerAuth
// @Router /properties/{property_id}/cashbook/anchor [put]
func (h *cashbookHandler) setAnchorDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	var req dto.SetAnchorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetAnchorDate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	anchor, err := time.ParseInLocation(dto.DateOnly, req.AnchorDate, time.Local)
	if err != nil {
		logger.Warn("Unparsable anchor date", slog.String("anchor_date", req.AnchorDate))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid anchor date, expected YYYY-MM-DD"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("anchor_date", req.AnchorDate))
	logger.Info("Received request to set cashbook anchor date")

	snapshot, err := h.cashbookService.SetAnchorDate(c.Request.Context(), userID, propertyID, anchor)
	if err != nil {
		respondCashbookError(c, logger, err, "Failed to set anchor date")
		return
	}

	logger.Info("Cashbook anchor date set successfully")
	c.JSON(http.StatusOK, dto.ToCashbookResponse(snapshot))
}

// setCustomRange godoc
// @Summary Set a custom cashbook range
// @Description Sets explicit window bounds, switches to custom-range mode and refreshes. An inverted range is kept as entered and simply matches nothing.
// @Tags cashbook
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   range body dto.SetCustomRangeRequest true "Range bounds (YYYY-MM-DD)"
// @Success 200 {object} dto.CashbookResponse
// @Failure 400 {object} map[string]string "Unparsable range bounds"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to set range"
// @Security BearerAuth
// @Router /properties/{property_id}/cashbook/range [put]
func (h *cashbookHandler) setCustomRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	var req dto.SetCustomRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetCustomRange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	from, err := time.ParseInLocation(dto.DateOnly, req.From, time.Local)
	if err != nil {
		logger.Warn("Unparsable range start", slog.String("from", req.From))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid range start, expected YYYY-MM-DD"})
		return
	}
	to, err := time.ParseInLocation(dto.DateOnly, req.To, time.Local)
	if err != nil {
		logger.Warn("Unparsable range end", slog.String("to", req.To))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid range end, expected YYYY-MM-DD"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("from", req.From), slog.String("to", req.To))
	logger.Info("Received request to set cashbook range")

	snapshot, err := h.cashbookService.SetCustomRange(c.Request.Context(), userID, propertyID, from, to)
	if err != nil {
		respondCashbookError(c, logger, err, "Failed to set range")
		return
	}

	logger.Info("Cashbook range set successfully")
	c.JSON(http.StatusOK, dto.ToCashbookResponse(snapshot))
}

// submitExpense godoc
// @Summary Record a manual expense
// @Description Validates and records a manually entered expense, moves the anchor to the expense date and refreshes. Amounts that do not parse to a positive number are rejected without touching the ledger.
// @Tags cashbook
// @Accept  json
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Param   expense body dto.SubmitExpenseRequest true "Expense details"
// @Success 200 {object} dto.CashbookResponse
// @Failure 400 {object} map[string]string "Invalid amount or date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to record expense"
// @Security BearerAuth
// @Router /properties/{property_id}/cashbook/expenses [post]
func (h *cashbookHandler) submitExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	var req dto.SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID), slog.String("expense_date", req.Date))
	logger.Info("Received request to record expense")

	snapshot, err := h.cashbookService.SubmitExpense(c.Request.Context(), userID, propertyID, req)
	if err != nil {
		respondCashbookError(c, logger, err, "Failed to record expense")
		return
	}

	logger.Info("Expense recorded successfully")
	c.JSON(http.StatusOK, dto.ToCashbookResponse(snapshot))
}

// exportCashbook godoc
// @Summary Export the cashbook as a workbook
// @Description Downloads the current entry list and totals as a two-sheet .xlsx workbook. Refused when the list is empty.
// @Tags cashbook
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   property_id path string true "Property ID"
// @Success 200 {file} file
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Nothing to export"
// @Failure 500 {object} map[string]string "Failed to export cashbook"
// @Security BearerAuth
// @Router /properties/{property_id}/cashbook/export [get]
func (h *cashbookHandler) exportCashbook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID))
	logger.Info("Received request to export cashbook")

	export, err := h.cashbookService.Export(c.Request.Context(), userID, propertyID)
	if err != nil {
		respondCashbookError(c, logger, err, "Failed to export cashbook")
		return
	}

	logger.Info("Cashbook exported successfully", slog.String("filename", export.Filename), slog.Int("size_bytes", len(export.Content)))
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, export.Content)
}

// closeCashbook godoc
// @Summary Close the cashbook session
// @Description Discards the user's cashbook session for the property. In-flight refreshes become stale and their results are dropped.
// @Tags cashbook
// @Produce  json
// @Param   property_id path string true "Property ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to close cashbook"
// @Security BearerAuth
// @Router /properties/{property_id}/cashbook [delete]
func (h *cashbookHandler) closeCashbook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyID := c.Param("property_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_id", propertyID))
	logger.Info("Received request to close cashbook")

	if err := h.cashbookService.Close(c.Request.Context(), userID, propertyID); err != nil {
		respondCashbookError(c, logger, err, "Failed to close cashbook")
		return
	}

	logger.Info("Cashbook closed successfully")
	c.Status(http.StatusNoContent)
}
