package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxtrack/fxtrack/internal/apperrors"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/fxtrack/fxtrack/internal/dto"
	"github.com/fxtrack/fxtrack/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RecordHandler handles the conversion-record endpoints.
type RecordHandler struct {
	recordService portssvc.RecordSvcFacade
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(rs portssvc.RecordSvcFacade) *RecordHandler {
	return &RecordHandler{recordService: rs}
}

// registerRecordRoutes sets up the record routes on the authenticated group.
func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade) {
	h := NewRecordHandler(recordService)
	records := rg.Group("/records")
	{
		records.POST("", h.CreateRecord)
		records.GET("", h.ListRecords)
		records.DELETE("", h.ClearRecords)
	}
}

// CreateRecord godoc
// @Summary Log a conversion
// @Description Validates the entry form and appends a new conversion record.
// @Tags records
// @Accept json
// @Produce json
// @Param record body dto.CreateRecordRequest true "Entry Form"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [post]
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	record, err := h.recordService.CreateRecord(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Failed to create record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create record"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecordResponse(*record))
}

// ListRecords godoc
// @Summary List conversion records
// @Description Returns a pair- and date-filtered, paginated page of records
// with column totals. An inverted date range suspends the date filter and
// returns the pair-filtered set, with the filter state explaining why.
// @Tags records
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param fromCurrency query string false "Source currency of the pair"
// @Param toCurrency query string false "Target currency of the pair"
// @Param page query int false "Zero-based page index" default(0)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [get]
func (h *RecordHandler) ListRecords(c *gin.Context) {
	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.recordService.ListRecords(ctx, params)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Failed to list records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list records"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ClearRecords godoc
// @Summary Delete all conversion records
// @Description Destroys the entire record collection. Irrecoverable.
// @Tags records
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [delete]
func (h *RecordHandler) ClearRecords(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		logger.Warn("Record collection wipe requested", slog.String("user_id", userID))
	}

	if err := h.recordService.ClearRecords(ctx); err != nil {
		logger.Error("Failed to clear records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to clear records"})
		return
	}
	c.Status(http.StatusNoContent)
}
