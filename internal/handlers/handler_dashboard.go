package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fxtrack/fxtrack/internal/apperrors"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/fxtrack/fxtrack/internal/dto"
	"github.com/fxtrack/fxtrack/internal/middleware"
	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the aggregated dashboard views.
type DashboardHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(rs portssvc.ReportingSvcFacade) *DashboardHandler {
	return &DashboardHandler{reportingService: rs}
}

// registerDashboardRoutes sets up the dashboard routes on the authenticated
// group.
func registerDashboardRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := NewDashboardHandler(reportingService)
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/summary", h.GetSummary)
		dashboard.GET("/trades", h.GetTradeSeries)
	}
}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Returns transaction counts, the most used source currency,
// distinct currency pairs and per-source chart data. An optional filter
// restricts the pair table to one source currency.
// @Tags dashboard
// @Produce json
// @Param filter query string false "Source currency filter (e.g. USD)"
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()
	filter := strings.ToUpper(c.Query("filter"))

	summary, err := h.reportingService.DashboardSummary(ctx, filter)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Failed to build dashboard summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(summary))
}

// GetTradeSeries godoc
// @Summary Pair rate trend
// @Description Returns the rate-over-time series for one currency pair,
// oldest observation first, backing the trade trend chart.
// @Tags dashboard
// @Produce json
// @Param from query string true "Source currency (e.g. USD)"
// @Param to query string true "Target currency (e.g. INR)"
// @Success 200 {object} dto.TradeSeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/trades [get]
func (h *DashboardHandler) GetTradeSeries(c *gin.Context) {
	ctx := c.Request.Context()
	from := strings.ToUpper(strings.TrimSpace(c.Query("from")))
	to := strings.ToUpper(strings.TrimSpace(c.Query("to")))

	points, err := h.reportingService.PairRateSeries(ctx, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Failed to build trade series", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build trade series"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTradeSeriesResponse(from, to, points))
}
