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

// RateHandler exposes the cached conversion-rate lookups.
type RateHandler struct {
	rateService portssvc.RateSvcFacade
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rs portssvc.RateSvcFacade) *RateHandler {
	return &RateHandler{rateService: rs}
}

// registerRateRoutes sets up the rate routes on the authenticated group.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := NewRateHandler(rateService)
	rates := rg.Group("/rates")
	{
		rates.GET("/:base", h.GetRates)
	}
}

// GetRates godoc
// @Summary Conversion rates for a base currency
// @Description Returns the latest code->rate mapping quoted against the base
// currency, served from cache when fresh, plus the sorted code list.
// @Tags rates
// @Produce json
// @Param base path string true "Base currency code (e.g. USD)"
// @Success 200 {object} dto.RatesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Upstream rate service unavailable"
// @Security BearerAuth
// @Router /rates/{base} [get]
func (h *RateHandler) GetRates(c *gin.Context) {
	base := strings.ToUpper(c.Param("base"))
	ctx := c.Request.Context()

	rates, err := h.rateService.Rates(ctx, base)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Failed to fetch rates", slog.String("base", base), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Rate service unavailable"})
		return
	}

	currencies, err := h.rateService.Currencies(ctx, base)
	if err != nil {
		currencies = nil
	}

	c.JSON(http.StatusOK, dto.RatesResponse{
		Base:            base,
		ConversionRates: rates,
		Currencies:      currencies,
	})
}
