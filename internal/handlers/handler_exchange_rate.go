package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
	"github.com/tripweaver/trip_budget_app/internal/dto"
	"github.com/tripweaver/trip_budget_app/internal/middleware"
)

const dateLayout = "2006-01-02"

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService    portssvc.ExchangeRateSvcFacade
	refreshService portssvc.RateRefreshSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade, refresh portssvc.RateRefreshSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService:    rs,
		refreshService: refresh,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade, refreshService portssvc.RateRefreshSvc) {
	h := newExchangeRateHandler(rateService, refreshService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.resolveRate)
		rates.POST("", h.saveRate)
		rates.GET("/history", h.getHistoricalRates)
		rates.POST("/refresh", h.triggerRefresh)
	}
}

// saveRateRequest is the body for manually storing a rate.
type saveRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	Date             string          `json:"date" binding:"required"` // YYYY-MM-DD
}

func (h *exchangeRateHandler) resolveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fromCode := c.Query("from")
	toCode := c.Query("to")
	if fromCode == "" || toCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameters 'from' and 'to' are required"})
		return
	}

	var datePtr *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'date' format, expected YYYY-MM-DD"})
			return
		}
		datePtr = &parsed
	}

	rate, err := h.rateService.ResolveRate(c.Request.Context(), fromCode, toCode, datePtr)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No exchange rate available for this pair"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve exchange rate"})
		}
		return
	}

	date := time.Now().UTC()
	if datePtr != nil {
		date = *datePtr
	}
	c.JSON(http.StatusOK, dto.RateResponse{
		FromCurrencyCode: strings.ToUpper(fromCode),
		ToCurrencyCode:   strings.ToUpper(toCode),
		Rate:             rate,
		Date:             date,
	})
}

func (h *exchangeRateHandler) saveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req saveRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'date' format, expected YYYY-MM-DD"})
		return
	}

	saved, err := h.rateService.SaveRate(c.Request.Context(), req.FromCurrencyCode, req.ToCurrencyCode, req.Rate, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save exchange rate"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.RateResponse{
		FromCurrencyCode: saved.FromCurrencyCode,
		ToCurrencyCode:   saved.ToCurrencyCode,
		Rate:             saved.Rate,
		Date:             saved.RateDate,
	})
}

func (h *exchangeRateHandler) getHistoricalRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	toCode := c.Query("to")
	if toCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'to' is required"})
		return
	}

	fromParam := c.Query("from")
	if fromParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'from' is required (comma-separated currency codes)"})
		return
	}
	fromCodes := strings.Split(fromParam, ",")

	days := 90
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'days' must be an integer between 1 and 365"})
			return
		}
		days = parsed
	}

	series, err := h.rateService.GetHistoricalRates(c.Request.Context(), fromCodes, toCode, days)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build historical rates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve historical rates"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoricalRatesResponse(strings.ToUpper(toCode), days, series))
}

// triggerRefresh runs the provider refresh synchronously and reports what it did.
func (h *exchangeRateHandler) triggerRefresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.refreshService.RefreshAllRates(c.Request.Context())
	if err != nil {
		logger.Error("Manual rate refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"basesAttempted": summary.BasesAttempted,
		"ratesSaved":     summary.RatesSaved,
		"failures":       summary.Failures,
	})
}
