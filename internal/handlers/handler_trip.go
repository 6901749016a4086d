package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
	"github.com/tripweaver/trip_budget_app/internal/dto"
	"github.com/tripweaver/trip_budget_app/internal/middleware"
)

// tripHandler handles HTTP requests related to trips.
type tripHandler struct {
	tripService  portssvc.TripSvcFacade
	statsService portssvc.StatisticsSvc
}

// newTripHandler creates a new tripHandler.
func newTripHandler(ts portssvc.TripSvcFacade, ss portssvc.StatisticsSvc) *tripHandler {
	return &tripHandler{
		tripService:  ts,
		statsService: ss,
	}
}

// registerTripRoutes registers routes related to trips.
func registerTripRoutes(rg *gin.RouterGroup, tripService portssvc.TripSvcFacade, statsService portssvc.StatisticsSvc) {
	h := newTripHandler(tripService, statsService)

	trips := rg.Group("/trips")
	{
		trips.POST("", h.createTrip)
		trips.GET("", h.listTrips)
		trips.GET("/:tripID", h.getTripByID)
		trips.PUT("/:tripID", h.updateTrip)
		trips.DELETE("/:tripID", h.deleteTrip)
		trips.GET("/:tripID/statistics", h.getTripStatistics)
		trips.GET("/:tripID/daily-statistics", h.getDailyBudgetStatistics)
	}
}

func (h *tripHandler) createTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTrip", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, _ := middleware.GetUserIDFromContext(c)

	trip, err := h.tripService.CreateTrip(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create trip", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		}
		return
	}

	logger.Info("Trip created successfully", slog.String("trip_id", trip.TripID))
	c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

func (h *tripHandler) listTrips(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	trips, err := h.tripService.ListTrips(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list trips", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trips"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTripResponse(trips))
}

func (h *tripHandler) getTripByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	trip, err := h.tripService.GetTripByID(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			logger.Error("Failed to get trip", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

func (h *tripHandler) updateTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	var req dto.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTrip", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), tripID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update trip", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

func (h *tripHandler) deleteTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	if err := h.tripService.DeleteTrip(c.Request.Context(), tripID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			logger.Error("Failed to delete trip", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *tripHandler) getTripStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	stats, err := h.statsService.GetTripStatistics(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			logger.Error("Failed to compute trip statistics", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trip statistics"})
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *tripHandler) getDailyBudgetStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	targetDate := time.Now().UTC()
	if dateStr := c.Query("target_date"); dateStr != "" {
		parsed, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'target_date' format, expected YYYY-MM-DD"})
			return
		}
		targetDate = parsed
	}

	stats, err := h.statsService.GetDailyBudgetStatistics(c.Request.Context(), tripID, targetDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			logger.Error("Failed to compute daily budget statistics", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute daily budget statistics"})
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}
