package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/triptab/tripledger/internal/apperrors"
	portssvc "github.com/triptab/tripledger/internal/core/ports/services"
	"github.com/triptab/tripledger/internal/dto"
	"github.com/triptab/tripledger/internal/middleware"
)

// tripHandler handles HTTP requests related to trips and their membership.
type tripHandler struct {
	tripService       portssvc.TripSvcFacade
	membershipService portssvc.MembershipSvcFacade
	ledgerService     portssvc.LedgerSvcFacade
}

// newTripHandler creates a new tripHandler.
func newTripHandler(ts portssvc.TripSvcFacade, ms portssvc.MembershipSvcFacade, ls portssvc.LedgerSvcFacade) *tripHandler {
	return &tripHandler{
		tripService:       ts,
		membershipService: ms,
		ledgerService:     ls,
	}
}

// registerTripRoutes registers routes related to trips.
func registerTripRoutes(rg *gin.RouterGroup, tripService portssvc.TripSvcFacade, membershipService portssvc.MembershipSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newTripHandler(tripService, membershipService, ledgerService)

	trips := rg.Group("/trips")
	{
		trips.POST("", h.createTrip)
		trips.GET("", h.listTrips)
		trips.GET("/:tripID", h.getTrip)
		trips.POST("/:tripID/members", h.joinTrip)
		trips.GET("/:tripID/members", h.listMembers)
		trips.GET("/:tripID/summary", h.getTripSummary)
	}
}

// createTrip godoc
// @Summary Create a new trip
// @Description Creates a trip and registers the caller as its organizer and first member
// @Tags trips
// @Accept  json
// @Produce  json
// @Param   trip body dto.CreateTripRequest true "Trip details"
// @Success 201 {object} dto.TripResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /trips [post]
func (h *tripHandler) createTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTrip", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	organizerID, ok := middleware.GetIdentityIDFromContext(c)
	if !ok {
		logger.Error("Organizer identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), req, organizerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create trip in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	logger.Info("Trip created successfully", slog.String("trip_id", trip.TripID))
	c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

// listTrips godoc
// @Summary List trips
// @Description Retrieves trips newest first, paginated
// @Tags trips
// @Produce  json
// @Param   limit query int false "Page size (default 20)"
// @Param   offset query int false "Offset into the result set"
// @Success 200 {array} dto.TripResponse
// @Security BearerAuth
// @Router /trips [get]
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

// getTrip godoc
// @Summary Get a trip by ID
// @Tags trips
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} map[string]string "Trip not found"
// @Security BearerAuth
// @Router /trips/{tripID} [get]
func (h *tripHandler) getTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	trip, err := h.tripService.GetTripByID(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		logger.Error("Failed to get trip", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// joinTrip godoc
// @Summary Join a trip
// @Description Registers the caller as a member of the trip. Joining twice is a no-op and returns the existing membership.
// @Tags trips
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Success 200 {object} dto.JoinTripResponse "Already a member"
// @Success 201 {object} dto.JoinTripResponse "Newly joined"
// @Failure 404 {object} map[string]string "Trip not found"
// @Security BearerAuth
// @Router /trips/{tripID}/members [post]
func (h *tripHandler) joinTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	identityID, ok := middleware.GetIdentityIDFromContext(c)
	if !ok {
		logger.Error("Identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	member, created, err := h.membershipService.JoinTrip(c.Request.Context(), tripID, identityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to join trip", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join trip"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.JoinTripResponse{MemberID: member.MemberID, Created: created, JoinedAt: member.JoinedAt})
}

// listMembers godoc
// @Summary List trip members
// @Tags trips
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 404 {object} map[string]string "Trip not found"
// @Security BearerAuth
// @Router /trips/{tripID}/members [get]
func (h *tripHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	members, err := h.membershipService.ListMembers(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		logger.Error("Failed to list members", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListMemberResponse(members))
}

// getTripSummary godoc
// @Summary Get a trip's settlement summary
// @Description Aggregates spend totals and per-member balances into the requested display currency
// @Tags trips
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   currency query string false "Display currency code (defaults to the base currency)"
// @Success 200 {object} dto.TripSummaryResponse
// @Failure 400 {object} map[string]string "Unknown display currency"
// @Failure 404 {object} map[string]string "Trip not found"
// @Security BearerAuth
// @Router /trips/{tripID}/summary [get]
func (h *tripHandler) getTripSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")
	displayCurrency := c.Query("currency")

	summary, err := h.ledgerService.GetTripSummary(c.Request.Context(), tripID, displayCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		if errors.Is(err, apperrors.ErrUnknownCurrency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build trip summary", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trip summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
