package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"foodiespot/models"
	"foodiespot/services/booking"
	"foodiespot/services/catalog"
	"foodiespot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves availability checks and reservation lifecycle calls.
// These endpoints map 1:1 onto the tool operations the conversational layer
// invokes; all inputs and outputs are plain structured records.
type BookingHandler struct {
	Catalog     catalog.Service
	Engine      booking.AvailabilityEngine
	Ledger      booking.Ledger
	Coordinator booking.Coordinator
	Logger      *zap.Logger
}

func NewBookingHandler(catalogSvc catalog.Service, engine booking.AvailabilityEngine, ledger booking.Ledger, coordinator booking.Coordinator, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Catalog:     catalogSvc,
		Engine:      engine,
		Ledger:      ledger,
		Coordinator: coordinator,
		Logger:      logger,
	}
}

// reservationResponse is the wire shape of a reservation, with the start time
// rendered as wall-clock "HH:MM".
type reservationResponse struct {
	ID           string             `json:"id"`
	RestaurantID string             `json:"restaurant_id"`
	Contact      models.ContactInfo `json:"contact"`
	Date         string             `json:"date"`
	Time         string             `json:"time"`
	PartySize    int                `json:"party_size"`
	Status       string             `json:"status"`
	CreatedAt    string             `json:"created_at"`
}

func toReservationResponse(res models.Reservation) reservationResponse {
	return reservationResponse{
		ID:           res.ID,
		RestaurantID: res.RestaurantID,
		Contact:      res.Contact,
		Date:         res.Date,
		Time:         utils.FormatClock(res.Start),
		PartySize:    res.PartySize,
		Status:       string(res.Status),
		CreatedAt:    res.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

type slotResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Remaining int    `json:"remaining"`
}

func toSlotResponses(slots []models.AvailableSlot) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slotResponse{Date: slot.Date, Time: utils.FormatClock(slot.Start), Remaining: slot.Remaining})
	}
	return out
}

// writeBookingError maps domain errors onto HTTP statuses. SlotUnavailable
// and CapacityExceeded collapse to the same user-facing shape.
func (h *BookingHandler) writeBookingError(c *gin.Context, err error) {
	var invalid booking.InvalidRequestError
	var unavailable booking.SlotUnavailableError
	var exceeded booking.CapacityExceededError
	var conflict booking.ConflictError

	switch {
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", invalid.Reason)
	case errors.Is(err, booking.ErrNotFound) || errors.Is(err, catalog.ErrRestaurantNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &unavailable):
		h.Logger.Info("slot unavailable", zap.Int("requested", unavailable.Requested), zap.Int("remaining", unavailable.Remaining))
		c.JSON(http.StatusConflict, gin.H{
			"error":     "the requested time slot is not available",
			"requested": unavailable.Requested,
			"remaining": unavailable.Remaining,
		})
	case errors.As(err, &exceeded):
		h.Logger.Warn("capacity exceeded at ledger", zap.Int("requested", exceeded.Requested), zap.Int("remaining", exceeded.Remaining))
		c.JSON(http.StatusConflict, gin.H{
			"error":     "the requested time slot is not available",
			"requested": exceeded.Requested,
			"remaining": exceeded.Remaining,
		})
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusServiceUnavailable, "booking busy, please retry", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

func (h *BookingHandler) parseTimeQuery(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", key+" is required (HH:MM)")
		return 0, false
	}
	start, err := utils.ParseClock(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return 0, false
	}
	return start, true
}

func (h *BookingHandler) parseIntQuery(c *gin.Context, key string) (int, bool) {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", key+" must be an integer")
		return 0, false
	}
	return n, true
}

// CheckAvailabilityHandler handles
// GET /api/restaurants/:id/availability?date=...&time=...&party_size=...
func (h *BookingHandler) CheckAvailabilityHandler(c *gin.Context) {
	restaurant, err := h.Catalog.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	start, ok := h.parseTimeQuery(c, "time")
	if !ok {
		return
	}
	partySize, ok := h.parseIntQuery(c, "party_size")
	if !ok {
		return
	}

	avail, err := h.Engine.Check(c.Request.Context(), &restaurant, c.Query("date"), start, partySize)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

// ListSlotsHandler handles
// GET /api/restaurants/:id/slots?date=...&party_size=...[&near=HH:MM][&limit=N]
// With "near" it returns alternatives ordered by proximity to that time.
func (h *BookingHandler) ListSlotsHandler(c *gin.Context) {
	restaurant, err := h.Catalog.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	partySize, ok := h.parseIntQuery(c, "party_size")
	if !ok {
		return
	}

	var slots []models.AvailableSlot
	if near := c.Query("near"); near != "" {
		preferred, err := utils.ParseClock(near)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			if limit, ok = h.parseIntQuery(c, "limit"); !ok {
				return
			}
		}
		slots, err = h.Engine.SuggestAlternatives(c.Request.Context(), &restaurant, c.Query("date"), preferred, partySize, limit)
		if err != nil {
			h.writeBookingError(c, err)
			return
		}
	} else {
		slots, err = h.Engine.ListSlots(c.Request.Context(), &restaurant, c.Query("date"), partySize)
		if err != nil {
			h.writeBookingError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"slots": toSlotResponses(slots)})
}

// createReservationInput is the POST /api/reservations body.
type createReservationInput struct {
	RestaurantID string             `json:"restaurant_id" binding:"required"`
	Date         string             `json:"date" binding:"required"`
	Time         string             `json:"time" binding:"required"`
	PartySize    int                `json:"party_size" binding:"required"`
	Contact      models.ContactInfo `json:"contact"`
}

// CreateReservationHandler handles POST /api/reservations.
func (h *BookingHandler) CreateReservationHandler(c *gin.Context) {
	var input createReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	start, err := utils.ParseClock(input.Time)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	res, err := h.Coordinator.Book(c.Request.Context(), models.BookingRequest{
		RestaurantID: input.RestaurantID,
		Date:         input.Date,
		Start:        start,
		PartySize:    input.PartySize,
		Contact:      input.Contact,
	})
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReservationResponse(res))
}

// GetReservationHandler handles GET /api/reservations/:id.
func (h *BookingHandler) GetReservationHandler(c *gin.Context) {
	res, err := h.Ledger.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

// CancelReservationHandler handles DELETE /api/reservations/:id.
// Cancelling an already-cancelled reservation is a 404, never a silent success.
func (h *BookingHandler) CancelReservationHandler(c *gin.Context) {
	if err := h.Ledger.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "id": c.Param("id")})
}

// ExportReservationsHandler handles GET /api/reservations, the full ledger in
// creation order with all statuses included. An optional customer query
// parameter (with an optional email) narrows the export to one guest.
func (h *BookingHandler) ExportReservationsHandler(c *gin.Context) {
	var (
		reservations []models.Reservation
		err          error
	)
	if customer := c.Query("customer"); customer != "" {
		reservations, err = h.Ledger.ForGuest(c.Request.Context(), customer, c.Query("email"))
	} else {
		reservations, err = h.Ledger.Export(c.Request.Context())
	}
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	out := make([]reservationResponse, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, toReservationResponse(res))
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out, "count": len(out)})
}

// ListReservationsHandler handles
// GET /api/restaurants/:id/reservations?date=... which is the audit view,
// all statuses included.
func (h *BookingHandler) ListReservationsHandler(c *gin.Context) {
	restaurant, err := h.Catalog.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "date is required (YYYY-MM-DD)")
		return
	}
	reservations, err := h.Ledger.ListFor(c.Request.Context(), restaurant.ID, date)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	out := make([]reservationResponse, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, toReservationResponse(res))
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out, "count": len(out)})
}
