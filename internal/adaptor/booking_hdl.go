package adaptor

import (
	"encoding/json"
	"net/http"

	"teach-trade/internal/dto/request"
	"teach-trade/internal/dto/response"
	"teach-trade/internal/usecase"
	"teach-trade/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), learnerID.String(), &req)
	if err != nil {
		// every create failure is reported as a client error
		h.log.Warn("create booking failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	utils.ResponseCreated(w, booking)
}

// GetMyBookings handles GET /api/bookings/mine (protected)
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetMyBookings(r.Context(), learnerID.String())
	if err != nil {
		h.log.Warn("get my bookings failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	utils.ResponseSuccess(w, bookings)
}

// GetStats handles GET /api/bookings/stats (protected)
func (h *BookingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	stats, err := h.service.GetTrainerStats(r.Context(), trainerID.String())
	if err != nil {
		h.log.Error("Failed to get trainer stats",
			zap.Error(err),
			zap.String("trainer_id", trainerID.String()),
		)
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, stats)
}

// GetBookingByID handles GET /api/bookings/{id} (protected, learner or trainer)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	h.withBooking(w, r, "get booking", func(callerID, bookingID string) (*response.BookingResponse, error) {
		return h.service.GetBookingByID(r.Context(), callerID, bookingID)
	})
}

// RescheduleBooking handles PUT /api/bookings/{id} and PUT /api/bookings/{id}/reschedule
func (h *BookingHandler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	var req request.RescheduleBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	h.withBooking(w, r, "reschedule booking", func(callerID, bookingID string) (*response.BookingResponse, error) {
		return h.service.RescheduleBooking(r.Context(), callerID, bookingID, &req)
	})
}

// ConfirmBooking handles PUT /api/bookings/{id}/confirm (trainer)
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	h.withBooking(w, r, "confirm booking", func(callerID, bookingID string) (*response.BookingResponse, error) {
		return h.service.ConfirmBooking(r.Context(), callerID, bookingID)
	})
}

// CompleteBooking handles PUT /api/bookings/{id}/complete (trainer)
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	h.withBooking(w, r, "complete booking", func(callerID, bookingID string) (*response.BookingResponse, error) {
		return h.service.CompleteBooking(r.Context(), callerID, bookingID)
	})
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (learner or trainer)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.withBooking(w, r, "cancel booking", func(callerID, bookingID string) (*response.BookingResponse, error) {
		return h.service.CancelBooking(r.Context(), callerID, bookingID)
	})
}

// withBooking extracts the caller and {id}, runs fn, and writes the booking or the mapped error
func (h *BookingHandler) withBooking(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	fn func(callerID, bookingID string) (*response.BookingResponse, error),
) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := fn(callerID.String(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, operation)
		return
	}

	utils.ResponseSuccess(w, booking)
}
