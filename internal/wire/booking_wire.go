package wire

import (
	"net/http"

	"teach-trade/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, auth func(http.Handler) http.Handler) {
	// every booking route requires authentication
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(auth)

		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/mine", bookingHandler.GetMyBookings)
		r.Get("/stats", bookingHandler.GetStats)

		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Put("/{id}", bookingHandler.RescheduleBooking)
		r.Put("/{id}/reschedule", bookingHandler.RescheduleBooking)

		// status transitions
		r.Put("/{id}/confirm", bookingHandler.ConfirmBooking)
		r.Put("/{id}/complete", bookingHandler.CompleteBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
