package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Availability probes used by the booking form.
	r.Get("/api/bookings/guide-booked-dates/{guideId}", bookingHandler.GuideBookedDates)
	r.Get("/api/bookings/booked-slots", bookingHandler.BookedSlots)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))

		// POST /api/bookings - Tourists request a slot
		r.With(middleware.RequireRoles(log, entity.RoleTourist)).
			Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - Role-scoped history (tourist/guide/admin)
		r.Get("/api/bookings", bookingHandler.GetBookings)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PATCH /api/bookings/{id}/status - Transition, actor rules in service
		r.Patch("/api/bookings/{id}/status", bookingHandler.UpdateStatus)
	})
}
