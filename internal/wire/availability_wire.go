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

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/availability?guideId=&date= - Browse a guide's open slots
	r.Get("/api/availability", availabilityHandler.GetSlots)
	r.Get("/api/availability/{id}", availabilityHandler.GetSlotByID)

	// ==================== GUIDE ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))
		r.Use(middleware.RequireRoles(log, entity.RoleGuide))

		r.Post("/api/availability", availabilityHandler.CreateSlot)
		r.Patch("/api/availability/{id}", availabilityHandler.UpdateSlot)
		r.Delete("/api/availability/{id}", availabilityHandler.DeleteSlot)
	})
}
