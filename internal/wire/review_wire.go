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

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/reviews/listing/{listingId}", reviewHandler.GetReviewsByListing)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))

		// POST /api/reviews - Tourists review completed tours
		r.With(middleware.RequireRoles(log, entity.RoleTourist)).
			Post("/api/reviews", reviewHandler.CreateReview)

		// PATCH /api/reviews/{id} - Author or admin, checked in service
		r.Patch("/api/reviews/{id}", reviewHandler.UpdateReview)
	})
}
