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

func wireListing(
	r chi.Router,
	listingHandler *adaptor.ListingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/listings", listingHandler.GetListings)
	r.Get("/api/listings/categories", listingHandler.GetCategories)
	r.Get("/api/listings/languages", listingHandler.GetLanguages)

	// ==================== GUIDE ROUTES ====================
	// /my must be registered before /{id} so chi does not swallow it.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))
		r.Use(middleware.RequireRoles(log, entity.RoleGuide))

		r.Post("/api/listings", listingHandler.CreateListing)
		r.Get("/api/listings/my", listingHandler.GetMyListings)
	})

	// GET /api/listings/{id} - Listing detail (public)
	r.Get("/api/listings/{id}", listingHandler.GetListingByID)

	// ==================== OWNER/ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))
		r.Use(middleware.RequireRoles(log, entity.RoleGuide, entity.RoleAdmin, entity.RoleSuperAdmin))

		r.Patch("/api/listings/{id}", listingHandler.UpdateListing)
		r.Delete("/api/listings/{id}", listingHandler.DeleteListing)
	})
}
