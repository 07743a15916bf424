package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBadge(
	r chi.Router,
	badgeHandler *adaptor.BadgeHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/badges", badgeHandler.GetBadges)
	r.Get("/api/badges/{id}", badgeHandler.GetBadgeByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))
		r.Use(middleware.RequireAdmin(log))

		r.Post("/api/badges", badgeHandler.CreateBadge)
		r.Patch("/api/badges/{id}", badgeHandler.UpdateBadge)
		r.Delete("/api/badges/{id}", badgeHandler.DeleteBadge)
		r.Post("/api/badges/{id}/assign", badgeHandler.AssignBadge)
		r.Delete("/api/badges/{id}/assign/{userId}", badgeHandler.RevokeBadge)
	})
}
