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

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/users/{id}/public - Public guide/tourist profile
	r.Get("/api/users/{id}/public", userHandler.GetPublicProfile)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))

		r.Get("/api/users/me", userHandler.GetMe)
		r.Patch("/api/users/me", userHandler.UpdateMe)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))
		r.Use(middleware.RequireAdmin(log))

		// GET /api/users - List users with filters
		r.Get("/api/users", userHandler.GetUsers)

		// POST /api/users/guides - Onboard a guide account
		r.Post("/api/users/guides", userHandler.CreateGuide)

		r.Get("/api/users/{id}", userHandler.GetUserByID)
		r.Patch("/api/users/{id}", userHandler.UpdateUser)
		r.Patch("/api/users/{id}/status", userHandler.UpdateStatus)
	})

	// ==================== SUPER ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))
		r.Use(middleware.RequireRoles(log, entity.RoleSuperAdmin))

		// POST /api/users/admins - Create admin accounts
		r.Post("/api/users/admins", userHandler.CreateAdmin)

		// PATCH /api/users/{id}/role - Role changes
		r.Patch("/api/users/{id}/role", userHandler.UpdateRole)
	})
}
