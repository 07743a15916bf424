package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMeta(
	r chi.Router,
	metaHandler *adaptor.MetaHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/meta - Role-scoped dashboard counters
	r.With(middleware.Auth(config, repo, log)).Get("/api/meta", metaHandler.Dashboard)
}
