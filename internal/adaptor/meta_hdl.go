package adaptor

import (
	"net/http"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type MetaHandler struct {
	service usecase.MetaService
	log     *zap.Logger
}

func NewMetaHandler(service usecase.MetaService, log *zap.Logger) *MetaHandler {
	return &MetaHandler{
		service: service,
		log:     log.With(zap.String("handler", "meta")),
	}
}

// Dashboard handles GET /api/meta (protected, role switched)
func (h *MetaHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), userID, role)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}
