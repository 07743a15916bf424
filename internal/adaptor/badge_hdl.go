package adaptor

import (
	"encoding/json"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BadgeHandler struct {
	service usecase.BadgeService
	log     *zap.Logger
}

func NewBadgeHandler(service usecase.BadgeService, log *zap.Logger) *BadgeHandler {
	return &BadgeHandler{
		service: service,
		log:     log.With(zap.String("handler", "badge")),
	}
}

// CreateBadge handles POST /api/badges (admin)
func (h *BadgeHandler) CreateBadge(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	badge, err := h.service.CreateBadge(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "Badge created successfully", badge)
}

// GetBadges handles GET /api/badges (public)
func (h *BadgeHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	badges, err := h.service.GetBadges(r.Context(), query.Get("searchTerm"), req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", badges)
}

// GetBadgeByID handles GET /api/badges/{id} (public)
func (h *BadgeHandler) GetBadgeByID(w http.ResponseWriter, r *http.Request) {
	badge, holders, err := h.service.GetBadgeByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", map[string]any{
		"badge":   badge,
		"holders": holders,
	})
}

// UpdateBadge handles PATCH /api/badges/{id} (admin)
func (h *BadgeHandler) UpdateBadge(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	badge, err := h.service.UpdateBadge(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Badge updated successfully", badge)
}

// DeleteBadge handles DELETE /api/badges/{id} (admin)
func (h *BadgeHandler) DeleteBadge(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBadge(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Badge deleted successfully", nil)
}

// AssignBadge handles POST /api/badges/{id}/assign (admin)
func (h *BadgeHandler) AssignBadge(w http.ResponseWriter, r *http.Request) {
	var req request.AssignBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.AssignBadge(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Badge assigned successfully", nil)
}

// RevokeBadge handles DELETE /api/badges/{id}/assign/{userId} (admin)
func (h *BadgeHandler) RevokeBadge(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RevokeBadge(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userId")); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Badge revoked successfully", nil)
}
