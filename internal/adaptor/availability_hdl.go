package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// CreateSlot handles POST /api/availability (guide)
func (h *AvailabilityHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), userID, &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "Availability slot created successfully", slot)
}

// GetSlots handles GET /api/availability (public)
func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListAvailabilityRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		GuideID: query.Get("guideId"),
		Date:    query.Get("date"),
	}
	if raw := query.Get("isAvailable"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid isAvailable filter, expected true or false", nil)
			return
		}
		req.IsAvailable = &available
	}

	slots, err := h.service.GetSlots(r.Context(), req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetSlotByID handles GET /api/availability/{id} (public)
func (h *AvailabilityHandler) GetSlotByID(w http.ResponseWriter, r *http.Request) {
	slot, err := h.service.GetSlotByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// UpdateSlot handles PATCH /api/availability/{id} (guide owner)
func (h *AvailabilityHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	slot, err := h.service.UpdateSlot(r.Context(), userID, role, chi.URLParam(r, "id"), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Availability slot updated successfully", slot)
}

// DeleteSlot handles DELETE /api/availability/{id} (guide owner)
func (h *AvailabilityHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteSlot(r.Context(), userID, role, chi.URLParam(r, "id")); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Availability slot deleted successfully", nil)
}
