package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// CreateListing handles POST /api/listings (guide)
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	listing, err := h.service.CreateListing(r.Context(), userID, &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "Listing created successfully", listing)
}

func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// GetListings handles GET /api/listings (public)
func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListListingsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		SearchTerm: query.Get("searchTerm"),
		Category:   query.Get("category"),
		Language:   query.Get("language"),
		Location:   query.Get("location"),
		MinPrice:   parsePrice(query.Get("minPrice")),
		MaxPrice:   parsePrice(query.Get("maxPrice")),
		SortBy:     query.Get("sortBy"),
		SortOrder:  query.Get("sortOrder"),
	}

	listings, err := h.service.GetListings(r.Context(), req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", listings)
}

// GetMyListings handles GET /api/listings/my (guide)
func (h *ListingHandler) GetMyListings(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	listings, err := h.service.GetMyListings(r.Context(), userID, req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", listings)
}

// GetListingByID handles GET /api/listings/{id} (public)
func (h *ListingHandler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.GetListingByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", listing)
}

// UpdateListing handles PATCH /api/listings/{id} (guide owner or admin)
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	listing, err := h.service.UpdateListing(r.Context(), userID, role, chi.URLParam(r, "id"), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Listing updated successfully", listing)
}

// DeleteListing handles DELETE /api/listings/{id} (guide owner or admin)
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteListing(r.Context(), userID, role, chi.URLParam(r, "id")); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Listing deleted successfully", nil)
}

// GetCategories handles GET /api/listings/categories (public)
func (h *ListingHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", response.CatalogResponse{
		Categories: h.service.Categories(),
	})
}

// GetLanguages handles GET /api/listings/languages (public)
func (h *ListingHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", response.CatalogResponse{
		Languages: h.service.Languages(),
	})
}
