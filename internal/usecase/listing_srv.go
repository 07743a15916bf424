package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListingService interface {
	CreateListing(ctx context.Context, guideID string, req *request.CreateListingRequest) (*response.ListingResponse, error)
	GetListings(ctx context.Context, req *request.ListListingsRequest) (*response.PaginatedResponse[response.ListingResponse], error)
	GetListingByID(ctx context.Context, listingID string) (*response.ListingResponse, error)
	GetMyListings(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error)
	UpdateListing(ctx context.Context, userID string, role entity.UserRole, listingID string, req *request.UpdateListingRequest) (*response.ListingResponse, error)
	DeleteListing(ctx context.Context, userID string, role entity.UserRole, listingID string) error

	Categories() []string
	Languages() []string
}

type listingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewListingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ListingService {
	return &listingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "listing")),
	}
}

func (s *listingService) Categories() []string {
	return s.config.Catalog.Categories
}

func (s *listingService) Languages() []string {
	return s.config.Catalog.Languages
}

func (s *listingService) checkCategory(category string) error {
	for _, c := range s.config.Catalog.Categories {
		if strings.EqualFold(c, category) {
			return nil
		}
	}
	return utils.ErrBadRequest(fmt.Sprintf(
		"invalid category %q, must be one of: %s", category, strings.Join(s.config.Catalog.Categories, ", "),
	))
}

func (s *listingService) checkLanguages(languages []string) error {
	for _, lang := range languages {
		known := false
		for _, l := range s.config.Catalog.Languages {
			if strings.EqualFold(l, lang) {
				known = true
				break
			}
		}
		if !known {
			return utils.ErrBadRequest(fmt.Sprintf(
				"invalid language %q, must be one of: %s", lang, strings.Join(s.config.Catalog.Languages, ", "),
			))
		}
	}
	return nil
}

func (s *listingService) CreateListing(ctx context.Context, guideID string, req *request.CreateListingRequest) (*response.ListingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create listing validation failed", zap.Any("errors", errs))
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	if err := s.checkCategory(req.Category); err != nil {
		return nil, err
	}
	if err := s.checkLanguages(req.Languages); err != nil {
		return nil, err
	}

	now := time.Now()
	listing := &entity.Listing{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GuideID:      guideUUID,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Price:        req.Price,
		Duration:     req.Duration,
		MaxGroupSize: req.MaxGroupSize,
		Category:     req.Category,
		Languages:    req.Languages,
		MeetingPoint: req.MeetingPoint,
		Images:       req.Images,
	}

	if err := s.repo.Listing.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("guide_id", guideUUID.String()),
	)

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

// attachRating decorates a listing response with its review aggregate.
func (s *listingService) attachRating(ctx context.Context, resp *response.ListingResponse, listingID uuid.UUID) {
	rating, err := s.repo.Listing.Rating(ctx, listingID)
	if err != nil || rating == nil {
		return
	}
	resp.AverageRating = rating.AverageRating
	resp.TotalReviews = rating.TotalReviews
}

func (s *listingService) attachGuideName(ctx context.Context, resp *response.ListingResponse, guideID uuid.UUID) {
	if guide, err := s.repo.User.FindByID(ctx, guideID); err == nil && guide != nil {
		resp.GuideName = guide.Name
	}
}

func sortClause(sortBy, sortOrder string) string {
	if sortBy == "" {
		return ""
	}
	order := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		order = "DESC"
	}
	// sortBy is whitelisted by the request validator
	return sortBy + " " + order
}

func (s *listingService) GetListings(ctx context.Context, req *request.ListListingsRequest) (*response.PaginatedResponse[response.ListingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	filter := repository.ListingFilter{
		SearchTerm: req.SearchTerm,
		Category:   req.Category,
		Language:   req.Language,
		Location:   req.Location,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
	}

	listings, err := s.repo.Listing.FindAll(ctx, filter, req.Limit(), req.Offset(), sortClause(req.SortBy, req.SortOrder))
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Listing.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]response.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		resp := response.ListingToResponse(listing)
		s.attachRating(ctx, &resp, listing.ID)
		s.attachGuideName(ctx, &resp, listing.GuideID)
		items = append(items, resp)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *listingService) GetListingByID(ctx context.Context, listingID string) (*response.ListingResponse, error) {
	listingUUID, err := uuid.Parse(listingID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid listing ID format")
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingUUID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, utils.ErrNotFound("listing not found")
	}

	resp := response.ListingToResponse(listing)
	s.attachRating(ctx, &resp, listing.ID)
	s.attachGuideName(ctx, &resp, listing.GuideID)
	return &resp, nil
}

func (s *listingService) GetMyListings(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error) {
	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	filter := repository.ListingFilter{GuideID: &guideUUID}
	listings, err := s.repo.Listing.FindAll(ctx, filter, req.Limit(), req.Offset(), "")
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Listing.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]response.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		resp := response.ListingToResponse(listing)
		s.attachRating(ctx, &resp, listing.ID)
		items = append(items, resp)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

// loadOwned fetches a listing and checks the caller may modify it.
func (s *listingService) loadOwned(ctx context.Context, userID string, role entity.UserRole, listingID string) (*entity.Listing, error) {
	listingUUID, err := uuid.Parse(listingID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid listing ID format")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingUUID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, utils.ErrNotFound("listing not found")
	}

	if !role.IsAdmin() && listing.GuideID != userUUID {
		return nil, utils.ErrForbidden("you do not own this listing")
	}

	return listing, nil
}

func (s *listingService) UpdateListing(ctx context.Context, userID string, role entity.UserRole, listingID string, req *request.UpdateListingRequest) (*response.ListingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	listing, err := s.loadOwned(ctx, userID, role, listingID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		if err := s.checkCategory(*req.Category); err != nil {
			return nil, err
		}
		listing.Category = *req.Category
	}
	if req.Languages != nil {
		if err := s.checkLanguages(req.Languages); err != nil {
			return nil, err
		}
		listing.Languages = req.Languages
	}
	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Location != nil {
		listing.Location = *req.Location
	}
	if req.Latitude != nil {
		listing.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		listing.Longitude = req.Longitude
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.Duration != nil {
		listing.Duration = req.Duration
	}
	if req.MaxGroupSize != nil {
		listing.MaxGroupSize = *req.MaxGroupSize
	}
	if req.MeetingPoint != nil {
		listing.MeetingPoint = req.MeetingPoint
	}
	if req.Images != nil {
		listing.Images = req.Images
	}
	listing.UpdatedAt = time.Now()

	if err := s.repo.Listing.Update(ctx, listing); err != nil {
		return nil, err
	}

	resp := response.ListingToResponse(listing)
	s.attachRating(ctx, &resp, listing.ID)
	return &resp, nil
}

func (s *listingService) DeleteListing(ctx context.Context, userID string, role entity.UserRole, listingID string) error {
	listing, err := s.loadOwned(ctx, userID, role, listingID)
	if err != nil {
		return err
	}

	s.log.Info("Listing deleted",
		zap.String("listing_id", listing.ID.String()),
		zap.String("deleted_by", userID),
	)

	return s.repo.Listing.Delete(ctx, listing.ID)
}
