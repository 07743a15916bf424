package usecase

import (
	"context"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, touristID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetReviewsByListing(ctx context.Context, listingID string) ([]response.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID string, role entity.UserRole, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, touristID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	touristUUID, err := uuid.Parse(touristID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}
	listingUUID, err := uuid.Parse(req.ListingID)
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

	// a review requires a completed tour on this listing
	completed, err := s.repo.Booking.FindCompleted(ctx, listingUUID, touristUUID)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		return nil, utils.ErrBadRequest("you can only review a tour you have completed")
	}

	existing, err := s.repo.Review.FindByListingAndTourist(ctx, listingUUID, touristUUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrConflict("you have already reviewed this tour")
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ListingID: listingUUID,
		TouristID: touristUUID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("listing_id", listingUUID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetReviewsByListing(ctx context.Context, listingID string) ([]response.ReviewResponse, error) {
	listingUUID, err := uuid.Parse(listingID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid listing ID format")
	}

	reviews, err := s.repo.Review.FindByListing(ctx, listingUUID)
	if err != nil {
		return nil, err
	}

	out := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp := response.ReviewToResponse(review)
		if tourist, err := s.repo.User.FindByID(ctx, review.TouristID); err == nil && tourist != nil {
			resp.TouristName = tourist.Name
		}
		out = append(out, resp)
	}

	return out, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID string, role entity.UserRole, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid review ID format")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, utils.ErrNotFound("review not found")
	}

	if !role.IsAdmin() && review.TouristID != userUUID {
		return nil, utils.ErrForbidden("you can only update your own review")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}
