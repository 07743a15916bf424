package usecase

import (
	"context"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MetaService interface {
	Dashboard(ctx context.Context, userID string, role entity.UserRole) (*response.MetaResponse, error)
}

type metaService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMetaService(repo *repository.Repository, log *zap.Logger) MetaService {
	return &metaService{
		repo: repo,
		log:  log.With(zap.String("service", "meta")),
	}
}

// Dashboard returns role-appropriate aggregates: platform totals for admins,
// listing and booking counts for guides, trip history for tourists.
func (s *metaService) Dashboard(ctx context.Context, userID string, role entity.UserRole) (*response.MetaResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	switch {
	case role.IsAdmin():
		return s.adminDashboard(ctx, role)
	case role == entity.RoleGuide:
		return s.guideDashboard(ctx, userUUID)
	default:
		return s.touristDashboard(ctx, userUUID)
	}
}

func (s *metaService) adminDashboard(ctx context.Context, role entity.UserRole) (*response.MetaResponse, error) {
	totalUsers, err := s.repo.User.Count(ctx, repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	totalGuides, err := s.repo.User.Count(ctx, repository.UserFilter{Role: string(entity.RoleGuide)})
	if err != nil {
		return nil, err
	}
	totalTourists, err := s.repo.User.Count(ctx, repository.UserFilter{Role: string(entity.RoleTourist)})
	if err != nil {
		return nil, err
	}
	totalListings, err := s.repo.Listing.Count(ctx, repository.ListingFilter{})
	if err != nil {
		return nil, err
	}
	totalBookings, err := s.repo.Booking.Count(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.repo.Payment.SumPaid(ctx)
	if err != nil {
		return nil, err
	}

	return &response.MetaResponse{
		Role: string(role),
		Admin: &response.AdminDashboard{
			TotalUsers:    totalUsers,
			TotalGuides:   totalGuides,
			TotalTourists: totalTourists,
			TotalListings: totalListings,
			TotalBookings: totalBookings,
			TotalRevenue:  totalRevenue,
		},
	}, nil
}

func (s *metaService) guideDashboard(ctx context.Context, guideID uuid.UUID) (*response.MetaResponse, error) {
	totalListings, err := s.repo.Listing.CountByGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}
	totalBookings, err := s.repo.Booking.CountByGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}
	pendingStatus := entity.BookingStatusPending
	pending, err := s.repo.Booking.Count(ctx, repository.BookingFilter{GuideID: &guideID, Status: &pendingStatus})
	if err != nil {
		return nil, err
	}
	rating, err := s.repo.Review.RatingByGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}

	dashboard := &response.GuideDashboard{
		TotalListings:   totalListings,
		TotalBookings:   totalBookings,
		PendingBookings: pending,
	}
	if rating != nil {
		dashboard.AverageRating = rating.AverageRating
		dashboard.TotalReviews = rating.TotalReviews
	}

	return &response.MetaResponse{
		Role:  string(entity.RoleGuide),
		Guide: dashboard,
	}, nil
}

func (s *metaService) touristDashboard(ctx context.Context, touristID uuid.UUID) (*response.MetaResponse, error) {
	totalBookings, err := s.repo.Booking.CountByTourist(ctx, touristID, nil)
	if err != nil {
		return nil, err
	}
	completedStatus := entity.BookingStatusCompleted
	completed, err := s.repo.Booking.CountByTourist(ctx, touristID, &completedStatus)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.Booking.CountUpcomingByTourist(ctx, touristID)
	if err != nil {
		return nil, err
	}
	totalSpent, err := s.repo.Payment.SumPaidByTourist(ctx, touristID)
	if err != nil {
		return nil, err
	}

	return &response.MetaResponse{
		Role: string(entity.RoleTourist),
		Tourist: &response.TouristDashboard{
			TotalBookings:    totalBookings,
			UpcomingBookings: upcoming,
			CompletedTours:   completed,
			TotalSpent:       totalSpent,
		},
	}, nil
}
