package usecase

import (
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Listing      ListingService
	Availability AvailabilityService
	Booking      BookingService
	Payment      PaymentService
	Review       ReviewService
	Badge        BadgeService
	Meta         MetaService
}

func NewService(repo *repository.Repository, config *utils.Config, stripe StripeGateway, sslcommerz SSLCommerzGateway, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo, log),
		Listing:      NewListingService(repo, config, log),
		Availability: NewAvailabilityService(repo, log),
		Booking:      NewBookingService(repo, config, log),
		Payment:      NewPaymentService(repo, config, stripe, sslcommerz, log),
		Review:       NewReviewService(repo, log),
		Badge:        NewBadgeService(repo, log),
		Meta:         NewMetaService(repo, log),
	}
}
