package adaptor

import (
	"net/http"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Listing      *ListingHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Review       *ReviewHandler
	Badge        *BadgeHandler
	Meta         *MetaHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Listing:      NewListingHandler(service.Listing, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Review:       NewReviewHandler(service.Review, log),
		Badge:        NewBadgeHandler(service.Badge, log),
		Meta:         NewMetaHandler(service.Meta, log),
	}
}

// identity pulls the authenticated user out of the request context.
func identity(r *http.Request) (string, entity.UserRole, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	return userID.String(), entity.UserRole(role), true
}
