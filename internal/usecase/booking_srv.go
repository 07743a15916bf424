package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, touristID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, userID string, role entity.UserRole, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, userID string, role entity.UserRole, bookingID string) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, userID string, role entity.UserRole, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)

	GuideBookedDates(ctx context.Context, guideID string) (*response.BookedDatesResponse, error)
	BookedSlots(ctx context.Context, listingID, date string) ([]response.SlotUsageResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

// parseBookingDate accepts RFC3339 or a date-time without zone.
func parseBookingDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02 15:04", raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, utils.ErrBadRequest("invalid date format, expected ISO 8601 date-time")
}

func (s *bookingService) CreateBooking(ctx context.Context, touristID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	touristUUID, err := uuid.Parse(touristID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid listing ID format")
	}

	groupSize := 1
	if req.GroupSize != nil {
		groupSize = *req.GroupSize
	}
	if groupSize < 1 {
		return nil, utils.ErrBadRequest("group size must be a positive number")
	}

	slotStart, err := parseBookingDate(req.Date)
	if err != nil {
		return nil, err
	}
	slotEnd := SlotEnd(s.config.Booking, slotStart)

	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, utils.ErrNotFound("listing not found")
	}

	if listing.MaxGroupSize < 1 {
		return nil, utils.ErrBadRequest("listing has no group capacity configured")
	}

	if listing.GuideID == touristUUID {
		return nil, utils.ErrBadRequest("you cannot book your own listing")
	}

	if groupSize > listing.MaxGroupSize {
		return nil, utils.ErrBadRequest(fmt.Sprintf(
			"group size %d exceeds the maximum of %d for this tour", groupSize, listing.MaxGroupSize,
		))
	}

	covering, err := s.repo.Availability.FindCovering(ctx, listing.GuideID, slotStart, slotEnd)
	if err != nil {
		return nil, err
	}
	if covering == nil {
		return nil, utils.ErrBadRequest("the guide is not available at the requested time")
	}

	if err := ValidateSlotStart(s.config.Booking, slotStart); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:    utils.GenerateOrderID(),
		ListingID:  listing.ID,
		TouristID:  touristUUID,
		SlotStart:  slotStart,
		SlotEnd:    slotEnd,
		GroupSize:  groupSize,
		TotalPrice: listing.Price * float64(groupSize),
		Status:     entity.BookingStatusPending,
	}

	admitted, err := s.repo.Booking.CreateAdmitted(ctx, booking, listing.MaxGroupSize)
	if err != nil {
		return nil, err
	}
	if !admitted {
		taken, err := s.repo.Booking.SumOverlapping(ctx, listing.ID, slotStart, slotEnd,
			[]entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed})
		if err != nil {
			return nil, err
		}
		remaining := listing.MaxGroupSize - taken
		if remaining < 0 {
			remaining = 0
		}
		return nil, utils.ErrBadRequest(fmt.Sprintf(
			"booking capacity exceeded for this slot: %d of %d spots taken, %d available",
			taken, listing.MaxGroupSize, remaining,
		))
	}

	s.log.Info("Booking created",
		zap.String("order_id", booking.OrderID),
		zap.String("listing_id", listing.ID.String()),
		zap.Int("group_size", groupSize),
	)

	resp := response.BookingToResponse(booking)
	s.attachBookingDetails(ctx, &resp, booking, listing)
	return &resp, nil
}

// attachBookingDetails enriches a booking response with listing, guide and
// tourist contact fields. Lookup failures degrade to a sparse response.
func (s *bookingService) attachBookingDetails(ctx context.Context, resp *response.BookingResponse, booking *entity.Booking, listing *entity.Listing) {
	if listing == nil {
		var err error
		listing, err = s.repo.Listing.FindByID(ctx, booking.ListingID)
		if err != nil || listing == nil {
			return
		}
	}

	resp.ListingTitle = listing.Title
	resp.GuideID = listing.GuideID.String()

	if guide, err := s.repo.User.FindByID(ctx, listing.GuideID); err == nil && guide != nil {
		resp.GuideName = guide.Name
	}
	if tourist, err := s.repo.User.FindByID(ctx, booking.TouristID); err == nil && tourist != nil {
		resp.TouristName = tourist.Name
		resp.TouristContact = tourist.ContactNo
	}
	if payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID); err == nil && payment != nil {
		paymentResp := response.PaymentToResponse(payment)
		resp.Payment = &paymentResp
	}
}

func (s *bookingService) GetBookings(ctx context.Context, userID string, role entity.UserRole, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	var filter repository.BookingFilter
	switch {
	case role.IsAdmin():
		// admins see everything
	case role == entity.RoleGuide:
		filter.GuideID = &userUUID
	default:
		filter.TouristID = &userUUID
	}
	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter, req.Limit(), req.Offset(), "")
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp := response.BookingToResponse(booking)
		s.attachBookingDetails(ctx, &resp, booking, nil)
		items = append(items, resp)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID string, role entity.UserRole, bookingID string) (*response.BookingResponse, error) {
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid booking ID format")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.ErrNotFound("booking not found")
	}

	listing, err := s.repo.Listing.FindByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}

	if !role.IsAdmin() && booking.TouristID != userUUID &&
		(listing == nil || listing.GuideID != userUUID) {
		return nil, utils.ErrForbidden("you are not allowed to view this booking")
	}

	resp := response.BookingToResponse(booking)
	s.attachBookingDetails(ctx, &resp, booking, listing)
	return &resp, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, userID string, role entity.UserRole, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid booking ID format")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}
	target := entity.BookingStatus(req.Status)

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.ErrNotFound("booking not found")
	}

	listing, err := s.repo.Listing.FindByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}

	actor := transitionActor{
		Role:           role,
		IsTouristOwner: booking.TouristID == userUUID,
		IsGuideOwner:   listing != nil && listing.GuideID == userUUID,
	}
	if err := authorizeTransition(actor, booking, target, time.Now()); err != nil {
		return nil, err
	}

	if target == entity.BookingStatusConfirmed {
		// re-check capacity against CONFIRMED and COMPLETED peers atomically
		admitted, err := s.repo.Booking.ConfirmAdmitted(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		if !admitted {
			return nil, utils.ErrBadRequest("cannot confirm: slot capacity is already taken by other confirmed bookings")
		}
	} else {
		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, target); err != nil {
			return nil, err
		}
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(target)),
	)

	booking.Status = target
	resp := response.BookingToResponse(booking)
	s.attachBookingDetails(ctx, &resp, booking, listing)
	return &resp, nil
}

func (s *bookingService) GuideBookedDates(ctx context.Context, guideID string) (*response.BookedDatesResponse, error) {
	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid guide ID format")
	}

	guide, err := s.repo.User.FindByID(ctx, guideUUID)
	if err != nil {
		return nil, err
	}
	if guide == nil || guide.Role != entity.RoleGuide {
		return nil, utils.ErrNotFound("guide not found")
	}

	dates, err := s.repo.Booking.DistinctBookedDatesByGuide(ctx, guideUUID)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}

	return &response.BookedDatesResponse{
		GuideID: guideUUID.String(),
		Dates:   out,
	}, nil
}

func (s *bookingService) BookedSlots(ctx context.Context, listingID, date string) ([]response.SlotUsageResponse, error) {
	listingUUID, err := uuid.Parse(listingID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid listing ID format")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid date format, expected YYYY-MM-DD")
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingUUID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, utils.ErrNotFound("listing not found")
	}

	usage, err := s.repo.Booking.SlotUsageByListing(ctx, listingUUID, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	out := make([]response.SlotUsageResponse, 0, len(usage))
	for _, u := range usage {
		remaining := listing.MaxGroupSize - u.Booked
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, response.SlotUsageResponse{
			SlotStart: u.SlotStart,
			SlotEnd:   SlotEnd(s.config.Booking, u.SlotStart),
			Taken:     u.Booked,
			Remaining: remaining,
		})
	}

	return out, nil
}
