package usecase

import (
	"context"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/gateway"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
)

// Repo stubs with overridable function fields. Methods fall back to zero
// values so each test only wires what it touches.

type stubListingRepo struct {
	repository.ListingRepository
	findByID func(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
}

func (s *stubListingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	if s.findByID == nil {
		return nil, nil
	}
	return s.findByID(ctx, id)
}

type stubUserRepo struct {
	repository.UserRepository
	findByID func(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if s.findByID == nil {
		return nil, nil
	}
	return s.findByID(ctx, id)
}

type stubBookingRepo struct {
	repository.BookingRepository
	findByID       func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	createAdmitted func(ctx context.Context, booking *entity.Booking, maxGroupSize int) (bool, error)
	confirmAdmit   func(ctx context.Context, bookingID uuid.UUID) (bool, error)
	sumOverlapping func(ctx context.Context, listingID uuid.UUID, start, end time.Time, statuses []entity.BookingStatus) (int, error)
	updateStatus   func(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	findCompleted  func(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Booking, error)
}

func (s *stubBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if s.findByID == nil {
		return nil, nil
	}
	return s.findByID(ctx, id)
}

func (s *stubBookingRepo) CreateAdmitted(ctx context.Context, booking *entity.Booking, maxGroupSize int) (bool, error) {
	if s.createAdmitted == nil {
		return true, nil
	}
	return s.createAdmitted(ctx, booking, maxGroupSize)
}

func (s *stubBookingRepo) ConfirmAdmitted(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	if s.confirmAdmit == nil {
		return true, nil
	}
	return s.confirmAdmit(ctx, bookingID)
}

func (s *stubBookingRepo) SumOverlapping(ctx context.Context, listingID uuid.UUID, start, end time.Time, statuses []entity.BookingStatus) (int, error) {
	if s.sumOverlapping == nil {
		return 0, nil
	}
	return s.sumOverlapping(ctx, listingID, start, end, statuses)
}

func (s *stubBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	if s.updateStatus == nil {
		return nil
	}
	return s.updateStatus(ctx, bookingID, status)
}

func (s *stubBookingRepo) FindCompleted(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Booking, error) {
	if s.findCompleted == nil {
		return nil, nil
	}
	return s.findCompleted(ctx, listingID, touristID)
}

type stubAvailabilityRepo struct {
	repository.AvailabilityRepository
	findCovering    func(ctx context.Context, guideID uuid.UUID, start, end time.Time) (*entity.Availability, error)
	findOverlapping func(ctx context.Context, guideID uuid.UUID, date, start, end time.Time, excludeID *uuid.UUID) (*entity.Availability, error)
	create          func(ctx context.Context, slot *entity.Availability) error
	findByID        func(ctx context.Context, id uuid.UUID) (*entity.Availability, error)
	update          func(ctx context.Context, slot *entity.Availability) error
	findAll         func(ctx context.Context, filter repository.AvailabilityFilter, limit, offset int, orderBy string) ([]*entity.Availability, error)
}

func (s *stubAvailabilityRepo) FindCovering(ctx context.Context, guideID uuid.UUID, start, end time.Time) (*entity.Availability, error) {
	if s.findCovering == nil {
		return nil, nil
	}
	return s.findCovering(ctx, guideID, start, end)
}

func (s *stubAvailabilityRepo) FindOverlapping(ctx context.Context, guideID uuid.UUID, date, start, end time.Time, excludeID *uuid.UUID) (*entity.Availability, error) {
	if s.findOverlapping == nil {
		return nil, nil
	}
	return s.findOverlapping(ctx, guideID, date, start, end, excludeID)
}

func (s *stubAvailabilityRepo) Create(ctx context.Context, slot *entity.Availability) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, slot)
}

func (s *stubAvailabilityRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Availability, error) {
	if s.findByID == nil {
		return nil, nil
	}
	return s.findByID(ctx, id)
}

func (s *stubAvailabilityRepo) Update(ctx context.Context, slot *entity.Availability) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, slot)
}

func (s *stubAvailabilityRepo) FindAll(ctx context.Context, filter repository.AvailabilityFilter, limit, offset int, orderBy string) ([]*entity.Availability, error) {
	if s.findAll == nil {
		return nil, nil
	}
	return s.findAll(ctx, filter, limit, offset, orderBy)
}

func (s *stubAvailabilityRepo) Count(ctx context.Context, filter repository.AvailabilityFilter) (int64, error) {
	return 0, nil
}

type stubPaymentRepo struct {
	repository.PaymentRepository
	create        func(ctx context.Context, payment *entity.Payment) error
	findByID      func(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	findByBooking func(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	findBySession func(ctx context.Context, sessionID string) (*entity.Payment, error)
	findByTran    func(ctx context.Context, transactionID string) (*entity.Payment, error)
	updateStatus  func(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error
	updateSession func(ctx context.Context, paymentID uuid.UUID, gw entity.PaymentGateway, sessionID *string) error
	release       func(ctx context.Context, paymentID uuid.UUID) (bool, error)
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, payment)
}

func (s *stubPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	if s.findByID == nil {
		return nil, nil
	}
	return s.findByID(ctx, id)
}

func (s *stubPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	if s.findByBooking == nil {
		return nil, nil
	}
	return s.findByBooking(ctx, bookingID)
}

func (s *stubPaymentRepo) FindBySessionID(ctx context.Context, sessionID string) (*entity.Payment, error) {
	if s.findBySession == nil {
		return nil, nil
	}
	return s.findBySession(ctx, sessionID)
}

func (s *stubPaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	if s.findByTran == nil {
		return nil, nil
	}
	return s.findByTran(ctx, transactionID)
}

func (s *stubPaymentRepo) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error {
	if s.updateStatus == nil {
		return nil
	}
	return s.updateStatus(ctx, paymentID, status, receiptURL)
}

func (s *stubPaymentRepo) UpdateSession(ctx context.Context, paymentID uuid.UUID, gw entity.PaymentGateway, sessionID *string) error {
	if s.updateSession == nil {
		return nil
	}
	return s.updateSession(ctx, paymentID, gw, sessionID)
}

func (s *stubPaymentRepo) ReleasePayout(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	if s.release == nil {
		return true, nil
	}
	return s.release(ctx, paymentID)
}

type stubReviewRepo struct {
	repository.ReviewRepository
	create              func(ctx context.Context, review *entity.Review) error
	findByID            func(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	findByListing       func(ctx context.Context, listingID uuid.UUID) ([]*entity.Review, error)
	findByListingAndTou func(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Review, error)
	update              func(ctx context.Context, review *entity.Review) error
}

func (s *stubReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, review)
}

func (s *stubReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	if s.findByID == nil {
		return nil, nil
	}
	return s.findByID(ctx, id)
}

func (s *stubReviewRepo) FindByListing(ctx context.Context, listingID uuid.UUID) ([]*entity.Review, error) {
	if s.findByListing == nil {
		return nil, nil
	}
	return s.findByListing(ctx, listingID)
}

func (s *stubReviewRepo) FindByListingAndTourist(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Review, error) {
	if s.findByListingAndTou == nil {
		return nil, nil
	}
	return s.findByListingAndTou(ctx, listingID, touristID)
}

func (s *stubReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, review)
}

// Gateway stubs

type stubStripeGateway struct {
	createSession   func(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error)
	retrieveSession func(ctx context.Context, sessionID string) (*gateway.StripeSession, error)
	verify          func(payload []byte, header string) bool
}

func (s *stubStripeGateway) CreateCheckoutSession(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error) {
	if s.createSession == nil {
		return &gateway.CheckoutSession{SessionID: "cs_test", CheckoutURL: "https://checkout.test/cs_test"}, nil
	}
	return s.createSession(ctx, params)
}

func (s *stubStripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*gateway.StripeSession, error) {
	if s.retrieveSession == nil {
		return &gateway.StripeSession{ID: sessionID, PaymentStatus: "paid"}, nil
	}
	return s.retrieveSession(ctx, sessionID)
}

func (s *stubStripeGateway) VerifyWebhookSignature(payload []byte, header string) bool {
	if s.verify == nil {
		return true
	}
	return s.verify(payload, header)
}

type stubSSLCommerzGateway struct {
	createSession func(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error)
	validate      func(ctx context.Context, valID string) (*gateway.SSLCommerzValidation, error)
}

func (s *stubSSLCommerzGateway) CreateSession(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error) {
	if s.createSession == nil {
		return &gateway.CheckoutSession{SessionID: "sslc_test", CheckoutURL: "https://gw.test/sslc_test"}, nil
	}
	return s.createSession(ctx, params)
}

func (s *stubSSLCommerzGateway) ValidateTransaction(ctx context.Context, valID string) (*gateway.SSLCommerzValidation, error) {
	if s.validate == nil {
		return &gateway.SSLCommerzValidation{Status: "VALID"}, nil
	}
	return s.validate(ctx, valID)
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			ClientURL: "http://localhost:3000",
		},
		JWT: utils.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 24,
		},
		Booking: utils.BookingConfig{
			DayStartHour: 7,
			DayEndHour:   17,
			SlotHours:    1,
		},
		Catalog: utils.CatalogConfig{
			Categories: []string{"Food", "Adventure", "History"},
			Languages:  []string{"English", "Spanish"},
		},
	}
}
