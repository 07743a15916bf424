package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/internal/gateway"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StripeGateway is the slice of the Stripe client the payment flow needs.
type StripeGateway interface {
	CreateCheckoutSession(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*gateway.StripeSession, error)
	VerifyWebhookSignature(payload []byte, header string) bool
}

// SSLCommerzGateway is the slice of the SSLCommerz client the payment flow needs.
type SSLCommerzGateway interface {
	CreateSession(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error)
	ValidateTransaction(ctx context.Context, valID string) (*gateway.SSLCommerzValidation, error)
}

type PaymentService interface {
	Initiate(ctx context.Context, touristID string, req *request.InitiatePaymentRequest) (*response.PaymentResponse, error)
	InitiateStripe(ctx context.Context, touristID string, req *request.InitiatePaymentRequest) (*response.CheckoutResponse, error)
	InitiateSSLCommerz(ctx context.Context, touristID string, req *request.InitiatePaymentRequest) (*response.CheckoutResponse, error)

	ConfirmPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
	HandleSSLCommerzSuccess(ctx context.Context, tranID, valID string) error
	HandleSSLCommerzFailure(ctx context.Context, tranID string) error

	GetStatus(ctx context.Context, userID string, role entity.UserRole, paymentID string) (*response.PaymentResponse, error)
	GetReceipt(ctx context.Context, userID string, role entity.UserRole, paymentID string) (*response.ReceiptResponse, error)
	GetPayments(ctx context.Context, req *request.ListPaymentsRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
	ReleasePayout(ctx context.Context, paymentID string) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo       *repository.Repository
	config     *utils.Config
	stripe     StripeGateway
	sslcommerz SSLCommerzGateway
	log        *zap.Logger
}

func NewPaymentService(repo *repository.Repository, config *utils.Config, stripe StripeGateway, sslcommerz SSLCommerzGateway, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:       repo,
		config:     config,
		stripe:     stripe,
		sslcommerz: sslcommerz,
		log:        log.With(zap.String("service", "payment")),
	}
}

// preparePayment runs the initiation preconditions and returns a PENDING
// payment record for the booking, reusing an unpaid one when it exists.
func (s *paymentService) preparePayment(ctx context.Context, touristID string, req *request.InitiatePaymentRequest) (*entity.Payment, *entity.Booking, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	touristUUID, err := uuid.Parse(touristID)
	if err != nil {
		return nil, nil, utils.ErrBadRequest("invalid user ID format")
	}
	bookingUUID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, nil, utils.ErrBadRequest("invalid booking ID format")
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, utils.ErrNotFound("booking not found")
	}

	if booking.TouristID != touristUUID {
		return nil, nil, utils.ErrForbidden("you can only pay for your own bookings")
	}

	if booking.Status == entity.BookingStatusCancelled {
		return nil, nil, utils.ErrBadRequest("cannot pay for a cancelled booking")
	}

	// payment opens only after the guide has confirmed
	if booking.Status != entity.BookingStatusConfirmed && booking.Status != entity.BookingStatusCompleted {
		return nil, nil, utils.ErrBadRequest("booking must be confirmed by the guide before payment")
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, nil, err
	}
	if payment != nil {
		if payment.Status == entity.PaymentStatusPaid {
			return nil, nil, utils.ErrBadRequest("booking is already paid")
		}
		return payment, booking, nil
	}

	now := time.Now()
	payment = &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:     booking.ID,
		Amount:        booking.TotalPrice,
		TransactionID: utils.GenerateTransactionID(),
		Gateway:       entity.GatewayManual,
		Status:        entity.PaymentStatusPending,
	}
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, nil, err
	}

	s.log.Info("Payment initiated",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.Float64("amount", payment.Amount),
	)

	return payment, booking, nil
}

func (s *paymentService) Initiate(ctx context.Context, touristID string, req *request.InitiatePaymentRequest) (*response.PaymentResponse, error) {
	payment, _, err := s.preparePayment(ctx, touristID, req)
	if err != nil {
		return nil, err
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) checkoutParams(ctx context.Context, payment *entity.Payment, booking *entity.Booking) gateway.CheckoutParams {
	params := gateway.CheckoutParams{
		OrderID:     payment.TransactionID,
		PaymentID:   payment.ID.String(),
		BookingID:   booking.ID.String(),
		Amount:      payment.Amount,
		Description: "Tour booking " + booking.OrderID,
		CustomerID:  booking.TouristID.String(),
		SuccessURL:  s.config.App.ClientURL + "/payment/success",
		CancelURL:   s.config.App.ClientURL + "/payment/cancel",
		FailURL:     s.config.App.ClientURL + "/payment/fail",
	}

	if tourist, err := s.repo.User.FindByID(ctx, booking.TouristID); err == nil && tourist != nil {
		params.Email = tourist.Email
		params.CustomerID = tourist.Name
	}
	if listing, err := s.repo.Listing.FindByID(ctx, booking.ListingID); err == nil && listing != nil {
		params.Description = listing.Title
	}

	return params
}

func (s *paymentService) InitiateStripe(ctx context.Context, touristID string, req *request.InitiatePaymentRequest) (*response.CheckoutResponse, error) {
	payment, booking, err := s.preparePayment(ctx, touristID, req)
	if err != nil {
		return nil, err
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, s.checkoutParams(ctx, payment, booking))
	if err != nil {
		s.log.Error("Stripe checkout session failed", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Payment.UpdateSession(ctx, payment.ID, entity.GatewayStripe, &session.SessionID); err != nil {
		return nil, err
	}

	return &response.CheckoutResponse{
		PaymentID:   payment.ID.String(),
		CheckoutURL: session.CheckoutURL,
		SessionID:   session.SessionID,
		Amount:      payment.Amount,
	}, nil
}

func (s *paymentService) InitiateSSLCommerz(ctx context.Context, touristID string, req *request.InitiatePaymentRequest) (*response.CheckoutResponse, error) {
	payment, booking, err := s.preparePayment(ctx, touristID, req)
	if err != nil {
		return nil, err
	}

	session, err := s.sslcommerz.CreateSession(ctx, s.checkoutParams(ctx, payment, booking))
	if err != nil {
		s.log.Error("SSLCommerz session failed", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Payment.UpdateSession(ctx, payment.ID, entity.GatewaySSLCommerz, &session.SessionID); err != nil {
		return nil, err
	}

	return &response.CheckoutResponse{
		PaymentID:   payment.ID.String(),
		CheckoutURL: session.CheckoutURL,
		SessionID:   session.SessionID,
		Amount:      payment.Amount,
	}, nil
}

// settle marks the payment PAID and cascades its booking to CONFIRMED.
// Calling it on an already PAID payment is a no-op.
func (s *paymentService) settle(ctx context.Context, payment *entity.Payment, receiptURL *string) error {
	if payment.Status == entity.PaymentStatusPaid {
		return nil
	}

	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusPaid, receiptURL); err != nil {
		return err
	}
	payment.Status = entity.PaymentStatusPaid
	if receiptURL != nil {
		payment.ReceiptURL = receiptURL
	}

	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil {
		return err
	}
	if booking != nil && booking.Status == entity.BookingStatusPending {
		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed); err != nil {
			return err
		}
	}

	s.log.Info("Payment settled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", payment.BookingID.String()),
	)

	return nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error) {
	paymentUUID, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid payment ID format")
	}

	payment, err := s.repo.Payment.FindByID(ctx, paymentUUID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, utils.ErrNotFound("payment not found")
	}

	// Stripe checkouts confirm through the success redirect before the
	// webhook lands; re-check the session server-side instead of trusting
	// the caller.
	if payment.Status != entity.PaymentStatusPaid &&
		payment.Gateway == entity.GatewayStripe && payment.SessionID != nil {
		session, err := s.stripe.RetrieveSession(ctx, *payment.SessionID)
		if err != nil {
			return nil, err
		}
		if !session.Paid() {
			return nil, utils.ErrBadRequest("stripe has not completed this payment yet")
		}
	}

	if err := s.settle(ctx, payment, nil); err != nil {
		return nil, err
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.stripe.VerifyWebhookSignature(payload, signature) {
		return utils.ErrForbidden("invalid webhook signature")
	}

	var event gateway.StripeWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return utils.ErrBadRequest("malformed webhook payload")
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	session := event.Data.Object
	payment, err := s.repo.Payment.FindBySessionID(ctx, session.ID)
	if err != nil {
		return err
	}
	if payment == nil {
		s.log.Warn("Stripe webhook for unknown session", zap.String("session_id", session.ID))
		return utils.ErrNotFound("payment not found for session")
	}

	return s.settle(ctx, payment, nil)
}

func (s *paymentService) HandleSSLCommerzSuccess(ctx context.Context, tranID, valID string) error {
	if tranID == "" || valID == "" {
		return utils.ErrBadRequest("missing transaction reference")
	}

	payment, err := s.repo.Payment.FindByTransactionID(ctx, tranID)
	if err != nil {
		return err
	}
	if payment == nil {
		return utils.ErrNotFound("payment not found for transaction")
	}

	// the callback itself is unauthenticated; trust only the validation API
	validation, err := s.sslcommerz.ValidateTransaction(ctx, valID)
	if err != nil {
		return err
	}
	if !validation.Valid() || validation.TranID != tranID {
		s.log.Warn("SSLCommerz validation rejected",
			zap.String("tran_id", tranID),
			zap.String("status", validation.Status),
		)
		return utils.ErrBadRequest("transaction failed gateway validation")
	}

	return s.settle(ctx, payment, nil)
}

func (s *paymentService) HandleSSLCommerzFailure(ctx context.Context, tranID string) error {
	if tranID == "" {
		return utils.ErrBadRequest("missing transaction reference")
	}

	payment, err := s.repo.Payment.FindByTransactionID(ctx, tranID)
	if err != nil {
		return err
	}
	if payment == nil {
		return utils.ErrNotFound("payment not found for transaction")
	}
	if payment.Status == entity.PaymentStatusPaid {
		return utils.ErrBadRequest("payment is already settled")
	}

	return s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusFailed, nil)
}

// loadVisible fetches a payment the caller may inspect: the paying tourist,
// the guide of the booked listing, or an admin.
func (s *paymentService) loadVisible(ctx context.Context, userID string, role entity.UserRole, paymentID string) (*entity.Payment, *entity.Booking, error) {
	paymentUUID, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, nil, utils.ErrBadRequest("invalid payment ID format")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil, utils.ErrBadRequest("invalid user ID format")
	}

	payment, err := s.repo.Payment.FindByID(ctx, paymentUUID)
	if err != nil {
		return nil, nil, err
	}
	if payment == nil {
		return nil, nil, utils.ErrNotFound("payment not found")
	}

	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil {
		return nil, nil, err
	}

	if role.IsAdmin() {
		return payment, booking, nil
	}
	if booking != nil && booking.TouristID == userUUID {
		return payment, booking, nil
	}
	if booking != nil {
		listing, err := s.repo.Listing.FindByID(ctx, booking.ListingID)
		if err == nil && listing != nil && listing.GuideID == userUUID {
			return payment, booking, nil
		}
	}

	return nil, nil, utils.ErrForbidden("you are not allowed to view this payment")
}

func (s *paymentService) GetStatus(ctx context.Context, userID string, role entity.UserRole, paymentID string) (*response.PaymentResponse, error) {
	payment, _, err := s.loadVisible(ctx, userID, role, paymentID)
	if err != nil {
		return nil, err
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetReceipt(ctx context.Context, userID string, role entity.UserRole, paymentID string) (*response.ReceiptResponse, error) {
	payment, booking, err := s.loadVisible(ctx, userID, role, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status != entity.PaymentStatusPaid {
		return nil, utils.ErrBadRequest("receipt is only available for paid payments")
	}
	if booking == nil {
		return nil, utils.ErrNotFound("booking not found for payment")
	}

	receipt := &response.ReceiptResponse{
		PaymentID:     payment.ID.String(),
		OrderID:       booking.OrderID,
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		SlotStart:     booking.SlotStart,
		PaidAt:        payment.UpdatedAt,
		ReceiptURL:    payment.ReceiptURL,
	}

	if listing, err := s.repo.Listing.FindByID(ctx, booking.ListingID); err == nil && listing != nil {
		receipt.ListingTitle = listing.Title
		if guide, err := s.repo.User.FindByID(ctx, listing.GuideID); err == nil && guide != nil {
			receipt.GuideName = guide.Name
		}
	}
	if tourist, err := s.repo.User.FindByID(ctx, booking.TouristID); err == nil && tourist != nil {
		receipt.TouristName = tourist.Name
	}

	return receipt, nil
}

func (s *paymentService) GetPayments(ctx context.Context, req *request.ListPaymentsRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	payments, err := s.repo.Payment.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Payment.Count(ctx)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.PaymentsToResponse(payments), req.Page, req.Limit(), total), nil
}

func (s *paymentService) ReleasePayout(ctx context.Context, paymentID string) (*response.PaymentResponse, error) {
	paymentUUID, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid payment ID format")
	}

	payment, err := s.repo.Payment.FindByID(ctx, paymentUUID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, utils.ErrNotFound("payment not found")
	}

	released, err := s.repo.Payment.ReleasePayout(ctx, paymentUUID)
	if err != nil {
		return nil, err
	}
	if !released {
		if payment.PayoutReleased {
			return nil, utils.ErrBadRequest("payout has already been released")
		}
		return nil, utils.ErrBadRequest(fmt.Sprintf(
			"payout can only be released for paid payments, current status is %s", payment.Status,
		))
	}

	s.log.Info("Payout released", zap.String("payment_id", paymentUUID.String()))

	payment.PayoutReleased = true
	resp := response.PaymentToResponse(payment)
	return &resp, nil
}
