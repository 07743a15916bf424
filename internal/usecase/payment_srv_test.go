package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/gateway"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type paymentFixture struct {
	touristID  uuid.UUID
	booking    *entity.Booking
	payments   *stubPaymentRepo
	bookings   *stubBookingRepo
	stripe     *stubStripeGateway
	sslcommerz *stubSSLCommerzGateway
	service    PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		touristID:  uuid.New(),
		payments:   &stubPaymentRepo{},
		bookings:   &stubBookingRepo{},
		stripe:     &stubStripeGateway{},
		sslcommerz: &stubSSLCommerzGateway{},
	}
	f.booking = &entity.Booking{
		Base:       entity.Base{ID: uuid.New()},
		OrderID:    "ORD-1001",
		ListingID:  uuid.New(),
		TouristID:  f.touristID,
		TotalPrice: 120,
		Status:     entity.BookingStatusConfirmed,
	}
	f.bookings.findByID = func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
		if id == f.booking.ID {
			return f.booking, nil
		}
		return nil, nil
	}

	repo := &repository.Repository{
		User:    &stubUserRepo{},
		Listing: &stubListingRepo{},
		Booking: f.bookings,
		Payment: f.payments,
	}
	f.service = NewPaymentService(repo, testConfig(), f.stripe, f.sslcommerz, zap.NewNop())
	return f
}

func TestInitiateCreatesPendingPayment(t *testing.T) {
	f := newPaymentFixture(t)

	var created *entity.Payment
	f.payments.create = func(ctx context.Context, payment *entity.Payment) error {
		created = payment
		return nil
	}

	resp, err := f.service.Initiate(context.Background(), f.touristID.String(), &request.InitiatePaymentRequest{
		BookingID: f.booking.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, f.booking.TotalPrice, created.Amount)
	assert.Equal(t, entity.PaymentStatusPending, created.Status)
	assert.Equal(t, entity.GatewayManual, created.Gateway)
	assert.NotEmpty(t, created.TransactionID)
	assert.Equal(t, entity.PaymentStatusPending, resp.Status)
}

func TestInitiateRequiresGuideConfirmation(t *testing.T) {
	f := newPaymentFixture(t)
	f.booking.Status = entity.BookingStatusPending

	_, err := f.service.Initiate(context.Background(), f.touristID.String(), &request.InitiatePaymentRequest{
		BookingID: f.booking.ID.String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmed by the guide before payment")
}

func TestInitiateRejectsCancelledBooking(t *testing.T) {
	f := newPaymentFixture(t)
	f.booking.Status = entity.BookingStatusCancelled

	_, err := f.service.Initiate(context.Background(), f.touristID.String(), &request.InitiatePaymentRequest{
		BookingID: f.booking.ID.String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled booking")
}

func TestInitiateRejectsForeignBooking(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.service.Initiate(context.Background(), uuid.New().String(), &request.InitiatePaymentRequest{
		BookingID: f.booking.ID.String(),
	})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Code)
}

func TestInitiateReusesUnpaidPayment(t *testing.T) {
	f := newPaymentFixture(t)

	existing := &entity.Payment{
		Base:          entity.Base{ID: uuid.New()},
		BookingID:     f.booking.ID,
		Amount:        120,
		TransactionID: "TXN-EXISTING",
		Status:        entity.PaymentStatusPending,
	}
	f.payments.findByBooking = func(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
		return existing, nil
	}
	f.payments.create = func(ctx context.Context, payment *entity.Payment) error {
		t.Fatal("should not create a second payment")
		return nil
	}

	resp, err := f.service.Initiate(context.Background(), f.touristID.String(), &request.InitiatePaymentRequest{
		BookingID: f.booking.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "TXN-EXISTING", resp.TransactionID)
}

func TestInitiateRejectsAlreadyPaid(t *testing.T) {
	f := newPaymentFixture(t)

	f.payments.findByBooking = func(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
		return &entity.Payment{
			Base:      entity.Base{ID: uuid.New()},
			BookingID: f.booking.ID,
			Status:    entity.PaymentStatusPaid,
		}, nil
	}

	_, err := f.service.Initiate(context.Background(), f.touristID.String(), &request.InitiatePaymentRequest{
		BookingID: f.booking.ID.String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already paid")
}

func TestInitiateStripeStoresSession(t *testing.T) {
	f := newPaymentFixture(t)

	f.stripe.createSession = func(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error) {
		assert.Equal(t, 120.0, params.Amount)
		assert.NotEmpty(t, params.OrderID)
		assert.Equal(t, "http://localhost:3000/payment/success", params.SuccessURL)
		return &gateway.CheckoutSession{SessionID: "cs_123", CheckoutURL: "https://checkout.stripe.com/cs_123"}, nil
	}

	var storedGateway entity.PaymentGateway
	var storedSession *string
	f.payments.updateSession = func(ctx context.Context, paymentID uuid.UUID, gw entity.PaymentGateway, sessionID *string) error {
		storedGateway = gw
		storedSession = sessionID
		return nil
	}

	resp, err := f.service.InitiateStripe(context.Background(), f.touristID.String(), &request.InitiatePaymentRequest{
		BookingID: f.booking.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.GatewayStripe, storedGateway)
	require.NotNil(t, storedSession)
	assert.Equal(t, "cs_123", *storedSession)
	assert.Equal(t, "https://checkout.stripe.com/cs_123", resp.CheckoutURL)
	assert.Equal(t, 120.0, resp.Amount)
}

func TestConfirmPaymentSettlesAndCascades(t *testing.T) {
	f := newPaymentFixture(t)
	f.booking.Status = entity.BookingStatusPending

	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: f.booking.ID,
		Amount:    120,
		Status:    entity.PaymentStatusPending,
	}
	f.payments.findByID = func(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
		return payment, nil
	}

	var paidStatus entity.PaymentStatus
	f.payments.updateStatus = func(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error {
		paidStatus = status
		return nil
	}

	var bookingStatus entity.BookingStatus
	f.bookings.updateStatus = func(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
		bookingStatus = status
		return nil
	}

	resp, err := f.service.ConfirmPayment(context.Background(), payment.ID.String())
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, paidStatus)
	assert.Equal(t, entity.BookingStatusConfirmed, bookingStatus)
	assert.Equal(t, entity.PaymentStatusPaid, resp.Status)
}

func TestConfirmPaymentStripeRequiresPaidSession(t *testing.T) {
	f := newPaymentFixture(t)

	sessionID := "cs_pending"
	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: f.booking.ID,
		Gateway:   entity.GatewayStripe,
		SessionID: &sessionID,
		Status:    entity.PaymentStatusPending,
	}
	f.payments.findByID = func(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
		return payment, nil
	}
	f.stripe.retrieveSession = func(ctx context.Context, id string) (*gateway.StripeSession, error) {
		assert.Equal(t, sessionID, id)
		return &gateway.StripeSession{ID: id, PaymentStatus: "unpaid"}, nil
	}
	f.payments.updateStatus = func(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error {
		t.Fatal("must not settle while stripe reports the session unpaid")
		return nil
	}

	_, err := f.service.ConfirmPayment(context.Background(), payment.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not completed this payment")
}

func TestConfirmPaymentStripeSettlesPaidSession(t *testing.T) {
	f := newPaymentFixture(t)

	sessionID := "cs_done"
	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: f.booking.ID,
		Gateway:   entity.GatewayStripe,
		SessionID: &sessionID,
		Status:    entity.PaymentStatusPending,
	}
	f.payments.findByID = func(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
		return payment, nil
	}
	f.stripe.retrieveSession = func(ctx context.Context, id string) (*gateway.StripeSession, error) {
		return &gateway.StripeSession{ID: id, PaymentStatus: "paid"}, nil
	}

	var paidStatus entity.PaymentStatus
	f.payments.updateStatus = func(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error {
		paidStatus = status
		return nil
	}

	resp, err := f.service.ConfirmPayment(context.Background(), payment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, paidStatus)
	assert.Equal(t, entity.PaymentStatusPaid, resp.Status)
}

func TestConfirmPaymentIdempotentWhenPaid(t *testing.T) {
	f := newPaymentFixture(t)

	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: f.booking.ID,
		Status:    entity.PaymentStatusPaid,
	}
	f.payments.findByID = func(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
		return payment, nil
	}
	f.payments.updateStatus = func(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error {
		t.Fatal("should not touch an already settled payment")
		return nil
	}

	resp, err := f.service.ConfirmPayment(context.Background(), payment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, resp.Status)
}

func TestHandleStripeWebhookRejectsBadSignature(t *testing.T) {
	f := newPaymentFixture(t)
	f.stripe.verify = func(payload []byte, header string) bool {
		return false
	}

	err := f.service.HandleStripeWebhook(context.Background(), []byte(`{}`), "t=1,v1=bad")
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Code)
}

func TestHandleStripeWebhookIgnoresOtherEvents(t *testing.T) {
	f := newPaymentFixture(t)
	f.payments.findBySession = func(ctx context.Context, sessionID string) (*entity.Payment, error) {
		t.Fatal("should not look up payments for unrelated events")
		return nil, nil
	}

	payload, _ := json.Marshal(map[string]any{"type": "invoice.created"})
	err := f.service.HandleStripeWebhook(context.Background(), payload, "sig")
	require.NoError(t, err)
}

func TestHandleStripeWebhookSettlesSession(t *testing.T) {
	f := newPaymentFixture(t)

	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: f.booking.ID,
		Status:    entity.PaymentStatusPending,
	}
	f.payments.findBySession = func(ctx context.Context, sessionID string) (*entity.Payment, error) {
		assert.Equal(t, "cs_123", sessionID)
		return payment, nil
	}

	var paidStatus entity.PaymentStatus
	f.payments.updateStatus = func(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error {
		paidStatus = status
		return nil
	}

	payload, _ := json.Marshal(map[string]any{
		"type": "checkout.session.completed",
		"data": map[string]any{
			"object": map[string]any{
				"id":             "cs_123",
				"payment_status": "paid",
			},
		},
	})

	err := f.service.HandleStripeWebhook(context.Background(), payload, "sig")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, paidStatus)
}

func TestHandleSSLCommerzSuccessValidatesServerSide(t *testing.T) {
	f := newPaymentFixture(t)

	payment := &entity.Payment{
		Base:          entity.Base{ID: uuid.New()},
		BookingID:     f.booking.ID,
		TransactionID: "TXN-77",
		Status:        entity.PaymentStatusPending,
	}
	f.payments.findByTran = func(ctx context.Context, transactionID string) (*entity.Payment, error) {
		return payment, nil
	}
	f.sslcommerz.validate = func(ctx context.Context, valID string) (*gateway.SSLCommerzValidation, error) {
		return &gateway.SSLCommerzValidation{Status: "VALID", TranID: "TXN-77"}, nil
	}

	var paidStatus entity.PaymentStatus
	f.payments.updateStatus = func(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error {
		paidStatus = status
		return nil
	}

	err := f.service.HandleSSLCommerzSuccess(context.Background(), "TXN-77", "val-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, paidStatus)
}

func TestHandleSSLCommerzSuccessRejectsMismatchedTransaction(t *testing.T) {
	f := newPaymentFixture(t)

	f.payments.findByTran = func(ctx context.Context, transactionID string) (*entity.Payment, error) {
		return &entity.Payment{
			Base:          entity.Base{ID: uuid.New()},
			BookingID:     f.booking.ID,
			TransactionID: "TXN-77",
			Status:        entity.PaymentStatusPending,
		}, nil
	}
	f.sslcommerz.validate = func(ctx context.Context, valID string) (*gateway.SSLCommerzValidation, error) {
		return &gateway.SSLCommerzValidation{Status: "VALID", TranID: "TXN-OTHER"}, nil
	}
	f.payments.updateStatus = func(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error {
		t.Fatal("must not settle a mismatched transaction")
		return nil
	}

	err := f.service.HandleSSLCommerzSuccess(context.Background(), "TXN-77", "val-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed gateway validation")
}

func TestHandleSSLCommerzFailureKeepsPaidPayments(t *testing.T) {
	f := newPaymentFixture(t)

	f.payments.findByTran = func(ctx context.Context, transactionID string) (*entity.Payment, error) {
		return &entity.Payment{
			Base:          entity.Base{ID: uuid.New()},
			BookingID:     f.booking.ID,
			TransactionID: "TXN-77",
			Status:        entity.PaymentStatusPaid,
		}, nil
	}

	err := f.service.HandleSSLCommerzFailure(context.Background(), "TXN-77")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already settled")
}

func TestReleasePayoutOnlyOnce(t *testing.T) {
	f := newPaymentFixture(t)

	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: f.booking.ID,
		Status:    entity.PaymentStatusPaid,
	}
	f.payments.findByID = func(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
		return payment, nil
	}

	released := false
	f.payments.release = func(ctx context.Context, paymentID uuid.UUID) (bool, error) {
		if released {
			return false, nil
		}
		released = true
		return true, nil
	}

	resp, err := f.service.ReleasePayout(context.Background(), payment.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.PayoutReleased)

	_, err = f.service.ReleasePayout(context.Background(), payment.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been released")
}

func TestReleasePayoutRequiresPaidStatus(t *testing.T) {
	f := newPaymentFixture(t)

	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: f.booking.ID,
		Status:    entity.PaymentStatusPending,
	}
	f.payments.findByID = func(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
		return payment, nil
	}
	f.payments.release = func(ctx context.Context, paymentID uuid.UUID) (bool, error) {
		return false, nil
	}

	_, err := f.service.ReleasePayout(context.Background(), payment.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current status is PENDING")
}
