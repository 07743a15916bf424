package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentGateway string

const (
	GatewayStripe     PaymentGateway = "STRIPE"
	GatewaySSLCommerz PaymentGateway = "SSLCOMMERZ"
	GatewayManual     PaymentGateway = "MANUAL"
)

type Payment struct {
	Base
	BookingID        uuid.UUID      `db:"booking_id"`
	Amount           float64        `db:"amount"`
	TransactionID    string         `db:"transaction_id"`
	Gateway          PaymentGateway `db:"gateway"`
	Status           PaymentStatus  `db:"status"`
	SessionID        *string        `db:"session_id"`
	ReceiptURL       *string        `db:"receipt_url"`
	PayoutReleased   bool           `db:"payout_released"`
	PayoutReleasedAt *time.Time     `db:"payout_released_at"`
}
