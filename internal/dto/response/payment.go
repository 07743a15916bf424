package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type PaymentResponse struct {
	ID             string                `json:"id"`
	BookingID      string                `json:"booking_id"`
	Amount         float64               `json:"amount"`
	TransactionID  string                `json:"transaction_id"`
	Gateway        entity.PaymentGateway `json:"gateway"`
	Status         entity.PaymentStatus  `json:"status"`
	ReceiptURL     *string               `json:"receipt_url,omitempty"`
	PayoutReleased bool                  `json:"payout_released"`
	CreatedAt      time.Time             `json:"created_at"`
}

// CheckoutResponse carries the gateway redirect for a freshly initiated payment.
type CheckoutResponse struct {
	PaymentID   string  `json:"payment_id"`
	CheckoutURL string  `json:"checkout_url"`
	SessionID   string  `json:"session_id"`
	Amount      float64 `json:"amount"`
}

type ReceiptResponse struct {
	PaymentID     string    `json:"payment_id"`
	OrderID       string    `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	ListingTitle  string    `json:"listing_title"`
	TouristName   string    `json:"tourist_name"`
	GuideName     string    `json:"guide_name"`
	SlotStart     time.Time `json:"slot_start"`
	PaidAt        time.Time `json:"paid_at"`
	ReceiptURL    *string   `json:"receipt_url,omitempty"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             payment.ID.String(),
		BookingID:      payment.BookingID.String(),
		Amount:         payment.Amount,
		TransactionID:  payment.TransactionID,
		Gateway:        payment.Gateway,
		Status:         payment.Status,
		ReceiptURL:     payment.ReceiptURL,
		PayoutReleased: payment.PayoutReleased,
		CreatedAt:      payment.CreatedAt,
	}
}

func PaymentsToResponse(payments []*entity.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		out = append(out, PaymentToResponse(payment))
	}
	return out
}
