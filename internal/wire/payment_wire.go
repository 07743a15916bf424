package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== GATEWAY CALLBACKS (no auth) ====================
	// Stripe signs the webhook; SSLCommerz callbacks are validated
	// server-to-server before any state changes.
	r.Post("/api/payments/stripe/webhook", paymentHandler.StripeWebhook)
	r.Post("/api/payments/sslcommerz-success", paymentHandler.SSLCommerzSuccess)
	r.Post("/api/payments/sslcommerz-fail", paymentHandler.SSLCommerzFail)
	r.Post("/api/payments/sslcommerz-cancel", paymentHandler.SSLCommerzCancel)

	// ==================== TOURIST ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))
		r.Use(middleware.RequireRoles(log, entity.RoleTourist))

		r.Post("/api/payments/initiate", paymentHandler.Initiate)
		r.Post("/api/payments/stripe/initiate", paymentHandler.InitiateStripe)
		r.Post("/api/payments/sslcommerz/initiate", paymentHandler.InitiateSSLCommerz)

		// POST /api/payments/{id}/confirm - Manual settlement for offline payments
		r.Post("/api/payments/{id}/confirm", paymentHandler.Confirm)
	})

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))

		r.Get("/api/payments/{id}/status", paymentHandler.GetStatus)
		r.Get("/api/payments/{id}/receipt", paymentHandler.GetReceipt)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, repo, log))
		r.Use(middleware.RequireAdmin(log))

		r.Get("/api/payments", paymentHandler.GetPayments)
		r.Post("/api/payments/{id}/payout", paymentHandler.ReleasePayout)
	})
}
