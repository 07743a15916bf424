package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

func (h *PaymentHandler) decodeInitiate(w http.ResponseWriter, r *http.Request) (string, *request.InitiatePaymentRequest, bool) {
	userID, _, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return "", nil, false
	}

	var req request.InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return "", nil, false
	}

	return userID, &req, true
}

// Initiate handles POST /api/payments/initiate (tourist)
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeInitiate(w, r)
	if !ok {
		return
	}

	payment, err := h.service.Initiate(r.Context(), userID, req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "Payment initiated successfully, proceed to gateway", payment)
}

// InitiateStripe handles POST /api/payments/stripe/initiate (tourist)
func (h *PaymentHandler) InitiateStripe(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeInitiate(w, r)
	if !ok {
		return
	}

	checkout, err := h.service.InitiateStripe(r.Context(), userID, req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "Stripe checkout session created", checkout)
}

// InitiateSSLCommerz handles POST /api/payments/sslcommerz/initiate (tourist)
func (h *PaymentHandler) InitiateSSLCommerz(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeInitiate(w, r)
	if !ok {
		return
	}

	checkout, err := h.service.InitiateSSLCommerz(r.Context(), userID, req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "SSLCommerz payment initiated", checkout)
}

// Confirm handles POST /api/payments/{id}/confirm (manual/demo settlement)
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.ConfirmPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment confirmed successfully", payment)
}

// StripeWebhook handles POST /api/payments/stripe/webhook (Stripe server)
func (h *PaymentHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.HandleStripeWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		h.log.Warn("Stripe webhook rejected", zap.Error(err))
		utils.ResponseError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// sslCommerzParam reads a callback field from POST form or query string.
func sslCommerzParam(r *http.Request, key string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return r.URL.Query().Get(key)
}

// SSLCommerzSuccess handles POST /api/payments/sslcommerz-success (gateway)
func (h *PaymentHandler) SSLCommerzSuccess(w http.ResponseWriter, r *http.Request) {
	tranID := sslCommerzParam(r, "tran_id")
	valID := sslCommerzParam(r, "val_id")

	if err := h.service.HandleSSLCommerzSuccess(r.Context(), tranID, valID); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment completed successfully", nil)
}

// SSLCommerzFail handles POST /api/payments/sslcommerz-fail (gateway)
func (h *PaymentHandler) SSLCommerzFail(w http.ResponseWriter, r *http.Request) {
	if err := h.service.HandleSSLCommerzFailure(r.Context(), sslCommerzParam(r, "tran_id")); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment marked as failed", nil)
}

// SSLCommerzCancel handles POST /api/payments/sslcommerz-cancel (gateway)
func (h *PaymentHandler) SSLCommerzCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.HandleSSLCommerzFailure(r.Context(), sslCommerzParam(r, "tran_id")); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment cancelled", nil)
}

// GetStatus handles GET /api/payments/{id}/status (owner or admin)
func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	payment, err := h.service.GetStatus(r.Context(), userID, role, chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// GetReceipt handles GET /api/payments/{id}/receipt (owner or admin)
func (h *PaymentHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	receipt, err := h.service.GetReceipt(r.Context(), userID, role, chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	if receipt.ReceiptURL != nil && *receipt.ReceiptURL != "" {
		http.Redirect(w, r, *receipt.ReceiptURL, http.StatusFound)
		return
	}

	utils.ResponseSuccess(w, "success", receipt)
}

// GetPayments handles GET /api/payments (admin)
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListPaymentsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
	}

	payments, err := h.service.GetPayments(r.Context(), req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// ReleasePayout handles POST /api/payments/{id}/payout (admin)
func (h *PaymentHandler) ReleasePayout(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.ReleasePayout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payout released successfully", payment)
}
