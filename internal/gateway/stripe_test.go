package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCheckoutSessionSendsForm(t *testing.T) {
	var gotForm map[string]string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())

		gotAuth = r.Header.Get("Authorization")
		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"id":  "cs_test_123",
			"url": "https://checkout.stripe.com/pay/cs_test_123",
		})
	}))
	defer server.Close()

	client := NewStripeClient("sk_test_abc", "", zap.NewNop()).WithBaseURL(server.URL)

	session, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{
		OrderID:     "ORD-42",
		PaymentID:   "pay-1",
		BookingID:   "book-1",
		Amount:      49.50,
		Description: "Old Town Food Walk",
		Email:       "tourist@example.com",
		SuccessURL:  "http://localhost:3000/payment/success",
		CancelURL:   "http://localhost:3000/payment/cancel",
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", session.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", session.CheckoutURL)

	assert.Equal(t, "Bearer sk_test_abc", gotAuth)
	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "4950", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "usd", gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, "Old Town Food Walk", gotForm["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "ORD-42", gotForm["metadata[order_id]"])
	assert.Equal(t, "pay-1", gotForm["metadata[payment_id]"])
	assert.Equal(t, "tourist@example.com", gotForm["customer_email"])
}

func TestCreateCheckoutSessionSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid API Key"}}`))
	}))
	defer server.Close()

	client := NewStripeClient("sk_bad", "", zap.NewNop()).WithBaseURL(server.URL)

	_, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{Amount: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestRetrieveSessionPaid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/checkout/sessions/cs_test_123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":             "cs_test_123",
			"payment_status": "paid",
			"amount_total":   4950,
		})
	}))
	defer server.Close()

	client := NewStripeClient("sk_test_abc", "", zap.NewNop()).WithBaseURL(server.URL)

	session, err := client.RetrieveSession(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.True(t, session.Paid())
	assert.Equal(t, int64(4950), session.AmountTotal)
}

func signStripePayload(secret string, ts int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec_test"
	client := NewStripeClient("sk", secret, zap.NewNop())
	payload := []byte(`{"type":"checkout.session.completed"}`)

	now := time.Now().Unix()
	sig := signStripePayload(secret, now, payload)
	header := fmt.Sprintf("t=%d,v1=%s", now, sig)

	assert.True(t, client.VerifyWebhookSignature(payload, header))

	// tampered payload
	assert.False(t, client.VerifyWebhookSignature([]byte(`{"type":"evil"}`), header))

	// wrong signature
	assert.False(t, client.VerifyWebhookSignature(payload, fmt.Sprintf("t=%d,v1=deadbeef", now)))

	// stale timestamp
	old := now - 600
	staleHeader := fmt.Sprintf("t=%d,v1=%s", old, signStripePayload(secret, old, payload))
	assert.False(t, client.VerifyWebhookSignature(payload, staleHeader))

	// missing header
	assert.False(t, client.VerifyWebhookSignature(payload, ""))
}

func TestVerifyWebhookSignatureBypassWithoutSecret(t *testing.T) {
	client := NewStripeClient("sk", "", zap.NewNop())
	assert.True(t, client.VerifyWebhookSignature([]byte(`{}`), "anything"))
}
