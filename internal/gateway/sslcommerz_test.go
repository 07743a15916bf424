package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSSLCommerzCreateSession(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/gwprocess/v4/api.php", r.URL.Path)
		require.NoError(t, r.ParseForm())

		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"status":         "SUCCESS",
			"sessionkey":     "SESSION123",
			"GatewayPageURL": "https://sandbox.sslcommerz.com/EasyCheckOut/SESSION123",
		})
	}))
	defer server.Close()

	client := NewSSLCommerzClient("teststore", "testpass", server.URL, zap.NewNop())

	session, err := client.CreateSession(context.Background(), CheckoutParams{
		OrderID:     "TXN-42",
		PaymentID:   "pay-1",
		BookingID:   "book-1",
		Amount:      1200.50,
		Description: "Harbor Kayak Tour",
		CustomerID:  "Rahim",
		Email:       "rahim@example.com",
		SuccessURL:  "http://localhost:3000/payment/success",
		FailURL:     "http://localhost:3000/payment/fail",
		CancelURL:   "http://localhost:3000/payment/cancel",
	})
	require.NoError(t, err)

	assert.Equal(t, "SESSION123", session.SessionID)
	assert.Equal(t, "https://sandbox.sslcommerz.com/EasyCheckOut/SESSION123", session.CheckoutURL)

	assert.Equal(t, "teststore", gotForm["store_id"])
	assert.Equal(t, "testpass", gotForm["store_passwd"])
	assert.Equal(t, "1200.50", gotForm["total_amount"])
	assert.Equal(t, "BDT", gotForm["currency"])
	assert.Equal(t, "TXN-42", gotForm["tran_id"])
	assert.Equal(t, "pay-1", gotForm["value_a"])
	assert.Equal(t, "book-1", gotForm["value_b"])
}

func TestSSLCommerzCreateSessionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"status":       "FAILED",
			"failedreason": "Store Credential Error",
		})
	}))
	defer server.Close()

	client := NewSSLCommerzClient("badstore", "badpass", server.URL, zap.NewNop())

	_, err := client.CreateSession(context.Background(), CheckoutParams{Amount: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Store Credential Error")
}

func TestSSLCommerzValidateTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/validator/api/validationserverAPI.php", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "val-99", query.Get("val_id"))
		require.Equal(t, "teststore", query.Get("store_id"))

		json.NewEncoder(w).Encode(map[string]string{
			"status":  "VALID",
			"tran_id": "TXN-42",
			"val_id":  "val-99",
			"amount":  "1200.50",
		})
	}))
	defer server.Close()

	client := NewSSLCommerzClient("teststore", "testpass", server.URL, zap.NewNop())

	validation, err := client.ValidateTransaction(context.Background(), "val-99")
	require.NoError(t, err)
	assert.True(t, validation.Valid())
	assert.Equal(t, "TXN-42", validation.TranID)
}

func TestSSLCommerzValidationStatus(t *testing.T) {
	assert.True(t, (&SSLCommerzValidation{Status: "VALID"}).Valid())
	assert.True(t, (&SSLCommerzValidation{Status: "VALIDATED"}).Valid())
	assert.True(t, (&SSLCommerzValidation{Status: "validated"}).Valid())
	assert.False(t, (&SSLCommerzValidation{Status: "FAILED"}).Valid())
	assert.False(t, (&SSLCommerzValidation{Status: ""}).Valid())
}
