package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SSLCommerzClient opens SSLCommerz v4 gateway sessions and validates
// transactions against the validation API.
type SSLCommerzClient struct {
	storeID       string
	storePassword string
	baseURL       string
	httpClient    *http.Client
	log           *zap.Logger
}

func NewSSLCommerzClient(storeID, storePassword, baseURL string, log *zap.Logger) *SSLCommerzClient {
	if baseURL == "" {
		baseURL = "https://sandbox.sslcommerz.com"
	}
	return &SSLCommerzClient{
		storeID:       storeID,
		storePassword: storePassword,
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		log:           log.With(zap.String("gateway", "sslcommerz")),
	}
}

// CreateSession opens a gateway session and returns the hosted page URL.
func (c *SSLCommerzClient) CreateSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	currency := params.Currency
	if currency == "" {
		currency = "BDT"
	}

	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePassword)
	form.Set("total_amount", strconv.FormatFloat(params.Amount, 'f', 2, 64))
	form.Set("currency", strings.ToUpper(currency))
	form.Set("tran_id", params.OrderID)
	form.Set("success_url", params.SuccessURL)
	form.Set("fail_url", params.FailURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("product_name", params.Description)
	form.Set("product_category", "tour")
	form.Set("product_profile", "general")
	form.Set("shipping_method", "NO")
	form.Set("cus_name", params.CustomerID)
	form.Set("cus_email", params.Email)
	form.Set("cus_add1", "N/A")
	form.Set("cus_city", "N/A")
	form.Set("cus_country", "N/A")
	form.Set("cus_phone", "N/A")
	form.Set("value_a", params.PaymentID)
	form.Set("value_b", params.BookingID)

	apiURL := c.baseURL + "/gwprocess/v4/api.php"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("sslcommerz request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("SSLCommerz session request failed", zap.Error(err))
		return nil, fmt.Errorf("sslcommerz http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sslcommerz api status %d: %s", resp.StatusCode, string(body))
	}

	var parsed sslcommerzSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("sslcommerz decode: %w", err)
	}

	if !strings.EqualFold(parsed.Status, "SUCCESS") || parsed.GatewayPageURL == "" {
		c.log.Error("SSLCommerz session rejected",
			zap.String("status", parsed.Status),
			zap.String("reason", parsed.FailedReason),
		)
		return nil, fmt.Errorf("sslcommerz session rejected: %s", parsed.FailedReason)
	}

	return &CheckoutSession{
		SessionID:   parsed.SessionKey,
		CheckoutURL: parsed.GatewayPageURL,
	}, nil
}

// ValidateTransaction checks a val_id received on the IPN/success callback
// against the validation API. Gateway callbacks are unauthenticated, so a
// payment is only marked paid after this server-to-server check.
func (c *SSLCommerzClient) ValidateTransaction(ctx context.Context, valID string) (*SSLCommerzValidation, error) {
	query := url.Values{}
	query.Set("val_id", valID)
	query.Set("store_id", c.storeID)
	query.Set("store_passwd", c.storePassword)
	query.Set("format", "json")

	apiURL := c.baseURL + "/validator/api/validationserverAPI.php?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("sslcommerz validation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("SSLCommerz validation request failed", zap.Error(err))
		return nil, fmt.Errorf("sslcommerz http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sslcommerz api status %d: %s", resp.StatusCode, string(body))
	}

	var parsed SSLCommerzValidation
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("sslcommerz decode: %w", err)
	}

	return &parsed, nil
}

// SSLCommerzValidation is the validation API response. Status VALID or
// VALIDATED means the money moved.
type SSLCommerzValidation struct {
	Status        string `json:"status"`
	TranID        string `json:"tran_id"`
	ValID         string `json:"val_id"`
	Amount        string `json:"amount"`
	BankTranID    string `json:"bank_tran_id"`
	CardType      string `json:"card_type"`
	TranDate      string `json:"tran_date"`
	Currency      string `json:"currency"`
	ValueA        string `json:"value_a"`
	ValueB        string `json:"value_b"`
	RiskLevel     string `json:"risk_level"`
	RiskTitle     string `json:"risk_title"`
	StoreAmount   string `json:"store_amount"`
	CurrencyType  string `json:"currency_type"`
	CurrencyRate  string `json:"currency_rate"`
	ValidatedOn   string `json:"validated_on"`
	GWVersion     string `json:"gw_version"`
	EmailAddr     string `json:"email"`
	APIConnect    string `json:"APIConnect"`
	ValidationErr string `json:"error"`
}

// Valid reports whether the transaction cleared validation.
func (v *SSLCommerzValidation) Valid() bool {
	return strings.EqualFold(v.Status, "VALID") || strings.EqualFold(v.Status, "VALIDATED")
}

type sslcommerzSessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}
