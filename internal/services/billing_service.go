package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BillingService is the thin passthrough to the hosted subscription API.
// The provider owns all billing state; this client only creates, cancels,
// and reads subscriptions and verifies webhook signatures.
type BillingService interface {
	CreateSubscription(ctx context.Context, planID, customerEmail string) (*ProviderSubscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error)
	VerifyWebhook(rawBody []byte, signature string) (*BillingWebhookEvent, error)
}

type ProviderSubscription struct {
	ID      string `json:"id"`
	PlanID  string `json:"plan_id"`
	Status  string `json:"status"`
	StartAt int64  `json:"start_at"`
	EndAt   int64  `json:"end_at"`
}

type BillingWebhookEvent struct {
	ID             string `json:"id"`
	Event          string `json:"event"`
	SubscriptionID string `json:"subscription_id"`
	Status         string `json:"status"`
	Created        int64  `json:"created"`
}

type billingService struct {
	apiKey        string
	apiSecret     string
	webhookSecret string
	baseURL       string
	http          *http.Client
}

func NewBillingService(apiKey, apiSecret, webhookSecret, baseURL string) BillingService {
	return &billingService{
		apiKey:        apiKey,
		apiSecret:     apiSecret,
		webhookSecret: webhookSecret,
		baseURL:       baseURL,
		http:          &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *billingService) doRequest(ctx context.Context, method, path string, payload any) (*ProviderSubscription, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.apiKey, s.apiSecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("billing provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("billing provider returned %d: %s", resp.StatusCode, string(raw))
	}

	var sub ProviderSubscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode billing provider response: %w", err)
	}
	return &sub, nil
}

func (s *billingService) CreateSubscription(ctx context.Context, planID, customerEmail string) (*ProviderSubscription, error) {
	payload := map[string]string{
		"plan_id":        planID,
		"customer_email": customerEmail,
	}
	return s.doRequest(ctx, http.MethodPost, "/subscriptions", payload)
}

func (s *billingService) CancelSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error) {
	return s.doRequest(ctx, http.MethodPost, "/subscriptions/"+subscriptionID+"/cancel", nil)
}

func (s *billingService) GetSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error) {
	return s.doRequest(ctx, http.MethodGet, "/subscriptions/"+subscriptionID, nil)
}

// VerifyWebhook checks the HMAC signature over the raw body and decodes the
// event. Constant-time comparison prevents timing attacks.
func (s *billingService) VerifyWebhook(rawBody []byte, signature string) (*BillingWebhookEvent, error) {
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return nil, fmt.Errorf("invalid webhook signature")
	}

	var event BillingWebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, fmt.Errorf("failed to decode webhook event: %w", err)
	}
	return &event, nil
}
