package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spec-kit/qrmenu-service/internal/config"
	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// CheckoutClient creates hosted checkout sessions with the payment processor.
// The processor is a contract-only collaborator: one POST, one JSON response.
type CheckoutClient struct {
	cfg    config.BillingConfig
	client *http.Client
}

// NewCheckoutClient constructs the client.
func NewCheckoutClient(cfg config.BillingConfig) *CheckoutClient {
	return &CheckoutClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type checkoutRequest struct {
	ClientReference string `json:"client_reference_id"`
	Plan            string `json:"plan"`
	SuccessURL      string `json:"success_url"`
	CancelURL       string `json:"cancel_url"`
}

type checkoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession returns the hosted checkout redirect URL for a tenant/plan pair.
func (c *CheckoutClient) CreateSession(ctx context.Context, businessID string, plan domain.PlanType) (string, error) {
	if c.cfg.CheckoutEndpoint == "" || c.cfg.SecretKey == "" {
		return "", errors.New("billing checkout not configured")
	}

	body, err := json.Marshal(checkoutRequest{
		ClientReference: businessID,
		Plan:            string(plan),
		SuccessURL:      c.cfg.SuccessURL,
		CancelURL:       c.cfg.CancelURL,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.CheckoutEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("checkout session failed with status %d", resp.StatusCode)
	}

	var session checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", err
	}
	if session.URL == "" {
		return "", errors.New("checkout session missing redirect url")
	}
	return session.URL, nil
}
