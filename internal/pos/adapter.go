package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// DefaultTimeout bounds dispatches whose config carries no explicit timeout.
const DefaultTimeout = 10 * time.Second

// Adapter translates a canonical order into a remote POS system's request.
type Adapter interface {
	SendOrder(ctx context.Context, order CanonicalOrder, cfg domain.POSIntegration) error
}

// GenericProvider is the registry key for the plain HTTP-POST adapter, and the
// explicit fallback for unrecognized provider names.
const GenericProvider = "generic"

// Resolver selects an adapter implementation by provider name.
type Resolver struct {
	registry map[string]Adapter
	fallback Adapter
}

// NewResolver builds the fixed adapter registry.
func NewResolver(client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{}
	}
	generic := &genericHTTPAdapter{client: client}
	return &Resolver{
		registry: map[string]Adapter{
			GenericProvider: generic,
			"webhook":       generic,
		},
		fallback: generic,
	}
}

// Resolve returns the adapter registered for the provider name, or the
// generic HTTP adapter when the name is unknown.
func (r *Resolver) Resolve(provider string) Adapter {
	if adapter, ok := r.registry[provider]; ok {
		return adapter
	}
	return r.fallback
}

type genericHTTPAdapter struct {
	client *http.Client
}

// SendOrder posts the canonical order JSON to the configured endpoint,
// aborting after the configured timeout. Failures map to typed variants so
// callers never have to inspect message text. Errors are never retried.
func (a *genericHTTPAdapter) SendOrder(ctx context.Context, order CanonicalOrder, cfg domain.POSIntegration) error {
	if cfg.Endpoint == "" {
		return errors.New("pos endpoint not configured")
	}

	timeout := DefaultTimeout
	if cfg.TimeoutMs > 0 {
		timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(order)
	if err != nil {
		return err
	}

	method := cfg.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return &TimeoutError{Endpoint: cfg.Endpoint, Timeout: timeout}
		}
		return &NetworkError{Endpoint: cfg.Endpoint, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPStatusError{Endpoint: cfg.Endpoint, StatusCode: resp.StatusCode}
	}
	return nil
}
