package pos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

func canonicalFixture() CanonicalOrder {
	return CanonicalOrder{
		OrderID:    "order-1",
		BusinessID: "biz-1",
		Table:      "table-5",
		Source:     domain.OrderSourceQRMenu,
		Items: []CanonicalItem{
			{ID: "item-1", Name: "Margherita", Quantity: 2, UnitPrice: 12.50, Total: 25.00},
		},
		Subtotal:  25.00,
		Total:     25.00,
		CreatedAt: time.Now(),
	}
}

func TestResolver_KnownAndUnknownProviders(t *testing.T) {
	resolver := NewResolver(nil)

	generic := resolver.Resolve(GenericProvider)
	require.NotNil(t, generic)
	assert.Same(t, generic, resolver.Resolve("webhook"))
	assert.Same(t, generic, resolver.Resolve("some-unknown-pos"), "unknown providers fall back to generic HTTP")
	assert.Same(t, generic, resolver.Resolve(""))
}

func TestGenericAdapter_SendOrder(t *testing.T) {
	var got CanonicalOrder
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Api-Key")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := NewResolver(server.Client()).Resolve(GenericProvider)
	err := adapter.SendOrder(context.Background(), canonicalFixture(), domain.POSIntegration{
		Enabled:  true,
		Provider: GenericProvider,
		Endpoint: server.URL,
		Headers:  map[string]string{"X-Api-Key": "secret-key"},
	})

	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotHeader)
	assert.Equal(t, "order-1", got.OrderID)
	assert.Len(t, got.Items, 1)
}

func TestGenericAdapter_HTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewResolver(server.Client()).Resolve(GenericProvider)
	err := adapter.SendOrder(context.Background(), canonicalFixture(), domain.POSIntegration{
		Endpoint: server.URL,
	})

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, server.URL, statusErr.Endpoint)
}

func TestGenericAdapter_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	adapter := NewResolver(server.Client()).Resolve(GenericProvider)
	err := adapter.SendOrder(context.Background(), canonicalFixture(), domain.POSIntegration{
		Endpoint:  server.URL,
		TimeoutMs: 50,
	})

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 50*time.Millisecond, timeoutErr.Timeout)
}

func TestGenericAdapter_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	adapter := NewResolver(nil).Resolve(GenericProvider)
	err := adapter.SendOrder(context.Background(), canonicalFixture(), domain.POSIntegration{
		Endpoint: endpoint,
	})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, endpoint, netErr.Endpoint)
	assert.Error(t, netErr.Unwrap())
}

func TestGenericAdapter_MissingEndpoint(t *testing.T) {
	adapter := NewResolver(nil).Resolve(GenericProvider)

	err := adapter.SendOrder(context.Background(), canonicalFixture(), domain.POSIntegration{})
	assert.Error(t, err)
}
