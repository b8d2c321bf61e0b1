package exchangerate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fxtrack/fxtrack/internal/clients/exchangerate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestRates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"result": "success",
			"base_code": "USD",
			"conversion_rates": {"EUR": 0.9137, "PKR": 277.5}
		}`))
	}))
	defer server.Close()

	client := exchangerate.New(server.URL, "test-key")
	rates, err := client.LatestRates(context.Background(), "usd")

	require.NoError(t, err)
	assert.Equal(t, 0.9137, rates["EUR"])
	assert.Equal(t, 277.5, rates["PKR"])
}

func TestLatestRates_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": "error", "error-type": "unsupported-code"}`))
	}))
	defer server.Close()

	client := exchangerate.New(server.URL, "test-key")
	_, err := client.LatestRates(context.Background(), "XXX")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported-code")
}

func TestLatestRates_HTTPError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := exchangerate.New(server.URL, "bad-key")
	_, err := client.LatestRates(context.Background(), "USD")

	require.Error(t, err)
	// No retry on failure.
	assert.Equal(t, int32(1), calls.Load())
}

func TestLatestRates_EmptyMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "success", "conversion_rates": {}}`))
	}))
	defer server.Close()

	client := exchangerate.New(server.URL, "test-key")
	_, err := client.LatestRates(context.Background(), "USD")

	assert.Error(t, err)
}

func TestLatestRates_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := exchangerate.New(server.URL, "test-key")
	_, err := client.LatestRates(context.Background(), "USD")

	assert.Error(t, err)
}
