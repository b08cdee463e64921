package gasstation

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetGasPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"fast": 1230, "fastest": 1500, "safeLow": 905, "average": 1000, "block_time": 13.5}`))
	}))
	defer server.Close()

	price, err := NewGasStationService(server.URL, "fast").GetGasPrice(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 123.0, price.Float(), 1e-9)

	price, err = NewGasStationService(server.URL, "safeLow").GetGasPrice(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 90.5, price.Float(), 1e-9)

	_, err = NewGasStationService(server.URL, "instant").GetGasPrice(context.Background())
	assert.Error(t, err)
}

func TestGetGasPriceUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewGasStationService(server.URL, "fast").GetGasPrice(context.Background())
	assert.ErrorContains(t, err, "502")
}
