package binance

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetNativePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		assert.Equal(t, "ETHUSDT", r.URL.Query().Get("symbol"))
		_, _ = w.Write([]byte(`[{"symbol": "ETHUSDT", "price": "2000.50000000"}]`))
	}))
	defer server.Close()

	service := NewBinanceService("", "", "ETHUSDT")
	service.SetBaseURL(server.URL)
	price, err := service.GetNativePrice(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 2000.5, price.Float(), 1e-9)
}

func TestGetNativePriceUnknownSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"symbol": "BTCUSDT", "price": "30000"}]`))
	}))
	defer server.Close()

	service := NewBinanceService("", "", "ETHUSDT")
	service.SetBaseURL(server.URL)
	_, err := service.GetNativePrice(context.Background())
	assert.Error(t, err)
}
