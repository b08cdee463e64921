package zrx

import (
	"context"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
)

const (
	otoken = "0x00000000000000000000000000000000000000a1"
	usdc   = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

const orderBookBody = `{
  "bids": {"total": 1, "page": 1, "perPage": 100, "records": [{
    "order": {
      "maker": "0x00000000000000000000000000000000000000b1",
      "taker": "0x0000000000000000000000000000000000000000",
      "makerToken": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
      "takerToken": "0x00000000000000000000000000000000000000a1",
      "makerAmount": "5000000",
      "takerAmount": "100000000",
      "takerTokenFeeAmount": "0",
      "sender": "0x0000000000000000000000000000000000000000",
      "feeRecipient": "0x0000000000000000000000000000000000000000",
      "pool": "0x0000000000000000000000000000000000000000000000000000000000000000",
      "expiry": "1900000000",
      "salt": "123456789012345678901234567890",
      "chainId": 1,
      "verifyingContract": "0xDef1C0ded9bec7F1a1670819833240f027b25EfF",
      "signature": {"signatureType": 2, "v": 27, "r": "0x01", "s": "0x02"}
    },
    "metaData": {
      "orderHash": "0xabc0000000000000000000000000000000000000000000000000000000000001",
      "remainingFillableTakerAmount": "60000000",
      "createdAt": "2021-03-04T10:11:12.000Z"
    }
  }]},
  "asks": {"total": 0, "page": 1, "perPage": 100, "records": []}
}`

func TestGetOrderBook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orderbook", r.URL.Path)
		assert.Equal(t, common.HexToAddress(otoken).Hex(), r.URL.Query().Get("baseToken"))
		assert.Equal(t, common.HexToAddress(usdc).Hex(), r.URL.Query().Get("quoteToken"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(orderBookBody))
	}))
	defer server.Close()

	service := NewZeroExService(server.URL+"/", common.HexToAddress(usdc))
	book, err := service.GetOrderBook(context.Background(), common.HexToAddress(otoken))
	require.NoError(t, err)

	require.Len(t, book.Bids, 1)
	assert.Empty(t, book.Asks)
	entry := book.Bids[0]
	assert.Equal(t, big.NewInt(5000000), entry.Order.MakerAmount)
	assert.Equal(t, big.NewInt(100000000), entry.Order.TakerAmount)
	assert.Equal(t, big.NewInt(60000000), entry.MetaData.RemainingFillableTakerAmount)
	assert.Equal(t, int64(1900000000), entry.Order.Expiry)
	assert.Equal(t, "123456789012345678901234567890", entry.Order.Salt.String())
	assert.Equal(t, common.HexToAddress(usdc), entry.Order.MakerToken)
	assert.True(t, entry.Order.IsOpen())
	assert.Equal(t, 2021, entry.MetaData.CreatedAt.Year())
	assert.Equal(t, common.HexToAddress(otoken), book.Instrument)
}

func TestGetOrderBookErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("baseToken") == common.HexToAddress(otoken).Hex() {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"bids": {"records": [{"order": {"makerAmount": "1.5", "expiry": "1"}}]}}`))
	}))
	defer server.Close()

	service := NewZeroExService(server.URL, common.HexToAddress(usdc))
	_, err := service.GetOrderBook(context.Background(), common.HexToAddress(otoken))
	assert.ErrorContains(t, err, "429")

	_, err = service.GetOrderBook(context.Background(), common.HexToAddress("0x01"))
	assert.ErrorContains(t, err, "makerAmount")
}
