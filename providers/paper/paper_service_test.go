package paper

import (
	"context"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"testing"
	"time"
)

func TestPaperOrderBookIsValidAndSorted(t *testing.T) {
	pair := zeroex.Pair{BaseDecimals: 8, QuoteDecimals: 6}
	service := NewPaperService(common.HexToAddress("0x02"), pair)
	book, err := service.GetOrderBook(context.Background(), common.HexToAddress("0x01"))
	require.NoError(t, err)

	opts := zeroex.DefaultValidityOptions()
	now := time.Now()
	assert.Len(t, zeroex.FilterValidBids(book.Bids, pair, opts, now), len(book.Bids))
	assert.Len(t, zeroex.FilterValidAsks(book.Asks, pair, opts, now), len(book.Asks))

	assert.InDelta(t, 10.0, zeroex.AskPrice(book.Asks[0].Order, 8, 6).Float(), 1e-9)
	assert.InDelta(t, 9.5, zeroex.BidPrice(book.Bids[0].Order, 6, 8).Float(), 1e-9)
	assert.Equal(t, zeroex.SortAsks(book.Asks, pair), book.Asks)
	assert.NotEqual(t, book.Asks[0].MetaData.OrderHash, book.Asks[1].MetaData.OrderHash)
}
