package services

import (
	"context"
	"errors"
	"github.com/ethereum/go-ethereum/common"
	decimal "github.com/sdcoffey/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gitlab.com/aoterocom/AOOptionsTicket/providers/paper"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"math/big"
	"testing"
	"time"
)

var (
	testPair       = zeroex.Pair{BaseDecimals: 8, QuoteDecimals: 6}
	testInstrument = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	testQuoteToken = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

type failingFeed struct{}

func (failingFeed) GetOrderBook(ctx context.Context, instrument common.Address) (models.OrderBook, error) {
	return models.OrderBook{}, errors.New("feed down")
}

func (failingFeed) GetGasPrice(ctx context.Context) (decimal.Decimal, error) {
	return decimal.ZERO, errors.New("feed down")
}

type quoteSink struct {
	recorded  []models.Quote
	published []models.Quote
}

func (s *quoteSink) RecordQuote(quote models.Quote) (uint, error) {
	s.recorded = append(s.recorded, quote)
	return uint(len(s.recorded)), nil
}

func (s *quoteSink) RecentQuotes(limit int) ([]models.Quote, error) {
	return s.recorded, nil
}

func (s *quoteSink) PublishQuote(ctx context.Context, quote models.Quote) error {
	s.published = append(s.published, quote)
	return nil
}

func (s *quoteSink) Close() error {
	return nil
}

func newTicket(t *testing.T) (*TicketService, *OrderBookService, *paper.PaperService) {
	feed := paper.NewPaperService(testQuoteToken, testPair)
	orderBooks := NewOrderBookService(feed, testPair, zeroex.DefaultValidityOptions())
	market := NewMarketService(feed, feed)
	return NewTicketService(orderBooks, market), orderBooks, feed
}

func baseUnits(t *testing.T, amount string) *big.Int {
	units, err := zeroex.ToBaseUnits(amount, testPair.BaseDecimals)
	require.NoError(t, err)
	return units
}

func TestOrderBookServiceStoresValidSortedVersionedBooks(t *testing.T) {
	_, orderBooks, feed := newTicket(t)
	book, err := feed.GetOrderBook(context.Background(), testInstrument)
	require.NoError(t, err)

	expired := book.Asks[0]
	expired.Order.Expiry = time.Now().Unix()
	book.Asks = append([]models.OrderBookEntry{book.Asks[2], expired}, book.Asks[:2]...)

	stored := orderBooks.Store(book)
	assert.Equal(t, uint64(1), stored.Version)
	require.Len(t, stored.Asks, 3)
	assert.InDelta(t, 10.0, zeroex.AskPrice(stored.Asks[0].Order, 8, 6).Float(), 1e-9)
	assert.InDelta(t, 12.0, zeroex.AskPrice(stored.Asks[2].Order, 8, 6).Float(), 1e-9)

	refreshed, err := orderBooks.Refresh(context.Background(), testInstrument)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), refreshed.Version)

	current, ok := orderBooks.OrderBook(testInstrument)
	require.True(t, ok)
	assert.Equal(t, uint64(2), current.Version)

	depth := orderBooks.Depth(testInstrument)
	assert.InDelta(t, 9.5, depth.HigherBidPrice.Float(), 1e-9)
	assert.InDelta(t, 10.0, depth.LowerAskPrice.Float(), 1e-9)
	assert.InDelta(t, 0.5, depth.Spread.Float(), 1e-9)
	assert.InDelta(t, 15.5, depth.Asks.TotalSize.Float(), 1e-9)
}

func TestOrderBookServiceRefreshError(t *testing.T) {
	orderBooks := NewOrderBookService(failingFeed{}, testPair, zeroex.DefaultValidityOptions())
	_, err := orderBooks.Refresh(context.Background(), testInstrument)
	assert.ErrorContains(t, err, "feed down")

	_, ok := orderBooks.OrderBook(testInstrument)
	assert.False(t, ok)
	assert.True(t, orderBooks.Depth(testInstrument).CenterPrice.EQ(decimal.ZERO))
}

func TestMarketServiceReadings(t *testing.T) {
	feed := paper.NewPaperService(testQuoteToken, testPair)
	market := NewMarketService(feed, feed)
	clock := time.Unix(1700000000, 0)
	market.now = func() time.Time { return clock }

	opts, err := market.FeeOptions(context.Background(), 6)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, opts.GasPrice.Float(), 1e-9)
	assert.InDelta(t, 2000.0, opts.NativePrice.Float(), 1e-9)

	feed.GasPrice = decimal.NewFromInt(70)
	require.NoError(t, market.UpdateGasPrice(context.Background()))
	assert.Len(t, market.GasSeries.Candles, 1)
	assert.InDelta(t, 70.0, market.GasPrice().Float(), 1e-9)

	clock = clock.Add(time.Second)
	feed.GasPrice = decimal.NewFromInt(90)
	require.NoError(t, market.UpdateGasPrice(context.Background()))
	assert.Len(t, market.GasSeries.Candles, 2)
	assert.InDelta(t, 80.0, market.GasPriceSMA(2).Float(), 1e-9)
	assert.InDelta(t, 80.0, market.GasPriceSMA(10).Float(), 1e-9)
}

func TestMarketServiceFeedError(t *testing.T) {
	feed := paper.NewPaperService(testQuoteToken, testPair)
	market := NewMarketService(failingFeed{}, feed)
	_, err := market.FeeOptions(context.Background(), 6)
	assert.Error(t, err)
	assert.True(t, market.GasPrice().EQ(decimal.ZERO))
}

func TestTicketQuoteBuy(t *testing.T) {
	ticket, _, _ := newTicket(t)
	sink := &quoteSink{}
	ticket.SetRecorder(sink)
	ticket.SetPublisher(sink)

	quote, err := ticket.Quote(context.Background(), QuoteRequest{Instrument: testInstrument, Side: models.BUY, Amount: baseUnits(t, "1")})
	require.NoError(t, err)

	assert.NotEmpty(t, quote.ID)
	assert.Equal(t, uint64(1), quote.BookVersion)
	assert.Equal(t, models.NoError, quote.Advisory())
	require.Equal(t, 1, quote.Plan.OrderCount())
	assert.Equal(t, big.NewInt(10000000), quote.Total())
	assert.True(t, quote.Impact.Percent.EQ(decimal.ZERO))
	assert.InDelta(t, 7.0, quote.Plan.EstimatedProtocolFeeUSD.Float(), 1e-9)

	assert.Len(t, sink.recorded, 1)
	assert.Len(t, sink.published, 1)
	latest, ok := ticket.LatestQuote(testInstrument, models.BUY)
	require.True(t, ok)
	assert.Equal(t, quote.ID, latest.ID)
}

func TestTicketQuoteAdvisories(t *testing.T) {
	ticket, _, _ := newTicket(t)

	quote, err := ticket.Quote(context.Background(), QuoteRequest{Instrument: testInstrument, Side: models.BUY, Amount: baseUnits(t, "2")})
	require.NoError(t, err)
	require.Equal(t, 1, quote.Plan.OrderCount())
	assert.Equal(t, big.NewInt(21000000), quote.Total())
	assert.Equal(t, models.LargeMarketImpact, quote.Advisory())

	quote, err = ticket.Quote(context.Background(), QuoteRequest{Instrument: testInstrument, Side: models.SELL, Amount: baseUnits(t, "1")})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(9500000), quote.Total())
	assert.Equal(t, models.NoError, quote.Advisory())

	quote, err = ticket.Quote(context.Background(), QuoteRequest{Instrument: testInstrument, Side: models.SELL, Amount: baseUnits(t, "20")})
	require.NoError(t, err)
	assert.Equal(t, models.InsufficientLiquidity, quote.Advisory())
	assert.Equal(t, 0, quote.Plan.OrderCount())
}

func TestTicketQuoteRejectsBadRequests(t *testing.T) {
	ticket, _, _ := newTicket(t)
	_, err := ticket.Quote(context.Background(), QuoteRequest{Instrument: testInstrument, Side: "HOLD", Amount: big.NewInt(1)})
	assert.ErrorIs(t, err, ErrInvalidSide)

	_, err = ticket.Quote(context.Background(), QuoteRequest{Instrument: testInstrument, Side: models.BUY, Amount: big.NewInt(-1)})
	assert.ErrorIs(t, err, zeroex.ErrNegativeAmount)

	_, ok := ticket.LatestQuote(testInstrument, models.BUY)
	assert.False(t, ok)
}

func TestTicketKeepsOnlyTheLatestQuote(t *testing.T) {
	ticket, _, _ := newTicket(t)
	fresh := models.Quote{ID: "fresh", Instrument: testInstrument, Side: models.BUY, BookVersion: 5}
	stale := models.Quote{ID: "stale", Instrument: testInstrument, Side: models.BUY, BookVersion: 4}
	earlier := models.Quote{ID: "earlier", Instrument: testInstrument, Side: models.BUY, BookVersion: 5}

	assert.True(t, ticket.accept(2, fresh))
	assert.False(t, ticket.accept(3, stale))
	assert.False(t, ticket.accept(1, earlier))

	latest, ok := ticket.LatestQuote(testInstrument, models.BUY)
	require.True(t, ok)
	assert.Equal(t, "fresh", latest.ID)

	_, ok = ticket.LatestQuote(testInstrument, models.SELL)
	assert.False(t, ok)
}
