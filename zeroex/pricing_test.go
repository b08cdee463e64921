package zeroex

import (
	"github.com/stretchr/testify/assert"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
	"testing"
)

func TestBidAndAskPrice(t *testing.T) {
	assert.InDelta(t, 12.5, AskPrice(ask("12.5", "4").Order, 8, 6).Float(), 1e-9)
	assert.InDelta(t, 7.25, BidPrice(bid("7.25", "3").Order, 6, 8).Float(), 1e-9)
}

func TestRemainingMakerAndTakerRoundsDown(t *testing.T) {
	entry := newEntry(testOTkn, testUSDC, big.NewInt(10), big.NewInt(3), 0)
	entry.MetaData.RemainingFillableTakerAmount = big.NewInt(2)

	maker, taker := RemainingMakerAndTaker(entry)
	assert.Equal(t, big.NewInt(6), maker)
	assert.Equal(t, big.NewInt(2), taker)
}

func TestSortAsksIsStableOnTies(t *testing.T) {
	first := newEntry(testOTkn, testUSDC, units("1", 8), notional("10", "1"), 1)
	second := newEntry(testOTkn, testUSDC, units("2", 8), notional("10", "2"), 2)
	cheaper := newEntry(testOTkn, testUSDC, units("1", 8), notional("9", "1"), 3)
	asks := []models.OrderBookEntry{first, second, cheaper}

	sorted := SortAsks(asks, testPair)
	assert.Equal(t, []int64{3, 1, 2}, salts(sorted))
	assert.Equal(t, salts(sorted), salts(SortAsks(asks, testPair)))
	assert.Equal(t, []int64{1, 2, 3}, salts(asks))
}

func TestSortBidsDescending(t *testing.T) {
	low := newEntry(testUSDC, testOTkn, notional("4", "1"), units("1", 8), 1)
	high := newEntry(testUSDC, testOTkn, notional("6", "1"), units("1", 8), 2)
	tie := newEntry(testUSDC, testOTkn, notional("4", "2"), units("2", 8), 3)

	sorted := SortBids([]models.OrderBookEntry{low, high, tie}, testPair)
	assert.Equal(t, []int64{2, 1, 3}, salts(sorted))
}

func TestSummaries(t *testing.T) {
	asks := SummarizeAsks([]models.OrderBookEntry{ask("11", "1"), ask("10", "2.5")}, testPair)
	assert.InDelta(t, 10.0, asks.BestPrice.Float(), 1e-9)
	assert.InDelta(t, 3.5, asks.TotalSize.Float(), 1e-9)
	assert.Equal(t, 2, asks.OrderCount)

	bids := SummarizeBids([]models.OrderBookEntry{bid("8", "1"), bid("9", "2")}, testPair)
	assert.InDelta(t, 9.0, bids.BestPrice.Float(), 1e-9)
	assert.InDelta(t, 3.0, bids.TotalSize.Float(), 1e-9)

	empty := SummarizeBids(nil, testPair)
	assert.Equal(t, 0, empty.OrderCount)
}

func salts(entries []models.OrderBookEntry) []int64 {
	out := make([]int64, len(entries))
	for i, entry := range entries {
		out[i] = entry.Order.Salt.Int64()
	}
	return out
}
