package zeroex

import (
	decimal "github.com/sdcoffey/big"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
	"sort"
)

// BidPrice is the quote paid per base token by a bid: makerAmount (quote) over takerAmount (base)
func BidPrice(order models.Order, quoteDecimals int, baseDecimals int) decimal.Decimal {
	if isZeroOrNil(order.TakerAmount) {
		return decimal.ZERO
	}
	return Humanize(order.MakerAmount, quoteDecimals).Div(Humanize(order.TakerAmount, baseDecimals))
}

// AskPrice is the quote asked per base token by an ask: takerAmount (quote) over makerAmount (base)
func AskPrice(order models.Order, baseDecimals int, quoteDecimals int) decimal.Decimal {
	if isZeroOrNil(order.MakerAmount) {
		return decimal.ZERO
	}
	return Humanize(order.TakerAmount, quoteDecimals).Div(Humanize(order.MakerAmount, baseDecimals))
}

// RemainingMakerAndTaker derives the maker amount still fillable from the remaining taker amount,
// rounding down.
func RemainingMakerAndTaker(entry models.OrderBookEntry) (*big.Int, *big.Int) {
	remainingTaker := entry.MetaData.RemainingFillableTakerAmount
	if remainingTaker == nil || isZeroOrNil(entry.Order.TakerAmount) || entry.Order.MakerAmount == nil {
		return new(big.Int), new(big.Int)
	}
	remainingMaker := MulDivFloor(remainingTaker, entry.Order.MakerAmount, entry.Order.TakerAmount)
	return remainingMaker, new(big.Int).Set(remainingTaker)
}

// SortBids returns a copy of the bids ordered by descending price. Equal prices keep feed order.
func SortBids(entries []models.OrderBookEntry, pair Pair) []models.OrderBookEntry {
	return sortByPrice(entries, func(entry models.OrderBookEntry) decimal.Decimal {
		return BidPrice(entry.Order, pair.QuoteDecimals, pair.BaseDecimals)
	}, true)
}

// SortAsks returns a copy of the asks ordered by ascending price. Equal prices keep feed order.
func SortAsks(entries []models.OrderBookEntry, pair Pair) []models.OrderBookEntry {
	return sortByPrice(entries, func(entry models.OrderBookEntry) decimal.Decimal {
		return AskPrice(entry.Order, pair.BaseDecimals, pair.QuoteDecimals)
	}, false)
}

func sortByPrice(entries []models.OrderBookEntry, price func(models.OrderBookEntry) decimal.Decimal, descending bool) []models.OrderBookEntry {
	type pricedEntry struct {
		entry models.OrderBookEntry
		price decimal.Decimal
	}
	priced := make([]pricedEntry, len(entries))
	for i, entry := range entries {
		priced[i] = pricedEntry{entry: entry, price: price(entry)}
	}
	sort.SliceStable(priced, func(i, j int) bool {
		if descending {
			return priced[i].price.GT(priced[j].price)
		}
		return priced[i].price.LT(priced[j].price)
	})

	sorted := make([]models.OrderBookEntry, len(priced))
	for i, p := range priced {
		sorted[i] = p.entry
	}
	return sorted
}

// SummarizeBids returns the best bid and the total base size the bids can absorb
func SummarizeBids(entries []models.OrderBookEntry, pair Pair) models.SideSummary {
	summary := models.SideSummary{BestPrice: decimal.ZERO, TotalSize: decimal.ZERO}
	for _, entry := range entries {
		price := BidPrice(entry.Order, pair.QuoteDecimals, pair.BaseDecimals)
		if summary.OrderCount == 0 || price.GT(summary.BestPrice) {
			summary.BestPrice = price
		}
		summary.TotalSize = summary.TotalSize.Add(Humanize(entry.MetaData.RemainingFillableTakerAmount, pair.BaseDecimals))
		summary.OrderCount++
	}
	return summary
}

// SummarizeAsks returns the best ask and the total base size the asks offer
func SummarizeAsks(entries []models.OrderBookEntry, pair Pair) models.SideSummary {
	summary := models.SideSummary{BestPrice: decimal.ZERO, TotalSize: decimal.ZERO}
	for _, entry := range entries {
		price := AskPrice(entry.Order, pair.BaseDecimals, pair.QuoteDecimals)
		if summary.OrderCount == 0 || price.LT(summary.BestPrice) {
			summary.BestPrice = price
		}
		remainingMaker, _ := RemainingMakerAndTaker(entry)
		summary.TotalSize = summary.TotalSize.Add(Humanize(remainingMaker, pair.BaseDecimals))
		summary.OrderCount++
	}
	return summary
}
