package zeroex

import (
	decimal "github.com/sdcoffey/big"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
)

// LargeImpactPercent is the market impact from which a ticket is flagged to the user
var LargeImpactPercent = decimal.NewFromInt(10)

// ImpactInput describes a computed plan for the market impact evaluation.
// Orders must start with the best priced order; Amount is the requested base size,
// Total the quote cost (buy) or proceeds (sell) of the plan and PlanFee its fee in quote currency.
type ImpactInput struct {
	Action   models.OrderSide
	Orders   []models.OrderBookEntry
	Amount   *big.Int
	Total    *big.Int
	PlanFee  decimal.Decimal
	GasPrice decimal.Decimal
	Pair     Pair
}

// EvaluateMarketImpact measures how far the average price of the part of the ticket not filled
// by the best order lies from the best price.
func EvaluateMarketImpact(input ImpactInput) models.MarketImpact {
	noImpact := models.MarketImpact{Percent: decimal.ZERO, Error: models.NoError}
	if len(input.Orders) == 0 || isZeroOrNil(input.Amount) {
		return noImpact
	}

	best := input.Orders[0]
	var bestPrice, bestPriceSize decimal.Decimal
	if input.Action == models.BUY {
		remainingMaker, _ := RemainingMakerAndTaker(best)
		bestPrice = AskPrice(best.Order, input.Pair.BaseDecimals, input.Pair.QuoteDecimals)
		bestPriceSize = Humanize(remainingMaker, input.Pair.BaseDecimals)
	} else {
		bestPrice = BidPrice(best.Order, input.Pair.QuoteDecimals, input.Pair.BaseDecimals)
		bestPriceSize = Humanize(best.MetaData.RemainingFillableTakerAmount, input.Pair.BaseDecimals)
	}

	requested := Humanize(input.Amount, input.Pair.BaseDecimals)
	if requested.LTE(bestPriceSize) || !bestPrice.GT(decimal.ZERO) {
		return noImpact
	}

	totalInclFee := Humanize(input.Total, input.Pair.QuoteDecimals).Add(orZero(input.PlanFee))
	feeAtBestPrice := orZero(input.GasPrice).Mul(FeeMultiplierPerGwei)
	bestPriceFill := bestPrice.Add(feeAtBestPrice).Mul(bestPriceSize)
	avgPrice := totalInclFee.Sub(bestPriceFill).Div(requested.Sub(bestPriceSize))

	hundred := decimal.NewFromInt(100)
	impact := hundred.Sub(avgPrice.Div(bestPrice).Mul(hundred)).Abs()
	if impact.GTE(LargeImpactPercent) {
		return models.MarketImpact{Percent: impact, Error: models.LargeMarketImpact}
	}
	return models.MarketImpact{Percent: impact, Error: models.NoError}
}
