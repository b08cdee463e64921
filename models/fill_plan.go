package models

import (
	decimal "github.com/sdcoffey/big"
	"math/big"
)

// TradeError is an advisory outcome of a ticket computation. None of them is fatal.
type TradeError string

const (
	NoError               TradeError = "NO_ERROR"
	InsufficientLiquidity TradeError = "INSUFFICIENT_LIQUIDITY"
	LargeMarketImpact     TradeError = "LARGE_MARKET_IMPACT"
)

// FillPlan is the set of orders (and per order taker amounts) chosen to fill a ticket.
// SumInput is the quote cost of a buy, SumOutput the quote proceeds of a sell.
type FillPlan struct {
	OrdersToFill            []Order         `json:"ordersToFill"`
	Amounts                 []*big.Int      `json:"amounts"`
	SumInput                *big.Int        `json:"sumInput"`
	SumOutput               *big.Int        `json:"sumOutput"`
	EstimatedProtocolFeeUSD decimal.Decimal `json:"estimatedProtocolFeeUSD"`
	Error                   TradeError      `json:"error"`
}

// NewEmptyFillPlan returns a plan with no orders and zero sums
func NewEmptyFillPlan(tradeError TradeError) FillPlan {
	return FillPlan{
		OrdersToFill:            []Order{},
		Amounts:                 []*big.Int{},
		SumInput:                new(big.Int),
		SumOutput:               new(big.Int),
		EstimatedProtocolFeeUSD: decimal.ZERO,
		Error:                   tradeError,
	}
}

func (p FillPlan) OrderCount() int {
	return len(p.OrdersToFill)
}
