package models

import (
	decimal "github.com/sdcoffey/big"
)

// SideSummary is the best price and total fillable base size of one side of the book
type SideSummary struct {
	BestPrice  decimal.Decimal `json:"bestPrice"`
	TotalSize  decimal.Decimal `json:"totalSize"`
	OrderCount int             `json:"orderCount"`
}

type MarketDepth struct {
	Bids           SideSummary     `json:"bids"`
	Asks           SideSummary     `json:"asks"`
	LowerAskPrice  decimal.Decimal `json:"lowerAskPrice"`
	HigherBidPrice decimal.Decimal `json:"higherBidPrice"`
	Spread         decimal.Decimal `json:"spread"`
	SpreadPct      decimal.Decimal `json:"spreadPct"`
	CenterPrice    decimal.Decimal `json:"centerPrice"`
}

func NewMarketDepth() MarketDepth {
	return MarketDepth{
		LowerAskPrice:  decimal.ZERO,
		HigherBidPrice: decimal.ZERO,
		Spread:         decimal.ZERO,
		SpreadPct:      decimal.ZERO,
		CenterPrice:    decimal.ZERO,
	}
}

// Set stores both side summaries. Spread figures are only derived when both sides have orders.
func (s *MarketDepth) Set(bids SideSummary, asks SideSummary) {
	s.Bids = bids
	s.Asks = asks
	s.LowerAskPrice = asks.BestPrice
	s.HigherBidPrice = bids.BestPrice
	if bids.OrderCount > 0 && asks.OrderCount > 0 {
		s.generateParameters()
	}
}

func (s *MarketDepth) generateParameters() {
	s.Spread = s.LowerAskPrice.Sub(s.HigherBidPrice)
	s.CenterPrice = s.LowerAskPrice.Sub(s.Spread.Div(decimal.NewFromInt(2)))
	if s.CenterPrice.GT(decimal.ZERO) {
		s.SpreadPct = s.Spread.Mul(decimal.NewFromInt(100)).Div(s.CenterPrice)
	}
}
