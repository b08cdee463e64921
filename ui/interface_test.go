package ui

import (
	decimal "github.com/sdcoffey/big"
	"github.com/stretchr/testify/assert"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"math/big"
	"testing"
	"time"
)

func TestDepthText(t *testing.T) {
	depth := models.NewMarketDepth()
	depth.Set(
		models.SideSummary{BestPrice: decimal.NewFromString("9.5"), TotalSize: decimal.NewFromInt(17), OrderCount: 3},
		models.SideSummary{BestPrice: decimal.NewFromInt(10), TotalSize: decimal.NewFromString("15.5"), OrderCount: 3},
	)
	text := DepthText(depth)
	assert.Contains(t, text, "Lower Ask: 10.0000 (3 orders)")
	assert.Contains(t, text, "Center Price: 9.7500")
	assert.Contains(t, text, "Spread: 0.5000")
}

func TestFeesText(t *testing.T) {
	text := FeesText(decimal.NewFromInt(50), decimal.NewFromInt(45), decimal.NewFromInt(2000))
	assert.Contains(t, text, "Gas Price: 50.0 gwei")
	assert.Contains(t, text, "Fee per Order: 7.0000")
}

func TestQuoteText(t *testing.T) {
	plan := models.NewEmptyFillPlan(models.InsufficientLiquidity)
	quote := models.Quote{
		Side:   models.SELL,
		Amount: big.NewInt(2000000000),
		Plan:   plan,
		Impact: models.MarketImpact{Percent: decimal.ZERO, Error: models.NoError},
	}
	text := QuoteText(quote, zeroex.Pair{BaseDecimals: 8, QuoteDecimals: 6})
	assert.Contains(t, text, "SELL 20.0000")
	assert.Contains(t, text, "Proceeds: 0.000000")
	assert.Contains(t, text, "Insufficient liquidity")
}

func TestAdvisoriesAreCapped(t *testing.T) {
	ui := &UserInterface{}
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < maxAdvisories+3; i++ {
		ui.addAdvisory(at, string(models.LargeMarketImpact))
	}
	assert.Len(t, ui.advisories, maxAdvisories)
	assert.Equal(t, "10:00:00 LARGE_MARKET_IMPACT", ui.advisories[0])
}
