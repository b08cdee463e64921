package models

import (
	"github.com/ethereum/go-ethereum/common"
	decimal "github.com/sdcoffey/big"
	"math/big"
	"time"
)

type MarketImpact struct {
	Percent decimal.Decimal `json:"percent"`
	Error   TradeError      `json:"error"`
}

// Quote is one computed ticket: the fill plan for a requested size against a given book version
type Quote struct {
	ID          string          `json:"id"`
	Instrument  common.Address  `json:"instrument"`
	Side        OrderSide       `json:"side"`
	Amount      *big.Int        `json:"amount"`
	Plan        FillPlan        `json:"plan"`
	Impact      MarketImpact    `json:"impact"`
	GasPrice    decimal.Decimal `json:"gasPrice"`
	NativePrice decimal.Decimal `json:"nativePrice"`
	BookVersion uint64          `json:"bookVersion"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Total returns the quote asset cost of a buy or the proceeds of a sell
func (q Quote) Total() *big.Int {
	if q.Side == BUY {
		return q.Plan.SumInput
	}
	return q.Plan.SumOutput
}

// Advisory returns the most relevant non fatal error of the quote
func (q Quote) Advisory() TradeError {
	if q.Plan.Error != NoError {
		return q.Plan.Error
	}
	return q.Impact.Error
}

// QuoteSummary is the flat, string encoded form of a quote used on the wire and in exports.
// Amounts stay in base units.
type QuoteSummary struct {
	ID            string   `json:"id" csv:"id"`
	Instrument    string   `json:"instrument" csv:"instrument"`
	Side          string   `json:"side" csv:"side"`
	Amount        string   `json:"amount" csv:"amount"`
	Total         string   `json:"total" csv:"total"`
	OrderCount    int      `json:"orderCount" csv:"order_count"`
	Amounts       []string `json:"amounts" csv:"-"`
	ProtocolFee   string   `json:"protocolFee" csv:"protocol_fee"`
	ImpactPercent string   `json:"impactPercent" csv:"impact_pct"`
	Advisory      string   `json:"advisory" csv:"advisory"`
	GasPrice      string   `json:"gasPrice" csv:"gas_price"`
	NativePrice   string   `json:"nativePrice" csv:"native_price"`
	BookVersion   uint64   `json:"bookVersion" csv:"book_version"`
	CreatedAt     string   `json:"createdAt" csv:"created_at"`
}

func (q Quote) Summary() QuoteSummary {
	amounts := make([]string, 0, len(q.Plan.Amounts))
	for _, amount := range q.Plan.Amounts {
		amounts = append(amounts, intString(amount))
	}
	return QuoteSummary{
		ID:            q.ID,
		Instrument:    q.Instrument.Hex(),
		Side:          string(q.Side),
		Amount:        intString(q.Amount),
		Total:         intString(q.Total()),
		OrderCount:    q.Plan.OrderCount(),
		Amounts:       amounts,
		ProtocolFee:   decimalString(q.Plan.EstimatedProtocolFeeUSD, 6),
		ImpactPercent: decimalString(q.Impact.Percent, 4),
		Advisory:      string(q.Advisory()),
		GasPrice:      decimalString(q.GasPrice, 2),
		NativePrice:   decimalString(q.NativePrice, 2),
		BookVersion:   q.BookVersion,
		CreatedAt:     q.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func intString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

func decimalString(d decimal.Decimal, places int) string {
	if d == (decimal.Decimal{}) {
		return decimal.ZERO.FormattedString(places)
	}
	return d.FormattedString(places)
}
