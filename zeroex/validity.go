package zeroex

import (
	decimal "github.com/sdcoffey/big"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"time"
)

// FillBuffer is the minimum time an order must still live to be worth submitting
const FillBuffer = 62500 * time.Millisecond

// ValidityOptions are the price and dust thresholds an entry has to pass to be displayed or filled.
// MinSize is expressed in base asset tokens.
type ValidityOptions struct {
	MinBidPrice decimal.Decimal
	MaxAskPrice decimal.Decimal
	MinSize     decimal.Decimal
}

func DefaultValidityOptions() ValidityOptions {
	return ValidityOptions{
		MinBidPrice: decimal.NewFromString("0.0001"),
		MaxAskPrice: decimal.NewFromString("99999"),
		MinSize:     decimal.NewFromString("0.0001"),
	}
}

// IsValid checks the entry is open, fee free, not fully filled and far enough from expiry
func IsValid(entry models.OrderBookEntry, now time.Time) bool {
	order := entry.Order
	if time.Unix(order.Expiry, 0).Sub(now) <= FillBuffer {
		return false
	}
	if !order.IsOpen() {
		return false
	}
	if !isZeroOrNil(order.TakerTokenFeeAmount) {
		return false
	}
	remaining := entry.MetaData.RemainingFillableTakerAmount
	return remaining != nil && remaining.Sign() > 0 && !isZeroOrNil(order.MakerAmount) && !isZeroOrNil(order.TakerAmount)
}

// IsValidBid checks a bid (maker gives quote, taker gives base) against the thresholds
func IsValidBid(entry models.OrderBookEntry, pair Pair, opts ValidityOptions, now time.Time) bool {
	if !IsValid(entry, now) {
		return false
	}
	price := BidPrice(entry.Order, pair.QuoteDecimals, pair.BaseDecimals)
	size := Humanize(entry.MetaData.RemainingFillableTakerAmount, pair.BaseDecimals)
	return price.GT(orZero(opts.MinBidPrice)) && size.GT(orZero(opts.MinSize))
}

// IsValidAsk checks an ask (maker gives base, taker gives quote) against the thresholds
func IsValidAsk(entry models.OrderBookEntry, pair Pair, opts ValidityOptions, now time.Time) bool {
	if !IsValid(entry, now) {
		return false
	}
	price := AskPrice(entry.Order, pair.BaseDecimals, pair.QuoteDecimals)
	remainingMaker, _ := RemainingMakerAndTaker(entry)
	size := Humanize(remainingMaker, pair.BaseDecimals)
	return price.LT(orZero(opts.MaxAskPrice)) && size.GT(orZero(opts.MinSize))
}

func FilterValidBids(entries []models.OrderBookEntry, pair Pair, opts ValidityOptions, now time.Time) []models.OrderBookEntry {
	valid := make([]models.OrderBookEntry, 0, len(entries))
	for _, entry := range entries {
		if IsValidBid(entry, pair, opts, now) {
			valid = append(valid, entry)
		}
	}
	return valid
}

func FilterValidAsks(entries []models.OrderBookEntry, pair Pair, opts ValidityOptions, now time.Time) []models.OrderBookEntry {
	valid := make([]models.OrderBookEntry, 0, len(entries))
	for _, entry := range entries {
		if IsValidAsk(entry, pair, opts, now) {
			valid = append(valid, entry)
		}
	}
	return valid
}
