package zeroex

import (
	decimal "github.com/sdcoffey/big"
	"math/big"
	"strconv"
)

// ProtocolFeeGasPerOrder is the gas the exchange charges as protocol fee for every filled order
const ProtocolFeeGasPerOrder = 70000

const gweiDecimals = 9

// FeeMultiplierPerGwei converts a gas price in gwei into the native token fee of one order
var FeeMultiplierPerGwei = decimal.NewFromInt(ProtocolFeeGasPerOrder).Div(decimal.NewFromString("1e9"))

// FeeOptions carry the live gas price (gwei), the quote currency price of the native token
// and the decimals of the quote asset the plans are summed in.
type FeeOptions struct {
	GasPrice      decimal.Decimal
	NativePrice   decimal.Decimal
	QuoteDecimals int
}

// ProtocolFee returns the native token fee of filling orderCount orders.
// A count below one is charged as one order so an empty plan never displays a free trade.
func ProtocolFee(orderCount int, gasPrice decimal.Decimal) decimal.Decimal {
	if orderCount < 1 {
		orderCount = 1
	}
	return orZero(gasPrice).Mul(FeeMultiplierPerGwei).Mul(decimal.NewFromInt(orderCount))
}

func ProtocolFeeInQuoteCurrency(orderCount int, gasPrice decimal.Decimal, nativePrice decimal.Decimal) decimal.Decimal {
	return ProtocolFee(orderCount, gasPrice).Mul(orZero(nativePrice))
}

// ProtocolFeeInQuoteUnits returns the fee of orderCount orders in quote asset base units.
// roundUp rounds the fraction of a unit up, as a buyer pays it, otherwise it is dropped.
func ProtocolFeeInQuoteUnits(orderCount int, opts FeeOptions, roundUp bool) *big.Int {
	if orderCount < 1 {
		orderCount = 1
	}
	fee := new(big.Rat).SetInt64(int64(ProtocolFeeGasPerOrder) * int64(orderCount))
	fee.Mul(fee, decimalRat(opts.GasPrice))
	fee.Mul(fee, decimalRat(opts.NativePrice))
	fee.Mul(fee, new(big.Rat).SetInt(pow10(opts.QuoteDecimals)))
	fee.Quo(fee, new(big.Rat).SetInt(pow10(gweiDecimals)))
	if fee.Sign() <= 0 {
		return new(big.Int)
	}
	if roundUp {
		return MulDivCeil(fee.Num(), big.NewInt(1), fee.Denom())
	}
	return new(big.Int).Quo(fee.Num(), fee.Denom())
}

func decimalRat(d decimal.Decimal) *big.Rat {
	rat, ok := new(big.Rat).SetString(strconv.FormatFloat(orZero(d).Float(), 'f', -1, 64))
	if !ok {
		return new(big.Rat)
	}
	return rat
}

func (o FeeOptions) planFee(orderCount int) decimal.Decimal {
	return ProtocolFeeInQuoteCurrency(orderCount, o.GasPrice, o.NativePrice)
}
