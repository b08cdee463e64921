package zeroex

import (
	"errors"
	"fmt"
	decimal "github.com/sdcoffey/big"
	"math/big"
	"strings"
)

var (
	ErrNilAmount      = errors.New("error: amount is required")
	ErrNegativeAmount = errors.New("error: negative amount")
	ErrInvalidOrder   = errors.New("error: invalid order")
)

// Pair holds the decimals of the traded (base) asset and of the asset it is priced in (quote)
type Pair struct {
	BaseDecimals  int `json:"baseDecimals"`
	QuoteDecimals int `json:"quoteDecimals"`
}

func pow10(decimals int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// Humanize converts an integer amount of base units into a decimal amount of tokens
func Humanize(amount *big.Int, decimals int) decimal.Decimal {
	if amount == nil {
		return decimal.ZERO
	}
	return decimal.NewFromString(amount.String()).Div(decimal.NewFromString(pow10(decimals).String()))
}

// ToBaseUnits parses a decimal token amount ("1.5") into base units, truncating extra precision
func ToBaseUnits(amount string, decimals int) (*big.Int, error) {
	rat, ok := new(big.Rat).SetString(strings.TrimSpace(amount))
	if !ok {
		return nil, fmt.Errorf("error: invalid amount %q", amount)
	}
	if rat.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	rat.Mul(rat, new(big.Rat).SetInt(pow10(decimals)))
	return new(big.Int).Quo(rat.Num(), rat.Denom()), nil
}

// MulDivFloor returns a*b/c rounded down. Operands are expected non negative.
func MulDivFloor(a, b, c *big.Int) *big.Int {
	return new(big.Int).Quo(new(big.Int).Mul(a, b), c)
}

// MulDivCeil returns a*b/c rounded up. Operands are expected non negative.
func MulDivCeil(a, b, c *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(new(big.Int).Mul(a, b), c, new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

func minInt(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}

func isZeroOrNil(amount *big.Int) bool {
	return amount == nil || amount.Sign() == 0
}

func orZero(d decimal.Decimal) decimal.Decimal {
	if d == (decimal.Decimal{}) {
		return decimal.ZERO
	}
	return d
}
