package collateral

import (
	"errors"
	"fmt"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"math/big"
)

var ErrInvalidOToken = errors.New("error: invalid oToken")

// MaxCollateralDecimals is the largest collateral asset precision accepted
const MaxCollateralDecimals = 36

func pow10(decimals int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

func validate(otoken models.OToken, size *big.Int) error {
	if otoken.StrikePrice == nil || otoken.StrikePrice.Sign() <= 0 {
		return fmt.Errorf("%w: strike price must be positive", ErrInvalidOToken)
	}
	if otoken.Collateral.Decimals < 0 || otoken.Collateral.Decimals > MaxCollateralDecimals {
		return fmt.Errorf("%w: collateral decimals must be between 0 and %d", ErrInvalidOToken, MaxCollateralDecimals)
	}
	if size == nil {
		return zeroex.ErrNilAmount
	}
	if size.Sign() < 0 {
		return zeroex.ErrNegativeAmount
	}
	return nil
}

// SimpleCollateralRequired returns the collateral, in collateral asset base units, needed to mint
// shortSize oTokens. Puts lock strike × size, calls lock size of the underlying.
func SimpleCollateralRequired(otoken models.OToken, shortSize *big.Int) (*big.Int, error) {
	if err := validate(otoken, shortSize); err != nil {
		return nil, err
	}
	scale := pow10(otoken.Collateral.Decimals)
	if otoken.IsPut {
		notional := new(big.Int).Mul(otoken.StrikePrice, shortSize)
		return zeroex.MulDivCeil(notional, scale, pow10(2*models.OTokenDecimals)), nil
	}
	return zeroex.MulDivCeil(shortSize, scale, pow10(models.OTokenDecimals)), nil
}

// SpreadCollateralRequired returns the collateral needed to short spreadSize of shortOToken while
// holding the same amount of longOToken. Put spreads only need collateral when the short strike is
// above the long one, call spreads when it is at or below.
func SpreadCollateralRequired(longOToken models.OToken, shortOToken models.OToken, spreadSize *big.Int) (*big.Int, error) {
	if err := validate(longOToken, spreadSize); err != nil {
		return nil, err
	}
	if err := validate(shortOToken, spreadSize); err != nil {
		return nil, err
	}
	if longOToken.IsPut != shortOToken.IsPut {
		return nil, fmt.Errorf("%w: spread legs must both be puts or both be calls", ErrInvalidOToken)
	}

	scale := pow10(shortOToken.Collateral.Decimals)
	if shortOToken.IsPut {
		if shortOToken.StrikePrice.Cmp(longOToken.StrikePrice) <= 0 {
			return new(big.Int), nil
		}
		delta := new(big.Int).Sub(shortOToken.StrikePrice, longOToken.StrikePrice)
		return zeroex.MulDivCeil(new(big.Int).Mul(spreadSize, delta), scale, pow10(2*models.OTokenDecimals)), nil
	}

	if shortOToken.StrikePrice.Cmp(longOToken.StrikePrice) > 0 {
		return new(big.Int), nil
	}
	delta := new(big.Int).Sub(longOToken.StrikePrice, shortOToken.StrikePrice)
	denominator := new(big.Int).Mul(pow10(models.OTokenDecimals), longOToken.StrikePrice)
	return zeroex.MulDivCeil(new(big.Int).Mul(spreadSize, delta), scale, denominator), nil
}
