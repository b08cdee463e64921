package collateral

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
	"testing"
)

var (
	usdc = models.Token{Symbol: "USDC", Decimals: 6}
	weth = models.Token{Symbol: "WETH", Decimals: 18}
)

func oToken(strike int64, isPut bool) models.OToken {
	collateral := weth
	if isPut {
		collateral = usdc
	}
	return models.OToken{
		Collateral:  collateral,
		StrikePrice: new(big.Int).Mul(big.NewInt(strike), big.NewInt(100000000)),
		IsPut:       isPut,
	}
}

func size(human string) *big.Int {
	rat, _ := new(big.Rat).SetString(human)
	rat.Mul(rat, new(big.Rat).SetInt64(100000000))
	return new(big.Int).Quo(rat.Num(), rat.Denom())
}

func TestSimpleCollateralRequired(t *testing.T) {
	amount, err := SimpleCollateralRequired(oToken(2000, true), size("1.5"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3000000000), amount)

	amount, err = SimpleCollateralRequired(oToken(2000, false), size("1.5"))
	require.NoError(t, err)
	expected, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, expected, amount)
}

func TestSimpleCollateralRoundsUp(t *testing.T) {
	call := oToken(2000, false)
	call.Collateral = usdc
	amount, err := SimpleCollateralRequired(call, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), amount)

	put := oToken(1, true)
	amount, err = SimpleCollateralRequired(put, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), amount)
}

func TestPutSpreadCollateral(t *testing.T) {
	amount, err := SpreadCollateralRequired(oToken(1800, true), oToken(2000, true), size("2"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(400000000), amount)

	amount, err = SpreadCollateralRequired(oToken(2000, true), oToken(1800, true), size("2"))
	require.NoError(t, err)
	assert.Equal(t, 0, amount.Sign())
}

func TestCallSpreadCollateral(t *testing.T) {
	amount, err := SpreadCollateralRequired(oToken(2500, false), oToken(2000, false), size("1"))
	require.NoError(t, err)
	expected, _ := new(big.Int).SetString("200000000000000000", 10)
	assert.Equal(t, expected, amount)

	amount, err = SpreadCollateralRequired(oToken(2000, false), oToken(2500, false), size("1"))
	require.NoError(t, err)
	assert.Equal(t, 0, amount.Sign())

	amount, err = SpreadCollateralRequired(oToken(2000, false), oToken(2000, false), size("1"))
	require.NoError(t, err)
	assert.Equal(t, 0, amount.Sign())
}

func TestCollateralRejectsBadInput(t *testing.T) {
	_, err := SimpleCollateralRequired(models.OToken{}, size("1"))
	assert.ErrorIs(t, err, ErrInvalidOToken)

	_, err = SimpleCollateralRequired(oToken(2000, true), big.NewInt(-1))
	assert.Error(t, err)

	_, err = SpreadCollateralRequired(oToken(2000, true), oToken(2000, false), size("1"))
	assert.ErrorIs(t, err, ErrInvalidOToken)

	huge := oToken(2000, true)
	huge.Collateral.Decimals = 1000000000
	_, err = SimpleCollateralRequired(huge, size("1"))
	assert.ErrorIs(t, err, ErrInvalidOToken)

	_, err = SpreadCollateralRequired(oToken(2000, true), huge, size("1"))
	assert.ErrorIs(t, err, ErrInvalidOToken)

	widest := oToken(2000, true)
	widest.Collateral.Decimals = MaxCollateralDecimals
	_, err = SimpleCollateralRequired(widest, size("1"))
	assert.NoError(t, err)
}
