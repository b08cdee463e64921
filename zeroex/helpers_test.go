package zeroex

import (
	"github.com/ethereum/go-ethereum/common"
	decimal "github.com/sdcoffey/big"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
	"time"
)

var (
	testPair  = Pair{BaseDecimals: 8, QuoteDecimals: 6}
	testNow   = time.Unix(1700000000, 0)
	testOTkn  = common.HexToAddress("0x0b0a1d7f0a6c4d8f3c1c2e1f5d6a7b8c9d0e1f20")
	testUSDC  = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	zeroFees  = FeeOptions{GasPrice: decimal.ZERO, NativePrice: decimal.ZERO, QuoteDecimals: 6}
	smallFees = FeeOptions{GasPrice: decimal.NewFromInt(10), NativePrice: decimal.NewFromInt(1000), QuoteDecimals: 6}
)

func units(amount string, decimals int) *big.Int {
	value, err := ToBaseUnits(amount, decimals)
	if err != nil {
		panic(err)
	}
	return value
}

// notional returns price*size in quote base units
func notional(price string, size string) *big.Int {
	p, _ := new(big.Rat).SetString(price)
	s, _ := new(big.Rat).SetString(size)
	n := new(big.Rat).Mul(p, s)
	n.Mul(n, new(big.Rat).SetInt(pow10(testPair.QuoteDecimals)))
	return new(big.Int).Quo(n.Num(), n.Denom())
}

func newEntry(makerToken, takerToken common.Address, makerAmount, takerAmount *big.Int, salt int64) models.OrderBookEntry {
	return models.OrderBookEntry{
		Order: models.Order{
			MakerToken:          makerToken,
			TakerToken:          takerToken,
			MakerAmount:         makerAmount,
			TakerAmount:         takerAmount,
			TakerTokenFeeAmount: new(big.Int),
			Expiry:              testNow.Add(time.Hour).Unix(),
			Salt:                big.NewInt(salt),
		},
		MetaData: models.OrderMetaData{
			RemainingFillableTakerAmount: new(big.Int).Set(takerAmount),
		},
	}
}

// ask offers size oTokens at price USDC each
func ask(price string, size string) models.OrderBookEntry {
	return newEntry(testOTkn, testUSDC, units(size, testPair.BaseDecimals), notional(price, size), 0)
}

// bid pays price USDC for each of size oTokens
func bid(price string, size string) models.OrderBookEntry {
	return newEntry(testUSDC, testOTkn, notional(price, size), units(size, testPair.BaseDecimals), 0)
}

func sumOf(amounts []*big.Int) *big.Int {
	total := new(big.Int)
	for _, amount := range amounts {
		total.Add(total, amount)
	}
	return total
}
