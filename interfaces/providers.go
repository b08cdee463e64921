package interfaces

import (
	"context"
	"github.com/ethereum/go-ethereum/common"
	decimal "github.com/sdcoffey/big"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"math/big"
)

type (
	// OrderBookProvider fetches the resting 0x orders of an instrument against the quote asset
	OrderBookProvider interface {
		GetOrderBook(ctx context.Context, instrument common.Address) (models.OrderBook, error)
	}

	// GasPriceProvider returns the gas price in gwei for the configured speed
	GasPriceProvider interface {
		GetGasPrice(ctx context.Context) (decimal.Decimal, error)
	}

	// PriceProvider returns the price of the native token in the quote currency
	PriceProvider interface {
		GetNativePrice(ctx context.Context) (decimal.Decimal, error)
	}

	MarginCalculator interface {
		NakedMarginRequired(ctx context.Context, otoken models.OToken, shortAmount *big.Int,
			underlyingPrice *big.Int, shortExpiry int64, collateralDecimals int) (*big.Int, error)
	}
)
