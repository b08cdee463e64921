package binance

import (
	"context"
	"fmt"
	"github.com/adshao/go-binance/v2"
	decimal "github.com/sdcoffey/big"
)

// BinanceService prices the native token in the quote currency from the Binance spot ticker
type BinanceService struct {
	binanceClient *binance.Client
	symbol        string
}

func NewBinanceService(apiKey string, apiSecret string, symbol string) *BinanceService {
	return &BinanceService{
		binanceClient: binance.NewClient(apiKey, apiSecret),
		symbol:        symbol,
	}
}

func (binanceService *BinanceService) SetBaseURL(url string) {
	binanceService.binanceClient.BaseURL = url
}

func (binanceService *BinanceService) GetNativePrice(ctx context.Context) (decimal.Decimal, error) {
	prices, err := binanceService.binanceClient.NewListPricesService().Symbol(binanceService.symbol).Do(ctx)
	if err != nil {
		return decimal.ZERO, fmt.Errorf("error fetching %s price: %w", binanceService.symbol, err)
	}

	for _, price := range prices {
		if price.Symbol == binanceService.symbol {
			return decimal.NewFromString(price.Price), nil
		}
	}

	return decimal.ZERO, fmt.Errorf("error: symbol %s not found on ticker", binanceService.symbol)
}
