package services

import (
	"context"
	"fmt"
	decimal "github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"gitlab.com/aoterocom/AOOptionsTicket/helpers"
	"gitlab.com/aoterocom/AOOptionsTicket/interfaces"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"sync"
	"time"
)

// MarketService tracks the gas price and the native token price in two time series
type MarketService struct {
	gasProvider   interfaces.GasPriceProvider
	priceProvider interfaces.PriceProvider
	GasSeries     *techan.TimeSeries
	PriceSeries   *techan.TimeSeries
	mutex         *sync.RWMutex
	now           func() time.Time
}

func NewMarketService(gasProvider interfaces.GasPriceProvider, priceProvider interfaces.PriceProvider) *MarketService {
	return &MarketService{
		gasProvider:   gasProvider,
		priceProvider: priceProvider,
		GasSeries:     techan.NewTimeSeries(),
		PriceSeries:   techan.NewTimeSeries(),
		mutex:         &sync.RWMutex{},
		now:           time.Now,
	}
}

func (ms *MarketService) UpdateGasPrice(ctx context.Context) error {
	gasPrice, err := ms.gasProvider.GetGasPrice(ctx)
	if err != nil {
		return err
	}
	ms.appendReading(ms.GasSeries, gasPrice)
	return nil
}

func (ms *MarketService) UpdateNativePrice(ctx context.Context) error {
	nativePrice, err := ms.priceProvider.GetNativePrice(ctx)
	if err != nil {
		return err
	}
	ms.appendReading(ms.PriceSeries, nativePrice)
	return nil
}

// appendReading stores a reading as a one second candle; a reading within the last candle overwrites it
func (ms *MarketService) appendReading(series *techan.TimeSeries, value decimal.Decimal) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	candle := techan.NewCandle(techan.NewTimePeriod(ms.now().Truncate(time.Second), time.Second))
	candle.OpenPrice = value
	candle.ClosePrice = value
	candle.MaxPrice = value
	candle.MinPrice = value
	if !series.AddCandle(candle) {
		series.LastCandle().ClosePrice = value
	}
}

func (ms *MarketService) GasPrice() decimal.Decimal {
	return ms.last(ms.GasSeries)
}

func (ms *MarketService) NativePrice() decimal.Decimal {
	return ms.last(ms.PriceSeries)
}

func (ms *MarketService) last(series *techan.TimeSeries) decimal.Decimal {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	if len(series.Candles) == 0 {
		return decimal.ZERO
	}
	return series.LastCandle().ClosePrice
}

// GasPriceSMA averages the last window gas readings
func (ms *MarketService) GasPriceSMA(window int) decimal.Decimal {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	if len(ms.GasSeries.Candles) == 0 || window < 1 {
		return decimal.ZERO
	}
	if window > len(ms.GasSeries.Candles) {
		window = len(ms.GasSeries.Candles)
	}
	sma := techan.NewSimpleMovingAverage(techan.NewClosePriceIndicator(ms.GasSeries), window)
	return sma.Calculate(ms.GasSeries.LastIndex())
}

func (ms *MarketService) hasReadings() bool {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	return len(ms.GasSeries.Candles) > 0 && len(ms.PriceSeries.Candles) > 0
}

// FeeOptions returns the fee inputs of the optimizer, fetching both readings first if none exist yet
func (ms *MarketService) FeeOptions(ctx context.Context, quoteDecimals int) (zeroex.FeeOptions, error) {
	if !ms.hasReadings() {
		if err := ms.UpdateGasPrice(ctx); err != nil {
			return zeroex.FeeOptions{}, err
		}
		if err := ms.UpdateNativePrice(ctx); err != nil {
			return zeroex.FeeOptions{}, err
		}
	}
	return zeroex.FeeOptions{
		GasPrice:      ms.GasPrice(),
		NativePrice:   ms.NativePrice(),
		QuoteDecimals: quoteDecimals,
	}, nil
}

// StartMonitor polls gas and native price on independent tickers until the context is done
func (ms *MarketService) StartMonitor(ctx context.Context, gasInterval time.Duration, priceInterval time.Duration) {
	go ms.poll(ctx, "gas price", gasInterval, ms.UpdateGasPrice)
	go ms.poll(ctx, "native price", priceInterval, ms.UpdateNativePrice)
}

func (ms *MarketService) poll(ctx context.Context, name string, interval time.Duration, update func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := update(ctx); err != nil {
			helpers.Logger.Errorln(fmt.Sprintf("%s: %s", name, err.Error()))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
