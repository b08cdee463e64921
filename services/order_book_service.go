package services

import (
	"context"
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/aoterocom/AOOptionsTicket/helpers"
	"gitlab.com/aoterocom/AOOptionsTicket/interfaces"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"sync"
	"time"
)

// OrderBookService keeps the latest valid, price sorted snapshot of every watched instrument.
// Each stored snapshot gets a new version, higher than any version handed out before.
type OrderBookService struct {
	provider interfaces.OrderBookProvider
	pair     zeroex.Pair
	validity zeroex.ValidityOptions
	books    map[common.Address]models.OrderBook
	version  uint64
	mutex    *sync.RWMutex
	now      func() time.Time
}

func NewOrderBookService(provider interfaces.OrderBookProvider, pair zeroex.Pair, validity zeroex.ValidityOptions) *OrderBookService {
	return &OrderBookService{
		provider: provider,
		pair:     pair,
		validity: validity,
		books:    map[common.Address]models.OrderBook{},
		mutex:    &sync.RWMutex{},
		now:      time.Now,
	}
}

func (ob *OrderBookService) Pair() zeroex.Pair {
	return ob.pair
}

// Refresh fetches the instrument's book from the feed and stores it
func (ob *OrderBookService) Refresh(ctx context.Context, instrument common.Address) (models.OrderBook, error) {
	book, err := ob.provider.GetOrderBook(ctx, instrument)
	if err != nil {
		return models.OrderBook{}, fmt.Errorf("error refreshing order book %s: %w", instrument.Hex(), err)
	}
	book.Instrument = instrument
	return ob.Store(book), nil
}

// Store drops the invalid orders of a snapshot, sorts both sides best price first and versions it
func (ob *OrderBookService) Store(book models.OrderBook) models.OrderBook {
	now := ob.now()
	book.Bids = zeroex.SortBids(zeroex.FilterValidBids(book.Bids, ob.pair, ob.validity, now), ob.pair)
	book.Asks = zeroex.SortAsks(zeroex.FilterValidAsks(book.Asks, ob.pair, ob.validity, now), ob.pair)
	if book.FetchedAt.IsZero() {
		book.FetchedAt = now
	}

	ob.mutex.Lock()
	ob.version++
	book.Version = ob.version
	ob.books[book.Instrument] = book
	ob.mutex.Unlock()
	return book
}

func (ob *OrderBookService) OrderBook(instrument common.Address) (models.OrderBook, bool) {
	ob.mutex.RLock()
	defer ob.mutex.RUnlock()
	book, ok := ob.books[instrument]
	return book, ok
}

// ValidBids returns the stored bids still valid at the given time, best first
func (ob *OrderBookService) ValidBids(book models.OrderBook, now time.Time) []models.OrderBookEntry {
	return zeroex.FilterValidBids(book.Bids, ob.pair, ob.validity, now)
}

func (ob *OrderBookService) ValidAsks(book models.OrderBook, now time.Time) []models.OrderBookEntry {
	return zeroex.FilterValidAsks(book.Asks, ob.pair, ob.validity, now)
}

func (ob *OrderBookService) Depth(instrument common.Address) models.MarketDepth {
	depth := models.NewMarketDepth()
	book, ok := ob.OrderBook(instrument)
	if !ok {
		return depth
	}
	depth.Set(zeroex.SummarizeBids(book.Bids, ob.pair), zeroex.SummarizeAsks(book.Asks, ob.pair))
	return depth
}

// StartMonitor refreshes the instrument on every tick until the context is done
func (ob *OrderBookService) StartMonitor(ctx context.Context, instrument common.Address, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		ob.monitorTick(ctx, instrument)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ob.monitorTick(ctx, instrument)
			}
		}
	}()
}

func (ob *OrderBookService) monitorTick(ctx context.Context, instrument common.Address) {
	defer func() {
		if r := recover(); r != nil {
			helpers.Logger.Errorln(fmt.Sprintf("order book monitor %s recovered: %v", instrument.Hex(), r))
		}
	}()
	book, err := ob.Refresh(ctx, instrument)
	if err != nil {
		helpers.Logger.Errorln(err.Error())
		return
	}
	helpers.Logger.Debugln(fmt.Sprintf("order book %s v%d: %d bids, %d asks", instrument.Hex(), book.Version,
		len(book.Bids), len(book.Asks)))
}
