package models

import (
	"github.com/ethereum/go-ethereum/common"
	"math/big"
	"time"
)

type OrderMetaData struct {
	OrderHash                    common.Hash `json:"orderHash"`
	RemainingFillableTakerAmount *big.Int    `json:"remainingFillableTakerAmount"`
	CreatedAt                    time.Time   `json:"createdAt"`
}

// OrderBookEntry is one resting order plus what is still fillable on it
type OrderBookEntry struct {
	Order    Order         `json:"order"`
	MetaData OrderMetaData `json:"metaData"`
}

// OrderBook is a snapshot of one instrument's resting orders. Bids are orders whose maker
// offers the quote asset, asks are orders whose maker offers the base asset (the oToken).
type OrderBook struct {
	Instrument common.Address   `json:"instrument"`
	Bids       []OrderBookEntry `json:"bids"`
	Asks       []OrderBookEntry `json:"asks"`
	Version    uint64           `json:"version"`
	FetchedAt  time.Time        `json:"fetchedAt"`
}

func NewOrderBook(instrument common.Address) OrderBook {
	return OrderBook{Instrument: instrument}
}

// Orders returns the raw signed orders of a list of entries, in the same order
func Orders(entries []OrderBookEntry) []Order {
	orders := make([]Order, 0, len(entries))
	for _, entry := range entries {
		orders = append(orders, entry.Order)
	}
	return orders
}
