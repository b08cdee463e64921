package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"gitlab.com/aoterocom/AOOptionsTicket/helpers"
	"gitlab.com/aoterocom/AOOptionsTicket/interfaces"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"math/big"
	"sync"
	"time"
)

var ErrInvalidSide = errors.New("error: side must be BUY or SELL")

type QuoteRequest struct {
	Instrument common.Address
	Side       models.OrderSide
	Amount     *big.Int
}

type latestQuote struct {
	sequence uint64
	quote    models.Quote
}

// TicketService prices trade tickets against the stored order books and the live fee inputs
type TicketService struct {
	orderBooks    *OrderBookService
	market        *MarketService
	recorder      interfaces.QuoteRecorder
	publisher     interfaces.QuotePublisher
	quoteDecimals int
	latest        map[string]latestQuote
	sequence      uint64
	mutex         *sync.Mutex
	now           func() time.Time
}

func NewTicketService(orderBooks *OrderBookService, market *MarketService) *TicketService {
	return &TicketService{
		orderBooks:    orderBooks,
		market:        market,
		quoteDecimals: orderBooks.Pair().QuoteDecimals,
		latest:        map[string]latestQuote{},
		mutex:         &sync.Mutex{},
		now:           time.Now,
	}
}

func (ts *TicketService) SetRecorder(recorder interfaces.QuoteRecorder) {
	ts.recorder = recorder
}

func (ts *TicketService) SetPublisher(publisher interfaces.QuotePublisher) {
	ts.publisher = publisher
}

// Quote computes the fill plan and market impact of a ticket. Advisories (insufficient liquidity,
// large market impact) are part of the returned quote, only malformed requests return an error.
func (ts *TicketService) Quote(ctx context.Context, request QuoteRequest) (models.Quote, error) {
	if request.Side != models.BUY && request.Side != models.SELL {
		return models.Quote{}, ErrInvalidSide
	}

	ts.mutex.Lock()
	ts.sequence++
	sequence := ts.sequence
	ts.mutex.Unlock()

	book, ok := ts.orderBooks.OrderBook(request.Instrument)
	if !ok {
		var err error
		if book, err = ts.orderBooks.Refresh(ctx, request.Instrument); err != nil {
			return models.Quote{}, err
		}
	}

	fees, err := ts.market.FeeOptions(ctx, ts.quoteDecimals)
	if err != nil {
		return models.Quote{}, fmt.Errorf("error reading fee inputs: %w", err)
	}

	now := ts.now()
	var entries []models.OrderBookEntry
	var plan models.FillPlan
	if request.Side == models.BUY {
		entries = ts.orderBooks.ValidAsks(book, now)
		plan, err = zeroex.SelectOrdersForTargetInput(entries, request.Amount, fees)
	} else {
		entries = ts.orderBooks.ValidBids(book, now)
		plan, err = zeroex.SelectOrdersForTargetOutput(entries, request.Amount, fees)
	}
	if err != nil {
		return models.Quote{}, err
	}

	quote := models.Quote{
		ID:          uuid.NewString(),
		Instrument:  request.Instrument,
		Side:        request.Side,
		Amount:      new(big.Int).Set(request.Amount),
		Plan:        plan,
		GasPrice:    fees.GasPrice,
		NativePrice: fees.NativePrice,
		BookVersion: book.Version,
		CreatedAt:   now,
	}
	quote.Impact = zeroex.EvaluateMarketImpact(zeroex.ImpactInput{
		Action:   request.Side,
		Orders:   entries,
		Amount:   request.Amount,
		Total:    quote.Total(),
		PlanFee:  plan.EstimatedProtocolFeeUSD,
		GasPrice: fees.GasPrice,
		Pair:     ts.orderBooks.Pair(),
	})

	ts.accept(sequence, quote)
	ts.report(ctx, quote)
	return quote, nil
}

// accept keeps the quote as the latest of its instrument and side unless a quote computed on a
// newer snapshot, or requested later on the same snapshot, is already stored
func (ts *TicketService) accept(sequence uint64, quote models.Quote) bool {
	key := latestKey(quote.Instrument, quote.Side)
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	current, ok := ts.latest[key]
	if ok {
		if quote.BookVersion < current.quote.BookVersion {
			return false
		}
		if quote.BookVersion == current.quote.BookVersion && sequence < current.sequence {
			return false
		}
	}
	ts.latest[key] = latestQuote{sequence: sequence, quote: quote}
	return true
}

func (ts *TicketService) LatestQuote(instrument common.Address, side models.OrderSide) (models.Quote, bool) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	latest, ok := ts.latest[latestKey(instrument, side)]
	return latest.quote, ok
}

func (ts *TicketService) report(ctx context.Context, quote models.Quote) {
	switch quote.Advisory() {
	case models.InsufficientLiquidity:
		helpers.Logger.Warnln(fmt.Sprintf("⚠️ Not enough liquidity to %s %s of %s", quote.Side, quote.Amount.String(),
			quote.Instrument.Hex()))
	case models.LargeMarketImpact:
		helpers.Logger.Warnln(fmt.Sprintf("⚠️ %s %s of %s moves the price %s%%", quote.Side, quote.Amount.String(),
			quote.Instrument.Hex(), quote.Impact.Percent.FormattedString(2)))
	default:
		helpers.Logger.Debugln(fmt.Sprintf("quote %s: %d orders, total %s", quote.ID, quote.Plan.OrderCount(),
			quote.Total().String()))
	}

	if ts.recorder != nil {
		if _, err := ts.recorder.RecordQuote(quote); err != nil {
			helpers.Logger.Errorln("recording quote: " + err.Error())
		}
	}
	if ts.publisher != nil {
		if err := ts.publisher.PublishQuote(ctx, quote); err != nil {
			helpers.Logger.Errorln("publishing quote: " + err.Error())
		}
	}
}

func latestKey(instrument common.Address, side models.OrderSide) string {
	return instrument.Hex() + "/" + string(side)
}
