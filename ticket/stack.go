package ticket

import (
	"context"
	"fmt"
	"gitlab.com/aoterocom/AOOptionsTicket/database"
	"gitlab.com/aoterocom/AOOptionsTicket/helpers"
	"gitlab.com/aoterocom/AOOptionsTicket/interfaces"
	"gitlab.com/aoterocom/AOOptionsTicket/providers/binance"
	"gitlab.com/aoterocom/AOOptionsTicket/providers/ethereum"
	"gitlab.com/aoterocom/AOOptionsTicket/providers/gasstation"
	"gitlab.com/aoterocom/AOOptionsTicket/providers/kafka"
	"gitlab.com/aoterocom/AOOptionsTicket/providers/paper"
	"gitlab.com/aoterocom/AOOptionsTicket/providers/zrx"
	"gitlab.com/aoterocom/AOOptionsTicket/services"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
)

// stack holds the wired services of one CLI run
type stack struct {
	cfg        helpers.Config
	pair       zeroex.Pair
	orderBooks *services.OrderBookService
	market     *services.MarketService
	ticket     *services.TicketService
	db         *database.DBService
	publisher  interfaces.QuotePublisher
}

func newStack(cfg helpers.Config, paperMode bool) (*stack, error) {
	pair := zeroex.Pair{BaseDecimals: cfg.BaseDecimals, QuoteDecimals: cfg.QuoteDecimals}
	validity := zeroex.ValidityOptions{MinBidPrice: cfg.MinBidPrice, MaxAskPrice: cfg.MaxAskPrice, MinSize: cfg.MinSize}

	var books interfaces.OrderBookProvider
	var gas interfaces.GasPriceProvider
	var prices interfaces.PriceProvider
	if paperMode {
		feed := paper.NewPaperService(cfg.QuoteToken, pair)
		books, gas, prices = feed, feed, feed
		helpers.Logger.Infoln("📄 Paper mode: using fixed order book and prices")
	} else {
		books = zrx.NewZeroExService(cfg.ZeroExAPIURL, cfg.QuoteToken)
		gas = gasstation.NewGasStationService(cfg.GasStationURL, cfg.GasSpeed)
		prices = binance.NewBinanceService(cfg.BinanceAPIKey, cfg.BinanceSecret, cfg.NativeSymbol)
	}

	s := &stack{cfg: cfg, pair: pair}
	s.orderBooks = services.NewOrderBookService(books, pair, validity)
	s.market = services.NewMarketService(gas, prices)
	s.ticket = services.NewTicketService(s.orderBooks, s.market)

	if cfg.EnableDatabaseRecording {
		db, err := s.database()
		if err != nil {
			return nil, err
		}
		s.ticket.SetRecorder(db)
	}
	if cfg.EnableKafkaPublishing {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("error: enableKafkaPublishing set to true but kafkaBrokers parameter not found")
		}
		s.publisher = kafka.NewQuoteProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		s.ticket.SetPublisher(s.publisher)
	}
	return s, nil
}

func (s *stack) database() (*database.DBService, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := database.NewDBService(s.cfg.DatabaseHost, s.cfg.DatabasePort, s.cfg.DatabaseName,
		s.cfg.DatabaseUser, s.cfg.DatabasePassword)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	s.db = db
	return db, nil
}

func (s *stack) marginCalculator(ctx context.Context, paperMode bool) (interfaces.MarginCalculator, error) {
	if paperMode || s.cfg.RPCURL == "" {
		return paper.NewPaperService(s.cfg.QuoteToken, s.pair), nil
	}
	return ethereum.NewMarginCalculatorService(ctx, s.cfg.RPCURL, s.cfg.MarginCalculatorAddress)
}

func (s *stack) close() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			helpers.Logger.Errorln("closing quote publisher: " + err.Error())
		}
	}
}
