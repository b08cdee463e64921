package api

import (
	"encoding/json"
	"errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"gitlab.com/aoterocom/AOOptionsTicket/collateral"
	"gitlab.com/aoterocom/AOOptionsTicket/helpers"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gitlab.com/aoterocom/AOOptionsTicket/services"
	"gitlab.com/aoterocom/AOOptionsTicket/zeroex"
	"math/big"
	"net/http"
	"sync/atomic"
	"time"
)

// Server exposes order books, quotes and collateral sizing over JSON
type Server struct {
	ticket       *services.TicketService
	orderBooks   *services.OrderBookService
	router       *mux.Router
	startTime    time.Time
	quotesServed atomic.Int64
}

func NewServer(ticket *services.TicketService, orderBooks *services.OrderBookService) *Server {
	s := &Server{
		ticket:     ticket,
		orderBooks: orderBooks,
		router:     mux.NewRouter(),
		startTime:  time.Now(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/orderbook/{instrument}", s.handleGetOrderBook).Methods("GET")
	api.HandleFunc("/quote", s.handleQuote).Methods("POST")
	api.HandleFunc("/collateral/simple", s.handleSimpleCollateral).Methods("POST")
	api.HandleFunc("/collateral/spread", s.handleSpreadCollateral).Methods("POST")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(address string) error {
	helpers.Logger.Infoln("API listening on " + address)
	return http.ListenAndServe(address, s.router)
}

type level struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

type orderBookResponse struct {
	Instrument string  `json:"instrument"`
	Version    uint64  `json:"version"`
	BestBid    string  `json:"bestBid"`
	BestAsk    string  `json:"bestAsk"`
	Spread     string  `json:"spread"`
	Bids       []level `json:"bids"`
	Asks       []level `json:"asks"`
}

func (s *Server) handleGetOrderBook(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["instrument"]
	if !common.IsHexAddress(raw) {
		respondError(w, http.StatusBadRequest, "instrument must be an address")
		return
	}
	instrument := common.HexToAddress(raw)

	book, ok := s.orderBooks.OrderBook(instrument)
	if !ok {
		var err error
		if book, err = s.orderBooks.Refresh(r.Context(), instrument); err != nil {
			respondError(w, http.StatusBadGateway, err.Error())
			return
		}
	}

	pair := s.orderBooks.Pair()
	depth := s.orderBooks.Depth(instrument)
	response := orderBookResponse{
		Instrument: instrument.Hex(),
		Version:    book.Version,
		BestBid:    depth.HigherBidPrice.FormattedString(pair.QuoteDecimals),
		BestAsk:    depth.LowerAskPrice.FormattedString(pair.QuoteDecimals),
		Spread:     depth.Spread.FormattedString(pair.QuoteDecimals),
		Bids:       []level{},
		Asks:       []level{},
	}
	for _, entry := range book.Bids {
		_, taker := zeroex.RemainingMakerAndTaker(entry)
		response.Bids = append(response.Bids, level{
			Price: zeroex.BidPrice(entry.Order, pair.QuoteDecimals, pair.BaseDecimals).FormattedString(pair.QuoteDecimals),
			Size:  zeroex.Humanize(taker, pair.BaseDecimals).FormattedString(pair.BaseDecimals),
		})
	}
	for _, entry := range book.Asks {
		maker, _ := zeroex.RemainingMakerAndTaker(entry)
		response.Asks = append(response.Asks, level{
			Price: zeroex.AskPrice(entry.Order, pair.BaseDecimals, pair.QuoteDecimals).FormattedString(pair.QuoteDecimals),
			Size:  zeroex.Humanize(maker, pair.BaseDecimals).FormattedString(pair.BaseDecimals),
		})
	}

	respondJSON(w, http.StatusOK, response)
}

type quoteRequest struct {
	Instrument string `json:"instrument"`
	Side       string `json:"side"`
	Amount     string `json:"amount"`
}

type quoteResponse struct {
	models.QuoteSummary
	TotalQuote string `json:"totalQuote"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if !common.IsHexAddress(req.Instrument) {
		respondError(w, http.StatusBadRequest, "instrument must be an address")
		return
	}

	pair := s.orderBooks.Pair()
	amount, err := zeroex.ToBaseUnits(req.Amount, pair.BaseDecimals)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := s.ticket.Quote(r.Context(), services.QuoteRequest{
		Instrument: common.HexToAddress(req.Instrument),
		Side:       models.OrderSide(req.Side),
		Amount:     amount,
	})
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, services.ErrInvalidSide) || errors.Is(err, zeroex.ErrNegativeAmount) ||
			errors.Is(err, zeroex.ErrNilAmount) || errors.Is(err, zeroex.ErrInvalidOrder) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}
	s.quotesServed.Add(1)

	respondJSON(w, http.StatusOK, quoteResponse{
		QuoteSummary: quote.Summary(),
		TotalQuote:   zeroex.Humanize(quote.Total(), pair.QuoteDecimals).FormattedString(pair.QuoteDecimals),
	})
}

type oTokenRequest struct {
	StrikePrice        string `json:"strikePrice"`
	IsPut              bool   `json:"isPut"`
	CollateralDecimals int    `json:"collateralDecimals"`
}

func (o oTokenRequest) toOToken() (models.OToken, error) {
	strike, err := zeroex.ToBaseUnits(o.StrikePrice, models.OTokenDecimals)
	if err != nil {
		return models.OToken{}, err
	}
	return models.OToken{
		StrikePrice: strike,
		IsPut:       o.IsPut,
		Collateral:  models.Token{Decimals: o.CollateralDecimals},
	}, nil
}

type simpleCollateralRequest struct {
	OToken oTokenRequest `json:"otoken"`
	Size   string        `json:"size"`
}

type spreadCollateralRequest struct {
	Long  oTokenRequest `json:"long"`
	Short oTokenRequest `json:"short"`
	Size  string        `json:"size"`
}

type collateralResponse struct {
	Collateral      string `json:"collateral"`
	CollateralHuman string `json:"collateralHuman"`
}

func (s *Server) handleSimpleCollateral(w http.ResponseWriter, r *http.Request) {
	var req simpleCollateralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	otoken, err := req.OToken.toOToken()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := zeroex.ToBaseUnits(req.Size, models.OTokenDecimals)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := collateral.SimpleCollateralRequired(otoken, size)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, newCollateralResponse(amount, otoken.Collateral.Decimals))
}

func (s *Server) handleSpreadCollateral(w http.ResponseWriter, r *http.Request) {
	var req spreadCollateralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	long, err := req.Long.toOToken()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	short, err := req.Short.toOToken()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := zeroex.ToBaseUnits(req.Size, models.OTokenDecimals)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := collateral.SpreadCollateralRequired(long, short, size)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, newCollateralResponse(amount, short.Collateral.Decimals))
}

func newCollateralResponse(amount *big.Int, decimals int) collateralResponse {
	return collateralResponse{
		Collateral:      amount.String(),
		CollateralHuman: zeroex.Humanize(amount, decimals).FormattedString(decimals),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"uptime":       time.Since(s.startTime).String(),
		"quotesServed": s.quotesServed.Load(),
	})
}

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		helpers.Logger.Errorln("api: " + err.Error())
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
