package zrx

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultPerPage = 100

// ZeroExService reads the public 0x orderbook of an instrument against the configured quote token
type ZeroExService struct {
	httpClient *http.Client
	baseURL    string
	quoteToken common.Address
	perPage    int
}

func NewZeroExService(baseURL string, quoteToken common.Address) *ZeroExService {
	return &ZeroExService{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		quoteToken: quoteToken,
		perPage:    defaultPerPage,
	}
}

func (s *ZeroExService) SetHTTPClient(client *http.Client) {
	s.httpClient = client
}

func (s *ZeroExService) GetOrderBook(ctx context.Context, instrument common.Address) (models.OrderBook, error) {
	query := url.Values{}
	query.Set("baseToken", instrument.Hex())
	query.Set("quoteToken", s.quoteToken.Hex())
	query.Set("perPage", strconv.Itoa(s.perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/orderbook?"+query.Encode(), nil)
	if err != nil {
		return models.OrderBook{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return models.OrderBook{}, fmt.Errorf("error fetching 0x orderbook: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return models.OrderBook{}, fmt.Errorf("error fetching 0x orderbook: status %d: %s", res.StatusCode, body)
	}

	var response orderBookResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return models.OrderBook{}, fmt.Errorf("error decoding 0x orderbook: %w", err)
	}

	book := models.NewOrderBook(instrument)
	if book.Bids, err = response.Bids.toEntries(); err != nil {
		return models.OrderBook{}, err
	}
	if book.Asks, err = response.Asks.toEntries(); err != nil {
		return models.OrderBook{}, err
	}
	book.FetchedAt = time.Now()
	return book, nil
}
