package gasstation

import (
	"context"
	"encoding/json"
	"fmt"
	decimal "github.com/sdcoffey/big"
	"net/http"
	"time"
)

// GasStationService reads the gas price of one speed tier from an ethgasstation style endpoint,
// which reports prices in tenths of gwei
type GasStationService struct {
	httpClient *http.Client
	url        string
	speed      string
}

func NewGasStationService(url string, speed string) *GasStationService {
	return &GasStationService{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        url,
		speed:      speed,
	}
}

func (s *GasStationService) GetGasPrice(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return decimal.ZERO, err
	}

	res, err := s.httpClient.Do(req)
	if err != nil {
		return decimal.ZERO, fmt.Errorf("error fetching gas price: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decimal.ZERO, fmt.Errorf("error fetching gas price: status %d", res.StatusCode)
	}

	var prices map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&prices); err != nil {
		return decimal.ZERO, fmt.Errorf("error decoding gas price: %w", err)
	}

	raw, ok := prices[s.speed]
	if !ok {
		return decimal.ZERO, fmt.Errorf("error: gas speed %q not reported", s.speed)
	}
	var tenths json.Number
	if err := json.Unmarshal(raw, &tenths); err != nil {
		return decimal.ZERO, fmt.Errorf("error decoding gas speed %q: %w", s.speed, err)
	}
	if _, err := tenths.Float64(); err != nil {
		return decimal.ZERO, fmt.Errorf("error decoding gas speed %q: %w", s.speed, err)
	}

	return decimal.NewFromString(tenths.String()).Div(decimal.NewFromInt(10)), nil
}
