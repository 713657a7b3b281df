package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pharaohvault-be/pkg/metal"
)

var (
	ErrQuotaExceeded = errors.New("monthly API quota exceeded")
	ErrInvalidPrice  = errors.New("invalid price data")
	ErrUpstream      = errors.New("price provider request failed")
)

// Quote is a spot price per troy ounce in USD.
type Quote struct {
	Metal     metal.Metal
	PerOunce  float64
	FetchedAt time.Time
}

type Fetcher interface {
	Fetch(ctx context.Context) ([]Quote, error)
}

// GoldAPIClient reads gold and silver spot prices from a goldapi.io compatible endpoint.
type GoldAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGoldAPIClient(baseURL, apiKey string, timeout time.Duration) *GoldAPIClient {
	return &GoldAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type goldAPIResponse struct {
	PriceGram24k    float64 `json:"price_gram_24k_usd"`
	XagPriceGram24k float64 `json:"xag_price_gram_24k_usd"`
	Error           string  `json:"error"`
}

func (c *GoldAPIClient) Fetch(ctx context.Context) ([]Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/XAU,XAG/USD", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-access-token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		text := string(body)
		if strings.Contains(strings.ToLower(text), "monthly quota") {
			return nil, ErrQuotaExceeded
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, text)
	}

	var data goldAPIResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	if data.Error != "" {
		if strings.Contains(strings.ToLower(data.Error), "monthly quota") {
			return nil, ErrQuotaExceeded
		}
		return nil, fmt.Errorf("%w: %s", ErrUpstream, data.Error)
	}

	gold := metal.ConvertPricePerUnit(data.PriceGram24k, metal.Gram, metal.TroyOunce)
	silver := metal.ConvertPricePerUnit(data.XagPriceGram24k, metal.Gram, metal.TroyOunce)
	if gold <= 0 || silver <= 0 {
		return nil, ErrInvalidPrice
	}

	now := time.Now()
	return []Quote{
		{Metal: metal.Gold, PerOunce: gold, FetchedAt: now},
		{Metal: metal.Silver, PerOunce: silver, FetchedAt: now},
	}, nil
}
