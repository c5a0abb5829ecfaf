package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/trogers1052/networth-service/internal/cache"
	"github.com/trogers1052/networth-service/internal/models"
)

const (
	quoteCacheTTL  = 5 * time.Minute
	seriesCacheTTL = 1 * time.Hour
)

// AlphaVantageClient fetches equity quotes and daily close series from the
// Alpha Vantage HTTP API. Authentication is a static API key passed as a
// query parameter.
type AlphaVantageClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   *cache.Cache
}

// NewAlphaVantage creates an Alpha Vantage client. The cache may be nil.
func NewAlphaVantage(baseURL, apiKey string, timeout time.Duration, c *cache.Cache) *AlphaVantageClient {
	return &AlphaVantageClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		cache:   c,
	}
}

// alphaVantageResponse covers both the GLOBAL_QUOTE and TIME_SERIES_DAILY
// payload shapes; Alpha Vantage uses numbered field names.
type alphaVantageResponse struct {
	GlobalQuote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
	TimeSeriesDaily map[string]struct {
		Close string `json:"4. close"`
	} `json:"Time Series (Daily)"`
}

// Quote returns the current price for an exchange-qualified symbol.
func (a *AlphaVantageClient) Quote(ctx context.Context, symbol string) (float64, error) {
	cacheKey := fmt.Sprintf("stock:%s:quote", symbol)
	if cached, ok := a.cache.Get(ctx, cacheKey); ok {
		if price, err := strconv.ParseFloat(cached, 64); err == nil {
			return price, nil
		}
	}

	result, err := a.query(ctx, "GLOBAL_QUOTE", symbol, nil)
	if err != nil {
		return 0, err
	}

	if result.GlobalQuote.Price == "" {
		return 0, fmt.Errorf("%w: no quote for %s", ErrNotFound, symbol)
	}
	price, err := strconv.ParseFloat(result.GlobalQuote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: quote price %q for %s", ErrMalformed, result.GlobalQuote.Price, symbol)
	}

	a.cache.Set(ctx, cacheKey, result.GlobalQuote.Price, quoteCacheTTL)
	return price, nil
}

// DailySeries returns the compact daily close series for a symbol, sorted
// chronologically (oldest first).
func (a *AlphaVantageClient) DailySeries(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	cacheKey := fmt.Sprintf("stock:%s:series", symbol)
	if cached, ok := a.cache.Get(ctx, cacheKey); ok {
		var points []models.PricePoint
		if err := json.Unmarshal([]byte(cached), &points); err == nil {
			return points, nil
		}
	}

	result, err := a.query(ctx, "TIME_SERIES_DAILY", symbol, map[string]string{"outputsize": "compact"})
	if err != nil {
		return nil, err
	}

	if len(result.TimeSeriesDaily) == 0 {
		return nil, fmt.Errorf("%w: no daily series for %s", ErrNotFound, symbol)
	}

	points := make([]models.PricePoint, 0, len(result.TimeSeriesDaily))
	for date, day := range result.TimeSeriesDaily {
		price, err := strconv.ParseFloat(day.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: close price %q for %s on %s", ErrMalformed, day.Close, symbol, date)
		}
		points = append(points, models.PricePoint{Date: date, Price: price})
	}
	// Dates are ISO 8601, so lexical order is chronological.
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	if data, err := json.Marshal(points); err == nil {
		a.cache.Set(ctx, cacheKey, string(data), seriesCacheTTL)
	}
	return points, nil
}

func (a *AlphaVantageClient) query(ctx context.Context, function, symbol string, extra map[string]string) (*alphaVantageResponse, error) {
	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", symbol)
	params.Set("apikey", a.apiKey)
	for k, v := range extra {
		params.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: alphavantage returned %s", ErrUnavailable, resp.Status)
	}

	var result alphaVantageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &result, nil
}
