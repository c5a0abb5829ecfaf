package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/trogers1052/networth-service/internal/cache"
)

const spotCacheTTL = 5 * time.Minute

// GoldAPIClient fetches the gold spot price (INR per troy ounce) from
// goldapi.io. Authentication is a static token sent as a request header.
type GoldAPIClient struct {
	baseURL string
	token   string
	client  *http.Client
	cache   *cache.Cache
}

// NewGoldAPI creates a goldapi.io client. The cache may be nil.
func NewGoldAPI(baseURL, token string, timeout time.Duration, c *cache.Cache) *GoldAPIClient {
	return &GoldAPIClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		cache:   c,
	}
}

// SpotPrice returns the current gold price in INR per troy ounce.
func (g *GoldAPIClient) SpotPrice(ctx context.Context) (float64, error) {
	if cached, ok := g.cache.Get(ctx, "gold:spot"); ok {
		if price, err := strconv.ParseFloat(cached, 64); err == nil {
			return price, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/XAU/INR", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("x-access-token", g.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: goldapi returned %s", ErrUnavailable, resp.Status)
	}

	var result struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if result.Price <= 0 {
		return 0, fmt.Errorf("%w: non-positive spot price %v", ErrMalformed, result.Price)
	}

	g.cache.Set(ctx, "gold:spot", strconv.FormatFloat(result.Price, 'f', -1, 64), spotCacheTTL)
	return result.Price, nil
}
