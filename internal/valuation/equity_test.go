package valuation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/networth-service/internal/models"
	"github.com/trogers1052/networth-service/internal/providers"
)

// mockEquityProvider implements EquityProvider for testing
type mockEquityProvider struct {
	mu         sync.Mutex
	quotes     map[string]float64
	series     map[string][]models.PricePoint
	quoteCalls []string
}

func newMockEquityProvider() *mockEquityProvider {
	return &mockEquityProvider{
		quotes: make(map[string]float64),
		series: make(map[string][]models.PricePoint),
	}
}

func (m *mockEquityProvider) Quote(ctx context.Context, symbol string) (float64, error) {
	m.mu.Lock()
	m.quoteCalls = append(m.quoteCalls, symbol)
	m.mu.Unlock()

	if price, ok := m.quotes[symbol]; ok {
		return price, nil
	}
	return 0, fmt.Errorf("%w: no quote for %s", providers.ErrNotFound, symbol)
}

func (m *mockEquityProvider) DailySeries(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	if points, ok := m.series[symbol]; ok {
		return points, nil
	}
	return nil, fmt.Errorf("%w: no daily series for %s", providers.ErrNotFound, symbol)
}

func (m *mockEquityProvider) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.quoteCalls...)
}

func TestResolveSymbol(t *testing.T) {
	t.Run("returns first candidate with a valid quote", func(t *testing.T) {
		provider := newMockEquityProvider()
		provider.quotes["ABC.BO"] = 150.0

		sym, err := ResolveSymbol(context.Background(), provider, "abc")
		require.NoError(t, err)
		assert.Equal(t, "ABC.BO", sym)
		// NSE and the first BSE variant are tried and fail before .BO hits
		assert.Equal(t, []string{"ABC.NS", "ABC.BSE", "ABC.BO"}, provider.calls())
	})

	t.Run("prefers NSE suffix when available", func(t *testing.T) {
		provider := newMockEquityProvider()
		provider.quotes["ABC.NS"] = 150.0
		provider.quotes["ABC.BO"] = 151.0

		sym, err := ResolveSymbol(context.Background(), provider, "ABC")
		require.NoError(t, err)
		assert.Equal(t, "ABC.NS", sym)
		assert.Equal(t, []string{"ABC.NS"}, provider.calls())
	})

	t.Run("exhausts all four candidates then reports not found", func(t *testing.T) {
		provider := newMockEquityProvider()

		_, err := ResolveSymbol(context.Background(), provider, "abc")
		require.Error(t, err)
		assert.ErrorIs(t, err, providers.ErrNotFound)
		assert.Equal(t, []string{"ABC.NS", "ABC.BSE", "ABC.BO", "ABC"}, provider.calls())
	})
}

func TestNormalizeEquity(t *testing.T) {
	points := []models.PricePoint{
		{Date: "2024-01-01", Price: 100.0},
		{Date: "2024-01-02", Price: 102.0},
		{Date: "2024-01-04", Price: 98.0},
		{Date: "2024-01-05", Price: 110.0},
	}

	t.Run("reference is first trading date on or after purchase date", func(t *testing.T) {
		v := normalizeEquity("abc", "ABC.NS", points, "2024-01-03")

		assert.Equal(t, "ABC", v.Symbol)
		assert.Equal(t, "ABC.NS", v.ExchangeSymbol)
		assert.Equal(t, "2024-01-04", v.StartDate)
		assert.Equal(t, 98.0, v.StartPrice)
		assert.Equal(t, "2024-01-05", v.CurrentDate)
		assert.Equal(t, 110.0, v.CurrentPrice)
		assert.Equal(t, 12.0, v.AbsoluteChange)
		assert.InDelta(t, 12.24, v.PercentChange, 0.001)
		assert.Equal(t, "positive", v.Trend)
		assert.Equal(t, SourceAlphaVantage, v.Source)
	})

	t.Run("falls back to earliest date when none qualifies", func(t *testing.T) {
		v := normalizeEquity("ABC", "ABC.NS", points, "2024-02-01")

		assert.Equal(t, "2024-01-01", v.StartDate)
		assert.Equal(t, 100.0, v.StartPrice)
		assert.Equal(t, 10.0, v.AbsoluteChange)
	})

	t.Run("zero change is classified neutral", func(t *testing.T) {
		flat := []models.PricePoint{
			{Date: "2024-01-01", Price: 50.0},
			{Date: "2024-01-02", Price: 50.0},
		}
		v := normalizeEquity("ABC", "ABC.NS", flat, "2024-01-01")

		assert.Equal(t, 0.0, v.PercentChange)
		assert.Equal(t, "neutral", v.Trend)
	})

	t.Run("negative change is classified negative", func(t *testing.T) {
		down := []models.PricePoint{
			{Date: "2024-01-01", Price: 50.0},
			{Date: "2024-01-02", Price: 40.0},
		}
		v := normalizeEquity("ABC", "ABC.NS", down, "2024-01-01")

		assert.Equal(t, -10.0, v.AbsoluteChange)
		assert.Equal(t, "negative", v.Trend)
	})

	t.Run("history is truncated to the most recent 30 days", func(t *testing.T) {
		long := make([]models.PricePoint, 40)
		for i := range long {
			long[i] = models.PricePoint{
				Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format("2006-01-02"),
				Price: 100.0 + float64(i),
			}
		}
		v := normalizeEquity("ABC", "ABC.NS", long, "2024-01-01")

		require.Len(t, v.PriceHistory, 30)
		assert.Equal(t, long[10].Date, v.PriceHistory[0].Date)
		assert.Equal(t, long[39].Date, v.PriceHistory[29].Date)
		for i := 1; i < len(v.PriceHistory); i++ {
			assert.LessOrEqual(t, v.PriceHistory[i-1].Date, v.PriceHistory[i].Date)
		}
	})
}

func TestFallbackEquity(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	v := fallbackEquity("abc", "2024-01-01", now)

	t.Run("uses the fixed placeholder price pair", func(t *testing.T) {
		assert.Equal(t, 100.0, v.CurrentPrice)
		assert.Equal(t, 95.0, v.StartPrice)
		assert.Equal(t, 5.0, v.AbsoluteChange)
		assert.InDelta(t, 5.26, v.PercentChange, 0.001)
		assert.Equal(t, "positive", v.Trend)
		assert.Equal(t, SourceFallback, v.Source)
	})

	t.Run("identifies the symbol on the NSE variant", func(t *testing.T) {
		assert.Equal(t, "ABC", v.Symbol)
		assert.Equal(t, "ABC.NS", v.ExchangeSymbol)
		assert.Equal(t, "2024-01-01", v.StartDate)
		assert.Equal(t, "2024-06-15", v.CurrentDate)
	})

	t.Run("synthesizes a 30 point chronological ramp", func(t *testing.T) {
		require.Len(t, v.PriceHistory, 30)
		assert.Equal(t, "2024-05-17", v.PriceHistory[0].Date)
		assert.Equal(t, 124.0, v.PriceHistory[0].Price)
		assert.Equal(t, "2024-06-15", v.PriceHistory[29].Date)
		assert.Equal(t, 95.0, v.PriceHistory[29].Price)
		for i := 1; i < len(v.PriceHistory); i++ {
			assert.Less(t, v.PriceHistory[i-1].Date, v.PriceHistory[i].Date)
		}
	})
}
