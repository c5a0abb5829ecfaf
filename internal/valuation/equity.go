package valuation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/networth-service/internal/models"
	"github.com/trogers1052/networth-service/internal/providers"
)

const (
	// SourceAlphaVantage tags valuations built from live market data.
	SourceAlphaVantage = "alphavantage"
	// SourceFallback tags synthetic valuations substituted on provider failure.
	SourceFallback = "fallback"

	historyDays = 30

	fallbackCurrentPrice = 100.0
	fallbackStartPrice   = 95.0
)

// EquityProvider is the slice of the Alpha Vantage client the equity
// valuation path needs.
type EquityProvider interface {
	Quote(ctx context.Context, symbol string) (float64, error)
	DailySeries(ctx context.Context, symbol string) ([]models.PricePoint, error)
}

// candidateSymbols returns the exchange-qualified symbol variants to try
// for a bare ticker: NSE suffix, both BSE suffixes, then the plain
// uppercase symbol as last resort.
func candidateSymbols(ticker string) []string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	return []string{t + ".NS", t + ".BSE", t + ".BO", t}
}

// ResolveSymbol tries each candidate symbol against the provider until one
// yields a valid quote. Candidates are never retried; after the last one
// fails the ticker is reported as not found.
func ResolveSymbol(ctx context.Context, p EquityProvider, ticker string) (string, error) {
	for _, sym := range candidateSymbols(ticker) {
		if _, err := p.Quote(ctx, sym); err == nil {
			return sym, nil
		}
	}
	return "", fmt.Errorf("%w: no exchange symbol for %s", providers.ErrNotFound, ticker)
}

// normalizeEquity converts a chronological daily close series into the
// normalized valuation record. The current price is the most recent close;
// the reference price is the first close on or after the purchase date,
// falling back to the earliest close when none qualifies.
func normalizeEquity(ticker, exchangeSymbol string, points []models.PricePoint, purchaseDate string) models.EquityValuation {
	current := points[len(points)-1]

	reference := points[0]
	// Dates are ISO 8601, so lexical comparison is chronological.
	for _, p := range points {
		if p.Date >= purchaseDate {
			reference = p
			break
		}
	}

	cur := decimal.NewFromFloat(current.Price)
	ref := decimal.NewFromFloat(reference.Price)
	change := cur.Sub(ref)
	percent := decimal.Zero
	if !ref.IsZero() {
		percent = change.Div(ref).Mul(decimal.NewFromInt(100))
	}

	history := points
	if len(history) > historyDays {
		history = history[len(history)-historyDays:]
	}
	trimmed := make([]models.PricePoint, len(history))
	for i, p := range history {
		trimmed[i] = models.PricePoint{Date: p.Date, Price: round2(decimal.NewFromFloat(p.Price))}
	}

	return models.EquityValuation{
		Symbol:         strings.ToUpper(ticker),
		ExchangeSymbol: exchangeSymbol,
		CurrentPrice:   round2(cur),
		StartPrice:     round2(ref),
		AbsoluteChange: round2(change),
		PercentChange:  round2(percent),
		Trend:          classifyTrend(percent),
		StartDate:      reference.Date,
		CurrentDate:    current.Date,
		PriceHistory:   trimmed,
		Source:         SourceAlphaVantage,
	}
}

// classifyTrend maps the percent change onto positive/negative/neutral,
// with zero change classified as neutral.
func classifyTrend(percent decimal.Decimal) string {
	switch percent.Sign() {
	case 1:
		return "positive"
	case -1:
		return "negative"
	default:
		return "neutral"
	}
}

// fallbackEquity synthesizes a placeholder valuation with a fixed price
// pair and a 30-point linear-ramp history declining to the placeholder
// current-day price, clearly tagged as non-market data.
func fallbackEquity(ticker, purchaseDate string, now time.Time) models.EquityValuation {
	t := strings.ToUpper(strings.TrimSpace(ticker))

	history := make([]models.PricePoint, historyDays)
	for i := 0; i < historyDays; i++ {
		daysAgo := historyDays - 1 - i
		history[i] = models.PricePoint{
			Date:  now.AddDate(0, 0, -daysAgo).Format("2006-01-02"),
			Price: fallbackStartPrice + float64(daysAgo),
		}
	}

	cur := decimal.NewFromFloat(fallbackCurrentPrice)
	ref := decimal.NewFromFloat(fallbackStartPrice)
	change := cur.Sub(ref)
	percent := change.Div(ref).Mul(decimal.NewFromInt(100))

	return models.EquityValuation{
		Symbol:         t,
		ExchangeSymbol: t + ".NS",
		CurrentPrice:   fallbackCurrentPrice,
		StartPrice:     fallbackStartPrice,
		AbsoluteChange: round2(change),
		PercentChange:  round2(percent),
		Trend:          classifyTrend(percent),
		StartDate:      purchaseDate,
		CurrentDate:    now.Format("2006-01-02"),
		PriceHistory:   history,
		Source:         SourceFallback,
	}
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
