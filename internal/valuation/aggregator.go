package valuation

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/networth-service/internal/models"
	"github.com/trogers1052/networth-service/internal/providers"
)

const (
	// SourceAMFI tags fund valuations built from the AMFI NAV listing.
	SourceAMFI = "amfi"

	// defaultPurchaseDate is assumed for equity holdings that omit one.
	defaultPurchaseDate = "2024-01-01"

	defaultWorkers         = 4
	defaultProviderTimeout = 10 * time.Second
)

// FundProvider is the slice of the AMFI client the aggregator needs.
type FundProvider interface {
	FindScheme(ctx context.Context, name string) (*providers.Scheme, error)
}

// GoldProvider is the slice of the gold spot client the aggregator needs.
type GoldProvider interface {
	SpotPrice(ctx context.Context) (float64, error)
}

// Config tunes aggregation behavior.
type Config struct {
	// Workers bounds how many holdings are valued concurrently.
	Workers int
	// ProviderTimeout caps the total provider time spent per holding.
	ProviderTimeout time.Duration
	// EquityPolicy and GoldPolicy pick fallback-vs-omit on provider
	// failure. Mutual funds have no synthetic NAV source and are always
	// omitted on failure.
	EquityPolicy FallbackPolicy
	GoldPolicy   FallbackPolicy
}

// Aggregator prices a holdings list across the three asset classes and
// assembles the breakdown report. It holds no per-request state; all
// accumulators are local to a Value call.
type Aggregator struct {
	equity EquityProvider
	funds  FundProvider
	gold   GoldProvider
	cfg    Config
}

// NewAggregator creates an Aggregator with defaults applied to the config.
func NewAggregator(equity EquityProvider, funds FundProvider, gold GoldProvider, cfg Config) *Aggregator {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultProviderTimeout
	}
	return &Aggregator{
		equity: equity,
		funds:  funds,
		gold:   gold,
		cfg:    cfg,
	}
}

// Value prices every holding in the request. Holdings are independent and
// are valued concurrently on a bounded worker pool; results are reassembled
// in input order. Holdings missing required fields are skipped before any
// provider call is made.
func (a *Aggregator) Value(ctx context.Context, req *models.ValuationRequest) (*models.PortfolioReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("valuation aborted: %w", err)
	}

	stockResults := make([]*models.EquityBreakdown, len(req.Stocks))
	fundResults := make([]*models.FundBreakdown, len(req.MutualFunds))
	var goldResult *models.GoldValuation

	sem := make(chan struct{}, a.cfg.Workers)
	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			fn()
		}()
	}

	for i, h := range req.Stocks {
		if h.Ticker == "" || h.Quantity <= 0 {
			log.Printf("Skipping stock holding %d: missing ticker or non-positive quantity", i)
			continue
		}
		run(func() { stockResults[i] = a.valueStock(ctx, h) })
	}

	for i, h := range req.MutualFunds {
		if h.Scheme == "" || h.Quantity <= 0 {
			log.Printf("Skipping fund holding %d: missing scheme or non-positive quantity", i)
			continue
		}
		run(func() { fundResults[i] = a.valueFund(ctx, h) })
	}

	if req.Gold != nil {
		if req.Gold.WeightGrams > 0 {
			h := *req.Gold
			run(func() { goldResult = a.valueGold(ctx, h) })
		} else {
			log.Printf("Skipping gold holding: non-positive weight")
		}
	}

	wg.Wait()

	stocks := models.StockClass{Details: make([]models.EquityBreakdown, 0, len(req.Stocks))}
	stocksTotal := decimal.Zero
	for _, r := range stockResults {
		if r == nil {
			continue
		}
		stocks.Details = append(stocks.Details, *r)
		stocksTotal = stocksTotal.Add(decimal.NewFromFloat(r.TotalValue))
	}
	stocks.Total = round2(stocksTotal)

	funds := models.FundClass{Details: make([]models.FundBreakdown, 0, len(req.MutualFunds))}
	fundsTotal := decimal.Zero
	for _, r := range fundResults {
		if r == nil {
			continue
		}
		funds.Details = append(funds.Details, *r)
		fundsTotal = fundsTotal.Add(decimal.NewFromFloat(r.TotalValue))
	}
	funds.Total = round2(fundsTotal)

	gold := models.GoldClass{Details: make([]models.GoldValuation, 0, 1)}
	goldTotal := decimal.Zero
	if goldResult != nil {
		gold.Details = append(gold.Details, *goldResult)
		goldTotal = decimal.NewFromFloat(goldResult.TotalValue)
	}
	gold.Total = round2(goldTotal)

	return &models.PortfolioReport{
		Success:    true,
		Timestamp:  time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		TotalWorth: round2(stocksTotal.Add(fundsTotal).Add(goldTotal)),
		Breakdown: models.Breakdown{
			Stocks:      stocks,
			MutualFunds: funds,
			Gold:        gold,
		},
	}, nil
}

// Equity prices a single ticker, applying the configured fallback policy.
func (a *Aggregator) Equity(ctx context.Context, ticker, purchaseDate string) (models.EquityValuation, error) {
	cctx, cancel := context.WithTimeout(ctx, a.cfg.ProviderTimeout)
	defer cancel()

	if purchaseDate == "" {
		purchaseDate = defaultPurchaseDate
	}

	v, err := a.equityValuation(cctx, ticker, purchaseDate)
	if err != nil {
		if a.cfg.EquityPolicy == FallbackOmit {
			return models.EquityValuation{}, err
		}
		log.Printf("Using fallback valuation for stock %s: %v", ticker, err)
		return fallbackEquity(ticker, purchaseDate, time.Now()), nil
	}
	return v, nil
}

// Gold prices a single gold holding, applying the configured fallback policy.
func (a *Aggregator) Gold(ctx context.Context, quality string, weightGrams float64) (models.GoldValuation, error) {
	cctx, cancel := context.WithTimeout(ctx, a.cfg.ProviderTimeout)
	defer cancel()

	purity := PurityPercent(quality)
	spot, err := a.gold.SpotPrice(cctx)
	if err != nil {
		if a.cfg.GoldPolicy == FallbackOmit {
			return models.GoldValuation{}, err
		}
		log.Printf("Using fallback gold price: %v", err)
		return goldFallback(purity, weightGrams, time.Now()), nil
	}
	return goldFromSpot(spot, purity, weightGrams, time.Now()), nil
}

func (a *Aggregator) valueStock(ctx context.Context, h models.EquityHolding) *models.EquityBreakdown {
	v, err := a.Equity(ctx, h.Ticker, h.PurchaseDate)
	if err != nil {
		log.Printf("Omitting stock %s: %v", h.Ticker, err)
		return nil
	}

	total := decimal.NewFromFloat(v.CurrentPrice).Mul(decimal.NewFromFloat(h.Quantity))
	return &models.EquityBreakdown{
		EquityValuation: v,
		Quantity:        h.Quantity,
		TotalValue:      round2(total),
	}
}

// equityValuation resolves the exchange symbol, then fetches and
// normalizes the daily series.
func (a *Aggregator) equityValuation(ctx context.Context, ticker, purchaseDate string) (models.EquityValuation, error) {
	sym, err := ResolveSymbol(ctx, a.equity, ticker)
	if err != nil {
		return models.EquityValuation{}, err
	}

	series, err := a.equity.DailySeries(ctx, sym)
	if err != nil {
		return models.EquityValuation{}, err
	}
	if len(series) == 0 {
		return models.EquityValuation{}, fmt.Errorf("%w: empty daily series for %s", providers.ErrNotFound, sym)
	}
	return normalizeEquity(ticker, sym, series, purchaseDate), nil
}

func (a *Aggregator) valueFund(ctx context.Context, h models.FundHolding) *models.FundBreakdown {
	cctx, cancel := context.WithTimeout(ctx, a.cfg.ProviderTimeout)
	defer cancel()

	scheme, err := a.funds.FindScheme(cctx, h.Scheme)
	if err != nil {
		log.Printf("Omitting mutual fund %q: %v", h.Scheme, err)
		return nil
	}

	total := decimal.NewFromFloat(scheme.NAV).Mul(decimal.NewFromFloat(h.Quantity))
	return &models.FundBreakdown{
		FundValuation: models.FundValuation{
			SchemeName: scheme.Name,
			SchemeCode: scheme.Code,
			NAV:        scheme.NAV,
			Date:       scheme.Date,
			Source:     SourceAMFI,
		},
		Quantity:   h.Quantity,
		TotalValue: round2(total),
	}
}

func (a *Aggregator) valueGold(ctx context.Context, h models.GoldHolding) *models.GoldValuation {
	v, err := a.Gold(ctx, h.Quality, h.WeightGrams)
	if err != nil {
		log.Printf("Omitting gold holding: %v", err)
		return nil
	}
	return &v
}
