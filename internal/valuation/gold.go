package valuation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/networth-service/internal/models"
)

const (
	// SourceGoldAPI tags gold valuations built from a live spot price.
	SourceGoldAPI = "goldapi"

	// gramsPerTroyOunce converts precious-metal spot prices, which are
	// quoted per troy ounce, to per-gram.
	gramsPerTroyOunce = 31.1035

	// fallbackGoldPerGram is the assumed pure-gold price per gram used
	// when the spot provider is unreachable.
	fallbackGoldPerGram = 9400.0
)

// purityByKarat maps karat labels onto gold content percentages.
var purityByKarat = map[string]float64{
	"24K": 100,
	"22K": 91.6,
	"18K": 75,
	"14K": 58.5,
}

// PurityPercent returns the gold content percentage for a karat label.
// Unrecognized labels are treated as pure gold.
func PurityPercent(quality string) float64 {
	if purity, ok := purityByKarat[quality]; ok {
		return purity
	}
	return 100
}

// goldFromSpot values a holding from a per-troy-ounce spot price.
func goldFromSpot(perOunce, purity, weightGrams float64, now time.Time) models.GoldValuation {
	perGram := decimal.NewFromFloat(perOunce).Div(decimal.NewFromFloat(gramsPerTroyOunce))
	return goldFromPerGram(perGram, purity, weightGrams, SourceGoldAPI, now)
}

// goldFallback values a holding from the fixed assumed per-gram price.
func goldFallback(purity, weightGrams float64, now time.Time) models.GoldValuation {
	return goldFromPerGram(decimal.NewFromFloat(fallbackGoldPerGram), purity, weightGrams, SourceFallback, now)
}

// goldFromPerGram scales a pure-gold per-gram price by purity and weight.
// Rounding happens only on the reported fields, not mid-computation.
func goldFromPerGram(perGram decimal.Decimal, purity, weightGrams float64, source string, now time.Time) models.GoldValuation {
	adjusted := perGram.Mul(decimal.NewFromFloat(purity)).Div(decimal.NewFromInt(100))
	total := adjusted.Mul(decimal.NewFromFloat(weightGrams))

	return models.GoldValuation{
		Purity:       purity,
		WeightGrams:  weightGrams,
		PricePerGram: round2(adjusted),
		TotalValue:   round2(total),
		LastUpdated:  now.Format("2006-01-02 15:04:05"),
		Source:       source,
	}
}
