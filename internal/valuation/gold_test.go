package valuation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPurityPercent(t *testing.T) {
	t.Run("maps known karat labels", func(t *testing.T) {
		assert.Equal(t, 100.0, PurityPercent("24K"))
		assert.Equal(t, 91.6, PurityPercent("22K"))
		assert.Equal(t, 75.0, PurityPercent("18K"))
		assert.Equal(t, 58.5, PurityPercent("14K"))
	})

	t.Run("unrecognized labels default to pure gold", func(t *testing.T) {
		assert.Equal(t, 100.0, PurityPercent("9K"))
		assert.Equal(t, 100.0, PurityPercent(""))
	})
}

func TestGoldFromSpot(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 30, 45, 0, time.UTC)

	t.Run("converts per ounce to purity adjusted per gram", func(t *testing.T) {
		// 200000 / 31.1035 * 0.916 per gram, times 10 grams
		v := goldFromSpot(200000, 91.6, 10, now)

		assert.Equal(t, 91.6, v.Purity)
		assert.Equal(t, 10.0, v.WeightGrams)
		assert.InDelta(t, 5890.01, v.PricePerGram, 0.001)
		assert.InDelta(t, 58900.12, v.TotalValue, 0.001)
		assert.Equal(t, SourceGoldAPI, v.Source)
		assert.Equal(t, "2024-06-15 12:30:45", v.LastUpdated)
	})

	t.Run("pure gold skips the purity discount", func(t *testing.T) {
		v := goldFromSpot(200000, 100, 10, now)

		assert.InDelta(t, 6430.14, v.PricePerGram, 0.001)
		assert.InDelta(t, 64301.45, v.TotalValue, 0.001)
	})

	t.Run("rounding happens only on reported fields", func(t *testing.T) {
		// total is computed from the unrounded per-gram price
		v := goldFromSpot(200000, 91.6, 1000, now)
		assert.InDelta(t, 5890012.38, v.TotalValue, 0.01)
	})
}

func TestGoldFallback(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 30, 45, 0, time.UTC)

	v := goldFallback(91.6, 10, now)

	// 9400 * 0.916 per gram
	assert.InDelta(t, 8610.4, v.PricePerGram, 0.001)
	assert.InDelta(t, 86104.0, v.TotalValue, 0.001)
	assert.Equal(t, SourceFallback, v.Source)
}
