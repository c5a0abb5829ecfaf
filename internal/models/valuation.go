package models

// PricePoint is one (trading date, close price) observation.
// Dates are ISO 8601 (YYYY-MM-DD).
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// EquityValuation is the normalized valuation record for one equity.
// Source is "alphavantage" for live data or "fallback" for the synthetic
// substitute used when every provider attempt failed.
type EquityValuation struct {
	Symbol         string       `json:"symbol"`
	ExchangeSymbol string       `json:"exchange_symbol"`
	CurrentPrice   float64      `json:"current_price"`
	StartPrice     float64      `json:"start_price"`
	AbsoluteChange float64      `json:"absolute_change"`
	PercentChange  float64      `json:"percent_change"`
	Trend          string       `json:"trend"`
	StartDate      string       `json:"start_date"`
	CurrentDate    string       `json:"current_date"`
	PriceHistory   []PricePoint `json:"price_history"`
	Source         string       `json:"source"`
}

// FundValuation is the normalized valuation record for one mutual fund
// scheme. NAV and date are passed through from the registry verbatim.
type FundValuation struct {
	SchemeName string  `json:"scheme_name"`
	SchemeCode string  `json:"scheme_code"`
	NAV        float64 `json:"nav"`
	Date       string  `json:"date"`
	Source     string  `json:"source"`
}

// GoldValuation is the valuation of a physical gold holding. Purity is a
// percentage (91.6 for 22K), PricePerGram is already purity-adjusted.
type GoldValuation struct {
	Purity       float64 `json:"purity"`
	WeightGrams  float64 `json:"weight_grams"`
	PricePerGram float64 `json:"price_per_gram"`
	TotalValue   float64 `json:"total_value"`
	LastUpdated  string  `json:"last_updated"`
	Source       string  `json:"source"`
}
