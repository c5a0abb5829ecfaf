package models

// EquityBreakdown is an equity valuation scaled by the held quantity.
type EquityBreakdown struct {
	EquityValuation
	Quantity   float64 `json:"quantity"`
	TotalValue float64 `json:"total_value"`
}

// FundBreakdown is a fund valuation scaled by the held units.
type FundBreakdown struct {
	FundValuation
	Quantity   float64 `json:"quantity"`
	TotalValue float64 `json:"total_value"`
}

// StockClass is the per-class subtotal and detail list for equities.
type StockClass struct {
	Total   float64           `json:"total"`
	Details []EquityBreakdown `json:"details"`
}

// FundClass is the per-class subtotal and detail list for mutual funds.
type FundClass struct {
	Total   float64         `json:"total"`
	Details []FundBreakdown `json:"details"`
}

// GoldClass is the per-class subtotal and detail list for gold. A gold
// valuation already carries its own weight and total value.
type GoldClass struct {
	Total   float64         `json:"total"`
	Details []GoldValuation `json:"details"`
}

// Breakdown groups the per-class results of a portfolio valuation.
type Breakdown struct {
	Stocks      StockClass `json:"stocks"`
	MutualFunds FundClass  `json:"mutualFunds"`
	Gold        GoldClass  `json:"gold"`
}

// PortfolioReport is the response body of a net-worth calculation.
// TotalWorth is the sum of the three class totals, rounded to 2 decimals,
// as is every other reported numeric field.
type PortfolioReport struct {
	Success    bool      `json:"success"`
	Timestamp  string    `json:"timestamp"`
	TotalWorth float64   `json:"totalWorth"`
	Breakdown  Breakdown `json:"breakdown"`
}
