package models

// EquityHolding is a single listed-equity position supplied by the caller.
type EquityHolding struct {
	Ticker       string  `json:"ticker"`
	Company      string  `json:"company,omitempty"`
	Quantity     float64 `json:"quantity"`
	PurchaseDate string  `json:"purchaseDate,omitempty"`
}

// FundHolding is a mutual fund position, identified by scheme name.
type FundHolding struct {
	Scheme   string  `json:"scheme"`
	Quantity float64 `json:"quantity"`
}

// GoldHolding is physical gold, identified by karat label and weight in grams.
type GoldHolding struct {
	Quality     string  `json:"quality"`
	WeightGrams float64 `json:"weight"`
}

// ValuationRequest is the inbound holdings list. Any subset of the three
// asset classes may be absent.
type ValuationRequest struct {
	Stocks      []EquityHolding `json:"stocks,omitempty"`
	MutualFunds []FundHolding   `json:"mutualFunds,omitempty"`
	Gold        *GoldHolding    `json:"gold,omitempty"`
}
