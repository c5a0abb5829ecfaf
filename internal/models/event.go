package models

import "time"

// ValuationEvent represents a Kafka event emitted after a portfolio
// valuation completes.
type ValuationEvent struct {
	EventType        string    `json:"event_type"`
	TotalWorth       float64   `json:"total_worth"`
	StocksTotal      float64   `json:"stocks_total"`
	MutualFundsTotal float64   `json:"mutual_funds_total"`
	GoldTotal        float64   `json:"gold_total"`
	HoldingCount     int       `json:"holding_count"`
	Timestamp        time.Time `json:"timestamp"`
}
