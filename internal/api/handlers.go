package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/trogers1052/networth-service/internal/kafka"
	"github.com/trogers1052/networth-service/internal/models"
	"github.com/trogers1052/networth-service/internal/valuation"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	aggregator *valuation.Aggregator
	producer   *kafka.Producer
}

// NewHandler creates a new Handler
func NewHandler(aggregator *valuation.Aggregator, producer *kafka.Producer) *Handler {
	return &Handler{
		aggregator: aggregator,
		producer:   producer,
	}
}

// Index handles GET / with a service description
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Net Worth Valuation API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"/api/v1/networth":         "POST - Calculate net worth from a holdings list",
			"/api/v1/stocks/{symbol}":  "GET - Value a single stock",
			"/api/v1/gold":             "GET - Value a gold holding (quality, weight params)",
			"/health":                  "GET - Service health",
		},
	})
}

// CalculateNetWorth handles POST /api/v1/networth
func (h *Handler) CalculateNetWorth(w http.ResponseWriter, r *http.Request) {
	var req models.ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	report, err := h.aggregator.Value(r.Context(), &req)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "failed to calculate net worth",
		})
		return
	}

	// Publish Kafka event; a publish failure must not fail the request
	if h.producer != nil {
		holdings := len(req.Stocks) + len(req.MutualFunds)
		if req.Gold != nil {
			holdings++
		}
		if err := h.producer.PublishValuationComputed(r.Context(), report, holdings); err != nil {
			log.Printf("Failed to publish valuation event: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, report)
}

// GetStock handles GET /api/v1/stocks/{symbol}
func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	symbol := vars["symbol"]
	purchaseDate := r.URL.Query().Get("purchaseDate")

	v, err := h.aggregator.Equity(r.Context(), symbol, purchaseDate)
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   "stock not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, v)
}

// GetGold handles GET /api/v1/gold
func (h *Handler) GetGold(w http.ResponseWriter, r *http.Request) {
	quality := r.URL.Query().Get("quality")
	if quality == "" {
		quality = "24K"
	}

	weight := 1.0
	if raw := r.URL.Query().Get("weight"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   "weight must be a positive number",
			})
			return
		}
		weight = parsed
	}

	v, err := h.aggregator.Gold(r.Context(), quality, weight)
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"success": false,
			"error":   "gold price unavailable",
		})
		return
	}

	respondJSON(w, http.StatusOK, v)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
