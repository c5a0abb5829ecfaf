package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", handler.Index).Methods("GET")
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Valuation routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/networth", handler.CalculateNetWorth).Methods("POST")
	api.HandleFunc("/stocks/{symbol}", handler.GetStock).Methods("GET")
	api.HandleFunc("/gold", handler.GetGold).Methods("GET")

	return r
}
