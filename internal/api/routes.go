package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes. Collection and detail paths keep
// the trailing slash; StrictSlash redirects the bare form.
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.Use(requestLogger)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	r.HandleFunc("/summary/", handler.GetSummary).Methods("GET")

	// Stock routes
	r.HandleFunc("/stocks/", handler.ListStocks).Methods("GET")
	r.HandleFunc("/stocks/", handler.CreateStock).Methods("POST")
	r.HandleFunc("/stocks/{id:[0-9]+}/", handler.GetStock).Methods("GET")
	r.HandleFunc("/stocks/{id:[0-9]+}/", handler.UpdateStock).Methods("PUT", "PATCH")
	r.HandleFunc("/stocks/{id:[0-9]+}/", handler.DeleteStock).Methods("DELETE")

	// Trade routes
	r.HandleFunc("/trades/", handler.ListTrades).Methods("GET")
	r.HandleFunc("/trades/", handler.CreateTrade).Methods("POST")
	r.HandleFunc("/trades/{id:[0-9]+}/", handler.GetTrade).Methods("GET")
	r.HandleFunc("/trades/{id:[0-9]+}/", handler.UpdateTrade).Methods("PUT", "PATCH")
	r.HandleFunc("/trades/{id:[0-9]+}/", handler.DeleteTrade).Methods("DELETE")

	return r
}
