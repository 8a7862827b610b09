package handler

import (
	"net/http"

	"github.com/segyhp/loan-amortizer/pkg/response"

	"github.com/gorilla/mux"
)

// NewRouter wires the API routes
func NewRouter(scheduleHandler *ScheduleHandler, healthHandler *HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware, response.CORSMiddleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/defaults", scheduleHandler.Defaults).Methods(http.MethodGet)
	api.HandleFunc("/presets", scheduleHandler.Presets).Methods(http.MethodGet)
	api.HandleFunc("/schedule", scheduleHandler.GetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/schedule", scheduleHandler.PostSchedule).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/quotes", scheduleHandler.CreateQuote).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/quotes/{quoteId}", scheduleHandler.GetQuote).Methods(http.MethodGet)

	return router
}
