package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"addrgen/internal/generator"
)

func (h *WebHandler) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	// Web pages
	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// JSON API
	api := r.PathPrefix("/api").Subrouter()
	gh := generator.NewGeneratorHandlers(h.generator)
	api.HandleFunc("/generate", gh.Generate).Methods("GET")
	api.HandleFunc("/countries", gh.Countries).Methods("GET")

	// 404 handler
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	return r
}
