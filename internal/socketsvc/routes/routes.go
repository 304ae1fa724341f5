package routes

import (
	"github.com/avvvet/cardgame-services/internal/socketsvc/handlers"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetRoutes(r chi.Router, h *handlers.Handler) {
	r.Get("/health", h.HealthHandler)
	r.Get("/ws", h.HandleWebSocket)
	r.Handle("/metrics", promhttp.Handler())
}
