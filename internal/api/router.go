package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yongtae/pointsvc/internal/metrics"
	"github.com/yongtae/pointsvc/internal/services/points"
)

// NewRouter constructs the API router with all endpoints registered.
func NewRouter(svc *points.Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(HTTPMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/point/{userId}", h.GetPointHandler)
	r.Get("/point/{userId}/histories", h.GetHistoriesHandler)
	r.Patch("/point/{userId}/charge", h.ChargeHandler)
	r.Patch("/point/{userId}/use", h.UseHandler)

	return r
}
