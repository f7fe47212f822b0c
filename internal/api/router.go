package api

import (
	_ "fxconvert/docs"
	"fxconvert/internal/conversion/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
	"github.com/ulule/limiter/v3"
)

// NewRouter mounts the API. A nil rateLimiter leaves /api/v1 unlimited.
func NewRouter(conversionHandler *handler.Handler, gatherer prometheus.Gatherer, rateLimiter *limiter.Limiter) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Method("GET", "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	router.Route("/api/v1", func(r chi.Router) {
		if rateLimiter != nil {
			r.Use(RateLimit(rateLimiter))
		}
		r.Get("/convert", conversionHandler.Convert)
		r.Post("/conversions", conversionHandler.CreateConversion)
		r.Get("/rates/supported-currencies", conversionHandler.GetSupportedCodes)
		r.Get("/rates/{base:[A-Za-z]{3}}/{quote:[A-Za-z]{3}}", conversionHandler.GetRate)
		r.Get("/history", conversionHandler.GetHistory)
		r.Delete("/history", conversionHandler.ClearHistory)
	})
	return router
}
