package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/blaisecz/meal-cycle/docs"
	"github.com/blaisecz/meal-cycle/internal/api/handler"
	"github.com/blaisecz/meal-cycle/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	cycleHandler   *handler.CycleHandler
	syncHandler    *handler.SyncHandler
	metricsHandler http.Handler
}

// NewRouter wires the API handlers. metricsHandler may be nil, in which
// case /metrics is not served.
func NewRouter(cycleHandler *handler.CycleHandler, syncHandler *handler.SyncHandler, metricsHandler http.Handler) *Router {
	return &Router{
		cycleHandler:   cycleHandler,
		syncHandler:    syncHandler,
		metricsHandler: metricsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if rt.metricsHandler != nil {
		r.Handle("/metrics", rt.metricsHandler)
	}

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Get("/profile", rt.cycleHandler.GetProfile)

		// Current cycle
		r.Route("/cycle", func(r chi.Router) {
			r.Post("/", rt.cycleHandler.Start)
			r.Get("/", rt.cycleHandler.Current)
			r.Post("/start-event", rt.cycleHandler.MarkStartEvent)
			r.Post("/readings", rt.cycleHandler.SubmitReading)
			r.Post("/abandon", rt.cycleHandler.Abandon)
			r.Post("/cancel", rt.cycleHandler.Cancel)
		})

		// History
		r.Route("/cycles", func(r chi.Router) {
			r.Get("/", rt.cycleHandler.History)
			r.Delete("/{cycleId}", rt.cycleHandler.Delete)
		})

		// Mutation queue
		r.Route("/sync", func(r chi.Router) {
			r.Get("/", rt.syncHandler.Status)
			r.Post("/flush", rt.syncHandler.Flush)
			r.Put("/connectivity", rt.syncHandler.SetConnectivity)
		})
	})

	return r
}
