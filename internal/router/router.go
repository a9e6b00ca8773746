package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"cart-offer/internal/handler"
	"cart-offer/internal/middleware"
)

// Options configures the shared router behaviour.
type Options struct {
	// BasePath prefixes every API route, e.g. /api/v1.
	BasePath string
	// ServiceName names the server spans.
	ServiceName string
}

// New creates the cart offer API router with all routes and middleware configured.
func New(
	offerHandler *handler.OfferHandler,
	cartHandler *handler.CartHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	r := newBase(opts, logger)

	r.Route(opts.BasePath, func(r chi.Router) {
		r.Post("/offer", offerHandler.Create)
		r.Post("/cart/apply_offer", cartHandler.ApplyOffer)
	})

	return r
}

// NewSegmentMock creates the router for the mock user segment service.
func NewSegmentMock(segmentHandler *handler.SegmentHandler, opts Options, logger zerolog.Logger) http.Handler {
	r := newBase(opts, logger)

	r.Route(opts.BasePath, func(r chi.Router) {
		r.Get("/user_segment", segmentHandler.Get)
	})

	return r
}

// newBase applies middleware in order: RequestID -> RealIP -> Recovery ->
// Logging -> Tracing -> CORS, and mounts the health check.
func newBase(opts Options, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Tracing(opts.ServiceName))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", chimw.RequestIDHeader},
		ExposedHeaders: []string{chimw.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", handler.Health)

	return r
}
