package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eletrodesk/eletrodesk-backend/api/controllers"
	"github.com/eletrodesk/eletrodesk-backend/api/middleware"
	"github.com/eletrodesk/eletrodesk-backend/internal/chat"
	conversation "github.com/eletrodesk/eletrodesk-backend/internal/conversations"
	"github.com/eletrodesk/eletrodesk-backend/internal/erp"
	product "github.com/eletrodesk/eletrodesk-backend/internal/products"
	profile "github.com/eletrodesk/eletrodesk-backend/internal/profiles"
	quote "github.com/eletrodesk/eletrodesk-backend/internal/quotes"
	"github.com/eletrodesk/eletrodesk-backend/pkg/config"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
	"github.com/eletrodesk/eletrodesk-backend/pkg/metrics"
	"github.com/eletrodesk/eletrodesk-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            controllers.Pinger
	Redis         *redis.Client
	Registry      *prometheus.Registry
	HTTPMetrics   *metrics.HTTPMetrics
	Products      product.Service
	Profiles      profile.Service
	Quotes        quote.Service
	ERPSync       *erp.Service
	Chat          *chat.Service
	Conversations *conversation.Manager
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())

		var cache controllers.Pinger
		if d.Redis != nil {
			cache = d.Redis
		}
		r.Get("/ready", controllers.HealthReady(d.DB, cache, d.Logger))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// The chat widget identifies users in the payload, so the endpoint
		// sits outside the JWT group. The per-user limiter is its only gate.
		r.Group(func(r chi.Router) {
			if d.Redis != nil {
				r.Use(middleware.ChatRateLimit(d.Config.ChatRateLimit, d.Redis, d.Logger))
			}
			r.Post("/chat", controllers.ChatMessage(d.Chat, d.Logger))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(d.Config.JWT, d.Logger))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductList(d.Products, d.Logger))
				r.Post("/", controllers.ProductCreate(d.Products, d.Logger))
				r.Get("/stats", controllers.ProductStats(d.Products, d.Logger))
				r.Get("/{productId}", controllers.ProductGet(d.Products, d.Logger))
				r.Patch("/{productId}", controllers.ProductUpdate(d.Products, d.Logger))
				r.Delete("/{productId}", controllers.ProductDeactivate(d.Products, d.Logger))
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.ProfileGet(d.Profiles, d.Logger))
				r.Put("/", controllers.ProfileUpdate(d.Profiles, d.Logger))
			})

			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", controllers.QuoteList(d.Quotes, d.Logger))
				r.Post("/", controllers.QuoteCreate(d.Quotes, d.Logger))
				r.Get("/{quoteId}", controllers.QuoteGet(d.Quotes, d.Logger))
			})

			r.Post("/erp/sync", controllers.ERPSync(d.ERPSync, d.Logger))

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", controllers.ConversationList(d.Conversations, d.Logger))
				r.Get("/{conversationId}/messages", controllers.ConversationMessages(d.Conversations, d.Logger))
			})
		})
	})

	return r
}
