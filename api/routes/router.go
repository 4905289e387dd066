package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborline/storefront-backend/api/controllers"
	cartcontrollers "github.com/harborline/storefront-backend/api/controllers/cart"
	viewercontrollers "github.com/harborline/storefront-backend/api/controllers/viewer"
	"github.com/harborline/storefront-backend/api/middleware"
	cartsvc "github.com/harborline/storefront-backend/internal/cart"
	"github.com/harborline/storefront-backend/internal/menu"
	"github.com/harborline/storefront-backend/internal/newsletter"
	viewersvc "github.com/harborline/storefront-backend/internal/viewer"
	"github.com/harborline/storefront-backend/pkg/config"
	"github.com/harborline/storefront-backend/pkg/logger"
	"github.com/harborline/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	cartService cartsvc.Service,
	cartSubmitter *cartsvc.Submitter,
	viewerService viewersvc.Service,
	newsletterService newsletter.Service,
	menuService menu.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	newsletterPolicy := middleware.NewRateLimitPolicy(
		"newsletter",
		cfg.RateLimit.NewsletterWindow,
		cfg.RateLimit.NewsletterIPLimit,
		cfg.RateLimit.NewsletterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/footer", controllers.FooterFetch(menuService, logg))
		r.With(middleware.RateLimit(newsletterPolicy, redisClient, logg)).
			Post("/newsletter", controllers.NewsletterSubscribe(newsletterService, logg))

		r.Get("/products/{productId}/media", controllers.ProductMediaList(viewerService, logg))

		r.Route("/viewer", func(r chi.Router) {
			r.Use(middleware.ViewerContext(logg))
			r.Post("/open", viewercontrollers.ViewerOpen(viewerService, logg))
			r.Post("/close", viewercontrollers.ViewerClose(viewerService, logg))
			r.Post("/next", viewercontrollers.ViewerNext(viewerService, logg))
			r.Post("/prev", viewercontrollers.ViewerPrev(viewerService, logg))
			r.Post("/select", viewercontrollers.ViewerSelect(viewerService, logg))
			r.Post("/key", viewercontrollers.ViewerKey(viewerService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", cartcontrollers.CartCreate(cartService, cartSubmitter, cfg.CartToken, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.CartContext(cfg.CartToken, logg))
				r.Get("/", cartcontrollers.CartFetch(cartSubmitter, logg))
				r.Post("/lines/add", cartcontrollers.CartLinesAdd(cartSubmitter, logg))
				r.Post("/lines/update", cartcontrollers.CartLinesUpdate(cartSubmitter, logg))
				r.Post("/lines/remove", cartcontrollers.CartLinesRemove(cartSubmitter, logg))
				r.Post("/discount-codes/update", cartcontrollers.CartDiscountCodesUpdate(cartSubmitter, logg))
			})
		})
	})

	return r
}
