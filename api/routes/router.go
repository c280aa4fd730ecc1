package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wishboard/wishboard-backend/api/controllers"
	"github.com/wishboard/wishboard-backend/api/middleware"
	"github.com/wishboard/wishboard-backend/internal/wishlist"
	"github.com/wishboard/wishboard-backend/pkg/config"
	"github.com/wishboard/wishboard-backend/pkg/logger"
	"github.com/wishboard/wishboard-backend/pkg/metrics"
	"github.com/wishboard/wishboard-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storePinger controllers.StorePinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	wishlistService wishlist.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewLoginRateLimitPolicy(cfg.RateLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, storePinger, logg))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	var limiter middleware.LoginRateLimitStore
	if redisClient != nil {
		limiter = redisClient
	}
	r.With(middleware.LoginRateLimit(loginPolicy, limiter, logg)).
		Post("/login", controllers.Login(cfg.Admin, logg))

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", controllers.WishlistList(wishlistService, logg))
		r.Get("/progress", controllers.WishlistProgress(wishlistService, logg))

		r.Put("/{id}", controllers.WishlistReserve(wishlistService, logg))
		r.Put("/{id}/status", controllers.WishlistUpdateStatus(wishlistService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin(cfg.Admin, logg))
			r.Post("/", controllers.WishlistCreate(wishlistService, logg))
			r.Put("/{id}/admin", controllers.WishlistAdminEdit(wishlistService, logg))
			r.Delete("/{id}", controllers.WishlistDelete(wishlistService, logg))
		})
	})

	return r
}
