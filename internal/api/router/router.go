package router

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/trampo-app/trampo/internal/api/handlers"
	"github.com/trampo-app/trampo/internal/api/middleware"
	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/payments"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/metrics"
	"github.com/trampo-app/trampo/internal/ratelimit"
)

// authWindow is the window of the stricter login and register limit
const authWindow = time.Minute

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Profile     *handlers.ProfileHandler
	Catalog     *handlers.CatalogHandler
	Search      *handlers.SearchHandler
	Vaga        *handlers.VagaHandler
	Candidatura *handlers.CandidaturaHandler
	Payment     *handlers.PaymentHandler
	Upload      *handlers.UploadHandler
}

// Deps carries the infrastructure the router needs besides handlers
type Deps struct {
	RateLimiter ratelimit.Store
	// TrustedProxies are the peers whose X-Forwarded-For hops are believed
	TrustedProxies []netip.Prefix
	// WebhookIPs is nil when the allow-list is not enforced
	WebhookIPs *payments.AllowList
}

func New(cfg *config.Config, log *logger.Logger, deps Deps, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.ClientIP(deps.TrustedProxies))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(metrics.Middleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())

	requireAuth := middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	prestador := middleware.RequireRole(user.RolePrestador)
	empregador := middleware.RequireRole(user.RoleEmpregador)

	r.Route("/api/v1", func(r chi.Router) {
		// The webhook is authenticated by signature and must not be throttled
		r.With(middleware.WebhookIPAllowList(deps.WebhookIPs, log)).
			Post("/payments/webhook", h.Payment.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuthMiddleware(cfg.Auth.JWTSecret))
			r.Use(middleware.RateLimit(deps.RateLimiter, "api", cfg.RateLimit.Requests, cfg.RateLimit.Window, log))

			// Auth
			r.Route("/auth", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RateLimit(deps.RateLimiter, "auth", cfg.RateLimit.AuthRequests, authWindow, log))
					r.Post("/register", h.Auth.Register)
					r.Post("/login", h.Auth.Login)
				})
				r.Post("/refresh", h.Auth.RefreshToken)
				r.Post("/logout", h.Auth.Logout)
				r.With(requireAuth).Get("/me", h.Auth.Me)
			})

			// Public catalog
			r.Get("/highlight-plans", h.Catalog.ListPlans)
			r.Get("/categories", h.Catalog.ListCategories)
			r.Get("/ads", h.Catalog.ListAds)
			r.Get("/search", h.Search.Search)
			r.Get("/users/{id}", h.Profile.GetPublic)
			r.Get("/vagas", h.Vaga.List)

			// Authenticated
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)

				r.Get("/profiles/me", h.Profile.GetMe)
				r.Put("/profiles/me", h.Profile.UpdateMe)

				r.Get("/highlights", h.Catalog.ListHighlights)
				r.Get("/ads/mine", h.Catalog.ListMyAds)

				r.Post("/payments/checkout", h.Payment.Checkout)
				r.Post("/uploads", h.Upload.Upload)

				r.With(empregador).Post("/vagas", h.Vaga.Create)
				r.With(empregador).Get("/vagas/mine", h.Vaga.ListMine)
				r.Post("/vagas/paid", h.Payment.JobBoostCheckout)
				r.Put("/vagas/{id}", h.Vaga.Update)
				r.Patch("/vagas/{id}/status", h.Vaga.SetStatus)

				r.With(prestador).Post("/vagas/{id}/candidaturas", h.Candidatura.Apply)
				r.Get("/vagas/{id}/candidaturas", h.Candidatura.ListForVaga)

				r.With(prestador).Post("/vagas/{id}/favorita", h.Vaga.AddFavorita)
				r.With(prestador).Delete("/vagas/{id}/favorita", h.Vaga.RemoveFavorita)

				r.With(prestador).Get("/favoritas", h.Vaga.ListFavoritas)
				r.With(prestador).Get("/candidaturas/mine", h.Candidatura.ListMine)
				r.Patch("/candidaturas/{id}/status", h.Candidatura.UpdateStatus)
			})

			r.Get("/vagas/{id}", h.Vaga.Get)
		})
	})

	return r
}
