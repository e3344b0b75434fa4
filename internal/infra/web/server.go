package web

import (
	"net/http"
	"time"

	"hotspot-admin/internal/infra/logging"
	red "hotspot-admin/internal/infra/redis"
	"hotspot-admin/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server wires the public activation endpoints and the admin API.
type Server struct {
	cardUC  *usecase.CardUseCase
	pkgUC   *usecase.PackageUseCase
	subUC   *usecase.SubscriberUseCase
	statsUC usecase.StatsUseCase
	authUC  *usecase.AuthUseCase

	auth    *AuthManager
	limiter *red.RateLimiter
	rlLimit int
	rlWin   time.Duration

	log   *zerolog.Logger
	nowFn func() int64
}

func NewServer(
	cardUC *usecase.CardUseCase,
	pkgUC *usecase.PackageUseCase,
	subUC *usecase.SubscriberUseCase,
	statsUC usecase.StatsUseCase,
	authUC *usecase.AuthUseCase,
	auth *AuthManager,
	rl *red.RateLimiter,
	rlLimit int,
	rlWindow time.Duration,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "web").Logger()
	return &Server{
		cardUC:  cardUC,
		pkgUC:   pkgUC,
		subUC:   subUC,
		statsUC: statsUC,
		authUC:  authUC,
		auth:    auth,
		limiter: rl,
		rlLimit: rlLimit,
		rlWin:   rlWindow,
		log:     &l,
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// Router builds the full route tree. The activation endpoints are public and
// rate limited per IP; everything under the admin group requires a valid
// session.
func (s *Server) Router(requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	throttle := RateLimit(s.limiter, s.rlLimit, s.rlWin, s.log)
	r.Route("/api/v1", func(r chi.Router) {
		r.With(throttle).Post("/activate/verify", verifyHandler(s.cardUC))
		r.With(throttle).Post("/activate", activateHandler(s.cardUC))

		r.Post("/auth/login", loginHandler(s.authUC, s.auth))

		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware())

			r.Get("/auth/me", meHandler(s.auth))
			r.Post("/auth/logout", logoutHandler(s.auth))
			r.Get("/stats", statsHandler(s.statsUC))

			r.Get("/packages", packagesListHandler(s.pkgUC))
			r.Post("/packages", packagesCreateHandler(s.pkgUC))
			r.Put("/packages/{id}", packagesUpdateHandler(s.pkgUC))
			r.Delete("/packages/{id}", packagesDeleteHandler(s.pkgUC))

			r.Get("/subscribers", subscribersListHandler(s.subUC, s.nowFn))
			r.Post("/subscribers", subscribersCreateHandler(s.subUC, s.nowFn))
			r.Get("/subscribers/suggest", subscribersSuggestHandler(s.subUC))
			r.Get("/subscribers/{id}", subscribersGetHandler(s.subUC, s.nowFn))
			r.Delete("/subscribers/{id}", subscribersDeleteHandler(s.subUC))

			r.Get("/cards", cardsListHandler(s.cardUC, s.pkgUC))
			r.Post("/cards/batch", cardsGenerateHandler(s.cardUC))
			r.Get("/cards/batch/{id}", cardsBatchHandler(s.cardUC, s.pkgUC))
		})
	})

	return Chain(r,
		TraceID(),
		RequestLog(s.log),
		Recover(s.log),
		Timeout(requestTimeout),
	)
}

// sessionMiddleware rejects requests without a valid admin session.
func (s *Server) sessionMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := s.auth.ParseFromRequest(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := logging.WithAdminID(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
