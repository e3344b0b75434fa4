// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotspot-admin/internal/config"
	pg "hotspot-admin/internal/infra/db/postgres"
	"hotspot-admin/internal/infra/logging"
	"hotspot-admin/internal/infra/metrics"
	red "hotspot-admin/internal/infra/redis"
	"hotspot-admin/internal/infra/sched"
	"hotspot-admin/internal/infra/web"
	"hotspot-admin/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis (optional; activation works unthrottled without it) ----
	var rateLimiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		rateLimiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis.url not set; activation rate limiting disabled")
	}

	// ---- Repositories ----
	txm := pg.NewTxManager(pool)
	pkgRepo := pg.NewPackageRepo(pool)
	cardRepo := pg.NewCardRepo(pool)
	subRepo := pg.NewSubscriberRepo(pool)
	adminRepo := pg.NewAdminRepo(pool)

	// ---- Use cases ----
	cardUC := usecase.NewCardUseCase(cardRepo, pkgRepo, subRepo, txm, logger)
	pkgUC := usecase.NewPackageUseCase(pkgRepo, subRepo)
	subUC := usecase.NewSubscriberUseCase(subRepo, pkgRepo, logger)
	statsUC := usecase.NewStatsUseCase(subRepo, cardRepo, pkgRepo, logger)
	authUC := usecase.NewAuthUseCase(adminRepo)

	// ---- HTTP ----
	authMgr := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.SecureCookie, cfg.Auth.CookieDomain, cfg.Auth.SessionTTL)
	srv := web.NewServer(cardUC, pkgUC, subUC, statsUC, authUC, authMgr, rateLimiter, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(cfg.Server.RequestTimeout),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Expiry worker ----
	worker := sched.NewExpiryWorker(cfg.Worker.ExpiryInterval, subRepo, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
