package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "icebath_directory/internal/adapters/http_server"
	"icebath_directory/internal/adapters/observability"
	redisad "icebath_directory/internal/adapters/redis"
	"icebath_directory/internal/app"
	"icebath_directory/internal/domain"
	"icebath_directory/internal/shared"
	"icebath_directory/internal/storage/csvfs"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	repo := csvfs.New(cfg.DataRoot, app.MapListing)
	log.Info().Str("root", cfg.DataRoot).Int("countries", len(repo.ListCountries())).Msg("data root ok")

	// cache is optional; the directory reads straight from disk without it
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; serving without cache")
		} else {
			cache = rc
			defer rc.Close()
		}
		cancel()
	}
	dir := app.NewDirectoryService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.RateLimitRPS)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{D: dir})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
