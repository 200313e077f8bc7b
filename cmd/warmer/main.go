package main

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"icebath_directory/internal/adapters/observability"
	redisad "icebath_directory/internal/adapters/redis"
	"icebath_directory/internal/app"
	"icebath_directory/internal/shared"
	"icebath_directory/internal/storage/csvfs"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is required to warm the cache")
	}

	log.Info().
		Str("root", cfg.DataRoot).
		Int("workers", cfg.WarmWorkers).
		Msg("warmer starting")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}

	repo := csvfs.New(cfg.DataRoot, app.MapListing)
	dir := app.NewDirectoryService(repo, cache, cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(cfg.WarmWorkers))
	var wg sync.WaitGroup
	var total, failed atomic.Int64

	cities := dir.ListCities()
	for _, city := range cities {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(slug string) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := dir.Warm(ctx, slug)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("city", slug).Err(err).Msg("warm failed")
				return
			}
			total.Add(int64(n))
			log.Info().Str("city", slug).Int("listings", n).Msg("warm ok")
		}(city)
	}

	wg.Wait()
	log.Info().
		Int("cities", len(cities)).
		Int64("listings", total.Load()).
		Int64("failed", failed.Load()).
		Msg("warming completed")
}
