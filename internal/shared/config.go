package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	LogLevel     zerolog.Level
	HTTPAddr     string
	MetricsAddr  string
	DataRoot     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	CacheTTL     time.Duration
	WarmWorkers  int
	RateLimitRPS int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer env value")
		}
		return def
	}
	lvl, err := zerolog.ParseLevel(env("LOG_LEVEL", "info"))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		LogLevel:     lvl,
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		DataRoot:     env("DATA_ROOT", "./data"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		WarmWorkers:  atoi("WARM_WORKERS", 4),
		RateLimitRPS: atoi("RATE_LIMIT_RPS", 50),
	}
	if c.WarmWorkers <= 0 {
		c.WarmWorkers = 1
	}
	if c.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is empty; city cache disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
