package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	DefinitionsURL  string
	OpenContentURLs []string
	OutputLocale    string
	DeltaMode       bool
	CronSchedule    string
	FetchRPS        int
	CacheTTL        time.Duration
}

func Load() Config {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/giata?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisDB:         atoi("REDIS_DB", 0),
		RedisPass:       env("REDIS_PASSWORD", ""),
		DefinitionsURL:  env("GIATA_DEFINITIONS_URL", ""),
		OpenContentURLs: splitList(env("GIATA_OPENCONTENT_URLS", "")),
		OutputLocale:    env("OUTPUT_LOCALE", "en"),
		DeltaMode:       env("DELTA_MODE", "") == "1",
		CronSchedule:    env("CRON_SCHEDULE", ""),
		FetchRPS:        atoi("FETCH_RPS", 4),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.DefinitionsURL == "" {
		log.Warn().Msg("GIATA_DEFINITIONS_URL is empty")
	}
	if len(c.OpenContentURLs) == 0 {
		log.Warn().Msg("GIATA_OPENCONTENT_URLS is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
