package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	MongoURI          string
	MongoDB           string
	MongoConnTimeout  time.Duration
	MongoReadTimeout  time.Duration
	MongoWriteTimeout time.Duration

	RedisAddr string
	RedisDB   int
	RedisPass string

	IdentityBase string
	IdentityKey  string
	IdentityRPS  int

	CacheTTL time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		MongoURI:          env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           env("MONGO_DB", "staybook"),
		MongoConnTimeout:  time.Duration(atoi("MONGO_CONN_TIMEOUT_SECONDS", 10)) * time.Second,
		MongoReadTimeout:  time.Duration(atoi("MONGO_READ_TIMEOUT_SECONDS", 5)) * time.Second,
		MongoWriteTimeout: time.Duration(atoi("MONGO_WRITE_TIMEOUT_SECONDS", 5)) * time.Second,

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		IdentityBase: env("IDENTITY_BASE_URL", "https://identity.example.com"),
		IdentityKey:  env("IDENTITY_API_KEY", ""),
		IdentityRPS:  atoi("IDENTITY_RPS", 10),

		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.IdentityKey == "" {
		log.Warn().Msg("IDENTITY_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
