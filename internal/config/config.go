package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the runtime configuration of the API, assembled from the
// environment. The business identity (timezone, grace window) is explicit
// here so nothing downstream hardcodes it.
type Config struct {
	DatabaseURL string
	Port        string

	JWTSecret string
	JWTTTL    time.Duration

	// Timezone the salon's slot grid is interpreted in.
	Timezone *time.Location

	// Grace is the tolerance after a slot's nominal time before it counts
	// as passed.
	Grace time.Duration
}

func Load() (*Config, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	loc := time.Local
	if tz := os.Getenv("BUSINESS_TIMEZONE"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("BUSINESS_TIMEZONE: %w", err)
		}
		loc = l
	}

	return &Config{
		DatabaseURL: dsn,
		Port:        envOr("PORT", "8080"),
		JWTSecret:   secret,
		JWTTTL:      envDuration("JWT_TTL_HOURS", 24) * time.Hour,
		Timezone:    loc,
		Grace:       envDuration("GRACE_SECONDS", 60) * time.Second,
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(def)
}
