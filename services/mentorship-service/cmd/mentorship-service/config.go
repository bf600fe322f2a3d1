package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/md-rashed-zaman/mentorconnect/libs/config"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/scheduling"
)

type serviceConfig struct {
	Service  string
	Port     string
	LogLevel string

	StoreDriver string
	DatabaseURL string
	DBMaxConns  int
	DBTrace     bool
	SeedDemo    bool

	Location *time.Location
	SlotStep time.Duration
	Breaker  scheduling.BreakerConfig

	JWTSecret string
	JWTTTL    time.Duration

	KafkaBrokers    string
	EventQueueSize  int
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RateLimit       int
	RateLimitPrefix string
	RateLimitOpen   bool

	CORSOrigins    []string
	BodyLimit      int64
	RequestTimeout time.Duration
}

func loadConfig() (serviceConfig, error) {
	cfg := serviceConfig{
		Service:         config.String("SERVICE_NAME", "mentorship-service"),
		LogLevel:        config.String("LOG_LEVEL", "info"),
		StoreDriver:     strings.ToLower(strings.TrimSpace(config.String("STORE_DRIVER", "memory"))),
		DatabaseURL:     config.String("DATABASE_URL", ""),
		JWTSecret:       config.String("JWT_SECRET", "dev-secret"),
		KafkaBrokers:    strings.TrimSpace(config.String("KAFKA_BROKERS", "")),
		RedisAddr:       strings.TrimSpace(config.String("REDIS_ADDR", "")),
		RedisPassword:   config.String("REDIS_PASSWORD", ""),
		RateLimitPrefix: config.String("RATE_LIMIT_PREFIX", "rl"),
		RateLimitOpen:   config.Bool("RATE_LIMIT_FAIL_OPEN", true),
		CORSOrigins:     config.List("CORS_ALLOWED_ORIGINS"),
	}

	var err error
	if cfg.Port, err = config.Port("PORT", "8080"); err != nil {
		return cfg, err
	}

	// An in-memory store starts empty, so it is seeded unless told otherwise.
	cfg.SeedDemo = config.Bool("SEED_DEMO_DATA", cfg.StoreDriver == "memory")
	cfg.DBTrace = config.Bool("DB_TRACE_QUERIES", false)
	switch cfg.StoreDriver {
	case "memory":
	case "postgres":
		if cfg.DatabaseURL, err = config.RequiredString("DATABASE_URL"); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("STORE_DRIVER must be memory or postgres (got %q)", cfg.StoreDriver)
	}
	if cfg.DBMaxConns, err = config.Int("DB_MAX_CONNS", 10); err != nil {
		return cfg, err
	}

	tz := config.String("APP_TIMEZONE", "UTC")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return cfg, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	stepMinutes, err := config.Int("SLOT_STEP_MINUTES", 30)
	if err != nil {
		return cfg, err
	}
	if stepMinutes <= 0 || stepMinutes > 24*60 {
		return cfg, fmt.Errorf("SLOT_STEP_MINUTES must be between 1 and 1440 (got %d)", stepMinutes)
	}
	cfg.SlotStep = time.Duration(stepMinutes) * time.Minute

	cfg.Breaker = scheduling.DefaultBreakerConfig()
	failures, err := config.Int("BREAKER_FAILURES", int(cfg.Breaker.FailureThreshold))
	if err != nil {
		return cfg, err
	}
	if failures <= 0 {
		return cfg, fmt.Errorf("BREAKER_FAILURES must be positive (got %d)", failures)
	}
	cfg.Breaker.FailureThreshold = uint32(failures)
	if cfg.Breaker.OpenTimeout, err = config.Duration("BREAKER_OPEN_TIMEOUT", cfg.Breaker.OpenTimeout); err != nil {
		return cfg, err
	}

	if cfg.JWTTTL, err = config.Duration("JWT_TTL", 12*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.EventQueueSize, err = config.Int("EVENT_QUEUE_SIZE", 256); err != nil {
		return cfg, err
	}
	if cfg.RedisDB, err = config.Int("REDIS_DB", 0); err != nil {
		return cfg, err
	}
	if cfg.RateLimit, err = config.Int("RATE_LIMIT_PER_MINUTE", 60); err != nil {
		return cfg, err
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	bodyLimit, err := config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20)
	if err != nil {
		return cfg, err
	}
	if bodyLimit <= 0 {
		bodyLimit = 1 << 20
	}
	cfg.BodyLimit = int64(bodyLimit)
	if cfg.RequestTimeout, err = config.Duration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return cfg, err
	}
	return cfg, nil
}
