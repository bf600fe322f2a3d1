package main

import (
	"context"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/md-rashed-zaman/mentorconnect/libs/auth"
	"github.com/md-rashed-zaman/mentorconnect/libs/config"
	"github.com/md-rashed-zaman/mentorconnect/libs/db"
	"github.com/md-rashed-zaman/mentorconnect/libs/httpx"
	"github.com/md-rashed-zaman/mentorconnect/libs/kafkax"
	otelx "github.com/md-rashed-zaman/mentorconnect/libs/otel"
	"github.com/md-rashed-zaman/mentorconnect/libs/runtime"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/booking"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/events"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/handlers"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/identity"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/rules"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/scheduling"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/seed"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage/memory"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage/postgres"
)

func main() {
	config.LoadDotEnv()
	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLoggerWithLevel(cfg.Service, runtime.ParseLevel(cfg.LogLevel))

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(cfg.Service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	store, catalog, checks, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("store open failed", "driver", cfg.StoreDriver, "err", err)
		return
	}
	defer store.Close()
	logger.Info("store ready", "driver", cfg.StoreDriver)

	if cfg.SeedDemo {
		if err := seed.Demo(ctx, store, catalog, seed.Options{Location: cfg.Location}, logger); err != nil {
			logger.Error("demo seed failed", "err", err)
			return
		}
	}

	var publisher events.Publisher = events.LogPublisher{Logger: logger}
	publisherDone := make(chan struct{})
	if cfg.KafkaBrokers != "" {
		kp := events.NewKafkaPublisher(events.KafkaConfig{Brokers: cfg.KafkaBrokers, QueueSize: cfg.EventQueueSize}, logger)
		go func() {
			defer close(publisherDone)
			kp.Run(ctx)
		}()
		publisher = kp
		checks = append(checks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(cfg.KafkaBrokers)})
		logger.Info("event publishing enabled (kafka)", "brokers", cfg.KafkaBrokers)
	} else {
		close(publisherDone)
	}

	var writeLimit httpx.Middleware
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		rl := httpx.NewRedisRateLimiter(rdb, cfg.RateLimit, time.Minute, cfg.RateLimitPrefix)
		writeLimit = rl.Middleware(logger, cfg.RateLimitOpen)
		checks = append(checks, runtime.ReadyCheck{Name: "redis", Check: httpx.RedisReadyCheck(rdb)})
		logger.Info("rate limiting enabled (redis)", "per_minute", cfg.RateLimit, "redis_addr", cfg.RedisAddr)
	} else {
		writeLimit = httpx.NewRateLimiter(cfg.RateLimit, time.Minute).Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", cfg.RateLimit)
	}

	signer := auth.NewSigner(cfg.JWTSecret, cfg.JWTTTL)
	source := scheduling.NewBreakerSource(scheduling.NewStoreSource(store), cfg.Breaker, logger)
	resolver := scheduling.NewResolver(source, logger,
		scheduling.WithLocation(cfg.Location),
		scheduling.WithStep(cfg.SlotStep),
	)

	mux := runtime.NewBaseMuxWithReady(checks...)
	handlers.New(handlers.Deps{
		Logger:     logger,
		Resolver:   resolver,
		Rules:      rules.NewService(store, publisher, logger),
		Booking:    booking.NewService(store, publisher, logger),
		Identity:   identity.NewService(store, signer, logger),
		Catalog:    store,
		Signer:     signer,
		WriteLimit: writeLimit,
	}).Register(mux)

	handler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id", "Retry-After"},
			MaxAge:         10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
		httpx.WithBodyLimit(cfg.BodyLimit),
		httpx.WithTimeout(cfg.RequestTimeout),
	)
	handler = otelhttp.NewHandler(handler, "mentorship")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("mentorship service configured", "timezone", cfg.Location.String(), "slot_step", cfg.SlotStep.String())
	if err := runtime.Serve(ctx, srv, logger, 10*time.Second); err != nil {
		logger.Error("http server error", "err", err)
	}
	stop()
	<-publisherDone
}

// openStore returns the configured store, its catalog seeder and its readiness checks.
func openStore(ctx context.Context, cfg serviceConfig) (storage.Store, storage.CatalogSeeder, []runtime.ReadyCheck, error) {
	if cfg.StoreDriver != "postgres" {
		s := memory.New()
		return s, s, nil, nil
	}
	pool, err := db.Open(ctx, cfg.DatabaseURL, db.PoolOptions{MaxConns: int32(cfg.DBMaxConns), Tracing: cfg.DBTrace})
	if err != nil {
		return nil, nil, nil, err
	}
	s := postgres.New(pool)
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, nil, nil, err
	}
	return s, s, []runtime.ReadyCheck{{Name: "db", Check: db.ReadyCheck(pool)}}, nil
}
