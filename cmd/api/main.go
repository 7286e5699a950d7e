// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weclaim/weclaim-api/internal/admin"
	"github.com/weclaim/weclaim-api/internal/auth"
	"github.com/weclaim/weclaim-api/internal/config"
	"github.com/weclaim/weclaim-api/internal/core"
	"github.com/weclaim/weclaim-api/internal/customer"
	"github.com/weclaim/weclaim-api/internal/health"
	"github.com/weclaim/weclaim-api/internal/insurance"
	"github.com/weclaim/weclaim-api/internal/middleware"
	"github.com/weclaim/weclaim-api/internal/nominee"
	"github.com/weclaim/weclaim-api/internal/server"
	"github.com/weclaim/weclaim-api/internal/systemuser"
)

const (
	drainDelay = 5 * time.Second
)

var staticBypass = []string{
	"/dashboard/api",
	"/_next/",
	"/static/",
	"/assets/",
	"/favicon.ico",
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(cfg.Database.URL); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.Session)
	if err != nil {
		return err
	}
	logger.Info("session signer initialized",
		"algorithm", "HS256",
		"ttl", jwtManager.TTL(),
	)

	systemUserRepo := systemuser.NewRepository(db.DB)
	systemUserSvc := systemuser.NewService(systemUserRepo)
	systemUserHandler := systemuser.NewHandler(systemUserSvc)

	authSvc := auth.NewService(
		jwtManager,
		systemUserSvc,
		auth.NewRevocationStore(redis.Client),
	)
	authHandler := auth.NewHandler(authSvc, auth.CookieConfig{
		Name:   cfg.Session.CookieName,
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.IsProduction(),
		MaxAge: cfg.Session.TTL,
	})

	customerRepo := customer.NewRepository(db.DB)
	customerSvc := customer.NewService(db.DB, customerRepo)
	customerHandler := customer.NewHandler(customerSvc)

	insuranceRepo := insurance.NewRepository(db.DB)
	nomineeSvc := nominee.NewService(nominee.NewRepository(db.DB), insuranceRepo)
	nomineeHandler := nominee.NewHandler(nomineeSvc)

	insuranceSvc := insurance.NewService(db.DB, insuranceRepo, customerSvc, nomineeSvc)
	insuranceHandler := insurance.NewHandler(insuranceSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Counters: admin.Counters{
			Customers:         customerSvc.Count,
			Insurances:        insuranceSvc.Count,
			Nominees:          nomineeSvc.Count,
			ActiveSystemUsers: systemUserSvc.CountActive,
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing(cfg.Otel.ServiceName))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.DashboardGate(
		authSvc,
		cfg.Session.CookieName,
		"/dashboard",
		cfg.Session.LoginPath,
		staticBypass...,
	))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(authSvc, cfg.Session.CookieName)
	loginLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.LoginRequests,
			cfg.RateLimit.LoginBurst,
		),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	}).Handler

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, loginLimiter)
	})

	userLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.UserRequests,
			cfg.RateLimit.UserBurst,
		),
		KeyFunc:  middleware.KeyByUser,
		FailOpen: true,
	}).Handler

	router.Route("/dashboard/api", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(userLimiter)

		systemUserHandler.RegisterRoutes(r)
		customerHandler.RegisterRoutes(r, func(r chi.Router) {
			insuranceHandler.RegisterRoutes(r, nomineeHandler.RegisterRoutes)
		})
		adminHandler.RegisterRoutes(r)
	})

	if cfg.Static.Dir != "" {
		router.Handle("/*", http.FileServer(http.Dir(cfg.Static.Dir)))
		logger.Info("serving static files", "dir", cfg.Static.Dir)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
