// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"go_wellness_keep/internal/cache"
	"go_wellness_keep/internal/config"
	"go_wellness_keep/internal/handlers"
	"go_wellness_keep/internal/middleware"
	"go_wellness_keep/internal/model"
	"go_wellness_keep/internal/repository"
	"go_wellness_keep/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		// 開発時は色付きのテキストログ
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := db.AutoMigrate(
		&model.HRVReading{},
		&model.JournalEntry{},
		&model.Challenge{},
		&model.UserChallenge{},
	); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Redisはオプション: 未設定・接続失敗時はキャッシュなしで続行
	var appCache cache.Cache = cache.NewNoopCache()
	if config.Cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(config.Cfg.Redis.Addr, config.Cfg.Redis.Password, config.Cfg.Redis.DB)
		if err != nil {
			slog.Warn("Redis unavailable, continuing without cache", slog.Any("error", err))
		} else {
			appCache = redisCache
			defer redisCache.Close()
			slog.Info("Redis cache connected", slog.String("addr", config.Cfg.Redis.Addr))
		}
	}

	// 3. Dependency Injection
	hrvRepo := repository.NewGormHRVRepository()
	journalRepo := repository.NewGormJournalRepository()
	challengeRepo := repository.NewGormChallengeRepository()
	userChalRepo := repository.NewGormUserChallengeRepository()

	hrvService := service.NewHRVService(db, hrvRepo, service.NewRandomEmotionPicker(), &config.Cfg)
	journalService := service.NewJournalService(db, journalRepo, &config.Cfg)
	challengeService := service.NewChallengeService(db, challengeRepo, userChalRepo, &config.Cfg)
	statsService := service.NewStatsService(db, hrvRepo, journalRepo, userChalRepo, &config.Cfg)
	dashboardService := service.NewDashboardService(db, hrvRepo, journalRepo, journalService, statsService, appCache, &config.Cfg)

	hrvHandler := handlers.NewHRVHandler(hrvService, statsService, logger)
	journalHandler := handlers.NewJournalHandler(journalService, logger)
	challengeHandler := handlers.NewChallengeHandler(challengeService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, statsService, logger)

	// 4. Setup Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.RateLimitMiddleware(config.Cfg.RateLimit.RPS, config.Cfg.RateLimit.Burst))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if config.Cfg.Auth.Enabled {
				slog.Info("Applying JWT authentication middleware")
				r.Use(middleware.JWTAuthMiddleware(&config.Cfg))
			} else {
				slog.Warn("Auth disabled: using development X-User-ID middleware")
				r.Use(middleware.DevUserContextMiddleware)
			}

			// HRV routes
			r.Route("/hrv", func(r chi.Router) {
				r.Post("/", hrvHandler.LogReading)
				r.Get("/", hrvHandler.ListReadings)
				r.Get("/stats", hrvHandler.GetStats)
			})

			// Journal routes
			r.Route("/journal", func(r chi.Router) {
				r.Post("/", journalHandler.CreateEntry)
				r.Get("/", journalHandler.ListEntries)
				r.Get("/summary", journalHandler.GetSummary)
				r.Get("/mood-graph", journalHandler.GetMoodGraph)
				r.Get("/{entryID}", journalHandler.GetEntry)
				r.Put("/{entryID}", journalHandler.UpdateEntry)
				r.Delete("/{entryID}", journalHandler.DeleteEntry)
			})

			// Challenge routes
			r.Route("/challenges", func(r chi.Router) {
				r.Get("/", challengeHandler.ListChallenges)
				r.Get("/my", challengeHandler.ListUserChallenges)
				r.Get("/{challengeID}", challengeHandler.GetChallenge)
				r.Post("/{challengeID}/start", challengeHandler.StartChallenge)
				r.Post("/{challengeID}/complete", challengeHandler.CompleteChallenge)
				r.Post("/{challengeID}/skip", challengeHandler.SkipChallenge)
			})

			// Dashboard routes
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/emoji", dashboardHandler.GetEmojiDashboard)
				r.Get("/line-graph", dashboardHandler.GetLineGraph)
				r.Get("/monthly-improvement", dashboardHandler.GetMonthlyImprovement)
			})
		})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	slog.Info("Server exited gracefully.")
}
