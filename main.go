package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"family-calendar/internal/auth"
	"family-calendar/internal/calendar/calendar_api"
	calendar_db "family-calendar/internal/calendar/db"
	"family-calendar/internal/calendar/service"
	"family-calendar/internal/commands"
	"family-calendar/internal/config"
	"family-calendar/internal/database"
	"family-calendar/internal/database/migrations"
	"family-calendar/internal/intake/ocr"
	"family-calendar/internal/kafka"
	"family-calendar/internal/logger"
	"family-calendar/internal/session"
	"family-calendar/internal/specialdays"
	"family-calendar/internal/sse"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "hash-password":
			os.Exit(commands.HashPassword(os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
		case "migrate":
			os.Exit(runMigrate(os.Args[2:]))
		case "watch-changes":
			os.Exit(runWatchChanges(os.Args[2:]))
		}
	}
	serve()
}

func openDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*bun.DB, *migrations.Runner) {
	bunDB, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	log.Info("DATABASE", fmt.Sprintf("✅ SQLite database opened at %s", cfg.Database.Path))

	runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{AutoMigrate: cfg.Database.AutoMigrate}, log)
	return bunDB, runner
}

func newSessionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (session.Store, func()) {
	switch cfg.Session.Backend {
	case "redis":
		client, err := session.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("REDIS", fmt.Sprintf("Redis connection error: %v", err))
		}
		log.Info("REDIS", fmt.Sprintf("✅ Redis session store at %s (DB: %d)", cfg.Redis.Addr, cfg.Redis.DB))
		return session.NewRedisStore(client, cfg.Session.TTL), func() { client.Close() }
	case "memory", "":
		log.Info("SESSION", "Using in-memory session store")
		store := session.NewMemoryStore(cfg.Session.TTL)
		janitor, err := session.StartJanitor(store, cfg.Session.PurgeSchedule, log)
		if err != nil {
			log.Fatal("CONFIG", err.Error())
		}
		return store, func() { <-janitor.Stop().Done() }
	default:
		log.Fatal("CONFIG", fmt.Sprintf("unknown SESSION_BACKEND %q", cfg.Session.Backend))
		return nil, nil
	}
}

func newPublisher(cfg *config.Config, log *logger.Logger) kafka.Publisher {
	if !cfg.Kafka.Enabled {
		log.Info("KAFKA", "Change feed disabled")
		return kafka.NoopPublisher{}
	}
	if err := kafka.EnsureTopic(cfg.Kafka.Brokers, cfg.Kafka.Topic, log); err != nil {
		log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
	}
	log.Info("KAFKA", fmt.Sprintf("Publishing event changes to %s on %v", cfg.Kafka.Topic, cfg.Kafka.Brokers))
	return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}

// requestLogger logs every request through the category logger.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.LogAPI(r.Method, r.URL.Path, ww.Status(), time.Since(start))
		})
	}
}

func serve() {
	// .env never overrides variables already set in the environment
	envErr := godotenv.Load()
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Dir, cfg.Log.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("APP", "Starting family calendar")
	switch {
	case envErr == nil:
		log.Info("CONFIG", "Loaded environment variables from .env file")
	case errors.Is(envErr, os.ErrNotExist):
		log.Warn("CONFIG", ".env file not found, using environment variables")
	default:
		log.Warn("CONFIG", fmt.Sprintf("Failed to read .env file: %v", envErr))
	}

	ctx := context.Background()
	loc := cfg.Calendar.Location()
	if loc.String() != cfg.Calendar.Timezone {
		log.Warn("CONFIG", fmt.Sprintf("unknown TIMEZONE %q, using UTC", cfg.Calendar.Timezone))
	}

	bunDB, runner := openDatabase(ctx, cfg, log)
	defer bunDB.Close()
	defer runner.Close()

	if cfg.Database.AutoMigrate {
		if err := runner.RunMigrations(); err != nil {
			log.Fatal("MIGRATION", err.Error())
		}
	}

	store := &calendar_db.DB{Bun: bunDB}
	if cfg.Database.SeedCatalog {
		catalog := specialdays.Catalog(cfg.Calendar.Region, cfg.Calendar.TargetYear, loc)
		if catalog == nil {
			log.Warn("SEED", fmt.Sprintf("No special-day catalog for %s %d", cfg.Calendar.Region, cfg.Calendar.TargetYear))
		} else {
			inserted, err := specialdays.Seed(ctx, store, catalog)
			if err != nil {
				log.Fatal("SEED", err.Error())
			}
			if inserted > 0 {
				log.Info("SEED", fmt.Sprintf("Seeded %d special days for %s %d", inserted, cfg.Calendar.Region, cfg.Calendar.TargetYear))
			} else {
				log.Debug("SEED", "Special days already present, skipping")
			}
		}
	}

	gate := auth.NewGate(cfg.Auth.Password, cfg.Auth.PasswordHash)
	if !gate.Configured() {
		log.Warn("AUTH", "Neither APP_PASSWORD nor APP_PASSWORD_HASH is set; every login will fail")
	}

	sessionStore, closeSessions := newSessionStore(ctx, cfg, log)
	defer closeSessions()

	publisher := newPublisher(cfg, log)
	defer publisher.Close()

	changes := sse.NewChangeEmitter()
	eventService := service.NewEventService(store, service.Publishers{publisher, changes}, log, loc)
	handler := calendar_api.NewHandler(
		eventService,
		&session.Manager{
			Store:      sessionStore,
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.Secure,
			TargetYear: cfg.Calendar.TargetYear,
		},
		gate,
		ocr.NewTesseract(cfg.OCR.Binary, cfg.OCR.Language, cfg.OCR.Timeout),
		changes,
		log,
		calendar_api.Options{
			TargetYear:     cfg.Calendar.TargetYear,
			UpcomingDays:   cfg.Calendar.UpcomingDays,
			Location:       loc,
			PublicBaseURL:  cfg.Server.PublicBaseURL,
			FeedToken:      cfg.Calendar.FeedToken,
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
			PrintFont:      cfg.Calendar.PrintFont,
		},
	)
	if !handler.Printout.Available() {
		log.Warn("PRINT", fmt.Sprintf("Font %s not found, printable overview disabled", handler.Printout.FontPath))
	}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	handler.RegisterRoutes(r)
	log.Info("ROUTER", "Calendar routes registered")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Family calendar running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Family calendar shutdown complete")
	}
}
