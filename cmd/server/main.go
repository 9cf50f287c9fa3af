package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	propertyapp "github.com/propflow/backend/internal/application/property"
	"github.com/propflow/backend/internal/domain/identity"
	"github.com/propflow/backend/internal/domain/property"
	"github.com/propflow/backend/internal/infrastructure/auth"
	"github.com/propflow/backend/internal/infrastructure/config"
	"github.com/propflow/backend/internal/infrastructure/event"
	"github.com/propflow/backend/internal/infrastructure/logger"
	"github.com/propflow/backend/internal/infrastructure/persistence"
	"github.com/propflow/backend/internal/interfaces/http/handler"
	"github.com/propflow/backend/internal/interfaces/http/middleware"
	"github.com/propflow/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PropFlow Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Role assignments come from configuration; unknown identities fall
	// through to the "other" role, which is authorized for nothing
	roles, err := identity.NewRoleTableFromStrings(cfg.RoleAssignments())
	if err != nil {
		log.Fatal("Failed to build role table", zap.Error(err))
	}
	log.Info("Role assignments loaded", zap.Int("identities", roles.Size()))

	policy, err := property.ParsePolicy(cfg.Workflow.Policy)
	if err != nil {
		log.Fatal("Invalid workflow policy", zap.Error(err))
	}

	// Event log and repositories
	eventSerializer := event.NewPropertyEventSerializer()
	eventLogRepo := persistence.NewGormEventLogRepository(db.DB, eventSerializer)
	permitRepo := persistence.NewGormPermitRepository(db.DB, eventLogRepo)
	loanRepo := persistence.NewGormLoanRepository(db.DB, eventLogRepo)

	// Application services
	permitService := propertyapp.NewPermitService(permitRepo, roles, policy)
	loanService := propertyapp.NewLoanService(loanRepo, roles, policy)
	eventLogService := propertyapp.NewEventLogService(eventLogRepo)

	// Event bus and dispatcher
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	if cfg.Event.DispatcherEnabled {
		dispatcher := event.NewLogDispatcher(eventLogRepo, eventBus, eventSerializer, event.DispatcherConfig{
			BatchSize:    cfg.Event.BatchSize,
			PollInterval: cfg.Event.PollInterval,
		}, log)
		if err := dispatcher.Start(context.Background()); err != nil {
			log.Fatal("Failed to start event dispatcher", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := dispatcher.Stop(stopCtx); err != nil {
				log.Error("Error stopping event dispatcher", zap.Error(err))
			}
		}()
	}

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.BodyLimit(middleware.DefaultMaxBodyBytes),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		}),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	systemHandler := handler.NewSystemHandler(db, version)
	engine.GET("/health", systemHandler.Health)

	callerAuth := middleware.CallerAuth(middleware.AuthConfig{
		Validator:           auth.NewTokenValidator(cfg.JWT),
		AllowHeaderFallback: cfg.App.Env != "production",
		Logger:              log,
	})

	router.NewRouter(engine, router.WithMiddleware(callerAuth)).
		Register(handler.NewPermitHandler(permitService)).
		Register(handler.NewLoanHandler(loanService)).
		Register(handler.NewEventLogHandler(eventLogService)).
		Register(systemHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shut down", zap.Error(err))
	}

	log.Info("Server stopped")
}
