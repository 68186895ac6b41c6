package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/vecindapp/auth-service/api/handler"
	"github.com/vecindapp/auth-service/internal/config"
	"github.com/vecindapp/auth-service/internal/infrastructure/journal"
	"github.com/vecindapp/auth-service/internal/infrastructure/monitor"
	pgInfra "github.com/vecindapp/auth-service/internal/infrastructure/postgres"
	redisInfra "github.com/vecindapp/auth-service/internal/infrastructure/redis"
	"github.com/vecindapp/auth-service/internal/middleware"
	"github.com/vecindapp/auth-service/internal/router"
	"github.com/vecindapp/auth-service/internal/services"
	"github.com/vecindapp/auth-service/internal/services/lifecycle"
	"github.com/vecindapp/auth-service/pkg/httpcontext"
	"github.com/vecindapp/auth-service/pkg/logger"
	"github.com/vecindapp/auth-service/pkg/token"
	"github.com/vecindapp/auth-service/repository/postgres"
	redisRepo "github.com/vecindapp/auth-service/repository/redis"
	authUC "github.com/vecindapp/auth-service/usecase/auth"
	membershipUC "github.com/vecindapp/auth-service/usecase/membership"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		FilePath: cfg.Logger.FilePath,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx := manager.Notify(context.Background())

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Audit.JournalPath, "audit")
	if err != nil {
		zapLogger.Fatal("failed to open audit journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(pool, redisClient, journalStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	loginThrottle := redisRepo.NewLoginThrottle(redisClient, cfg.Lockout.MaxAttempts, cfg.Lockout.Window)

	auditFlusher := services.NewAuditFlusher(
		journalStore,
		mon,
		auditRepo,
		zapLogger,
		services.FlusherConfig{
			Interval:   cfg.Audit.FlushInterval,
			BatchSize:  cfg.Audit.BatchSize,
			MaxRetries: cfg.Audit.MaxRetry,
		},
	)
	auditFlusher.Start()
	manager.Register("audit_flusher", func(ctx context.Context) error {
		auditFlusher.Stop(ctx)
		return nil
	})

	auditTrail := services.NewAuditBridge(auditFlusher, zapLogger)
	issuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer)

	authUseCase := authUC.New(userRepo, loginThrottle, issuer, auditTrail, zapLogger)
	membershipUseCase := membershipUC.New(membershipRepo, auditTrail, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	production := cfg.IsProduction()

	handlers := router.Handlers{
		Auth:       apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, production),
		Membership: apiHandler.NewMembershipHandler(membershipUseCase, ctxAdapter, zapLogger, production),
		Health:     apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger, production),
	}

	authenticate := middleware.Authenticate(issuer, zapLogger)
	r := router.New(handlers, authenticate)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
