package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/message"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/observability"
	"github.com/BruksfildServices01/barber-booking/internal/ratelimit"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAccount "github.com/BruksfildServices01/barber-booking/internal/usecase/account"
)

type storage struct {
	appointments appointment.Repository
	messages     message.Repository
	users        account.Repository
	audit        audit.Store
	ping         handlers.Pinger
}

func openStorage(cfg *config.Config, logger *zap.Logger) (storage, error) {
	if cfg.DBDriver == "memory" {
		logger.Warn("using in-memory storage; data is lost on restart")
		s := memory.NewStore()
		return storage{appointments: s, messages: s, users: s, audit: s, ping: s}, nil
	}

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return storage{}, err
	}
	return storage{
		appointments: infraRepo.NewAppointmentGormRepository(db),
		messages:     infraRepo.NewMessageGormRepository(db),
		users:        infraRepo.NewUserGormRepository(db),
		audit:        infraRepo.NewAuditGormRepository(db),
		ping:         dbpkg.NewPinger(db),
	}, nil
}

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWTSecret == "changeme" {
			logger.Fatal("JWT_SECRET must be set in production")
		}
	}
	if !timezone.IsValid(cfg.ShopTimezone) {
		logger.Warn("invalid SHOP_TIMEZONE, using default",
			zap.String("timezone", cfg.ShopTimezone),
			zap.String("default", timezone.DefaultTimezone),
		)
	}

	store, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}

	// --------------------------------------------------
	// Infra
	// --------------------------------------------------
	auditLogger := audit.New(store.audit)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger, 256)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL())
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	checks := map[string]handlers.Pinger{"database": store.ping}

	authLimiter := ratelimit.NewLocal(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	defer authLimiter.Close()

	var guestLimiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rdb := ratelimit.Connect(cfg.Redis, logger)
		defer func() { _ = rdb.Close() }()

		shared := ratelimit.NewRedis(rdb, "ratelimit:guest:", cfg.RateLimit.GuestLimit, cfg.RateLimit.GuestWindow())
		guestLimiter = shared
		checks["redis"] = shared
	} else {
		local := ratelimit.NewLocalWindow(cfg.RateLimit.GuestLimit, cfg.RateLimit.GuestWindow())
		defer local.Close()
		guestLimiter = local
	}

	var photos media.Store
	if cfg.Photos.Enabled() {
		photos = media.NewS3Store(cfg.Photos)
		logger.Info("photo storage enabled", zap.String("bucket", cfg.Photos.Bucket))
	}

	// --------------------------------------------------
	// Bootstrap admin
	// --------------------------------------------------
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		admin, err := ucAccount.EnsureAdmin(ctx, store.users, hasher, cfg.AdminEmail, cfg.AdminPassword)
		cancel()
		if err != nil {
			logger.Fatal("seed admin failed", zap.Error(err))
		}
		logger.Info("admin account ready", zap.Uint("user_id", admin.ID))
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	r := gin.New()
	r.MaxMultipartMemory = media.MaxPhotoBytes

	if err := routes.RegisterRoutes(r, routes.Dependencies{
		Config:       cfg,
		Log:          logger,
		Appointments: store.appointments,
		Messages:     store.messages,
		Users:        store.users,
		AuditLogger:  auditLogger,
		Audit:        auditDispatcher,
		Tokens:       tokens,
		Hasher:       hasher,
		Photos:       photos,
		AuthLimiter:  authLimiter,
		GuestLimiter: guestLimiter,
		HealthChecks: checks,
	}); err != nil {
		logger.Fatal("route setup failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	auditDispatcher.Close()
}
