package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/auth"
	"github.com/goofitre/carcare-api/internal/cache"
	"github.com/goofitre/carcare-api/internal/config"
	dbpkg "github.com/goofitre/carcare-api/internal/db"
	infraRepo "github.com/goofitre/carcare-api/internal/infra/repository"
	"github.com/goofitre/carcare-api/internal/jobs"
	"github.com/goofitre/carcare-api/internal/logging"
	"github.com/goofitre/carcare-api/internal/media"
	"github.com/goofitre/carcare-api/internal/middleware"
	"github.com/goofitre/carcare-api/internal/notify"
	"github.com/goofitre/carcare-api/internal/payment"
	"github.com/goofitre/carcare-api/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg := config.Load()
	logging.Init(cfg.Env, cfg.LogLevel)

	// ======================================================
	// DATABASE
	// ======================================================
	database, err := dbpkg.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// OPTIONAL INTEGRATIONS
	// ======================================================
	var (
		storeCache cache.StoreCache = cache.Noop{}
		redis      *cache.Redis
	)
	if cfg.RedisEnabled() {
		redis, err = cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, store cache disabled")
		} else {
			storeCache = redis
			go func() {
				for id := range redis.Subscribe(ctx) {
					log.Debug().Str("store_id", id).Msg("store cache invalidated")
				}
			}()
		}
	}

	var uploader media.Uploader = media.Disabled{}
	if cfg.S3Enabled() {
		uploader = media.NewS3(cfg)
	}

	var sms notify.Notifier = notify.Noop{}
	if cfg.TwilioEnabled() {
		sms = notify.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	}
	notifier := notify.NewAsync(sms)

	var gateway payment.Gateway = payment.Noop{}
	if cfg.PaymentsEnabled() {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoToken, cfg.PublicURL)
		if err != nil {
			log.Warn().Err(err).Msg("card gateway disabled")
		} else {
			gateway = mp
		}
	}

	auditLogger := audit.New(database.Gorm())
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       database,
		Config:   cfg,
		Tokens:   auth.NewTokens(cfg.JWTSecret),
		Audit:    auditDispatcher,
		AuditLog: auditLogger,
		Cache:    storeCache,
		Notifier: notifier,
		Uploader: uploader,
		Gateway:  gateway,
	})

	// ======================================================
	// JOBS
	// ======================================================
	scheduler := jobs.NewScheduler()
	ratingSync := jobs.NewRatingSync(infraRepo.NewStoreGormRepository(database.Gorm()))
	if err := scheduler.Add("rating_sync", cfg.RatingSyncCron, ratingSync); err != nil {
		log.Fatal().Err(err).Msg("invalid rating sync schedule")
	}
	scheduler.Start()

	// ======================================================
	// RUN + GRACEFUL SHUTDOWN
	// ======================================================
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	scheduler.Stop(shutdownCtx)
	if err := notifier.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("pending notifications dropped")
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("pending audit events dropped")
	}
	if redis != nil {
		if err := redis.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
	if err := database.Close(); err != nil {
		log.Error().Err(err).Msg("database close")
	}
}
