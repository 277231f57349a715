package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pribylovaa/chat-profile-service/internal/auth"
	"github.com/pribylovaa/chat-profile-service/internal/cache"
	"github.com/pribylovaa/chat-profile-service/internal/clients/userssvc"
	"github.com/pribylovaa/chat-profile-service/internal/config"
	"github.com/pribylovaa/chat-profile-service/internal/imaging"
	"github.com/pribylovaa/chat-profile-service/internal/metrics"
	"github.com/pribylovaa/chat-profile-service/internal/service"
	"github.com/pribylovaa/chat-profile-service/internal/storage/minio"
	"github.com/pribylovaa/chat-profile-service/internal/storage/postgres"
	redisstore "github.com/pribylovaa/chat-profile-service/internal/storage/redis"
	httpapi "github.com/pribylovaa/chat-profile-service/internal/transport/http"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/handlers"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting profile-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	profilesStore, err := postgres.New(dbCtx, cfg.Postgres.URL)
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	log.Info("postgres_connected")

	stagingCtx, stagingCancel := context.WithTimeout(rootCtx, 10*time.Second)
	stagingStore, err := redisstore.New(stagingCtx, cfg.Redis.URL, cfg.Redis.StagingPrefix, cfg.Redis.StagingTTL)
	stagingCancel()
	if err != nil {
		log.Error("redis_staging_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		profilesStore.Close()
		os.Exit(1)
	}
	log.Info("redis_staging_connected")

	cacheCtx, cacheCancel := context.WithTimeout(rootCtx, 10*time.Second)
	profileCache, err := cache.NewRedisCache(cacheCtx, cfg.Redis.URL, cfg.Redis.CachePrefix, cfg.Redis.CacheTTL)
	cacheCancel()
	if err != nil {
		log.Error("redis_cache_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		_ = stagingStore.Close()
		profilesStore.Close()
		os.Exit(1)
	}
	log.Info("redis_cache_connected")

	s3Ctx, s3Cancel := context.WithTimeout(rootCtx, 10*time.Second)
	filesStore, err := minio.New(s3Ctx, cfg)
	s3Cancel()
	if err != nil {
		log.Error("minio_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		_ = profileCache.Close()
		_ = stagingStore.Close()
		profilesStore.Close()
		os.Exit(1)
	}
	log.Info("minio_connected")

	m := metrics.New()
	proc := imaging.NewProcessor(cfg.Image.FinalSize, cfg.Image.MaxTransforms)
	usersClient := userssvc.NewHTTPClient(cfg.Users.BaseURL, cfg.Users.Timeout)
	verifier := auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	svc := service.New(profilesStore, stagingStore, filesStore, profileCache, usersClient, proc, m, cfg)
	log.Info("service_initialized")

	h := handlers.New(svc, m, profilesStore, stagingStore, cfg.Image.MaxUploadBytes)
	router := httpapi.NewRouter(h, verifier, log, cfg.Timeouts.Service)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = httpSrv.Close()
	}
	shutdownCancel()

	rootCancel()
	_ = profileCache.Close()
	_ = stagingStore.Close()
	profilesStore.Close()

	log.Info("service_stopped")
	os.Exit(0)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
