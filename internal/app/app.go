package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sitecue/sitecue/internal/auth"
	"github.com/sitecue/sitecue/internal/badge"
	"github.com/sitecue/sitecue/internal/config"
	"github.com/sitecue/sitecue/internal/httpserver"
	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/logger"
	"github.com/sitecue/sitecue/internal/redis"
	"github.com/sitecue/sitecue/internal/scheduler"
	"github.com/sitecue/sitecue/internal/sources/envmap"
	redisstore "github.com/sitecue/sitecue/internal/store/redis"
	"github.com/sitecue/sitecue/internal/version"
)

type App struct {
	cfg            *config.Config
	logger         logger.Logger
	server         *httpserver.Server
	redisClient    *goredis.Client
	envReloader    *scheduler.EnvMapReloader
	tokenRefresher *scheduler.TokenRefresher
	sessionGC      *scheduler.SessionGC
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	store := redisstore.NewStore(redisClient)

	authService := auth.NewService(cfg.JWTSecret, cfg.AccessTokenTTL)
	badgeTracker := badge.NewTracker()

	// Environment map (optional)
	var envMap *envmap.Map
	var envReloader *scheduler.EnvMapReloader
	var reloadTrigger chan struct{}
	if cfg.EnvMapFile != "" {
		loggerClient.Info("environments file configured, initializing env map reloader",
			logger.String("file", cfg.EnvMapFile))
		envMap = envmap.NewMap()
		reloadTrigger = make(chan struct{}, 1)
		envReloader = scheduler.NewEnvMapReloader(
			cfg.EnvMapFile,
			envMap,
			loggerClient,
			cfg.EnvMapReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("environments file not configured, shared env links disabled")
	}

	// Background session maintenance
	tokenRefresher := scheduler.NewTokenRefresher(
		store,
		loggerClient,
		cfg.TokenRefreshInterval,
		cfg.TokenRefreshWindow,
		cfg.RefreshTokenTTL,
	)
	sessionGC := scheduler.NewSessionGC(store, loggerClient, cfg.SessionGCInterval)

	// Dependencies passed to routes
	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		RedisClient:      redisClient,
		EnvMap:           envMap,
		BadgeTracker:     badgeTracker,
		Auth:             authService,
		RefreshTTL:       cfg.RefreshTokenTTL,
		LinkCheckTimeout: cfg.LinkCheckTimeout,
		SkipLinkCheck:    cfg.SkipLinkCheck,
		BadgeCacheTTL:    cfg.BadgeCacheTTL,
		AuthRateBurst:    cfg.AuthRateBurst,
		AuthRatePerMin:   cfg.AuthRatePerMin,
		ReloadTrigger:    reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:            cfg,
		logger:         loggerClient,
		server:         server,
		redisClient:    redisClient,
		envReloader:    envReloader,
		tokenRefresher: tokenRefresher,
		sessionGC:      sessionGC,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting SiteCue v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("SiteCue %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start env map reloader (if enabled)
	if a.envReloader != nil {
		if err := a.envReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start env map reloader: %w", err)
		}
		a.logger.Info("env map reloader started",
			logger.Duration("interval", a.cfg.EnvMapReloadInterval))
	}

	// Start token refresher
	if err := a.tokenRefresher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start token refresher: %w", err)
	}
	a.logger.Info("token refresher started",
		logger.Duration("interval", a.cfg.TokenRefreshInterval),
		logger.Duration("window", a.cfg.TokenRefreshWindow))

	// Start session garbage collector
	if err := a.sessionGC.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session collector: %w", err)
	}
	a.logger.Info("session collector started",
		logger.Duration("interval", a.cfg.SessionGCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.envReloader != nil {
		a.envReloader.Stop()
	}
	a.tokenRefresher.Stop()
	a.sessionGC.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ SiteCue stopped cleanly")
	return nil
}
