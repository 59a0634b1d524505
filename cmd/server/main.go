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

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"matchpoint-api/internal/aggregator"
	"matchpoint-api/internal/config"
	"matchpoint-api/internal/models"
	"matchpoint-api/internal/scoring"
	"matchpoint-api/internal/server"
	"matchpoint-api/internal/sources"
	"matchpoint-api/pkg/httpclient"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("Could not load .env file: %v", err)
	}
	cfg := config.Load()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	client := httpclient.NewHttpClient(cfg.Providers.RequestTimeout)
	scorer := scoring.New(time.Now().UnixNano())
	cache := aggregator.NewCache(cfg.Cache.MaxKeys, cfg.Cache.TTL)

	remotive := sources.NewRemotiveSource(client, scorer, cfg.Providers.RemotiveURL, cfg.Providers.RemotiveLimit)
	arbeitnow := sources.NewArbeitnowSource(client, scorer, cfg.Providers.ArbeitnowURL, cfg.Providers.ArbeitnowLimit)
	agg := aggregator.New(remotive, arbeitnow, scorer, cache, logger)

	srv := server.New(agg, cfg, client, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var warmer *cron.Cron
	if cfg.WarmCron != "" {
		warmer = cron.New()
		if _, err := warmer.AddFunc(cfg.WarmCron, func() {
			warmCache(ctx, agg, logger)
		}); err != nil {
			logger.Fatalf("Invalid warm cron spec %q: %v", cfg.WarmCron, err)
		}
		warmer.Start()
		logger.Infof("Cache warmer started with spec %q", cfg.WarmCron)
		go warmCache(ctx, agg, logger)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Infof("MatchPoint API listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Infof("Received signal %v, shutting down gracefully...", sig)

	cancel()
	if warmer != nil {
		warmer.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
	logger.Info("MatchPoint API shutdown complete")
}

// warmCache refreshes the default (empty query, no categories) cache entry so
// the first request after TTL expiry is served warm.
func warmCache(ctx context.Context, agg *aggregator.Aggregator, logger *logrus.Logger) {
	start := time.Now()
	jobs, cached := agg.FetchAllJobs(ctx, "", nil, nil, models.Filters{})
	if cached {
		return
	}
	logger.WithFields(logrus.Fields{
		"jobs":     len(jobs),
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("cache warm cycle complete")
}
