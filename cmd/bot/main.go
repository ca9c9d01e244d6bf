package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/coah80/getbot/internal/alerts"
	"github.com/coah80/getbot/internal/bot"
	"github.com/coah80/getbot/internal/config"
	"github.com/coah80/getbot/internal/fetcher"
	"github.com/coah80/getbot/internal/logger"
	"github.com/coah80/getbot/internal/metrics"
	"github.com/coah80/getbot/internal/server"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal("invalid configuration", "err", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	notifier := alerts.New(alerts.Options{
		WebhookURL: cfg.WebhookURL,
		PingUserID: cfg.PingUserID,
		Cooldown:   config.AlertCooldown,
		Logger:     log,
	})

	getter := bot.NewGetter(
		fetcher.New(fetcher.Options{
			BaseURL: cfg.DownloadAPIURL,
			Timeout: cfg.FetchTimeout,
			Logger:  log,
		}),
		bot.GetterOptions{
			Metrics: metrics.New(reg),
			Alerts:  notifier,
			Logger:  log,
		},
	)

	b, err := bot.New(bot.Config{
		Token:             cfg.Token,
		AppID:             cfg.AppID,
		InteractionWindow: config.InteractionWindow,
		Logger:            log,
	}, getter)
	if err != nil {
		log.Fatal("failed to create bot", "err", err)
	}

	var srv *http.Server
	if cfg.HTTPAddr != "" {
		srv = server.New(server.Options{
			Addr:        cfg.HTTPAddr,
			Gatherer:    reg,
			CORSOrigins: cfg.CORSOrigins,
			Logger:      log,
			Ready:       b.Ready,
		})
		go func() {
			log.Info("operational server listening", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("operational server stopped", "err", err)
			}
		}()
	}

	if err := b.Start(); err != nil {
		log.Fatal("failed to start bot", "err", err)
	}
	notifier.BotStarted(b.Username())

	log.Info("bot is running, press Ctrl+C to stop", "version", config.Version)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down bot")
	notifier.BotStopping()
	b.Stop()

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
	notifier.Wait()
	log.Info("bot stopped")
}
