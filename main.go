package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/dublin-on-time/dublinontime/internal/api/rtpi"
	"github.com/dublin-on-time/dublinontime/internal/config"
	"github.com/dublin-on-time/dublinontime/internal/monitor"
	"github.com/dublin-on-time/dublinontime/internal/notify"
	"github.com/dublin-on-time/dublinontime/internal/respond"
	"github.com/dublin-on-time/dublinontime/internal/server"
	"github.com/dublin-on-time/dublinontime/internal/stop"
)

var CLI struct {
	Config string `help:"Path to config file" default:"config.yaml" type:"path"`
	Listen string `help:"Listen address override" default:""`
}

func main() {
	kong.Parse(&CLI)

	// Setup structured logging with logfmt
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	// Load configuration
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		logger.WithField("error", err).Fatal("failed to load config")
	}
	if CLI.Listen != "" {
		cfg.Listen = CLI.Listen
	}

	timeout, err := cfg.RTPI.TimeoutDuration()
	if err != nil {
		logger.WithField("error", err).Fatal("invalid rtpi timeout")
	}

	// Initialize the scrape client and response composer
	rtpiClient := rtpi.NewClient(cfg.RTPI.BaseURL, timeout)
	composer := respond.NewComposer(cfg.Response.Phrases, cfg.Response.DetailSeparator)

	// Optional Pushover operator alerts
	var notifier *notify.Notifier
	pushoverToken := os.Getenv("PUSHOVER_TOKEN")
	pushoverUser := os.Getenv("PUSHOVER_USER")
	if pushoverToken != "" && pushoverUser != "" {
		notifier = notify.NewNotifier(pushoverToken, pushoverUser, logger)
	} else {
		logger.Info("PUSHOVER_TOKEN / PUSHOVER_USER not set, operator alerts disabled")
	}

	srv := server.New(rtpiClient, composer, server.Options{
		MaxBuses:       cfg.Response.MaxBuses,
		ClockSeparator: cfg.Response.ClockSeparator,
	}, logger)

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.WithField("signal", sig).Info("received signal, shutting down")
		cancel()
	}()

	// Start the upstream monitor when configured
	var upstream *monitor.UpstreamMonitor
	if cfg.Monitor.Enabled {
		interval, err := cfg.Monitor.IntervalDuration()
		if err != nil {
			logger.WithField("error", err).Fatal("invalid monitor interval")
		}
		var alerts monitor.AlertSink
		if notifier != nil {
			alerts = notifier
		}
		upstream = monitor.NewUpstreamMonitor(rtpiClient, alerts, stop.ID(cfg.Monitor.ReferenceStop), interval, logger)
		upstream.Start(ctx)
	}

	logger.WithFields(logrus.Fields{
		"listen":    cfg.Listen,
		"max_buses": cfg.Response.MaxBuses,
	}).Info("starting dublinontime")

	go func() {
		if err := srv.Listen(cfg.Listen); err != nil {
			logger.WithField("error", err).Fatal("server stopped")
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	if upstream != nil {
		upstream.Stop()
	}
	if err := srv.Shutdown(); err != nil {
		logger.WithField("error", err).Error("shutdown failed")
	}
	logger.Info("dublinontime stopped")
}
