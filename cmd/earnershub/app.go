package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"earnershub/internal/config"
	"earnershub/internal/handler"
	"earnershub/internal/notify"
	"earnershub/internal/repository"
	"earnershub/internal/service"

	"go.uber.org/zap"
)

// app wires stores, optional components and services from the configuration
type app struct {
	reviews     *service.ReviewService
	sources     *service.SourceService
	predictions *repository.PredictionLog
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	for _, path := range []string{cfg.Data.ReviewsPath, cfg.Data.SourcesPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	a := &app{}

	// The prediction log is optional: when it cannot be opened the app runs without it.
	var recorder service.PredictionRecorder
	if cfg.PredictionLog.Enabled {
		predictions, err := openPredictionLog(cfg, logger)
		if err != nil {
			logger.Warn("Failed to initialize prediction log, continuing without it", zap.Error(err))
		} else {
			a.predictions = predictions
			recorder = predictions
		}
	}

	notifier := newNotifier(cfg, logger)

	reviewStore := repository.NewReviewStore(cfg.Data.ReviewsPath, logger)
	sourceStore := repository.NewSourceStore(cfg.Data.SourcesPath, logger)

	a.reviews = service.NewReviewService(reviewStore, recorder, notifier, logger)
	a.sources = service.NewSourceService(sourceStore, notifier, logger)
	return a, nil
}

// predictionReader returns the prediction log as seen by the HTTP handler, or nil
func (a *app) predictionReader() handler.PredictionReader {
	if a.predictions == nil {
		return nil
	}
	return a.predictions
}

func (a *app) Close() error {
	if a.predictions == nil {
		return nil
	}
	return a.predictions.Close()
}

func openPredictionLog(cfg *config.Config, logger *zap.Logger) (*repository.PredictionLog, error) {
	if cfg.PredictionLog.Driver == "sqlite" && !strings.HasPrefix(cfg.PredictionLog.DSN, "file:") {
		if err := os.MkdirAll(filepath.Dir(cfg.PredictionLog.DSN), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return repository.NewPredictionLog(cfg.PredictionLog.Driver, cfg.PredictionLog.DSN, logger)
}

func newNotifier(cfg *config.Config, logger *zap.Logger) notify.Notifier {
	if !cfg.Telegram.Enabled {
		return notify.Nop{}
	}
	telegram, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, notifications disabled", zap.Error(err))
		return notify.Nop{}
	}
	return telegram
}
