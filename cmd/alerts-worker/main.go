package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/config"
	"budget/internal/export"
	"budget/internal/log"
	"budget/internal/services"
	"budget/internal/storage"
	"budget/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("Starting alerts worker", log.FieldOperation, log.OpStartup)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alerts worker")
		os.Exit(1)
	}

	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.WithComponent(log.ComponentStorage).Error("Failed to open database",
			log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The exporter is optional; alerts are logged either way.
	var exporter worker.SummaryExporter
	if cfg.GoogleSpreadsheetID != "" {
		sheets, err := export.NewSheetsExporter(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.WithComponent(log.ComponentExport).Error("Failed to initialize Sheets exporter",
				log.FieldError, err)
			os.Exit(1)
		}
		exporter = sheets
		logger.Info("Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.WithComponent(log.ComponentAMQP).Error("Failed to connect to AMQP",
			log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	if err := client.SetPrefetch(cfg.ConsumerPrefetch); err != nil {
		logger.WithComponent(log.ComponentAMQP).Error("Failed to set prefetch",
			log.FieldError, err)
		os.Exit(1)
	}

	svc := services.NewBudgetService(store, nil)
	alertWorker := worker.NewAlertWorker(svc, exporter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeBudgetAlerts(gctx, alertWorker.HandleAlert)
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully", log.FieldOperation, log.OpShutdown)
}
