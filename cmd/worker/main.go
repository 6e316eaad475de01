package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/retailstore/pkg/config"
	"github.com/ghuser/retailstore/pkg/database"
	"github.com/ghuser/retailstore/pkg/events"
	"github.com/ghuser/retailstore/pkg/logger"
	"github.com/ghuser/retailstore/pkg/telemetry"
	retailevents "github.com/ghuser/retailstore/services/retail/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh, err := eventBus.Subscribe(subCtx, retailevents.TopicPurchaseRecorded, handlePurchaseRecorded(log))
	if err != nil {
		log.Error("failed to subscribe", "topic", retailevents.TopicPurchaseRecorded, "error", err)
		os.Exit(1) //nolint:gocritic
	}
	go func() {
		for err := range errCh {
			log.ErrorContext(subCtx, "subscriber error", "error", err)
		}
	}()

	log.Info("worker running", "topic", retailevents.TopicPurchaseRecorded)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("worker shutting down...")
}

// handlePurchaseRecorded writes an audit log line for each committed
// purchase. The handler is idempotent: replaying a message only repeats the
// log entry.
func handlePurchaseRecorded(log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var event retailevents.PurchaseRecordedEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			log.ErrorContext(ctx, "malformed purchase event, dropping", "error", err, "message_id", msg.UUID)
			return nil // poison message; retrying cannot help
		}

		units := 0
		for _, l := range event.Lines {
			units += l.Quantity
		}
		log.InfoContext(ctx, "purchase recorded",
			"purchase_id", event.PurchaseID,
			"customer_id", event.CustomerID,
			"line_items", len(event.Lines),
			"units", units,
			"occurred_at", event.OccurredAt,
		)
		return nil
	}
}
