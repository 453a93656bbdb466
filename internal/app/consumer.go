package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"leavedesk/internal/events"
	"leavedesk/internal/messaging/kafka/consumer"
	"leavedesk/internal/notification"
	"leavedesk/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo)

	// Comma-separated user ids that should be told about new requests.
	approverUserIDs := splitAndTrim(os.Getenv("LEAVE_APPROVER_USER_IDS"))

	requestedReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{kafkaBroker},
		Topic:       events.LeaveRequestedTopic,
		GroupID:     "leavedesk-notifications",
		StartOffset: kafkago.FirstOffset,
	})
	defer requestedReader.Close()

	decidedReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{kafkaBroker},
		Topic:       events.LeaveDecidedTopic,
		GroupID:     "leavedesk-notifications",
		StartOffset: kafkago.FirstOffset,
	})
	defer decidedReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveRequested(ctx, requestedReader, notificationService, approverUserIDs, logger)
	go consumer.ConsumeLeaveDecided(ctx, decidedReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
