package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"leavedesk/internal/events"
	"leavedesk/internal/notification"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecided notifies the requesting employee of the outcome.
func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		uid, err := uuid.Parse(event.UserID)
		if err != nil {
			log.Error("leave_decided event has invalid user id",
				zap.String("leave_id", event.LeaveID),
				zap.String("user_id", event.UserID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title := fmt.Sprintf("Leave request %s", event.Status)
		body := fmt.Sprintf("Your leave request was %s.", event.Status)
		if event.RejectionReason != "" {
			body = fmt.Sprintf("Your leave request was %s: %s", event.Status, event.RejectionReason)
		}

		eventID := event.LeaveID + ":decided"
		if err := notifications.Deliver(ctx, uid, eventID, "leave_decided", title, body); err != nil {
			log.Error("deliver leave decided notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("leave decided notification delivered",
			zap.String("leave_id", event.LeaveID),
			zap.String("status", event.Status),
		)
	}
}
