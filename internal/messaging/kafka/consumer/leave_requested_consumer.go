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

// ConsumeLeaveRequested notifies approvers that a new leave request is
// waiting for a decision.
func ConsumeLeaveRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	approverUserIDs []string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_requested")
	log.Info("leave requested consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave requested consumer stopped")
				return
			}
			log.Error("fetch leave requested message failed", zap.Error(err))
			continue
		}

		var event events.LeaveRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title := "New leave request"
		body := fmt.Sprintf("%s leave from %s to %s (%d days) is waiting for a decision.",
			event.LeaveType, event.StartDate, event.EndDate, event.TotalDays)

		delivered := true
		for _, approver := range approverUserIDs {
			uid, err := uuid.Parse(approver)
			if err != nil {
				log.Warn("skipping invalid approver id", zap.String("approver", approver))
				continue
			}
			// The leave id plus recipient keys the dedupe constraint, so a
			// redelivery never duplicates rows per approver.
			eventID := event.LeaveID + ":" + approver
			if err := notifications.Deliver(ctx, uid, eventID, "leave_requested", title, body); err != nil {
				log.Error("deliver leave requested notification failed",
					zap.String("leave_id", event.LeaveID),
					zap.String("approver_user_id", approver),
					zap.Error(err),
				)
				delivered = false
				break
			}
		}
		if !delivered {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave requested message failed", zap.Error(err))
			continue
		}

		log.Info("leave requested notifications delivered",
			zap.String("leave_id", event.LeaveID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
