package notification

import (
	"context"
	"errors"
	"strings"

	notificationerrors "leavedesk/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	// Deliver stores a notification row. A duplicate event id is not an
	// error; redeliveries are silently absorbed.
	Deliver(ctx context.Context, userID uuid.UUID, eventID, kind, title, body string) error

	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification-service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification-service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Deliver(ctx context.Context, userID uuid.UUID, eventID, kind, title, body string) error {
	n := &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		EventID: eventID,
		Kind:    kind,
		Title:   title,
		Body:    body,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		if isDuplicateEvent(err) {
			s.logger.Warn("notification already delivered for event, skipping",
				zap.String("event_id", eventID))
			return nil
		}
		return err
	}

	return nil
}

func (s *service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, notificationerrors.ErrInvalidUserID
	}

	notifications, err := s.repo.FindByUser(ctx, uid, unreadOnly)
	if err != nil {
		return nil, err
	}

	result := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		result = append(result, NotificationResponse{
			ID:        n.ID.String(),
			Kind:      n.Kind,
			Title:     n.Title,
			Body:      n.Body,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}
	return result, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return notificationerrors.ErrInvalidUserID
	}
	nid, err := uuid.Parse(id)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	updated, err := s.repo.MarkRead(ctx, nid, uid)
	if err != nil {
		return err
	}
	if !updated {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func isDuplicateEvent(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_notifications_event_id"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_notifications_event_id")
}
