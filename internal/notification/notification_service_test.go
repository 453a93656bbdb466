package notification_test

import (
	"context"
	"testing"
	"time"

	"leavedesk/internal/notification"
	notificationerrors "leavedesk/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationRepository struct {
	createFn     func(ctx context.Context, n *notification.Notification) error
	findByUserFn func(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]notification.Notification, error)
	markReadFn   func(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
	if f.findByUserFn != nil {
		return f.findByUserFn(ctx, userID, unreadOnly)
	}
	return nil, nil
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, id, userID)
	}
	return false, nil
}

func TestNotificationService_Deliver(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a row", func(t *testing.T) {
		var stored *notification.Notification
		repo := &fakeNotificationRepository{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				stored = n
				return nil
			},
		}
		svc := notification.NewService(repo)

		userID := uuid.New()
		err := svc.Deliver(ctx, userID, "leave-1:decided", "leave_decided", "Leave request APPROVED", "Your leave request was APPROVED.")
		assert.NoError(t, err)
		if assert.NotNil(t, stored) {
			assert.Equal(t, userID, stored.UserID)
			assert.Equal(t, "leave-1:decided", stored.EventID)
		}
	})

	t.Run("redelivered event is absorbed silently", func(t *testing.T) {
		repo := &fakeNotificationRepository{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_notifications_event_id"}
			},
		}
		svc := notification.NewService(repo)

		err := svc.Deliver(ctx, uuid.New(), "leave-1:decided", "leave_decided", "t", "b")
		assert.NoError(t, err)
	})

	t.Run("other constraint failures propagate", func(t *testing.T) {
		repo := &fakeNotificationRepository{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				return &pgconn.PgError{Code: "23503", ConstraintName: "fk_notifications_user"}
			},
		}
		svc := notification.NewService(repo)

		err := svc.Deliver(ctx, uuid.New(), "leave-1:decided", "leave_decided", "t", "b")
		assert.Error(t, err)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("unmatched row maps to not found", func(t *testing.T) {
		svc := notification.NewService(&fakeNotificationRepository{})

		err := svc.MarkRead(ctx, uuid.New().String(), uuid.New().String())
		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})

	t.Run("owner scoping is passed through", func(t *testing.T) {
		userID := uuid.New()
		notifID := uuid.New()
		repo := &fakeNotificationRepository{
			markReadFn: func(ctx context.Context, id, uid uuid.UUID) (bool, error) {
				assert.Equal(t, notifID, id)
				assert.Equal(t, userID, uid)
				return true, nil
			},
		}
		svc := notification.NewService(repo)

		err := svc.MarkRead(ctx, userID.String(), notifID.String())
		assert.NoError(t, err)
	})
}

func TestNotificationService_ListForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("maps rows to responses", func(t *testing.T) {
		userID := uuid.New()
		now := time.Now().UTC()
		repo := &fakeNotificationRepository{
			findByUserFn: func(ctx context.Context, uid uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
				assert.True(t, unreadOnly)
				return []notification.Notification{
					{ID: uuid.New(), UserID: uid, EventID: "e1", Kind: "leave_decided", Title: "t", Body: "b", CreatedAt: now},
				}, nil
			},
		}
		svc := notification.NewService(repo)

		items, err := svc.ListForUser(ctx, userID.String(), true)
		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "leave_decided", items[0].Kind)
	})
}
