package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one in-app message for a user. EventID carries the source
// event's id so redelivered Kafka messages cannot produce duplicate rows.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EventID string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_notifications_event_id"`
	Kind    string    `gorm:"type:varchar(50);not null"`
	Title   string    `gorm:"type:varchar(150);not null"`
	Body    string    `gorm:"type:text;not null"`
	ReadAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
