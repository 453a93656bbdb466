package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(100);not null"`
	Date time.Time `gorm:"type:date;not null;uniqueIndex:uq_holidays_date"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Holiday) TableName() string {
	return "holidays"
}
