package company

import (
	"time"

	"github.com/google/uuid"
)

// Settings is the organization-wide configuration row. The deployment keeps
// a single record; a missing record or a null allowance falls back to
// DefaultAnnualAllowanceDays.
type Settings struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(150);not null"`

	AnnualLeaveAllowanceDays *int `gorm:"type:int"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Settings) TableName() string {
	return "company_settings"
}
