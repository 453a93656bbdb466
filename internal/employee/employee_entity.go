package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employees_user_id"`
	EmployeeNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_number"`
	FullName       string    `gorm:"type:varchar(150);not null"`
	Position       string    `gorm:"type:varchar(100)"`
	HireDate       time.Time `gorm:"type:date;not null"`
	Active         bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
