package leave

import (
	"time"

	"github.com/google/uuid"
)

// Status is the closed set of lifecycle states. Transitions are validated
// through CanTransitionTo, never by comparing raw strings in callers.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// CanTransitionTo reports whether the state machine allows moving from s to
// target. PENDING owns the approval fork; any non-cancelled state may still
// be cancelled by its owner.
func (s Status) CanTransitionTo(target Status) bool {
	if target == StatusCancelled {
		return s != StatusCancelled
	}

	switch s {
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	default:
		return false
	}
}

type Type string

const (
	TypeAnnual      Type = "ANNUAL"
	TypeSick        Type = "SICK"
	TypePersonal    Type = "PERSONAL"
	TypeUnpaid      Type = "UNPAID"
	TypeMaternity   Type = "MATERNITY"
	TypePaternity   Type = "PATERNITY"
	TypeBereavement Type = "BEREAVEMENT"
)

// ConsumesAllowance reports whether the type counts against the annual
// allowance. Sick leave never does.
func (t Type) ConsumesAllowance() bool {
	return t != TypeSick
}

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	UserID     uuid.UUID `gorm:"type:uuid;not null"`

	Type      Type      `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text"`

	Status          Status     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
