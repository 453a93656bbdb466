package events

import "time"

const LeaveDecidedTopic = "hr.leave.decided.v1"

type LeaveDecidedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id"`
	LeaveID         string    `json:"leave_id"`
	EmployeeID      string    `json:"employee_id"`
	UserID          string    `json:"user_id"`
	DecidedBy       string    `json:"decided_by"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
