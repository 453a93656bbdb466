package events

import "time"

const LeaveRequestedTopic = "hr.leave.requested.v1"

type LeaveRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	LeaveID     string    `json:"leave_id"`
	EmployeeID  string    `json:"employee_id"`
	UserID      string    `json:"user_id"`
	RequestedBy string    `json:"requested_by"`
	LeaveType   string    `json:"leave_type"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	TotalDays   int       `json:"total_days"`
	OccurredAt  time.Time `json:"occurred_at"`
}
