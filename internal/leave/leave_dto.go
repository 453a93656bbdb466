package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Type       string `json:"type" binding:"required,oneof=ANNUAL SICK PERSONAL UNPAID MATERNITY PATERNITY BEREAVEMENT"`
	StartDate  string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" binding:"required,datetime=2006-01-02"`
	TotalDays  int    `json:"total_days" binding:"required"`
	Reason     string `json:"reason"`
}

// UpdateLeaveRequest is a partial patch; absent fields keep their current
// values and the merged result is re-validated as a whole.
type UpdateLeaveRequest struct {
	Type      *string `json:"type" binding:"omitempty,oneof=ANNUAL SICK PERSONAL UNPAID MATERNITY PATERNITY BEREAVEMENT"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	TotalDays *int    `json:"total_days"`
	Reason    *string `json:"reason"`
}

type DecideLeaveRequest struct {
	Status          string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	RejectionReason *string `json:"rejection_reason"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	UserID          string  `json:"user_id"`
	Type            string  `json:"type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type BalanceResponse struct {
	Year           int             `json:"year"`
	TotalAllowance int             `json:"total_allowance"`
	Used           int             `json:"used"`
	Remaining      int             `json:"remaining"`
	LeaveRequests  []LeaveResponse `json:"leave_requests"`
}
