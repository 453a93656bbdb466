package company

type UpdateSettingsRequest struct {
	Name                     string `json:"name"`
	AnnualLeaveAllowanceDays *int   `json:"annual_leave_allowance_days" binding:"omitempty,gt=0"`
}

type SettingsResponse struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	AnnualLeaveAllowanceDays int    `json:"annual_leave_allowance_days"`
}
