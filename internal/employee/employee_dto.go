package employee

type CreateEmployeeRequest struct {
	UserID   string `json:"user_id" binding:"required,uuid"`
	FullName string `json:"full_name" binding:"required"`
	Position string `json:"position"`
	HireDate string `json:"hire_date" binding:"required,datetime=2006-01-02"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Position       string `json:"position"`
	HireDate       string `json:"hire_date"`
	Active         bool   `json:"active"`
}
