package domain

// EnforceRequest is the authorization question the RBAC layer answers.
type EnforceRequest struct {
	EmployeeID string
	Resource   string
	Action     string
}
