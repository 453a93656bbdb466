package employeeerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)

	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee already exists for this user",
		http.StatusConflict,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)

	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"hire date must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)
