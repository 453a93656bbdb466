package holidayerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
	ErrHolidayAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a holiday already exists on this date",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"the from date must not be after the to date",
		http.StatusBadRequest,
	)
)
