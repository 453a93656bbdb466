package leaveerrors

import (
	"fmt"
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		"INVALID_RANGE",
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrPastStartDate = apperror.New(
		"PAST_DATE",
		"start_date must not be in the past",
		http.StatusBadRequest,
	)
	ErrInvalidDuration = apperror.New(
		"INVALID_DURATION",
		"total_days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrAllNonWorkingDays = apperror.New(
		"ALL_NON_WORKING_DAYS",
		"requested period contains no working days",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		"OVERLAP",
		"leave request already exists in overlapping period",
		http.StatusConflict,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the owning employee may modify this leave request",
		http.StatusForbidden,
	)
	ErrLeaveNotPending = apperror.New(
		"NOT_PENDING",
		"leave request is no longer pending",
		http.StatusConflict,
	)
	ErrLeaveAlreadyCancelled = apperror.New(
		"ALREADY_CANCELLED",
		"leave request is already cancelled",
		http.StatusConflict,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when status is REJECTED",
		http.StatusBadRequest,
	)
)

// AllowanceExceeded is the create/edit-time failure; the remaining balance is
// part of the message so clients can show it directly.
func AllowanceExceeded(remaining int) *apperror.AppError {
	return apperror.New(
		"ALLOWANCE_EXCEEDED",
		fmt.Sprintf("requested days exceed the remaining annual allowance of %d day(s)", remaining),
		http.StatusBadRequest,
	)
}

// AllowanceExceededAtApproval is the approval-time failure and reports the
// raw annual allowance rather than a remaining figure.
func AllowanceExceededAtApproval(allowance int) *apperror.AppError {
	return apperror.New(
		"ALLOWANCE_EXCEEDED",
		fmt.Sprintf("approving this request would exceed the annual allowance of %d day(s)", allowance),
		http.StatusBadRequest,
	)
}
