package companyerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrSettingsNotFound = apperror.New(
		apperror.CodeNotFound,
		"company settings not found",
		http.StatusNotFound,
	)
)
