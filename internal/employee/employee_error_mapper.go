package employee

import (
	"errors"
	"strings"

	employeeerrors "leavedesk/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return employeeerrors.ErrEmployeeAlreadyExists
		}
		return err
	}

	// gorm may surface the driver error as plain text depending on the
	// connection layer.
	if strings.Contains(err.Error(), "duplicate key value") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
