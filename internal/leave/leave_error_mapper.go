package leave

import (
	"errors"
	"strings"

	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage failures into the domain taxonomy.
// 23P01 is the range-exclusion constraint on active requests; it is the
// backstop for the overlap check when two transactions race past the read.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23P01" && pgErr.ConstraintName == "excl_leave_requests_active_range" {
			return leaveerrors.ErrLeaveOverlap
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "conflicting key value") && strings.Contains(errMsg, "excl_leave_requests_active_range") {
		return leaveerrors.ErrLeaveOverlap
	}

	return err
}
