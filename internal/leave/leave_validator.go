package leave

import (
	"context"
	"time"

	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/google/uuid"
)

// EmployeeRef is the slice of the employee record the leave core needs.
type EmployeeRef struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// EmployeeDirectory resolves employee identity. Lookup returns the employee
// module's not-found error when the id is unknown.
type EmployeeDirectory interface {
	Lookup(ctx context.Context, id string) (EmployeeRef, error)
}

// HolidayCalendar returns the non-working dates inside the inclusive span.
type HolidayCalendar interface {
	Between(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

// AllowanceResolver yields the organization's annual leave allowance in days,
// fallback already applied.
type AllowanceResolver interface {
	AnnualAllowance(ctx context.Context) (int, error)
}

// Validator enforces the request-shape invariants for create and edit. The
// checks run in a fixed order and fail fast; callers pass the tx-scoped
// repository so overlap and usage reads share the operation's transaction.
type Validator struct {
	employees EmployeeDirectory
	holidays  HolidayCalendar
	allowance AllowanceResolver
}

func NewValidator(employees EmployeeDirectory, holidays HolidayCalendar, allowance AllowanceResolver) *Validator {
	return &Validator{
		employees: employees,
		holidays:  holidays,
		allowance: allowance,
	}
}

type validateInput struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  int
	Type       Type
	// ExcludeID removes the request being edited from the overlap and
	// usage queries.
	ExcludeID *string
}

func (v *Validator) Validate(ctx context.Context, repo Repository, in validateInput) (EmployeeRef, error) {
	emp, err := v.employees.Lookup(ctx, in.EmployeeID)
	if err != nil {
		return EmployeeRef{}, err
	}

	if in.StartDate.After(in.EndDate) {
		return EmployeeRef{}, leaveerrors.ErrInvalidDateRange
	}

	if in.StartDate.Before(startOfToday()) {
		return EmployeeRef{}, leaveerrors.ErrPastStartDate
	}

	if in.TotalDays <= 0 {
		return EmployeeRef{}, leaveerrors.ErrInvalidDuration
	}

	holidays, err := v.holidays.Between(ctx, in.StartDate, in.EndDate)
	if err != nil {
		return EmployeeRef{}, err
	}
	if workingDays(in.StartDate, in.EndDate, holidays) == 0 {
		return EmployeeRef{}, leaveerrors.ErrAllNonWorkingDays
	}

	overlap, err := repo.HasOverlappingPeriod(ctx, in.EmployeeID, in.StartDate, in.EndDate, in.ExcludeID)
	if err != nil {
		return EmployeeRef{}, err
	}
	if overlap {
		return EmployeeRef{}, leaveerrors.ErrLeaveOverlap
	}

	if in.Type.ConsumesAllowance() {
		allowance, err := v.allowance.AnnualAllowance(ctx)
		if err != nil {
			return EmployeeRef{}, err
		}

		usage, err := repo.UsageByYear(ctx, in.EmployeeID, in.StartDate.Year(), in.ExcludeID)
		if err != nil {
			return EmployeeRef{}, err
		}

		remaining := allowance - usage.CommittedDays
		if remaining < 0 {
			remaining = 0
		}
		if in.TotalDays > remaining {
			return EmployeeRef{}, leaveerrors.AllowanceExceeded(remaining)
		}
	}

	return emp, nil
}

// workingDays counts the calendar days in [start, end] that are neither a
// Saturday/Sunday nor one of the provided holiday dates.
func workingDays(start, end time.Time, holidays []time.Time) int {
	nonWorking := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		nonWorking[h.Format("2006-01-02")] = struct{}{}
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, ok := nonWorking[d.Format("2006-01-02")]; ok {
			continue
		}
		days++
	}
	return days
}

// startOfToday is today's date with the time-of-day zeroed, matching the
// date-only comparison the past-date rule requires.
func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
