package holiday_test

import (
	"context"
	"testing"
	"time"

	"leavedesk/internal/holiday"
	holidayerrors "leavedesk/internal/holiday/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeHolidayRepository struct {
	createFn      func(ctx context.Context, h *holiday.Holiday) error
	findBetweenFn func(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeHolidayRepository) Create(ctx context.Context, h *holiday.Holiday) error {
	if f.createFn != nil {
		return f.createFn(ctx, h)
	}
	return nil
}

func (f *fakeHolidayRepository) FindBetween(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	if f.findBetweenFn != nil {
		return f.findBetweenFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeHolidayRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestHolidayService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo)

		resp, err := svc.Create(ctx, holiday.CreateHolidayRequest{Name: "Independence Day", Date: "2026-08-17"})
		assert.NoError(t, err)
		assert.Equal(t, "Independence Day", resp.Name)
		assert.Equal(t, "2026-08-17", resp.Date)
	})

	t.Run("duplicate date maps to conflict", func(t *testing.T) {
		repo := &fakeHolidayRepository{
			createFn: func(ctx context.Context, h *holiday.Holiday) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_holidays_date"}
			},
		}
		svc := holiday.NewService(repo)

		_, err := svc.Create(ctx, holiday.CreateHolidayRequest{Name: "New Year", Date: "2027-01-01"})
		assert.ErrorIs(t, err, holidayerrors.ErrHolidayAlreadyExists)
	})

	t.Run("bad date format rejected", func(t *testing.T) {
		svc := holiday.NewService(&fakeHolidayRepository{})

		_, err := svc.Create(ctx, holiday.CreateHolidayRequest{Name: "Oops", Date: "17-08-2026"})
		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
	})
}

func TestHolidayService_Between(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the bare dates for the calendar contract", func(t *testing.T) {
		d1 := time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC)
		d2 := time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC)
		repo := &fakeHolidayRepository{
			findBetweenFn: func(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
				return []holiday.Holiday{
					{ID: uuid.New(), Name: "Day one", Date: d1},
					{ID: uuid.New(), Name: "Day two", Date: d2},
				}, nil
			},
		}
		svc := holiday.NewService(repo)

		dates, err := svc.Between(ctx, d1, d2)
		assert.NoError(t, err)
		assert.Equal(t, []time.Time{d1, d2}, dates)
	})
}

func TestHolidayService_ListBetween(t *testing.T) {
	ctx := context.Background()

	t.Run("inverted range rejected", func(t *testing.T) {
		svc := holiday.NewService(&fakeHolidayRepository{})

		_, err := svc.ListBetween(ctx, "2026-12-31", "2026-01-01")
		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateRange)
	})
}
