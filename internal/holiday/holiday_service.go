package holiday

import (
	"context"
	"errors"
	"strings"
	"time"

	holidayerrors "leavedesk/internal/holiday/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListBetween(ctx context.Context, from, to string) ([]HolidayResponse, error)
	Between(ctx context.Context, start, end time.Time) ([]time.Time, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	h := &Holiday{
		ID:   uuid.New(),
		Name: req.Name,
		Date: date,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create holiday success",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
	)

	return mapToResponse(*h), nil
}

func (s *service) ListBetween(ctx context.Context, from, to string) ([]HolidayResponse, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, holidayerrors.ErrInvalidDateRange
	}

	holidays, err := s.repo.FindBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

// Between implements the calendar contract the leave validator consumes: the
// non-working dates within the inclusive [start, end] span.
func (s *service) Between(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	holidays, err := s.repo.FindBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	return dates, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_holidays_date" {
			return holidayerrors.ErrHolidayAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_holidays_date") {
		return holidayerrors.ErrHolidayAlreadyExists
	}

	return err
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, holidayerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Name: h.Name,
		Date: h.Date.Format("2006-01-02"),
	}
}
