package company

import (
	"context"
	"errors"

	companyerrors "leavedesk/internal/company/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultAnnualAllowanceDays applies when no settings row exists or the
// allowance column is null.
const DefaultAnnualAllowanceDays = 20

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	GetSettings(ctx context.Context) (*SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error)

	// AnnualAllowance satisfies the leave module's allowance resolver.
	AnnualAllowance(ctx context.Context) (int, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company-service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company-service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetSettings(ctx context.Context) (*SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrSettingsNotFound
		}
		return nil, err
	}
	return mapToResponse(settings), nil
}

func (s *service) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		settings = &Settings{ID: uuid.New()}
	}

	if req.Name != "" {
		settings.Name = req.Name
	}
	if req.AnnualLeaveAllowanceDays != nil {
		settings.AnnualLeaveAllowanceDays = req.AnnualLeaveAllowanceDays
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("company settings updated",
		zap.Int("annual_leave_allowance_days", effectiveAllowance(settings)))

	return mapToResponse(settings), nil
}

// AnnualAllowance is resolved on every call rather than cached so that an
// admin change takes effect on the next request.
func (s *service) AnnualAllowance(ctx context.Context) (int, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultAnnualAllowanceDays, nil
		}
		return 0, err
	}
	return effectiveAllowance(settings), nil
}

func effectiveAllowance(s *Settings) int {
	if s.AnnualLeaveAllowanceDays == nil || *s.AnnualLeaveAllowanceDays <= 0 {
		return DefaultAnnualAllowanceDays
	}
	return *s.AnnualLeaveAllowanceDays
}

func mapToResponse(s *Settings) *SettingsResponse {
	return &SettingsResponse{
		ID:                       s.ID.String(),
		Name:                     s.Name,
		AnnualLeaveAllowanceDays: effectiveAllowance(s),
	}
}
