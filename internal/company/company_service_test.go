package company_test

import (
	"context"
	"testing"

	"leavedesk/internal/company"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSettingsRepository struct {
	settings *company.Settings
	getErr   error
	upserted *company.Settings
}

func (f *fakeSettingsRepository) Get(ctx context.Context) (*company.Settings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.settings, nil
}

func (f *fakeSettingsRepository) Upsert(ctx context.Context, s *company.Settings) error {
	f.upserted = s
	return nil
}

func intPtr(v int) *int { return &v }

func TestCompanyService_AnnualAllowance(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the configured allowance", func(t *testing.T) {
		repo := &fakeSettingsRepository{
			settings: &company.Settings{ID: uuid.New(), Name: "Acme", AnnualLeaveAllowanceDays: intPtr(25)},
		}
		svc := company.NewService(repo)

		got, err := svc.AnnualAllowance(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 25, got)
	})

	t.Run("falls back when no settings row exists", func(t *testing.T) {
		repo := &fakeSettingsRepository{getErr: gorm.ErrRecordNotFound}
		svc := company.NewService(repo)

		got, err := svc.AnnualAllowance(ctx)
		assert.NoError(t, err)
		assert.Equal(t, company.DefaultAnnualAllowanceDays, got)
	})

	t.Run("falls back when the allowance column is null", func(t *testing.T) {
		repo := &fakeSettingsRepository{
			settings: &company.Settings{ID: uuid.New(), Name: "Acme"},
		}
		svc := company.NewService(repo)

		got, err := svc.AnnualAllowance(ctx)
		assert.NoError(t, err)
		assert.Equal(t, company.DefaultAnnualAllowanceDays, got)
	})
}

func TestCompanyService_UpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the row on first update", func(t *testing.T) {
		repo := &fakeSettingsRepository{getErr: gorm.ErrRecordNotFound}
		svc := company.NewService(repo)

		resp, err := svc.UpdateSettings(ctx, company.UpdateSettingsRequest{
			Name:                     "Acme",
			AnnualLeaveAllowanceDays: intPtr(22),
		})
		assert.NoError(t, err)
		assert.Equal(t, 22, resp.AnnualLeaveAllowanceDays)
		assert.NotNil(t, repo.upserted)
	})

	t.Run("takes effect on the next allowance read", func(t *testing.T) {
		settings := &company.Settings{ID: uuid.New(), Name: "Acme", AnnualLeaveAllowanceDays: intPtr(20)}
		repo := &fakeSettingsRepository{settings: settings}
		svc := company.NewService(repo)

		_, err := svc.UpdateSettings(ctx, company.UpdateSettingsRequest{AnnualLeaveAllowanceDays: intPtr(30)})
		assert.NoError(t, err)

		got, err := svc.AnnualAllowance(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 30, got)
	})
}
