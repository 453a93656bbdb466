package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	FindBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindBetween(ctx context.Context, start, end time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id).Error
}
