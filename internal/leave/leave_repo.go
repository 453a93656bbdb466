package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindApprovedByYear(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error)
	UpdatePendingDetails(ctx context.Context, l *LeaveRequest) (bool, error)
	TransitionStatus(ctx context.Context, l *LeaveRequest, expected Status) (bool, error)
	CancelIfNotCancelled(ctx context.Context, id string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	UsageByYear(ctx context.Context, employeeID string, year int, excludeID *string) (Usage, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindApprovedByYear(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error) {
	start, end := yearBounds(year)

	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("start_date BETWEEN ? AND ?", start, end).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

// UpdatePendingDetails persists edited fields only while the record is still
// PENDING. The status guard in the WHERE clause is the compare-and-swap that
// keeps a concurrent approval from being silently overwritten.
func (r *repository) UpdatePendingDetails(ctx context.Context, l *LeaveRequest) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", l.ID).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"type":       l.Type,
			"start_date": l.StartDate,
			"end_date":   l.EndDate,
			"total_days": l.TotalDays,
			"reason":     l.Reason,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected == 1, res.Error
}

// TransitionStatus applies the decision fields iff the current status still
// equals expected.
func (r *repository) TransitionStatus(ctx context.Context, l *LeaveRequest, expected Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", l.ID).
		Where("status = ?", expected).
		Updates(map[string]any{
			"status":           l.Status,
			"approved_by":      l.ApprovedBy,
			"approved_at":      l.ApprovedAt,
			"rejection_reason": l.RejectionReason,
			"updated_at":       time.Now().UTC(),
		})
	return res.RowsAffected == 1, res.Error
}

func (r *repository) CancelIfNotCancelled(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("status <> ?", StatusCancelled).
		Updates(map[string]any{
			"status":     StatusCancelled,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected == 1, res.Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []Status{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) UsageByYear(ctx context.Context, employeeID string, year int, excludeID *string) (Usage, error) {
	start, end := yearBounds(year)

	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select(
			"COALESCE(SUM(CASE WHEN status = ? THEN total_days ELSE 0 END), 0) AS approved_days, COALESCE(SUM(total_days), 0) AS committed_days",
			StatusApproved,
		).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []Status{StatusPending, StatusApproved}).
		Where("type <> ?", TypeSick).
		Where("start_date BETWEEN ? AND ?", start, end)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var usage Usage
	err := db.Scan(&usage).Error
	return usage, err
}

func yearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}
