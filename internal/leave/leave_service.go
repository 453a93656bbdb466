package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"leavedesk/internal/events"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorUserID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Update(ctx context.Context, actorEmployeeID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, approverID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, actorEmployeeID, id string) (LeaveResponse, error)
	Balance(ctx context.Context, employeeID string, year int) (BalanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	validator *Validator
	employees EmployeeDirectory
	allowance AllowanceResolver
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	validator *Validator,
	employees EmployeeDirectory,
	allowance AllowanceResolver,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, validator, employees, allowance, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	validator *Validator,
	employees EmployeeDirectory,
	allowance AllowanceResolver,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		validator: validator,
		employees: employees,
		allowance: allowance,
		outbox:    outboxRepo,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorUserID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("actor_user_id", actorUserID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	emp, err := s.validator.Validate(ctx, qtx, validateInput{
		EmployeeID: req.EmployeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  req.TotalDays,
		Type:       Type(req.Type),
	})
	if err != nil {
		s.logger.Warn("create leave validation failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		UserID:     emp.UserID,
		Type:       Type(req.Type),
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  req.TotalDays,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.LeaveRequestedEvent{
			EventType:   "leave_requested",
			RequestID:   rid,
			LeaveID:     l.ID.String(),
			EmployeeID:  l.EmployeeID.String(),
			UserID:      l.UserID.String(),
			RequestedBy: actorUserID,
			LeaveType:   string(l.Type),
			StartDate:   l.StartDate.Format("2006-01-02"),
			EndDate:     l.EndDate.Format("2006-01-02"),
			TotalDays:   l.TotalDays,
			OccurredAt:  time.Now().UTC(),
		}
		if err := s.enqueueEvent(ctx, tx, l.ID.String(), rid, events.LeaveRequestedTopic, event.EventType, event); err != nil {
			s.logger.Error("create leave outbox persist failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.invalidateBalance(ctx, l.EmployeeID.String(), l.StartDate.Year())
	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID.String()),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

// Update edits a pending request. Only the owning employee may edit, and the
// merged result is re-validated in full with the request's own id excluded
// from the overlap and usage queries.
func (s *service) Update(ctx context.Context, actorEmployeeID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("actor_employee_id", actorEmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(actorEmployeeID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.EmployeeID.String() != actorEmployeeID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	prevYear := l.StartDate.Year()
	if err := mergePatch(l, req); err != nil {
		return LeaveResponse{}, err
	}

	if _, err := s.validator.Validate(ctx, qtx, validateInput{
		EmployeeID: l.EmployeeID.String(),
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
		TotalDays:  l.TotalDays,
		Type:       l.Type,
		ExcludeID:  &id,
	}); err != nil {
		s.logger.Warn("update leave validation failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	applied, err := qtx.UpdatePendingDetails(ctx, l)
	if err != nil {
		s.logger.Error("update leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !applied {
		// Status changed between the read and the guarded write.
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.invalidateBalance(ctx, l.EmployeeID.String(), prevYear, l.StartDate.Year())
	s.logger.Info("update leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

// Decide approves or rejects a pending request. Approval re-checks the
// allowance against approved-only days: pending requests elsewhere do not
// block this approval even though they blocked creation.
func (s *service) Decide(ctx context.Context, approverID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
		zap.String("target_status", req.Status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	target := Status(req.Status)
	if l.Status != StatusPending || !l.Status.CanTransitionTo(target) {
		s.logger.Warn("decide leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", string(l.Status)),
			zap.String("to_status", string(target)),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	if target == StatusApproved && l.Type.ConsumesAllowance() {
		allowance, err := s.allowance.AnnualAllowance(ctx)
		if err != nil {
			return LeaveResponse{}, err
		}
		usage, err := qtx.UsageByYear(ctx, l.EmployeeID.String(), l.StartDate.Year(), &id)
		if err != nil {
			return LeaveResponse{}, err
		}
		if usage.ApprovedDays+l.TotalDays > allowance {
			return LeaveResponse{}, leaveerrors.AllowanceExceededAtApproval(allowance)
		}
	}

	if target == StatusRejected && (req.RejectionReason == nil || *req.RejectionReason == "") {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	now := time.Now().UTC()
	l.Status = target
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now
	l.RejectionReason = req.RejectionReason

	applied, err := qtx.TransitionStatus(ctx, l, StatusPending)
	if err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !applied {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	if s.outbox != nil {
		event := events.LeaveDecidedEvent{
			EventType:  "leave_decided",
			RequestID:  rid,
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID.String(),
			UserID:     l.UserID.String(),
			DecidedBy:  approverID,
			Status:     string(target),
			OccurredAt: now,
		}
		if req.RejectionReason != nil {
			event.RejectionReason = *req.RejectionReason
		}
		if err := s.enqueueEvent(ctx, tx, l.ID.String(), rid, events.LeaveDecidedTopic, event.EventType, event); err != nil {
			s.logger.Error("decide leave outbox persist failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.invalidateBalance(ctx, l.EmployeeID.String(), l.StartDate.Year())
	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", string(target)),
	)

	return mapToResponse(*l), nil
}

// Cancel moves any non-cancelled request to CANCELLED. Cancelling an approved
// request is allowed and frees its days for future aggregation, since usage
// is always recomputed from current statuses.
func (s *service) Cancel(ctx context.Context, actorEmployeeID, id string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested",
		zap.String("leave_id", id),
		zap.String("actor_employee_id", actorEmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(actorEmployeeID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.EmployeeID.String() != actorEmployeeID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if l.Status == StatusCancelled {
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyCancelled
	}

	applied, err := qtx.CancelIfNotCancelled(ctx, id)
	if err != nil {
		s.logger.Error("cancel leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !applied {
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyCancelled
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	l.Status = StatusCancelled
	s.invalidateBalance(ctx, l.EmployeeID.String(), l.StartDate.Year())
	s.logger.Info("cancel leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, aggregateID, requestID, topic, eventType string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "leave_request",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mergePatch(l *LeaveRequest, req UpdateLeaveRequest) error {
	if req.Type != nil {
		l.Type = Type(*req.Type)
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return err
		}
		l.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			return err
		}
		l.EndDate = d
	}
	if req.TotalDays != nil {
		l.TotalDays = *req.TotalDays
	}
	if req.Reason != nil {
		l.Reason = *req.Reason
	}
	return nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		UserID:     l.UserID.String(),
		Type:       string(l.Type),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     string(l.Status),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
