package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	employeeerrors "leavedesk/internal/employee/errors"
	"leavedesk/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*EmployeeResponse, error)
}

type service struct {
	repo     Repository
	counters counter.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, counters counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee-service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee-service")
	}
	return &service{repo: repo, counters: counters, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return nil, employeeerrors.ErrInvalidHireDate
	}

	seq, err := s.counters.GetNextValue(ctx, "employee_number")
	if err != nil {
		return nil, err
	}

	e := &Employee{
		ID:             uuid.New(),
		UserID:         userID,
		EmployeeNumber: fmt.Sprintf("EMP-%06d", seq),
		FullName:       req.FullName,
		Position:       req.Position,
		HireDate:       hireDate,
		Active:         true,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("employee created",
		zap.String("employee_id", e.ID.String()),
		zap.String("employee_number", e.EmployeeNumber))

	return mapToResponse(e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, *mapToResponse(&employees[i]))
	}
	return result, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return mapToResponse(e), nil
}

func mapToResponse(e *Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:             e.ID.String(),
		UserID:         e.UserID.String(),
		EmployeeNumber: e.EmployeeNumber,
		FullName:       e.FullName,
		Position:       e.Position,
		HireDate:       e.HireDate.Format("2006-01-02"),
		Active:         e.Active,
	}
}
