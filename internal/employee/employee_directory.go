package employee

import (
	"context"
	"errors"

	employeeerrors "leavedesk/internal/employee/errors"
	"leavedesk/internal/leave"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Directory adapts the employee repository to the leave module's lookup
// contract.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) Lookup(ctx context.Context, id string) (leave.EmployeeRef, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return leave.EmployeeRef{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := d.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leave.EmployeeRef{}, employeeerrors.ErrEmployeeNotFound
		}
		return leave.EmployeeRef{}, err
	}

	return leave.EmployeeRef{ID: e.ID, UserID: e.UserID}, nil
}
