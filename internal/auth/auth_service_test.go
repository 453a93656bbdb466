package auth_test

import (
	"context"
	"testing"

	"leavedesk/internal/auth"
	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/employee"
	employeeerrors "leavedesk/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) Create(ctx context.Context, user *auth.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func seedUser(t *testing.T, repo *fakeUserRepository, email, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	employeeID := uuid.New()
	u := &auth.User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Name:       "Ada Lovelace",
		Email:      email,
		Password:   string(hashed),
		Role:       "EMPLOYEE",
		IsActive:   true,
	}
	repo.users[email] = u
	return u
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid credentials issue both tokens", func(t *testing.T) {
		repo := newFakeUserRepository()
		u := seedUser(t, repo, "ada@example.com", "s3cret99")
		svc := auth.NewService(repo, &fakeEmployeeRepo{})

		access, refresh, resp, err := svc.Login(ctx, "ada@example.com", "s3cret99")
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, u.ID.String(), resp.ID)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		repo := newFakeUserRepository()
		seedUser(t, repo, "ada@example.com", "s3cret99")
		svc := auth.NewService(repo, &fakeEmployeeRepo{})

		_, _, _, err := svc.Login(ctx, "ada@example.com", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected with the same error", func(t *testing.T) {
		svc := auth.NewService(newFakeUserRepository(), &fakeEmployeeRepo{})

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("a fresh refresh token yields new tokens", func(t *testing.T) {
		repo := newFakeUserRepository()
		seedUser(t, repo, "ada@example.com", "s3cret99")
		svc := auth.NewService(repo, &fakeEmployeeRepo{})

		_, refresh, _, err := svc.Login(ctx, "ada@example.com", "s3cret99")
		assert.NoError(t, err)

		newAccess, newRefresh, _, err := svc.RefreshToken(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := auth.NewService(newFakeUserRepository(), &fakeEmployeeRepo{})

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("requires an existing employee", func(t *testing.T) {
		svc := auth.NewService(newFakeUserRepository(), &fakeEmployeeRepo{})

		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: uuid.New().String(),
			Email:      "ada@example.com",
			Name:       "Ada Lovelace",
			Password:   "s3cret99",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("links the user to the employee", func(t *testing.T) {
		employeeID := uuid.New()
		employees := &fakeEmployeeRepo{employees: map[uuid.UUID]*employee.Employee{
			employeeID: {ID: employeeID, UserID: uuid.New(), FullName: "Ada Lovelace"},
		}}
		repo := newFakeUserRepository()
		svc := auth.NewService(repo, employees)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: employeeID.String(),
			Email:      "ada@example.com",
			Name:       "Ada Lovelace",
			Password:   "s3cret99",
		})
		assert.NoError(t, err)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
		assert.Contains(t, repo.users, "ada@example.com")
	})
}
