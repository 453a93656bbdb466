package app

import (
	"database/sql"
	"path/filepath"

	"leavedesk/internal/auth"
	"leavedesk/internal/company"
	"leavedesk/internal/employee"
	"leavedesk/internal/holiday"
	"leavedesk/internal/leave"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/notification"
	"leavedesk/internal/rbac"
	"leavedesk/internal/rbac/infra"
	"leavedesk/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo)
	companyService := company.NewService(companyRepo)
	employeeService := employee.NewService(employeeRepo, counterRepo)
	holidayService := holiday.NewService(holidayRepo)
	notificationService := notification.NewService(notificationRepo)

	employeeDirectory := employee.NewDirectory(employeeRepo)
	leaveValidator := leave.NewValidator(employeeDirectory, holidayService, companyService)
	leaveService := leave.NewServiceWithOutbox(
		db,
		leaveRepo,
		leaveValidator,
		employeeDirectory,
		companyService,
		outboxRepo,
		rdb,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
