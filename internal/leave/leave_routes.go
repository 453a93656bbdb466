package leave

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		leaves.GET("/balance/:employeeId", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetEmployeeLeaveBalance)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Create)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.Update)
		leaves.PATCH("/:id/decision", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Decide)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.Cancel)
	}
}
