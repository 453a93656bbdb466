package holiday

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
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), handler.List)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "manage"), handler.Create)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "manage"), handler.Delete)
	}
}
