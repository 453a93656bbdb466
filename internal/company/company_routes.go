package company

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
	settings := r.Group("/company/settings")
	settings.Use(middleware.AuthMiddleware())
	{
		settings.GET("", middleware.RBACAuthorize(rbacService, "company", "read"), handler.GetSettings)
		settings.PUT("", middleware.RBACAuthorize(rbacService, "company", "manage"), handler.UpdateSettings)
	}
}
