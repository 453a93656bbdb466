package rbac

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	rbacGroup := r.Group("/rbac")
	rbacGroup.Use(middleware.AuthMiddleware())
	{
		rbacGroup.POST("/enforce", handler.Enforce)
	}
}
