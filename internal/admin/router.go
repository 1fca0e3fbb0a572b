package admin

import (
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes configures the operator login route
func SetupAdminRoutes(rg *gin.RouterGroup, controller *Controller) {
	adm := rg.Group("/admin")
	{
		adm.POST("/login", controller.Login) // POST /api/v1/admin/login
	}
}
