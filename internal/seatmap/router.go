package seatmap

import (
	"github.com/gin-gonic/gin"
)

// SetupSeatMapRoutes configures all seat map routes
func SetupSeatMapRoutes(rg *gin.RouterGroup, controller *Controller) {
	seatmap := rg.Group("/seatmap")
	{
		seatmap.GET("", controller.GetSeatMap)                  // GET  /api/v1/seatmap
		seatmap.POST("/validate", controller.ValidateSelection) // POST /api/v1/seatmap/validate
	}
}
