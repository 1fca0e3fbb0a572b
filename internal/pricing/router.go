package pricing

import (
	"github.com/gin-gonic/gin"
)

// SetupPricingRoutes configures all pricing routes
func SetupPricingRoutes(rg *gin.RouterGroup, controller *Controller) {
	pricing := rg.Group("/pricing")
	{
		pricing.POST("/quote", controller.QuoteOrder) // POST /api/v1/pricing/quote
	}
}
