package cart

import (
	"github.com/gin-gonic/gin"
)

// SetupCartRoutes configures all cart routes
func SetupCartRoutes(rg *gin.RouterGroup, controller *Controller) {
	cart := rg.Group("/cart")
	{
		cart.POST("", controller.NewSession)              // POST   /api/v1/cart
		cart.GET("", controller.GetCart)                  // GET    /api/v1/cart
		cart.DELETE("", controller.Clear)                 // DELETE /api/v1/cart
		cart.POST("/seats/toggle", controller.ToggleSeat) // POST   /api/v1/cart/seats/toggle
		cart.PUT("/merch", controller.SetMerchLine)       // PUT    /api/v1/cart/merch
		cart.POST("/checkout", controller.Checkout)       // POST   /api/v1/cart/checkout
	}
}
