package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures the shopper-facing booking routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("/confirm", controller.ConfirmBooking) // POST /api/v1/bookings/confirm
		bookings.GET("/:id", controller.GetBooking)          // GET  /api/v1/bookings/:id
	}
}

// SetupAdminBookingRoutes configures the admin booking routes. The caller
// attaches the admin auth middleware to the group.
func SetupAdminBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/bookings", controller.ListBookings)              // GET    /api/v1/admin/bookings
	rg.GET("/bookings/:id/receipt", controller.GetReceiptURL) // GET    /api/v1/admin/bookings/:id/receipt
	rg.DELETE("/bookings/:id", controller.DeleteBooking)      // DELETE /api/v1/admin/bookings/:id
	rg.PATCH("/bookings/:id/redeem", controller.SetRedeemed)  // PATCH  /api/v1/admin/bookings/:id/redeem
	rg.GET("/sales", controller.GetSalesSummary)              // GET    /api/v1/admin/sales
}
