package routes

import (
	"net/http"
	"time"

	"detailify/handlers"
	"detailify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterVehicleRoutes registers vehicle identification endpoints.
func RegisterVehicleRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/vehicle")
	{
		api.POST("/resolve", bh.ResolveVehicle)
		api.GET("/search", bh.SearchVehicles)
	}
}

// RegisterBookingRoutes registers the slot, quote and checkout endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/booking")
	{
		api.GET("/availability", bh.GetAvailability)
		api.POST("/quote", bh.GetQuote)
		api.GET("/addons", bh.ListAddOns)
		api.POST("/pay", bh.Pay)
	}
}

// RegisterPaymentRoutes registers the transaction lifecycle endpoints.
func RegisterPaymentRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/payments")
	{
		api.POST("/:paymentID/confirm", bh.ConfirmPayment)
		api.POST("/:paymentID/refund", bh.RefundPayment)
		api.GET("/:paymentID", bh.PaymentStatus)
	}
}

// RegisterAdminRoutes registers working-hours management endpoints.
func RegisterAdminRoutes(r *gin.Engine, ah *handlers.AdminHandler) {
	api := r.Group("/api/admin")
	{
		api.GET("/working-hours", ah.GetWorkingHours)
		api.PUT("/working-hours", ah.UpsertWorkingHours)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ah *handlers.AdminHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterVehicleRoutes(r, bh)
	RegisterBookingRoutes(r, bh)
	RegisterPaymentRoutes(r, bh)
	RegisterAdminRoutes(r, ah)
	RegisterHealthRoute(r)
}
