package routes

import (
	"net/http"
	"time"

	"auditorium/config"
	"auditorium/handlers"
	"auditorium/middleware"
	"auditorium/models"
	"auditorium/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login, HOD administration and password recovery.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.AuthHandler.LoginHandler)
		api.POST("/forgot-password", hb.AuthHandler.ForgotPasswordHandler)
		// Role-specific paths used by older clients; the handler picks the flow by role.
		api.POST("/admin-forgot-password", hb.AuthHandler.ForgotPasswordHandler)
		api.POST("/hod-forgot-password", hb.AuthHandler.ForgotPasswordHandler)
		api.POST("/admin-reset-password", hb.AuthHandler.AdminResetPasswordHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.Tokens), middleware.RequireRole(models.RoleAdmin))
		admin.POST("/reset-hod-password", hb.AuthHandler.ResetHODPasswordHandler)
		admin.GET("/hods", hb.AuthHandler.ListHODsHandler)
		admin.POST("/register-hod", hb.AuthHandler.RegisterHODHandler)
		admin.PUT("/update-hod/:id", hb.AuthHandler.UpdateHODHandler)
	}
}

// RegisterUserRoutes registers first-run setup and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/user")
	{
		api.GET("/exists", hb.UserHandler.ExistsHandler)
		api.POST("/register", hb.UserHandler.RegisterAdminHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		protected.GET("/profile", hb.UserHandler.GetProfileHandler)
		protected.PUT("/update-profile", hb.UserHandler.UpdateProfileHandler)
	}
}

// RegisterDepartmentRoutes registers department endpoints. Listing is public so the
// registration form can offer the choices.
func RegisterDepartmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/departments")
	{
		api.GET("", hb.DepartmentHandler.ListDepartmentsHandler)
		api.POST("",
			middleware.JWTAuthMiddleware(hb.Tokens),
			middleware.RequireRole(models.RoleAdmin),
			hb.DepartmentHandler.CreateDepartmentHandler,
		)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bh := hb.BookingHandler
	api := r.Group("/api/booking")
	{
		api.GET("/approved", bh.ApprovedCalendarHandler)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		authed.GET("/booked-dates", bh.BookedDatesHandler)
		authed.GET("/approved-times", bh.BookedDatesHandler)

		hod := authed.Group("")
		hod.Use(middleware.RequireRole(models.RoleHOD))
		hod.POST("", bh.SubmitBookingHandler)
		hod.GET("/my-requests", bh.MyRequestsHandler)

		admin := authed.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.GET("", bh.ListBookingsHandler)
		admin.GET("/pending", bh.PendingBookingsHandler)
		admin.GET("/recent-bookings", bh.RecentBookingsHandler)
		admin.GET("/export", bh.ExportHandler)
		admin.POST("/admin-book", bh.SubmitBookingHandler)
		admin.DELETE("/admin-cancel/:bookingId", bh.CancelAdminBookingHandler)
		admin.GET("/:bookingId", bh.GetBookingHandler)
		admin.PUT("/:bookingId", bh.UpdateBookingHandler)
		admin.PUT("/:bookingId/status", bh.UpdateStatusHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for the admin dashboard.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.Tokens), middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/metrics", hb.AdminHandler.MetricsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the health monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		health := utils.GetHealthStatus()
		status := "ok"
		if !health.Mongo {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "services": health})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AppConfig.CORSOrigins
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDepartmentRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
