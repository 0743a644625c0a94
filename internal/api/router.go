package api

import (
	"github.com/gin-gonic/gin"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/api/auth"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/api/dashboard"
	databaseapi "github.com/lavimachotel/Lavimac-Hotel-sub003/internal/api/database"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/api/report"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/service"
)

// SetupDatabaseRoutes configures database service routes
func SetupDatabaseRoutes(r *gin.Engine) {
	databaseapi.SetupDatabaseRoutes(r)
}

// SetupRouter configures all web API routes
func SetupRouter(r *gin.Engine, svc *service.ReportService, jwtSecret string) {
	// CORS middleware
	r.Use(CORSMiddleware())

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Hotel Report API is running",
			"version": "1.0.0",
		})
	})

	reports := report.NewHandler(svc)

	// Shareable preview page
	r.GET("/reports/:id/preview", reports.PreviewPage)

	api := r.Group("/api")
	api.Use(auth.IdentityMiddleware(jwtSecret))
	{
		api.GET("/me", auth.CurrentUser)
		api.GET("/dashboard", dashboard.NewHandler(svc).Get)

		reportGroup := api.Group("/reports")
		{
			reportGroup.POST("", reports.Generate)
			reportGroup.GET("", reports.List)
			reportGroup.GET("/:id", reports.Get)
			reportGroup.GET("/:id/download", reports.Download)
			reportGroup.GET("/:id/preview", reports.Preview)
			reportGroup.POST("/:id/share/email", reports.ShareEmail)
			reportGroup.DELETE("/:id", reports.Delete)
		}
	}
}

// CORSMiddleware provides CORS support
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
