package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warrantyportal/internal/handlers"
	"warrantyportal/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	warrantyHandler *handlers.WarrantyHandler,
	portalHandler *handlers.PortalHandler,
) *gin.Engine {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- public
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/request-otp", authHandler.RequestOTP)
		auth.POST("/check-otp", authHandler.CheckOTP)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	warranty := r.Group("/api/warranty")
	{
		warranty.POST("/add", warrantyHandler.Add)
		warranty.GET("/check", warrantyHandler.Check)
		warranty.GET("/:serial/certificate", warrantyHandler.Certificate)
	}

	r.GET("/api/portal/navigation", portalHandler.Navigation)

	// ---- protected (explicit bearer token, no ambient login state)
	account := r.Group("/api", middleware.AuthMiddleware())
	{
		account.GET("/me", authHandler.Me)
		account.GET("/warranties", warrantyHandler.List)
	}

	return r
}
