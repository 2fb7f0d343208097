package app

import (
	"database/sql"
	"fmt"
	"log"

	"warrantyportal/internal/config"
	"warrantyportal/internal/handlers"
	"warrantyportal/internal/middleware"
	"warrantyportal/internal/pdf"
	"warrantyportal/internal/repositories"
	"warrantyportal/internal/routes"
	"warrantyportal/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "warrantyportal/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	warrantyRepo := repositories.NewWarrantyRepository(db)
	otpRepo := repositories.NewOTPRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	otpService := services.NewOTPService(otpRepo)
	resetService := services.NewPasswordResetService(userRepo, otpService, emailService, authService)

	// Ops notifications are optional; nil notifier means disabled.
	notifier := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.OpsChatID)
	warrantyService := services.NewWarrantyService(warrantyRepo, notifier)

	certGen := pdf.NewCertificateGenerator(cfg.Portal.PublicBaseURL)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(resetService, userRepo, authService)
	warrantyHandler := handlers.NewWarrantyHandler(warrantyService, certGen)
	portalHandler := handlers.NewPortalHandler()

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, warrantyHandler, portalHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
