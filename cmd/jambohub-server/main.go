package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/vahc/jambohub/pkg/jambohub/admin"
	"github.com/vahc/jambohub/pkg/jambohub/auth"
	"github.com/vahc/jambohub/pkg/jambohub/channels"
	"github.com/vahc/jambohub/pkg/jambohub/config"
	"github.com/vahc/jambohub/pkg/jambohub/database"
	"github.com/vahc/jambohub/pkg/jambohub/messages"
	"github.com/vahc/jambohub/pkg/jambohub/models"
	"github.com/vahc/jambohub/pkg/jambohub/notify"
	"github.com/vahc/jambohub/pkg/jambohub/roster"
	"github.com/vahc/jambohub/pkg/jambohub/seed"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := database.Connect(cfg.DBPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := database.GetDB()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	if err := seed.Run(db, cfg.SeedFile, cfg.DefaultPassword); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	var mailer notify.Mailer
	if m := notify.NewSMTPMailer(cfg); m != nil {
		mailer = m
	} else {
		log.Println("SMTP password not set - email delivery disabled")
	}
	dispatcher := notify.NewDispatcher(db, mailer)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")
	{
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api.Group("/auth"))

		requireAuth := auth.AuthMiddleware(db)

		// Self-service settings
		settings := api.Group("/settings")
		settings.Use(requireAuth)
		settings.PUT("/notifications", authHandler.UpdateNotificationSettings)

		// Channel directory and message feed
		channelsHandler := channels.NewHandler(db)
		channelsHandler.RegisterRoutes(api.Group("", requireAuth))

		messagesHandler := messages.NewHandler(db, dispatcher)
		messagesHandler.RegisterRoutes(api.Group("", requireAuth))

		// Admin console
		adminGroup := api.Group("/admin")
		adminGroup.Use(requireAuth, auth.RequireAdmin())

		adminHandler := admin.NewHandler(db, cfg.DefaultPassword)
		adminHandler.RegisterRoutes(adminGroup)

		channelsHandler.RegisterAdminRoutes(adminGroup)

		rosterHandler := roster.NewHandler(db, cfg.DefaultPassword)
		rosterHandler.RegisterAdminRoutes(adminGroup)
	}

	log.Printf("Starting JamboHub server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
