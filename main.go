package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tableside/tableside/config"
	"github.com/tableside/tableside/middlewares"
	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/router"
	"github.com/tableside/tableside/services"
	"github.com/tableside/tableside/store"
	"github.com/tableside/tableside/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
	); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	kv, err := store.NewGormStore(db)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialize key/value store: %v", err)
	}

	orders, err := services.NewOrderService(kv)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to restore order state: %v", err)
	}
	checkout := services.NewCheckoutService()

	r := router.SetupRouter(db, orders, checkout)

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
