package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/prasetyadi/delivery-app/config"
	"github.com/prasetyadi/delivery-app/database"
	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/router"
	"github.com/prasetyadi/delivery-app/services"
	"github.com/prasetyadi/delivery-app/utils"
)

func init() {
	// A missing .env file is fine, production reads real env vars.
	godotenv.Load()
	utils.InitLogger()
}

func main() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Dish{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
		&models.Notification{},
		&models.Reward{},
		&models.UserReward{},
		&models.RedeemedReward{},
		&models.Favorite{},
		&models.PasswordReset{},
		&models.SupportRequest{},
	); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed database: %v", err)
	}

	mailer := services.NewMailerFromEnv()

	r := router.SetupRouter(db, mailer)

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.ErrorLogger.Fatalf("Failed to set trusted proxies: %v", err)
	}

	port := config.GetEnv("PORT", "8080")
	utils.InfoLogger.Printf("Server listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Server error: %v", err)
	}
}
