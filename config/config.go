package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// GetEnv reads an environment variable with a fallback.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database connection. MySQL in production, a local
// SQLite file by default so the app runs without any setup.
func InitDB() (*gorm.DB, error) {
	switch GetEnv("DB_DRIVER", "sqlite") {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			GetEnv("DB_USER", "root"),
			os.Getenv("DB_PASSWORD"),
			GetEnv("DB_HOST", "127.0.0.1"),
			GetEnv("DB_PORT", "3306"),
			GetEnv("DB_NAME", "delivery_app"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(GetEnv("DB_PATH", "delivery_app.db")), &gorm.Config{})
	}
}
