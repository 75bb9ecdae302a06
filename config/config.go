package config

import (
	"fmt"
	"log"
	"os"

	"freshkeep/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the store and builds the schema. The default is a local
// SQLite file; set DB_DRIVER=postgres to run against a shared server.
func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	var err error
	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "freshkeep.db"
		}
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate is shared with the test database helper.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.FoodItem{},
		&models.Meal{},
		&models.MealItem{},
		&models.ShoppingListItem{},
		&models.Setting{},
		&models.Alert{},
	)
}
