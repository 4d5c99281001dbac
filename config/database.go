package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB establishes the PostgreSQL connection used by the whole process
func ConnectDB(databaseURL string) error {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	log.Println("Database connection established")
	return nil
}

// GetDB returns the shared database handle
func GetDB() *gorm.DB {
	return DB
}

// SetDB swaps the shared database handle. Used by tests to inject an
// in-memory database.
func SetDB(db *gorm.DB) {
	DB = db
}
