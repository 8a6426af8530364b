package config

import (
	"log"

	"github.com/BalajiReddy1/FreshTrack/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDB opens the embedded store at the configured path. The caller owns
// the handle; closing the process closes the store.
func ConnectDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(utils.GetConfig("DB_PATH")), &gorm.Config{})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}
