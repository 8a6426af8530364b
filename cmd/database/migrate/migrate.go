package migration

import (
	"fmt"
	"log"

	"github.com/BalajiReddy1/FreshTrack/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates the schema and seeds the default categories. Seeding uses an
// idempotent upsert, so concurrent initializers and restarts never duplicate
// or overwrite rows.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Product{}); err != nil {
		log.Fatalf("Error migrating product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Category{}); err != nil {
		log.Fatalf("Error migrating category database: %v", err)
		return err
	}

	if err := SeedDefaultCategories(db); err != nil {
		log.Fatalf("Error seeding default categories: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

// SeedDefaultCategories inserts the five default categories. Existing rows,
// including user-edited ones, are left untouched.
func SeedDefaultCategories(db *gorm.DB) error {
	defaults := entities.DefaultCategories()
	return db.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&defaults).Error
}
