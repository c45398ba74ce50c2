package database

import (
	"log"

	"taskory/taskory/models"

	"gorm.io/gorm"
)

// RunMigrations keeps the schema in sync with the model definitions.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Event{},
	)

	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	return nil
}
