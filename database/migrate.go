package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/config"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	chatmodels "github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models/chat"
)

var gormDB *gorm.DB

// ConnectGorm opens the database connection configured in config.yaml.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	// The chat tables live in their own schema.
	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS chat").Error; err != nil {
		return fmt.Errorf("failed to create chat schema: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.ApplicantProfile{},
		&models.InstitutionProfile{},
		&models.Post{},
		&models.Application{},
		&models.ApplicationSnapshot{},
		&models.ApplicantDocument{},
		&models.ApplicationDocument{},
		&chatmodels.Thread{},
		&chatmodels.Message{},
		&chatmodels.MessageAttachment{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	log.Println("auto-migration finished")
	return nil
}
