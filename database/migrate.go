package database

import (
	"fmt"

	"jobhub_backend/internal/config"
	"jobhub_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm initializes GORM with the DSN from the loaded configuration.
// TranslateError maps driver unique-violation errors to gorm.ErrDuplicatedKey,
// which the repositories rely on.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.WorkerProfile{},
		&models.EmployerProfile{},
		&models.Job{},
		&models.Application{},
		&models.Review{},
		&models.Subscription{},
		&models.Payment{},
	)
}
