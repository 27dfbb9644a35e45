// api/db/db.go
package db

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/orbitpm/api/audit"
	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
)

var DB *gorm.DB

func InitDB() error {
	dsn := viper.GetString("database.dsn")
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	logger.Info("Successfully connected to database")
	return nil
}

// Migrate creates the schema for all record types.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Principal{},
		&model.Permission{},
		&model.Workspace{},
		&model.Membership{},
		&model.Project{},
		&model.Task{},
		&model.Bug{},
		&model.Invoice{},
		&audit.LoginHistory{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func CloseDB() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
