// Package db opens the relational store and keeps the schema current
package db

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"perso/profile-api/model"
)

// New opens the database selected by database.driver and migrates the user
// tables. SQLite is the default and what local development runs on, postgres
// is for deployments that outgrow a single file.
func New() (*gorm.DB, error) {
	dsn := viper.GetString("database.dsn")

	var dialector gorm.Dialector

	switch driver := viper.GetString("database.driver"); driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.ProfileImage{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
