package db

import (
	"errors"
	"log"
	"time"

	"discovery-space/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres using the configured DATABASE_URL.
func Open(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	conn, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
	return conn, nil
}

// Migrate runs GORM auto-migrations for the core tables. Production schemas
// come from db/migrations; this keeps tests and local databases in step.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&User{},
		&GameMode{},
		&Device{},
		&Game{},
		&Question{},
		&Member{},
		&MemberVisit{},
		&Session{},
		&ScanEvent{},
	); err != nil {
		return err
	}
	log.Println("database migration complete")
	return nil
}

// SeedGameModes makes sure both game modes exist.
func SeedGameModes(conn *gorm.DB) error {
	for _, mode := range []Mode{ModeLearning, ModeChallenge} {
		entry := GameMode{Mode: mode}
		if err := conn.FirstOrCreate(&entry, GameMode{Mode: mode}).Error; err != nil {
			return err
		}
	}
	return nil
}
