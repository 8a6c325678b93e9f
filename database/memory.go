package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-console/config"
	"gorm.io/gorm"
)

// OpenInMemory returns a migrated SQLite database private to the caller.
// It holds a single connection, so concurrent users queue instead of
// failing on SQLite table locks.
func OpenInMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := Open(config.Database{Driver: "sqlite", DSN: dsn})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
