package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectSQLite opens the embedded SQLite database stored at path. A busy
// timeout is added unless the path already carries query options.
func ConnectSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path must not be empty")
	}

	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
	}
	// SQLite serialises writers; one connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
