package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectGorm opens the relational database behind the slot and account
// tables. DSNs with a postgres scheme use the postgres driver; file: and
// :memory: DSNs fall back to sqlite for local development.
func ConnectGorm(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn must not be empty")
	}

	dialector := postgres.Open(dsn)
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
