package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/niknikgle/EyeOfSauron-Telegram/config"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/entities"
)

// NewSqliteDB opens the sqlite archive and ensures the schema exists.
// AutoMigrate is idempotent, so repeated startups are safe.
func NewSqliteDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&entities.MessageModel{}, &entities.ScrapedChannelModel{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}
