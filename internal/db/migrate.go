package db

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"bookkeeping-app-go/internal/config"
	dashboarddomain "bookkeeping-app-go/internal/domain/dashboard"
	documentsdomain "bookkeeping-app-go/internal/domain/documents"
	grossdomain "bookkeeping-app-go/internal/domain/grossrecords"
	messagesdomain "bookkeeping-app-go/internal/domain/messages"
	personalinfodomain "bookkeeping-app-go/internal/domain/personalinfo"
	userdomain "bookkeeping-app-go/internal/domain/user"
	"bookkeeping-app-go/migrations"
	"bookkeeping-app-go/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&userdomain.User{},
		&personalinfodomain.PersonalInfo{},
		&personalinfodomain.Dependent{},
		&documentsdomain.Form{},
		&documentsdomain.Document{},
		&grossdomain.GrossRecord{},
		&messagesdomain.Message{},
		&dashboarddomain.HomeStat{},
		&dashboarddomain.Reminder{},
		&dashboarddomain.UserActivity{},
	}
}

// Migrate applies the embedded SQL migrations on postgres and gorm
// AutoMigrate on sqlite.
func Migrate(db *gorm.DB, driver string, log logger.Logger) error {
	if driver == config.DriverSQLite {
		if err := db.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("db: schema migrated", "driver", driver)
		return nil
	}
	return MigrateSQL(db, migrations.Files, log)
}

// MigrateSQL applies *.sql files from fsys in lexical order, recording each in
// schema_migrations so it runs once.
func MigrateSQL(db *gorm.DB, fsys fs.FS, log logger.Logger) error {
	if err := ensureSchemaMigrations(db); err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".sql") {
			files = append(files, name)
		}
	}

	sort.Strings(files)

	for _, name := range files {
		applied, err := isMigrationApplied(db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		contents, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		sql := strings.TrimSpace(string(contents))
		if sql == "" {
			continue
		}

		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}

		if err := recordMigration(db, name); err != nil {
			return err
		}
		log.Info("db: migration applied", "file", name)
	}

	return nil
}

func ensureSchemaMigrations(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		);
	`).Error
}

func isMigrationApplied(db *gorm.DB, name string) (bool, error) {
	var count int64
	if err := db.Raw("SELECT COUNT(1) FROM schema_migrations WHERE filename = ?", name).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func recordMigration(db *gorm.DB, name string) error {
	return db.Exec("INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)", name, time.Now().UTC()).Error
}
