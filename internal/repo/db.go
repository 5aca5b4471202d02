// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migrations, and demo seeding.
package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
//
// foreign_keys is enabled through the DSN so it holds on every pooled
// connection, which keeps the declared ON DELETE CASCADE rules (tweets of a
// deleted user, likes/media of a deleted tweet) effective.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=foreign_keys(1)"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all domain models. The
// follow join table is registered first so the many-to-many relationships on
// User resolve to the composite-keyed Follow model instead of an implicit
// join table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&domain.User{}, "Followers", &domain.Follow{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&domain.User{}, "Following", &domain.Follow{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&domain.User{},
		&domain.Tweet{},
		&domain.Like{},
		&domain.Media{},
		&domain.Follow{},
		&domain.Idempotency{},
	)
}

// SeedDemoUser inserts a well-known demo account (used by the bundled
// front-end) unless a user with the same api key already exists. It is safe
// to call on every startup.
func SeedDemoUser(ctx context.Context, db *gorm.DB, name, apiKey string) (*domain.User, error) {
	existing, err := FindOne[domain.User](ctx, db, Filter{"api_key": apiKey})
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return Insert(ctx, db, &domain.User{Name: name, APIKey: apiKey})
}
