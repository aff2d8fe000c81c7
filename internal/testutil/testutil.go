// Package testutil opens throwaway databases and mints tokens for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/database"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

// SetupDB opens a unique in-memory SQLite database with every model migrated.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&dbSeq, 1)
	dsn := fmt.Sprintf("file:bhasbi_%d?mode=memory&cache=shared", seq)

	gcfg := database.GormConfig()
	gcfg.Logger = logger.Discard
	db, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// Config returns a configuration suitable for tests.
func Config(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
		CORSOrigins:     "*",
		RequestTimeout:  5 * time.Second,
		BodyLimit:       6 * 1024 * 1024,
		UploadDir:       t.TempDir(),
		PublicBaseURL:   "http://localhost:3000",
	}
}
