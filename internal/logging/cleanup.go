package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"gorm.io/gorm"
)

var stderr io.Writer = os.Stderr

// LogRetention is how long system_logs rows are kept.
const LogRetention = 30 * 24 * time.Hour

// PurgeSystemLogs deletes system_logs rows older than cutoff.
func PurgeSystemLogs(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup purges old system logs once a day until ctx is cancelled.
func StartCleanup(ctx context.Context, db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := PurgeSystemLogs(ctx, db, time.Now().Add(-LogRetention))
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if n > 0 {
					slog.Info("log cleanup completed", "deleted", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
