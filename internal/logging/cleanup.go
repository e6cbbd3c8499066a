package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"gorm.io/gorm"
)

// DefaultRetention is how long system_logs rows are kept.
const DefaultRetention = 30 * 24 * time.Hour

// StartCleanup runs a daily goroutine that deletes system_logs older than retention.
func StartCleanup(db *gorm.DB, retention time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := Cleanup(context.Background(), db, time.Now().Add(-retention))
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}

// Cleanup deletes system_logs written before cutoff.
func Cleanup(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
