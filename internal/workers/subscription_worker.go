// Package workers holds the periodic background jobs.
package workers

import (
	"context"
	"time"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

// SubscriptionWorker expires active subscriptions whose end date has
// passed. Expiry is a bulk status flip; payments and history stay intact.
type SubscriptionWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewSubscriptionWorker(db *gorm.DB, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{db: db, interval: interval}
}

// Start blocks until ctx is cancelled. Run it in its own goroutine.
func (w *SubscriptionWorker) Start(ctx context.Context) {
	logger.Info("subscription expiry worker started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.expireDue(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription expiry worker stopped")
			return
		case <-ticker.C:
			w.expireDue(ctx)
		}
	}
}

func (w *SubscriptionWorker) expireDue(ctx context.Context) {
	result := w.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("status = ? AND ends_at < ?", models.SubscriptionStatusActive, time.Now()).
		Update("status", models.SubscriptionStatusExpired)
	if result.Error != nil {
		logger.WorkerLog("subscription_expiry", "expire due subscriptions", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("expired subscriptions", "worker", "subscription_expiry", "count", result.RowsAffected)
	}
}
