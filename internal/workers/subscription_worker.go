package workers

import (
	"context"
	"time"

	"github.com/visipakalpojumi/backend/internal/logger"
	"github.com/visipakalpojumi/backend/internal/services"
)

// SubscriptionWorker periodically downgrades subscriptions whose paid
// period has lapsed.
type SubscriptionWorker struct {
	subscriptionService services.SubscriptionService
	interval            time.Duration
}

func NewSubscriptionWorker(subscriptionService services.SubscriptionService) *SubscriptionWorker {
	return &SubscriptionWorker{
		subscriptionService: subscriptionService,
		interval:            6 * time.Hour,
	}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.expireSubscriptions(ctx)
}

func (w *SubscriptionWorker) expireSubscriptions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			expired, err := w.subscriptionService.ExpireOverdue()
			logger.WorkerLog("subscription", "expire_overdue", err)
			if err == nil && expired > 0 {
				logger.Info("expired overdue subscriptions", "count", expired)
			}
		}
	}
}
