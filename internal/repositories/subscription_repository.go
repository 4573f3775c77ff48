package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/visipakalpojumi/backend/internal/models"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	FindByUser(userID string) (*models.Subscription, error)
	Upsert(subscription *models.Subscription) error
	Update(subscription *models.Subscription) error
	ExpireOverdue(now time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) FindByUser(userID string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.Where("user_id = ?", userID).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

// Upsert creates or replaces the user's single subscription row.
func (r *SubscriptionRepositoryImpl) Upsert(subscription *models.Subscription) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan", "status", "period_start", "period_end",
			"cancel_at_period_end", "cancelled_at", "updated_at",
		}),
	}).Create(subscription).Error
}

func (r *SubscriptionRepositoryImpl) Update(subscription *models.Subscription) error {
	result := r.db.Model(subscription).Updates(map[string]interface{}{
		"plan":                 subscription.Plan,
		"status":               subscription.Status,
		"period_start":         subscription.PeriodStart,
		"period_end":           subscription.PeriodEnd,
		"cancel_at_period_end": subscription.CancelAtPeriodEnd,
		"cancelled_at":         subscription.CancelledAt,
		"updated_at":           time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// ExpireOverdue downgrades active paid subscriptions whose period has ended.
func (r *SubscriptionRepositoryImpl) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Subscription{}).
		Where("status = ? AND plan != ? AND period_end < ?",
			models.SubscriptionStatusActive, models.PlanTierFree, now).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionStatusExpired,
			"updated_at": now,
		})

	return result.RowsAffected, result.Error
}
