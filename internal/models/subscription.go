package models

import "time"

type Subscription struct {
	BaseModel
	UserID            string             `gorm:"not null;uniqueIndex"`
	Plan              PlanTier           `gorm:"type:varchar(20);default:'free'"`
	Status            SubscriptionStatus `gorm:"type:varchar(20);default:'active'"`
	PeriodStart       time.Time
	PeriodEnd         time.Time
	CancelAtPeriodEnd bool `gorm:"default:false"`
	CancelledAt       *time.Time
}

// IsActivePremium reports whether the user currently holds a paid tier.
func (s *Subscription) IsActivePremium(now time.Time) bool {
	return s.Status == SubscriptionStatusActive &&
		s.Plan != PlanTierFree &&
		now.Before(s.PeriodEnd)
}
