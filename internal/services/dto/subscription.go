package dto

import (
	"time"

	"github.com/visipakalpojumi/backend/internal/models"
)

type PurchaseSubscriptionRequest struct {
	Plan   models.PlanTier `json:"plan" binding:"required,oneof=basic premium enterprise"`
	Months int             `json:"months" binding:"omitempty,min=1,max=12"`
}

type SubscriptionResponse struct {
	ID                string                    `json:"id"`
	UserID            string                    `json:"user_id"`
	Plan              models.PlanTier           `json:"plan"`
	Status            models.SubscriptionStatus `json:"status"`
	PeriodStart       time.Time                 `json:"period_start"`
	PeriodEnd         time.Time                 `json:"period_end"`
	CancelAtPeriodEnd bool                      `json:"cancel_at_period_end"`
	CancelledAt       *time.Time                `json:"cancelled_at,omitempty"`
}

func ToSubscriptionResponse(subscription *models.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                subscription.ID,
		UserID:            subscription.UserID,
		Plan:              subscription.Plan,
		Status:            subscription.Status,
		PeriodStart:       subscription.PeriodStart,
		PeriodEnd:         subscription.PeriodEnd,
		CancelAtPeriodEnd: subscription.CancelAtPeriodEnd,
		CancelledAt:       subscription.CancelledAt,
	}
}
