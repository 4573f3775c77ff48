package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index"`
	Type    string `gorm:"not null"` // "booking_status", "referral_completed", ...
	Title   string `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"booking_id": "...", "status": "..."}
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}

const (
	NotificationTypeBookingStatus     = "booking_status"
	NotificationTypeBookingCreated    = "booking_created"
	NotificationTypeReferralApplied   = "referral_applied"
	NotificationTypeReferralCompleted = "referral_completed"
	NotificationTypeReviewReceived    = "review_received"
)
