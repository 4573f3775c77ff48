package models

import (
	"time"

	"gorm.io/datatypes"
)

type Review struct {
	BaseModel
	BookingID        string `gorm:"not null;uniqueIndex"`
	CustomerID       string `gorm:"not null;index"`
	ProviderID       string `gorm:"not null;index"`
	ListingID        string `gorm:"not null;index"`
	Rating           int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Title            string
	Comment          string
	Images           datatypes.JSON `gorm:"type:jsonb"` // ["https://...", ...]
	ProviderResponse string
	RespondedAt      *time.Time

	// Relations
	Booking  Booking        `gorm:"foreignKey:BookingID"`
	Customer User           `gorm:"foreignKey:CustomerID"`
	Provider User           `gorm:"foreignKey:ProviderID"`
	Listing  ServiceListing `gorm:"foreignKey:ListingID"`
}
