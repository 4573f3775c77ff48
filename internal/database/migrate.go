package database

import (
	"gorm.io/gorm"

	"github.com/visipakalpojumi/backend/internal/models"
)

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.ServiceListing{},
		&models.Booking{},
		&models.Review{},
		&models.Referral{},
		&models.Subscription{},
		&models.Notification{},
	)
}
