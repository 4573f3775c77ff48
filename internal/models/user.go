package models

import "time"

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null"`
	PasswordHash      string     `gorm:"not null"`
	Role              UserRole   `gorm:"type:varchar(20);not null"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'"`
	FirstName         string
	LastName          string
	Phone             string
	IsVerified        bool `gorm:"default:false"` // email confirmed
	IsProfileVerified bool `gorm:"default:false"` // provider identity check passed
	VerificationToken string

	// Relations
	Listings      []ServiceListing `gorm:"foreignKey:ProviderID"`
	Subscription  *Subscription    `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken   `gorm:"foreignKey:UserID"`
}

// HasCompleteProfile reports whether the profile-completion step's
// precondition holds: first name, last name and phone all present.
func (u *User) HasCompleteProfile() bool {
	return u.FirstName != "" && u.LastName != "" && u.Phone != ""
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
