package models

type ServiceListing struct {
	BaseModel
	ProviderID    string    `gorm:"not null;index"`
	Title         string    `gorm:"not null"`
	Description   string
	Category      string    `gorm:"index"`
	Price         float64   `gorm:"not null"`
	PriceType     PriceType `gorm:"type:varchar(20);default:'fixed'"`
	IsAvailable   bool      `gorm:"default:true"`
	IsFeatured    bool      `gorm:"default:false"`
	AverageRating float64   `gorm:"default:0"`
	TotalReviews  int64     `gorm:"default:0"`

	// Relations
	Provider User `gorm:"foreignKey:ProviderID"`
}
