package dto

import (
	"time"

	"github.com/visipakalpojumi/backend/internal/models"
)

type CreateListingRequest struct {
	Title       string           `json:"title" binding:"required,min=3,max=200"`
	Description string           `json:"description" binding:"max=5000"`
	Category    string           `json:"category" binding:"required"`
	Price       float64          `json:"price" binding:"required,gt=0"`
	PriceType   models.PriceType `json:"price_type" binding:"omitempty,oneof=fixed hourly negotiable"`
}

type UpdateListingRequest struct {
	Title       string           `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Category    string           `json:"category"`
	Price       *float64         `json:"price" binding:"omitempty,gt=0"`
	PriceType   models.PriceType `json:"price_type" binding:"omitempty,oneof=fixed hourly negotiable"`
	IsAvailable *bool            `json:"is_available"`
}

type ListingResponse struct {
	ID            string           `json:"id"`
	ProviderID    string           `json:"provider_id"`
	ProviderName  string           `json:"provider_name,omitempty"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Price         float64          `json:"price"`
	PriceType     models.PriceType `json:"price_type"`
	IsAvailable   bool             `json:"is_available"`
	IsFeatured    bool             `json:"is_featured"`
	AverageRating float64          `json:"average_rating"`
	TotalReviews  int64            `json:"total_reviews"`
	CreatedAt     time.Time        `json:"created_at"`
}

func ToListingResponse(listing *models.ServiceListing) ListingResponse {
	resp := ListingResponse{
		ID:            listing.ID,
		ProviderID:    listing.ProviderID,
		Title:         listing.Title,
		Description:   listing.Description,
		Category:      listing.Category,
		Price:         listing.Price,
		PriceType:     listing.PriceType,
		IsAvailable:   listing.IsAvailable,
		IsFeatured:    listing.IsFeatured,
		AverageRating: listing.AverageRating,
		TotalReviews:  listing.TotalReviews,
		CreatedAt:     listing.CreatedAt,
	}
	if listing.Provider.ID != "" {
		resp.ProviderName = listing.Provider.FirstName + " " + listing.Provider.LastName
	}
	return resp
}

func ToListingResponses(listings []models.ServiceListing) []ListingResponse {
	responses := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, ToListingResponse(&listings[i]))
	}
	return responses
}
