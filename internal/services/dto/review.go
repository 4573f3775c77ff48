package dto

import (
	"time"

	"github.com/visipakalpojumi/backend/internal/models"
)

type CreateReviewRequest struct {
	BookingID string   `json:"booking_id" binding:"required,uuid"`
	Rating    int      `json:"rating" binding:"required,min=1,max=5"`
	Title     string   `json:"title" binding:"max=200"`
	Comment   string   `json:"comment" binding:"max=5000"`
	Images    []string `json:"images" binding:"omitempty,max=10,dive,url"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Title   *string `json:"title" binding:"omitempty,max=200"`
	Comment *string `json:"comment" binding:"omitempty,max=5000"`
}

type RespondReviewRequest struct {
	Response string `json:"response" binding:"required,max=5000"`
}

type ReviewResponse struct {
	ID               string     `json:"id"`
	BookingID        string     `json:"booking_id"`
	CustomerID       string     `json:"customer_id"`
	CustomerName     string     `json:"customer_name,omitempty"`
	ProviderID       string     `json:"provider_id"`
	ListingID        string     `json:"listing_id"`
	Rating           int        `json:"rating"`
	Title            string     `json:"title,omitempty"`
	Comment          string     `json:"comment,omitempty"`
	ProviderResponse string     `json:"provider_response,omitempty"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ToReviewResponse(review *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:               review.ID,
		BookingID:        review.BookingID,
		CustomerID:       review.CustomerID,
		ProviderID:       review.ProviderID,
		ListingID:        review.ListingID,
		Rating:           review.Rating,
		Title:            review.Title,
		Comment:          review.Comment,
		ProviderResponse: review.ProviderResponse,
		RespondedAt:      review.RespondedAt,
		CreatedAt:        review.CreatedAt,
	}
	if review.Customer.ID != "" {
		resp.CustomerName = review.Customer.FirstName + " " + review.Customer.LastName
	}
	return resp
}

func ToReviewResponses(reviews []models.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}
	return responses
}
