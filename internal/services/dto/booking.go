package dto

import (
	"time"

	"github.com/visipakalpojumi/backend/internal/models"
)

type CreateBookingRequest struct {
	ListingID       string    `json:"service_id" binding:"required,uuid"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0"`
	TotalAmount     float64   `json:"total_amount" binding:"required,gt=0"`
	Address         string    `json:"address" binding:"required"`
	City            string    `json:"city" binding:"required"`
	PostalCode      string    `json:"postal_code"`
	Notes           string    `json:"notes" binding:"max=2000"`
}

// UpdateBookingStatusRequest carries a provider-side forward transition.
// Cancellation goes through CancelBookingRequest instead.
type UpdateBookingStatusRequest struct {
	Status          models.BookingStatus `json:"status" binding:"required,oneof=confirmed in_progress completed"`
	CompletionNotes string               `json:"completion_notes" binding:"max=2000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

// BookingStats is the admin-facing per-status booking census.
type BookingStats struct {
	Pending    int64 `json:"pending"`
	Confirmed  int64 `json:"confirmed"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

type BookingResponse struct {
	ID                 string               `json:"id"`
	CustomerID         string               `json:"customer_id"`
	ProviderID         string               `json:"provider_id"`
	ListingID          string               `json:"listing_id"`
	ListingTitle       string               `json:"listing_title,omitempty"`
	ScheduledAt        time.Time            `json:"scheduled_at"`
	DurationMinutes    int                  `json:"duration_minutes"`
	Status             models.BookingStatus `json:"status"`
	TotalAmount        float64              `json:"total_amount"`
	Address            string               `json:"address"`
	City               string               `json:"city"`
	PostalCode         string               `json:"postal_code,omitempty"`
	Notes              string               `json:"notes,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	CompletionNotes    string               `json:"completion_notes,omitempty"`
	CompletedAt        *time.Time           `json:"completed_at,omitempty"`
	CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

func ToBookingResponse(booking *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                 booking.ID,
		CustomerID:         booking.CustomerID,
		ProviderID:         booking.ProviderID,
		ListingID:          booking.ListingID,
		ScheduledAt:        booking.ScheduledAt,
		DurationMinutes:    booking.DurationMinutes,
		Status:             booking.Status,
		TotalAmount:        booking.TotalAmount,
		Address:            booking.Address,
		City:               booking.City,
		PostalCode:         booking.PostalCode,
		Notes:              booking.Notes,
		CancellationReason: booking.CancellationReason,
		CompletionNotes:    booking.CompletionNotes,
		CompletedAt:        booking.CompletedAt,
		CancelledAt:        booking.CancelledAt,
		CreatedAt:          booking.CreatedAt,
	}
	if booking.Listing.ID != "" {
		resp.ListingTitle = booking.Listing.Title
	}
	return resp
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, ToBookingResponse(&bookings[i]))
	}
	return responses
}
