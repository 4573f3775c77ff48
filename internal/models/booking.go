package models

import "time"

type Booking struct {
	BaseModel
	CustomerID         string        `gorm:"not null;index"`
	ProviderID         string        `gorm:"not null;index"`
	ListingID          string        `gorm:"not null;index"`
	ScheduledAt        time.Time     `gorm:"not null"`
	DurationMinutes    int           `gorm:"not null"`
	Status             BookingStatus `gorm:"type:varchar(20);default:'pending';index"`
	TotalAmount        float64       `gorm:"not null"`
	Address            string
	City               string
	PostalCode         string
	Notes              string
	CancellationReason string
	CompletionNotes    string
	CompletedAt        *time.Time
	CancelledAt        *time.Time

	// Relations
	Customer User           `gorm:"foreignKey:CustomerID"`
	Provider User           `gorm:"foreignKey:ProviderID"`
	Listing  ServiceListing `gorm:"foreignKey:ListingID"`
}

// IsTerminal reports whether the booking can never change status again.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// bookingTransitions is the closed forward-only transition table.
// Pending and Confirmed may additionally be cancelled.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
}

// CanTransition reports whether a booking in `from` may move to `to`.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
