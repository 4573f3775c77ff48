package handlers

import (
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/validator"
)

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	ListingHandler      *ListingHandler
	BookingHandler      *BookingHandler
	ReferralHandler     *ReferralHandler
	ReviewHandler       *ReviewHandler
	SubscriptionHandler *SubscriptionHandler
	NotificationHandler *NotificationHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, container.AuthService),
		UserHandler:         NewUserHandler(base, container.UserService),
		ListingHandler:      NewListingHandler(base, container.ListingService),
		BookingHandler:      NewBookingHandler(base, container.BookingService),
		ReferralHandler:     NewReferralHandler(base, container.ReferralService),
		ReviewHandler:       NewReviewHandler(base, container.ReviewService),
		SubscriptionHandler: NewSubscriptionHandler(base, container.SubscriptionService),
		NotificationHandler: NewNotificationHandler(base, container.NotificationService),
	}
}
