package services

import (
	"gorm.io/gorm"

	"github.com/visipakalpojumi/backend/internal/cache"
	"github.com/visipakalpojumi/backend/internal/config"
	"github.com/visipakalpojumi/backend/internal/email"
	"github.com/visipakalpojumi/backend/internal/repositories"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	ListingService      ListingService
	BookingService      BookingService
	ReferralService     ReferralService
	ReviewService       ReviewService
	SubscriptionService SubscriptionService
	NotificationService NotificationService
	EmailProvider       email.Provider
}

func NewServiceContainer(db *gorm.DB, emailProvider email.Provider, listingCache cache.ListingCache, cfg *config.Config) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	referralRepo := repositories.NewReferralRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	notificationService := NewNotificationService(notificationRepo)

	return &ServiceContainer{
		AuthService:    NewAuthService(userRepo, refreshTokenRepo, subscriptionRepo, emailProvider),
		UserService:    NewUserService(userRepo),
		ListingService: NewListingService(listingRepo, userRepo, listingCache),
		BookingService: NewBookingService(bookingRepo, listingRepo, notificationService),
		ReferralService: NewReferralService(
			referralRepo,
			userRepo,
			listingRepo,
			bookingRepo,
			reviewRepo,
			subscriptionRepo,
			listingCache,
			notificationService,
			ReferralOptions{
				CodeLength:         cfg.Referral.CodeLength,
				PremiumRewardDays:  cfg.Referral.PremiumRewardDays,
				MaxCodeGenAttempts: cfg.Referral.MaxCodeGenAttempts,
			},
		),
		ReviewService:       NewReviewService(reviewRepo, bookingRepo, listingRepo, listingCache, notificationService),
		SubscriptionService: NewSubscriptionService(subscriptionRepo),
		NotificationService: notificationService,
		EmailProvider:       emailProvider,
	}
}
