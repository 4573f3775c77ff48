package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visipakalpojumi/backend/internal/cache"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/services/dto"
	"github.com/visipakalpojumi/backend/pkg/apperrors"
)

type reviewFixture struct {
	reviewRepo   *MockReviewRepository
	bookingRepo  *MockBookingRepository
	listingRepo  *MockListingRepository
	listingCache *memoryListingCache
	notifier     *FakeNotifier
	service      services.ReviewService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		reviewRepo:   new(MockReviewRepository),
		bookingRepo:  new(MockBookingRepository),
		listingRepo:  new(MockListingRepository),
		listingCache: newMemoryListingCache(),
		notifier:     &FakeNotifier{},
	}
	f.service = services.NewReviewService(
		f.reviewRepo,
		f.bookingRepo,
		f.listingRepo,
		f.listingCache,
		f.notifier,
	)
	return f
}

func completedBooking() *models.Booking {
	return &models.Booking{
		BaseModel:  models.BaseModel{ID: "booking-1"},
		CustomerID: "customer-1",
		ProviderID: "provider-1",
		ListingID:  "listing-1",
		Status:     models.BookingStatusCompleted,
	}
}

// A primed cache entry must not outlive a review that changes the listing's
// aggregate rating: creating the review drops the entry so the next read
// serves the recomputed value.
func TestCreateReview_DropsCachedListingAggregate(t *testing.T) {
	f := newReviewFixture()

	stale := &models.ServiceListing{
		BaseModel:  models.BaseModel{ID: "listing-1"},
		ProviderID: "provider-1",
	}
	assert.NoError(t, f.listingCache.Set(context.Background(), stale))

	f.bookingRepo.On("FindByID", "booking-1").Return(completedBooking(), nil)
	f.reviewRepo.On("FindByBooking", "booking-1").Return(nil, repositories.ErrReviewNotFound)
	f.reviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(nil)
	f.reviewRepo.On("AggregateForListing", "listing-1").Return(5.0, int64(1), nil)
	f.listingRepo.On("UpdateRatingStats", "listing-1", 5.0, int64(1)).Return(nil)

	resp, err := f.service.Create("customer-1", &dto.CreateReviewRequest{
		BookingID: "booking-1",
		Rating:    5,
		Comment:   "Spotless work",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)
	f.listingRepo.AssertCalled(t, "UpdateRatingStats", "listing-1", 5.0, int64(1))
	assert.Equal(t, []string{"listing-1"}, f.listingCache.invalidated)
	_, err = f.listingCache.Get(context.Background(), "listing-1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	assert.Equal(t, []string{"provider-1"}, f.notifier.ReviewReceived)
}

func TestCreateReview_OnlyBookingCustomer(t *testing.T) {
	f := newReviewFixture()

	f.bookingRepo.On("FindByID", "booking-1").Return(completedBooking(), nil)

	_, err := f.service.Create("stranger-1", &dto.CreateReviewRequest{
		BookingID: "booking-1",
		Rating:    4,
	})

	assert.Equal(t, apperrors.CodeForbidden, appErrorCode(t, err))
	f.reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReview_RequiresCompletedBooking(t *testing.T) {
	f := newReviewFixture()

	booking := completedBooking()
	booking.Status = models.BookingStatusInProgress
	f.bookingRepo.On("FindByID", "booking-1").Return(booking, nil)

	_, err := f.service.Create("customer-1", &dto.CreateReviewRequest{
		BookingID: "booking-1",
		Rating:    4,
	})

	assert.ErrorIs(t, err, apperrors.ErrBookingNotCompleted)
}

func TestCreateReview_OnePerBooking(t *testing.T) {
	f := newReviewFixture()

	f.bookingRepo.On("FindByID", "booking-1").Return(completedBooking(), nil)
	f.reviewRepo.On("FindByBooking", "booking-1").Return(&models.Review{
		BaseModel: models.BaseModel{ID: "review-1"},
	}, nil)

	_, err := f.service.Create("customer-1", &dto.CreateReviewRequest{
		BookingID: "booking-1",
		Rating:    4,
	})

	assert.ErrorIs(t, err, apperrors.ErrReviewAlreadyExists)
}

func TestUpdateReview_RecomputesAndInvalidates(t *testing.T) {
	f := newReviewFixture()

	review := &models.Review{
		BaseModel:  models.BaseModel{ID: "review-1"},
		CustomerID: "customer-1",
		ListingID:  "listing-1",
		Rating:     2,
	}
	newRating := 4
	f.reviewRepo.On("FindByID", "review-1").Return(review, nil)
	f.reviewRepo.On("Update", review).Return(nil)
	f.reviewRepo.On("AggregateForListing", "listing-1").Return(4.0, int64(1), nil)
	f.listingRepo.On("UpdateRatingStats", "listing-1", 4.0, int64(1)).Return(nil)

	resp, err := f.service.Update("customer-1", "review-1", &dto.UpdateReviewRequest{
		Rating: &newRating,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, []string{"listing-1"}, f.listingCache.invalidated)
}

func TestRespond_OnlyReviewedProvider(t *testing.T) {
	f := newReviewFixture()

	f.reviewRepo.On("FindByID", "review-1").Return(&models.Review{
		BaseModel:  models.BaseModel{ID: "review-1"},
		ProviderID: "provider-1",
	}, nil)

	err := f.service.Respond("provider-2", "review-1", &dto.RespondReviewRequest{
		Response: "Thank you!",
	})

	assert.Equal(t, apperrors.CodeForbidden, appErrorCode(t, err))
}
