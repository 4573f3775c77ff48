package services_test

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
)

// --- UserRepository mock ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByVerificationToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) UpdateStatus(userID string, status models.UserStatus) error {
	return m.Called(userID, status).Error(0)
}

func (m *MockUserRepository) VerifyEmail(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *MockUserRepository) VerifyProviderProfile(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *MockUserRepository) Delete(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *MockUserRepository) FindAll(limit, offset int) ([]models.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) CountAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// --- ListingRepository mock ---

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(listing *models.ServiceListing) error {
	return m.Called(listing).Error(0)
}

func (m *MockListingRepository) FindByID(id string) (*models.ServiceListing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceListing), args.Error(1)
}

func (m *MockListingRepository) Update(listing *models.ServiceListing) error {
	return m.Called(listing).Error(0)
}

func (m *MockListingRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockListingRepository) FindAvailable(filter repositories.ListingFilter, limit, offset int) ([]models.ServiceListing, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.ServiceListing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) FindByProvider(providerID string, limit, offset int) ([]models.ServiceListing, int64, error) {
	args := m.Called(providerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.ServiceListing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) CountByProvider(providerID string) (int64, error) {
	args := m.Called(providerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) SetAvailability(id string, available bool) error {
	return m.Called(id, available).Error(0)
}

func (m *MockListingRepository) FeatureAllByProvider(providerID string) ([]string, error) {
	args := m.Called(providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockListingRepository) UpdateRatingStats(listingID string, average float64, total int64) error {
	return m.Called(listingID, average, total).Error(0)
}

// --- BookingRepository mock ---

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(booking *models.Booking) error {
	return m.Called(booking).Error(0)
}

func (m *MockBookingRepository) FindByID(id string) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(booking *models.Booking) error {
	return m.Called(booking).Error(0)
}

func (m *MockBookingRepository) FindByCustomer(customerID string, status models.BookingStatus, limit, offset int) ([]models.Booking, int64, error) {
	args := m.Called(customerID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) FindByProvider(providerID string, status models.BookingStatus, limit, offset int) ([]models.Booking, int64, error) {
	args := m.Called(providerID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ExistsCompletedInvolving(accountID string) (bool, error) {
	args := m.Called(accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(status models.BookingStatus) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

// --- ReviewRepository mock ---

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	return m.Called(review).Error(0)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	return m.Called(review).Error(0)
}

func (m *MockReviewRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockReviewRepository) FindByID(id string) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByBooking(bookingID string) (*models.Review, error) {
	args := m.Called(bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByListing(listingID string, limit, offset int) ([]models.Review, int64, error) {
	args := m.Called(listingID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) FindByProvider(providerID string, limit, offset int) ([]models.Review, int64, error) {
	args := m.Called(providerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ExistsByCustomer(customerID string) (bool, error) {
	args := m.Called(customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) SetProviderResponse(reviewID, response string) error {
	return m.Called(reviewID, response).Error(0)
}

func (m *MockReviewRepository) AggregateForListing(listingID string) (float64, int64, error) {
	args := m.Called(listingID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// --- ReferralRepository mock ---

type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) Create(referral *models.Referral) error {
	return m.Called(referral).Error(0)
}

func (m *MockReferralRepository) FindByID(id string) (*models.Referral, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Referral), args.Error(1)
}

func (m *MockReferralRepository) FindByCode(code string) (*models.Referral, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Referral), args.Error(1)
}

func (m *MockReferralRepository) FindPendingByReferrer(referrerID string) (*models.Referral, error) {
	args := m.Called(referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Referral), args.Error(1)
}

func (m *MockReferralRepository) FindActiveByReferred(referredID string) (*models.Referral, error) {
	args := m.Called(referredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Referral), args.Error(1)
}

func (m *MockReferralRepository) HasCompletedAsReferred(accountID string) (bool, error) {
	args := m.Called(accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferralRepository) CodeExists(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferralRepository) ClaimPending(id, referredID string) error {
	return m.Called(id, referredID).Error(0)
}

func (m *MockReferralRepository) SaveSteps(referral *models.Referral) error {
	return m.Called(referral).Error(0)
}

func (m *MockReferralRepository) MarkCompleted(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockReferralRepository) FindByReferrer(referrerID string, limit, offset int) ([]models.Referral, int64, error) {
	args := m.Called(referrerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Referral), args.Get(1).(int64), args.Error(2)
}

// --- SubscriptionRepository mock ---

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByUser(userID string) (*models.Subscription, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Upsert(subscription *models.Subscription) error {
	return m.Called(subscription).Error(0)
}

func (m *MockSubscriptionRepository) Update(subscription *models.Subscription) error {
	return m.Called(subscription).Error(0)
}

func (m *MockSubscriptionRepository) ExpireOverdue(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Notifier fake ---

// FakeNotifier records every published notification.
type FakeNotifier struct {
	mu                 sync.Mutex
	BookingCreated     []string
	BookingStatus      []string
	ReferralApplied    []string
	ReferralCompleted  []string
	ReviewReceived     []string
	CompletedRewards   []models.RewardType
}

func (n *FakeNotifier) NotifyBookingCreated(providerID string, booking *models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.BookingCreated = append(n.BookingCreated, providerID)
}

func (n *FakeNotifier) NotifyBookingStatus(recipientID string, booking *models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.BookingStatus = append(n.BookingStatus, recipientID)
}

func (n *FakeNotifier) NotifyReferralApplied(referrerID, code string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ReferralApplied = append(n.ReferralApplied, referrerID)
}

func (n *FakeNotifier) NotifyReferralCompleted(userID string, reward models.RewardType) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ReferralCompleted = append(n.ReferralCompleted, userID)
	n.CompletedRewards = append(n.CompletedRewards, reward)
}

func (n *FakeNotifier) NotifyReviewReceived(providerID string, review *models.Review) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ReviewReceived = append(n.ReviewReceived, providerID)
}
