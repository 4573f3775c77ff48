package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/services/dto"
	"github.com/visipakalpojumi/backend/pkg/apperrors"
)

type bookingFixture struct {
	bookingRepo *MockBookingRepository
	listingRepo *MockListingRepository
	notifier    *FakeNotifier
	service     services.BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookingRepo: new(MockBookingRepository),
		listingRepo: new(MockListingRepository),
		notifier:    &FakeNotifier{},
	}
	f.service = services.NewBookingService(f.bookingRepo, f.listingRepo, f.notifier)
	return f
}

func pendingBooking() *models.Booking {
	return &models.Booking{
		BaseModel:  models.BaseModel{ID: "booking-1"},
		CustomerID: "customer-1",
		ProviderID: "provider-1",
		ListingID:  "listing-1",
		Status:     models.BookingStatusPending,
	}
}

func TestCreateBooking_SnapshotsProviderFromListing(t *testing.T) {
	f := newBookingFixture()

	f.listingRepo.On("FindByID", "listing-1").Return(&models.ServiceListing{
		BaseModel:   models.BaseModel{ID: "listing-1"},
		ProviderID:  "provider-1",
		IsAvailable: true,
	}, nil)
	f.bookingRepo.On("Create", mock.AnythingOfType("*models.Booking")).Return(nil)

	resp, err := f.service.Create("customer-1", &dto.CreateBookingRequest{
		ListingID:       "listing-1",
		ScheduledAt:     time.Now().Add(24 * time.Hour),
		DurationMinutes: 90,
		TotalAmount:     45,
		Address:         "Brivibas iela 1",
		City:            "Riga",
	})

	assert.NoError(t, err)
	assert.Equal(t, "provider-1", resp.ProviderID)
	assert.Equal(t, models.BookingStatusPending, resp.Status)
	assert.Equal(t, []string{"provider-1"}, f.notifier.BookingCreated)
}

func TestCreateBooking_UnavailableListing(t *testing.T) {
	f := newBookingFixture()

	f.listingRepo.On("FindByID", "listing-1").Return(&models.ServiceListing{
		BaseModel:   models.BaseModel{ID: "listing-1"},
		ProviderID:  "provider-1",
		IsAvailable: false,
	}, nil)

	_, err := f.service.Create("customer-1", &dto.CreateBookingRequest{ListingID: "listing-1"})

	assert.ErrorIs(t, err, apperrors.ErrListingUnavailable)
	f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAdvanceStatus_ForwardPath(t *testing.T) {
	cases := []struct {
		from models.BookingStatus
		to   models.BookingStatus
	}{
		{models.BookingStatusPending, models.BookingStatusConfirmed},
		{models.BookingStatusConfirmed, models.BookingStatusInProgress},
		{models.BookingStatusInProgress, models.BookingStatusCompleted},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			f := newBookingFixture()

			booking := pendingBooking()
			booking.Status = tc.from
			f.bookingRepo.On("FindByID", "booking-1").Return(booking, nil)
			f.bookingRepo.On("Update", booking).Return(nil)

			resp, err := f.service.AdvanceStatus("booking-1", "provider-1",
				&dto.UpdateBookingStatusRequest{Status: tc.to})

			assert.NoError(t, err)
			assert.Equal(t, tc.to, resp.Status)
			assert.Equal(t, []string{"customer-1"}, f.notifier.BookingStatus)
		})
	}
}

func TestAdvanceStatus_SkippingStagesRejected(t *testing.T) {
	f := newBookingFixture()

	f.bookingRepo.On("FindByID", "booking-1").Return(pendingBooking(), nil)

	_, err := f.service.AdvanceStatus("booking-1", "provider-1",
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusCompleted})

	assert.Equal(t, apperrors.CodeInvalidTransition, appErrorCode(t, err))
	f.bookingRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestAdvanceStatus_TerminalStatusesAreFinal(t *testing.T) {
	for _, terminal := range []models.BookingStatus{
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	} {
		for _, target := range []models.BookingStatus{
			models.BookingStatusConfirmed,
			models.BookingStatusInProgress,
			models.BookingStatusCompleted,
		} {
			t.Run(string(terminal)+"_to_"+string(target), func(t *testing.T) {
				f := newBookingFixture()

				booking := pendingBooking()
				booking.Status = terminal
				f.bookingRepo.On("FindByID", "booking-1").Return(booking, nil)

				_, err := f.service.AdvanceStatus("booking-1", "provider-1",
					&dto.UpdateBookingStatusRequest{Status: target})

				assert.Equal(t, apperrors.CodeInvalidTransition, appErrorCode(t, err))
				f.bookingRepo.AssertNotCalled(t, "Update", mock.Anything)
			})
		}
	}
}

func TestAdvanceStatus_OnlyProviderMayAdvance(t *testing.T) {
	f := newBookingFixture()

	f.bookingRepo.On("FindByID", "booking-1").Return(pendingBooking(), nil)

	_, err := f.service.AdvanceStatus("booking-1", "customer-1",
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusConfirmed})

	assert.Equal(t, apperrors.CodeForbidden, appErrorCode(t, err))
}

func TestAdvanceStatus_CompletionStampsTimestamp(t *testing.T) {
	f := newBookingFixture()

	booking := pendingBooking()
	booking.Status = models.BookingStatusInProgress
	f.bookingRepo.On("FindByID", "booking-1").Return(booking, nil)
	f.bookingRepo.On("Update", booking).Return(nil)

	resp, err := f.service.AdvanceStatus("booking-1", "provider-1",
		&dto.UpdateBookingStatusRequest{
			Status:          models.BookingStatusCompleted,
			CompletionNotes: "Done, keys returned",
		})

	assert.NoError(t, err)
	assert.NotNil(t, resp.CompletedAt)
	assert.Equal(t, "Done, keys returned", resp.CompletionNotes)
}

func TestCancel_PendingOnly(t *testing.T) {
	f := newBookingFixture()

	booking := pendingBooking()
	f.bookingRepo.On("FindByID", "booking-1").Return(booking, nil)
	f.bookingRepo.On("Update", booking).Return(nil)

	resp, err := f.service.Cancel("booking-1", "customer-1",
		&dto.CancelBookingRequest{Reason: "Found another provider"})

	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []string{"provider-1"}, f.notifier.BookingStatus)
}

func TestCancel_ConfirmedBookingRejected(t *testing.T) {
	f := newBookingFixture()

	booking := pendingBooking()
	booking.Status = models.BookingStatusConfirmed
	f.bookingRepo.On("FindByID", "booking-1").Return(booking, nil)

	_, err := f.service.Cancel("booking-1", "customer-1", &dto.CancelBookingRequest{})

	assert.Equal(t, apperrors.CodeInvalidTransition, appErrorCode(t, err))
	f.bookingRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestCancel_OnlyCustomerMayCancel(t *testing.T) {
	f := newBookingFixture()

	f.bookingRepo.On("FindByID", "booking-1").Return(pendingBooking(), nil)

	_, err := f.service.Cancel("booking-1", "provider-1", &dto.CancelBookingRequest{})

	assert.Equal(t, apperrors.CodeForbidden, appErrorCode(t, err))
}

func TestStats_CountsPerStatus(t *testing.T) {
	f := newBookingFixture()

	f.bookingRepo.On("CountByStatus", models.BookingStatusPending).Return(int64(3), nil)
	f.bookingRepo.On("CountByStatus", models.BookingStatusConfirmed).Return(int64(2), nil)
	f.bookingRepo.On("CountByStatus", models.BookingStatusInProgress).Return(int64(1), nil)
	f.bookingRepo.On("CountByStatus", models.BookingStatusCompleted).Return(int64(7), nil)
	f.bookingRepo.On("CountByStatus", models.BookingStatusCancelled).Return(int64(4), nil)

	stats, err := f.service.Stats()

	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Pending)
	assert.Equal(t, int64(2), stats.Confirmed)
	assert.Equal(t, int64(1), stats.InProgress)
	assert.Equal(t, int64(7), stats.Completed)
	assert.Equal(t, int64(4), stats.Cancelled)
}

func TestGet_OnlyPartiesMayView(t *testing.T) {
	f := newBookingFixture()

	f.bookingRepo.On("FindByID", "booking-1").Return(pendingBooking(), nil)

	_, err := f.service.Get("booking-1", "stranger-1")
	assert.ErrorIs(t, err, apperrors.ErrBookingAccessDenied)

	resp, err := f.service.Get("booking-1", "customer-1")
	assert.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)
}
