package services

import (
	"time"

	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
	"github.com/visipakalpojumi/backend/internal/services/dto"
	"github.com/visipakalpojumi/backend/pkg/apperrors"
)

// BookingService governs the booking lifecycle: which party may move a
// booking to which status, and the side effects of each transition.
type BookingService interface {
	Create(customerID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	AdvanceStatus(bookingID, actorID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	Cancel(bookingID, actorID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error)
	Get(bookingID, actorID string) (*dto.BookingResponse, error)
	ListForCustomer(customerID string, status models.BookingStatus, page, limit int) ([]dto.BookingResponse, dto.Pagination, error)
	ListForProvider(providerID string, status models.BookingStatus, page, limit int) ([]dto.BookingResponse, dto.Pagination, error)
	Stats() (*dto.BookingStats, error)
}

type BookingServiceImpl struct {
	bookingRepo repositories.BookingRepository
	listingRepo repositories.ListingRepository
	notifier    Notifier
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	listingRepo repositories.ListingRepository,
	notifier Notifier,
) BookingService {
	return &BookingServiceImpl{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		notifier:    notifier,
	}
}

func (s *BookingServiceImpl) Create(customerID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	listing, err := s.listingRepo.FindByID(req.ListingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !listing.IsAvailable {
		return nil, apperrors.ErrListingUnavailable
	}

	// The provider is snapshotted from the listing at creation time so a
	// later ownership change cannot re-route the booking.
	booking := &models.Booking{
		CustomerID:      customerID,
		ProviderID:      listing.ProviderID,
		ListingID:       listing.ID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Status:          models.BookingStatusPending,
		TotalAmount:     req.TotalAmount,
		Address:         req.Address,
		City:            req.City,
		PostalCode:      req.PostalCode,
		Notes:           req.Notes,
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyBookingCreated(booking.ProviderID, booking)

	resp := dto.ToBookingResponse(booking)
	return &resp, nil
}

// AdvanceStatus applies a provider-side forward transition. The transition
// table rejects anything that is not reachable from the current status,
// including any move out of a terminal status.
func (s *BookingServiceImpl) AdvanceStatus(bookingID, actorID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if booking.ProviderID != actorID {
		return nil, apperrors.NewForbiddenError("Only the provider may update the booking status")
	}

	if !models.CanTransition(booking.Status, req.Status) {
		return nil, apperrors.ErrInvalidTransition("booking",
			"Cannot move booking from "+string(booking.Status)+" to "+string(req.Status))
	}

	booking.Status = req.Status
	if req.Status == models.BookingStatusCompleted {
		now := time.Now()
		booking.CompletedAt = &now
		booking.CompletionNotes = req.CompletionNotes
	}

	if err := s.bookingRepo.Update(booking); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyBookingStatus(booking.CustomerID, booking)

	resp := dto.ToBookingResponse(booking)
	return &resp, nil
}

// Cancel is the customer-side exit. Only the customer may cancel, and only
// while the booking is still pending.
func (s *BookingServiceImpl) Cancel(bookingID, actorID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if booking.CustomerID != actorID {
		return nil, apperrors.NewForbiddenError("Only the customer may cancel this booking")
	}

	if booking.Status != models.BookingStatusPending {
		return nil, apperrors.ErrInvalidTransition("booking",
			"A booking can only be cancelled while it is pending")
	}

	now := time.Now()
	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.CancellationReason = req.Reason

	if err := s.bookingRepo.Update(booking); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyBookingStatus(booking.ProviderID, booking)

	resp := dto.ToBookingResponse(booking)
	return &resp, nil
}

func (s *BookingServiceImpl) Get(bookingID, actorID string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if booking.CustomerID != actorID && booking.ProviderID != actorID {
		return nil, apperrors.ErrBookingAccessDenied
	}

	resp := dto.ToBookingResponse(booking)
	return &resp, nil
}

func (s *BookingServiceImpl) ListForCustomer(customerID string, status models.BookingStatus, page, limit int) ([]dto.BookingResponse, dto.Pagination, error) {
	offset := (page - 1) * limit

	bookings, total, err := s.bookingRepo.FindByCustomer(customerID, status, limit, offset)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}

	return dto.ToBookingResponses(bookings), dto.NewPagination(page, limit, total), nil
}

func (s *BookingServiceImpl) ListForProvider(providerID string, status models.BookingStatus, page, limit int) ([]dto.BookingResponse, dto.Pagination, error) {
	offset := (page - 1) * limit

	bookings, total, err := s.bookingRepo.FindByProvider(providerID, status, limit, offset)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}

	return dto.ToBookingResponses(bookings), dto.NewPagination(page, limit, total), nil
}

// Stats counts bookings per lifecycle status for the admin dashboard.
func (s *BookingServiceImpl) Stats() (*dto.BookingStats, error) {
	var stats dto.BookingStats
	counts := []struct {
		status models.BookingStatus
		dst    *int64
	}{
		{models.BookingStatusPending, &stats.Pending},
		{models.BookingStatusConfirmed, &stats.Confirmed},
		{models.BookingStatusInProgress, &stats.InProgress},
		{models.BookingStatusCompleted, &stats.Completed},
		{models.BookingStatusCancelled, &stats.Cancelled},
	}

	for _, c := range counts {
		n, err := s.bookingRepo.CountByStatus(c.status)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		*c.dst = n
	}

	return &stats, nil
}
