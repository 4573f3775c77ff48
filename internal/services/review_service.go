package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/visipakalpojumi/backend/internal/cache"
	"github.com/visipakalpojumi/backend/internal/logger"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
	"github.com/visipakalpojumi/backend/internal/services/dto"
	"github.com/visipakalpojumi/backend/pkg/apperrors"
)

type ReviewService interface {
	Create(customerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(customerID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(customerID, reviewID string) error
	Respond(providerID, reviewID string, req *dto.RespondReviewRequest) error
	ListForListing(listingID string, page, limit int) ([]dto.ReviewResponse, dto.Pagination, error)
}

type ReviewServiceImpl struct {
	reviewRepo   repositories.ReviewRepository
	bookingRepo  repositories.BookingRepository
	listingRepo  repositories.ListingRepository
	listingCache cache.ListingCache
	notifier     Notifier
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	bookingRepo repositories.BookingRepository,
	listingRepo repositories.ListingRepository,
	listingCache cache.ListingCache,
	notifier Notifier,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:   reviewRepo,
		bookingRepo:  bookingRepo,
		listingRepo:  listingRepo,
		listingCache: listingCache,
		notifier:     notifier,
	}
}

// Create accepts one review per completed booking, authored by its customer.
func (s *ReviewServiceImpl) Create(customerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	booking, err := s.bookingRepo.FindByID(req.BookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if booking.CustomerID != customerID {
		return nil, apperrors.NewForbiddenError("Only the customer of this booking may review it")
	}

	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.ErrBookingNotCompleted
	}

	if _, err := s.reviewRepo.FindByBooking(req.BookingID); err == nil {
		return nil, apperrors.ErrReviewAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrReviewNotFound) {
		return nil, apperrors.InternalError(err)
	}

	var images datatypes.JSON
	if len(req.Images) > 0 {
		raw, err := json.Marshal(req.Images)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		images = datatypes.JSON(raw)
	}

	review := &models.Review{
		BookingID:  booking.ID,
		CustomerID: customerID,
		ProviderID: booking.ProviderID,
		ListingID:  booking.ListingID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		Images:     images,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.recomputeListingStats(review.ListingID)
	s.notifier.NotifyReviewReceived(booking.ProviderID, review)

	resp := dto.ToReviewResponse(review)
	return &resp, nil
}

func (s *ReviewServiceImpl) Update(customerID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.findAuthored(customerID, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.recomputeListingStats(review.ListingID)

	resp := dto.ToReviewResponse(review)
	return &resp, nil
}

func (s *ReviewServiceImpl) Delete(customerID, reviewID string) error {
	review, err := s.findAuthored(customerID, reviewID)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return apperrors.InternalError(err)
	}

	s.recomputeListingStats(review.ListingID)
	return nil
}

func (s *ReviewServiceImpl) Respond(providerID, reviewID string, req *dto.RespondReviewRequest) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if review.ProviderID != providerID {
		return apperrors.NewForbiddenError("Only the reviewed provider may respond")
	}

	if err := s.reviewRepo.SetProviderResponse(reviewID, req.Response); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ReviewServiceImpl) ListForListing(listingID string, page, limit int) ([]dto.ReviewResponse, dto.Pagination, error) {
	offset := (page - 1) * limit

	reviews, total, err := s.reviewRepo.FindByListing(listingID, limit, offset)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}

	return dto.ToReviewResponses(reviews), dto.NewPagination(page, limit, total), nil
}

func (s *ReviewServiceImpl) findAuthored(customerID, reviewID string) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if review.CustomerID != customerID {
		return nil, apperrors.NewForbiddenError("Only the author may modify this review")
	}
	return review, nil
}

// recomputeListingStats keeps the listing's aggregate rating equal to the
// mean and count of its live reviews, and drops the cached detail entry so
// the next read serves the new aggregate. Failures are logged, not
// propagated.
func (s *ReviewServiceImpl) recomputeListingStats(listingID string) {
	average, total, err := s.reviewRepo.AggregateForListing(listingID)
	if err != nil {
		logger.Error("failed to aggregate reviews", "error", err, "listing_id", listingID)
		return
	}

	if err := s.listingRepo.UpdateRatingStats(listingID, average, total); err != nil {
		logger.Error("failed to update listing rating", "error", err, "listing_id", listingID)
		return
	}

	if err := s.listingCache.Invalidate(context.Background(), listingID); err != nil {
		logger.Warn("failed to invalidate listing cache", "error", err, "listing_id", listingID)
	}
}
