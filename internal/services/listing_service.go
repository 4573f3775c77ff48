package services

import (
	"context"

	"github.com/visipakalpojumi/backend/internal/cache"
	"github.com/visipakalpojumi/backend/internal/logger"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
	"github.com/visipakalpojumi/backend/internal/services/dto"
	"github.com/visipakalpojumi/backend/pkg/apperrors"
)

type ListingService interface {
	Create(providerID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error)
	Get(ctx context.Context, listingID string) (*dto.ListingResponse, error)
	Update(providerID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingResponse, error)
	Delete(providerID, listingID string) error
	Browse(filter repositories.ListingFilter, page, limit int) ([]dto.ListingResponse, dto.Pagination, error)
	ListByProvider(providerID string, page, limit int) ([]dto.ListingResponse, dto.Pagination, error)
}

type ListingServiceImpl struct {
	listingRepo  repositories.ListingRepository
	userRepo     repositories.UserRepository
	listingCache cache.ListingCache
}

func NewListingService(
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	listingCache cache.ListingCache,
) ListingService {
	return &ListingServiceImpl{
		listingRepo:  listingRepo,
		userRepo:     userRepo,
		listingCache: listingCache,
	}
}

func (s *ListingServiceImpl) Create(providerID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error) {
	provider, err := s.userRepo.FindByID(providerID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if provider.Role != models.UserRoleProvider {
		return nil, apperrors.ErrInvalidUserRole
	}

	priceType := req.PriceType
	if priceType == "" {
		priceType = models.PriceTypeFixed
	}

	listing := &models.ServiceListing{
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		PriceType:   priceType,
		IsAvailable: true,
	}

	if err := s.listingRepo.Create(listing); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToListingResponse(listing)
	return &resp, nil
}

// Get serves the listing detail read, cache first.
func (s *ListingServiceImpl) Get(ctx context.Context, listingID string) (*dto.ListingResponse, error) {
	if cached, err := s.listingCache.Get(ctx, listingID); err == nil {
		resp := dto.ToListingResponse(cached)
		return &resp, nil
	}

	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.listingCache.Set(ctx, listing); err != nil {
		logger.Warn("failed to cache listing", "error", err, "listing_id", listingID)
	}

	resp := dto.ToListingResponse(listing)
	return &resp, nil
}

func (s *ListingServiceImpl) Update(providerID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingResponse, error) {
	listing, err := s.findOwned(providerID, listingID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		listing.Title = req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Category != "" {
		listing.Category = req.Category
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.PriceType != "" {
		listing.PriceType = req.PriceType
	}
	if req.IsAvailable != nil {
		listing.IsAvailable = *req.IsAvailable
	}

	if err := s.listingRepo.Update(listing); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.invalidate(listingID)

	resp := dto.ToListingResponse(listing)
	return &resp, nil
}

func (s *ListingServiceImpl) Delete(providerID, listingID string) error {
	if _, err := s.findOwned(providerID, listingID); err != nil {
		return err
	}

	if err := s.listingRepo.Delete(listingID); err != nil {
		return apperrors.InternalError(err)
	}

	s.invalidate(listingID)
	return nil
}

func (s *ListingServiceImpl) Browse(filter repositories.ListingFilter, page, limit int) ([]dto.ListingResponse, dto.Pagination, error) {
	offset := (page - 1) * limit

	listings, total, err := s.listingRepo.FindAvailable(filter, limit, offset)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}

	return dto.ToListingResponses(listings), dto.NewPagination(page, limit, total), nil
}

func (s *ListingServiceImpl) ListByProvider(providerID string, page, limit int) ([]dto.ListingResponse, dto.Pagination, error) {
	offset := (page - 1) * limit

	listings, total, err := s.listingRepo.FindByProvider(providerID, limit, offset)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}

	return dto.ToListingResponses(listings), dto.NewPagination(page, limit, total), nil
}

func (s *ListingServiceImpl) findOwned(providerID, listingID string) (*models.ServiceListing, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if listing.ProviderID != providerID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return listing, nil
}

func (s *ListingServiceImpl) invalidate(listingID string) {
	if err := s.listingCache.Invalidate(context.Background(), listingID); err != nil {
		logger.Warn("failed to invalidate listing cache", "error", err, "listing_id", listingID)
	}
}
