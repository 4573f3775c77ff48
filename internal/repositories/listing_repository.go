package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/visipakalpojumi/backend/internal/models"
)

var ErrListingNotFound = errors.New("service listing not found")

// ListingFilter narrows public catalogue queries.
type ListingFilter struct {
	Category string
	Query    string
	MinPrice *float64
	MaxPrice *float64
}

type ListingRepository interface {
	Create(listing *models.ServiceListing) error
	FindByID(id string) (*models.ServiceListing, error)
	Update(listing *models.ServiceListing) error
	Delete(id string) error
	FindAvailable(filter ListingFilter, limit, offset int) ([]models.ServiceListing, int64, error)
	FindByProvider(providerID string, limit, offset int) ([]models.ServiceListing, int64, error)
	CountByProvider(providerID string) (int64, error)
	SetAvailability(id string, available bool) error
	FeatureAllByProvider(providerID string) ([]string, error)
	UpdateRatingStats(listingID string, average float64, total int64) error
}

type ListingRepositoryImpl struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &ListingRepositoryImpl{db: db}
}

func (r *ListingRepositoryImpl) Create(listing *models.ServiceListing) error {
	return r.db.Create(listing).Error
}

func (r *ListingRepositoryImpl) FindByID(id string) (*models.ServiceListing, error) {
	var listing models.ServiceListing
	err := r.db.Preload("Provider").First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepositoryImpl) Update(listing *models.ServiceListing) error {
	result := r.db.Model(listing).Updates(map[string]interface{}{
		"title":        listing.Title,
		"description":  listing.Description,
		"category":     listing.Category,
		"price":        listing.Price,
		"price_type":   listing.PriceType,
		"is_available": listing.IsAvailable,
		"updated_at":   time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.ServiceListing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// FindAvailable returns the public catalogue page. Featured listings sort
// ahead of the rest, newest first within each group.
func (r *ListingRepositoryImpl) FindAvailable(filter ListingFilter, limit, offset int) ([]models.ServiceListing, int64, error) {
	query := r.db.Model(&models.ServiceListing{}).Where("is_available = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []models.ServiceListing
	err := query.Preload("Provider").
		Order("is_featured DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

func (r *ListingRepositoryImpl) FindByProvider(providerID string, limit, offset int) ([]models.ServiceListing, int64, error) {
	query := r.db.Model(&models.ServiceListing{}).Where("provider_id = ?", providerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []models.ServiceListing
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

func (r *ListingRepositoryImpl) CountByProvider(providerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ServiceListing{}).Where("provider_id = ?", providerID).Count(&count).Error
	return count, err
}

func (r *ListingRepositoryImpl) SetAvailability(id string, available bool) error {
	result := r.db.Model(&models.ServiceListing{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_available": available,
		"updated_at":   time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// FeatureAllByProvider marks every listing of the provider as featured and
// returns their ids so callers can drop stale cache entries. Used for the
// visibility boost reward.
func (r *ListingRepositoryImpl) FeatureAllByProvider(providerID string) ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.ServiceListing{}).
		Where("provider_id = ?", providerID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	err := r.db.Model(&models.ServiceListing{}).
		Where("provider_id = ?", providerID).
		Updates(map[string]interface{}{
			"is_featured": true,
			"updated_at":  time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ListingRepositoryImpl) UpdateRatingStats(listingID string, average float64, total int64) error {
	result := r.db.Model(&models.ServiceListing{}).Where("id = ?", listingID).Updates(map[string]interface{}{
		"average_rating": average,
		"total_reviews":  total,
		"updated_at":     time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}
