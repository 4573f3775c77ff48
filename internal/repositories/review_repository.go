package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/visipakalpojumi/backend/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id string) error
	FindByID(id string) (*models.Review, error)
	FindByBooking(bookingID string) (*models.Review, error)
	FindByListing(listingID string, limit, offset int) ([]models.Review, int64, error)
	FindByProvider(providerID string, limit, offset int) ([]models.Review, int64, error)
	ExistsByCustomer(customerID string) (bool, error)
	SetProviderResponse(reviewID, response string) error
	AggregateForListing(listingID string) (float64, int64, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepositoryImpl) Update(review *models.Review) error {
	result := r.db.Model(review).Updates(map[string]interface{}{
		"rating":     review.Rating,
		"title":      review.Title,
		"comment":    review.Comment,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Customer").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByBooking(bookingID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("booking_id = ?", bookingID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByListing(listingID string, limit, offset int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("listing_id = ?", listingID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("Customer").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) FindByProvider(providerID string, limit, offset int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("provider_id = ?", providerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("Customer").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) ExistsByCustomer(customerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("customer_id = ?", customerID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewRepositoryImpl) SetProviderResponse(reviewID, response string) error {
	now := time.Now()
	result := r.db.Model(&models.Review{}).Where("id = ?", reviewID).Updates(map[string]interface{}{
		"provider_response": response,
		"responded_at":      now,
		"updated_at":        now,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// AggregateForListing recomputes the rating average and review count from
// the stored rows.
func (r *ReviewRepositoryImpl) AggregateForListing(listingID string) (float64, int64, error) {
	type aggregate struct {
		Average float64
		Total   int64
	}

	var agg aggregate
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("listing_id = ?", listingID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}

	return agg.Average, agg.Total, nil
}
