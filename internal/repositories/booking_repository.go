package repositories

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/visipakalpojumi/backend/internal/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByID(id string) (*models.Booking, error)
	Update(booking *models.Booking) error
	FindByCustomer(customerID string, status models.BookingStatus, limit, offset int) ([]models.Booking, int64, error)
	FindByProvider(providerID string, status models.BookingStatus, limit, offset int) ([]models.Booking, int64, error)
	ExistsCompletedInvolving(accountID string) (bool, error)
	CountByStatus(status models.BookingStatus) (int64, error)
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Preload("Listing").Preload("Customer").Preload("Provider").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) Update(booking *models.Booking) error {
	result := r.db.Model(booking).Updates(map[string]interface{}{
		"status":              booking.Status,
		"scheduled_at":        booking.ScheduledAt,
		"notes":               booking.Notes,
		"cancellation_reason": booking.CancellationReason,
		"completion_notes":    booking.CompletionNotes,
		"completed_at":        booking.CompletedAt,
		"cancelled_at":        booking.CancelledAt,
		"updated_at":          time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepositoryImpl) FindByCustomer(customerID string, status models.BookingStatus, limit, offset int) ([]models.Booking, int64, error) {
	return r.findByParty("customer_id", customerID, status, limit, offset)
}

func (r *BookingRepositoryImpl) FindByProvider(providerID string, status models.BookingStatus, limit, offset int) ([]models.Booking, int64, error) {
	return r.findByParty("provider_id", providerID, status, limit, offset)
}

// findByParty pages bookings for one side of the transaction, newest first.
// The count and the page are independent reads, so they run concurrently on
// separately built queries.
func (r *BookingRepositoryImpl) findByParty(column, accountID string, status models.BookingStatus, limit, offset int) ([]models.Booking, int64, error) {
	base := func() *gorm.DB {
		q := r.db.Model(&models.Booking{}).Where(column+" = ?", accountID)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var (
		wg       sync.WaitGroup
		total    int64
		bookings []models.Booking
		countErr error
		findErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		countErr = base().Count(&total).Error
	}()
	go func() {
		defer wg.Done()
		findErr = base().Preload("Listing").Preload("Customer").Preload("Provider").
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&bookings).Error
	}()
	wg.Wait()

	if countErr != nil {
		return nil, 0, countErr
	}
	if findErr != nil {
		return nil, 0, findErr
	}

	return bookings, total, nil
}

// ExistsCompletedInvolving reports whether the account has at least one
// completed booking on either side of the transaction.
func (r *BookingRepositoryImpl) ExistsCompletedInvolving(accountID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("status = ? AND (customer_id = ? OR provider_id = ?)",
			models.BookingStatusCompleted, accountID, accountID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingRepositoryImpl) CountByStatus(status models.BookingStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
