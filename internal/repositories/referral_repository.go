package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/visipakalpojumi/backend/internal/models"
)

var (
	ErrReferralNotFound = errors.New("referral not found")
	ErrReferralConflict = errors.New("referral was modified concurrently")
)

type ReferralRepository interface {
	Create(referral *models.Referral) error
	FindByID(id string) (*models.Referral, error)
	FindByCode(code string) (*models.Referral, error)
	FindPendingByReferrer(referrerID string) (*models.Referral, error)
	FindActiveByReferred(referredID string) (*models.Referral, error)
	HasCompletedAsReferred(accountID string) (bool, error)
	CodeExists(code string) (bool, error)
	ClaimPending(id, referredID string) error
	SaveSteps(referral *models.Referral) error
	MarkCompleted(id string) error
	FindByReferrer(referrerID string, limit, offset int) ([]models.Referral, int64, error)
}

type ReferralRepositoryImpl struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &ReferralRepositoryImpl{db: db}
}

func (r *ReferralRepositoryImpl) Create(referral *models.Referral) error {
	return r.db.Create(referral).Error
}

func (r *ReferralRepositoryImpl) FindByID(id string) (*models.Referral, error) {
	var referral models.Referral
	err := r.db.First(&referral, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

func (r *ReferralRepositoryImpl) FindByCode(code string) (*models.Referral, error) {
	var referral models.Referral
	err := r.db.Where("code = ?", code).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

// FindPendingByReferrer returns the referrer's open, unclaimed code if one
// exists. Code generation reuses it instead of minting a second one.
func (r *ReferralRepositoryImpl) FindPendingByReferrer(referrerID string) (*models.Referral, error) {
	var referral models.Referral
	err := r.db.Where("referrer_id = ? AND status = ?", referrerID, models.ReferralStatusPending).
		First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

// FindActiveByReferred returns the in-flight verification referral bound to
// the referred account.
func (r *ReferralRepositoryImpl) FindActiveByReferred(referredID string) (*models.Referral, error) {
	var referral models.Referral
	err := r.db.Where("referred_id = ? AND status = ?", referredID, models.ReferralStatusPendingVerification).
		First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

// HasCompletedAsReferred reports whether the account has already consumed a
// referral code, in any non-pending state.
func (r *ReferralRepositoryImpl) HasCompletedAsReferred(accountID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Referral{}).
		Where("referred_id = ?", accountID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReferralRepositoryImpl) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Referral{}).Where("code = ?", code).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClaimPending binds the referred account and advances the referral from
// pending to pending_verification. The status predicate in the WHERE clause
// makes the claim a conditional update, so two concurrent claims of the same
// code cannot both succeed.
func (r *ReferralRepositoryImpl) ClaimPending(id, referredID string) error {
	result := r.db.Model(&models.Referral{}).
		Where("id = ? AND status = ? AND referred_id IS NULL", id, models.ReferralStatusPending).
		Updates(map[string]interface{}{
			"referred_id": referredID,
			"status":      models.ReferralStatusPendingVerification,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReferralConflict
	}
	return nil
}

func (r *ReferralRepositoryImpl) SaveSteps(referral *models.Referral) error {
	result := r.db.Model(referral).Updates(map[string]interface{}{
		"completed_steps": referral.CompletedSteps,
		"updated_at":      time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReferralNotFound
	}
	return nil
}

// MarkCompleted advances the referral to completed, conditional on it still
// being in verification so rewards are disbursed at most once.
func (r *ReferralRepositoryImpl) MarkCompleted(id string) error {
	now := time.Now()
	result := r.db.Model(&models.Referral{}).
		Where("id = ? AND status = ?", id, models.ReferralStatusPendingVerification).
		Updates(map[string]interface{}{
			"status":       models.ReferralStatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReferralConflict
	}
	return nil
}

func (r *ReferralRepositoryImpl) FindByReferrer(referrerID string, limit, offset int) ([]models.Referral, int64, error) {
	query := r.db.Model(&models.Referral{}).Where("referrer_id = ?", referrerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var referrals []models.Referral
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&referrals).Error
	if err != nil {
		return nil, 0, err
	}

	return referrals, total, nil
}
