package services

import (
	"time"

	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
	"github.com/visipakalpojumi/backend/internal/services/dto"
	"github.com/visipakalpojumi/backend/pkg/apperrors"
)

type SubscriptionService interface {
	GetMine(userID string) (*dto.SubscriptionResponse, error)
	Purchase(userID string, req *dto.PurchaseSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Cancel(userID string) error
	ExpireOverdue() (int64, error)
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
}

func NewSubscriptionService(subscriptionRepo repositories.SubscriptionRepository) SubscriptionService {
	return &SubscriptionServiceImpl{subscriptionRepo: subscriptionRepo}
}

func (s *SubscriptionServiceImpl) GetMine(userID string) (*dto.SubscriptionResponse, error) {
	subscription, err := s.subscriptionRepo.FindByUser(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToSubscriptionResponse(subscription)
	return &resp, nil
}

// Purchase upserts the user's single subscription row onto the chosen plan.
// Payment collection happens outside this service.
func (s *SubscriptionServiceImpl) Purchase(userID string, req *dto.PurchaseSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	months := req.Months
	if months == 0 {
		months = 1
	}

	now := time.Now()
	subscription := &models.Subscription{
		UserID:      userID,
		Plan:        req.Plan,
		Status:      models.SubscriptionStatusActive,
		PeriodStart: now,
		PeriodEnd:   now.AddDate(0, months, 0),
	}

	if err := s.subscriptionRepo.Upsert(subscription); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToSubscriptionResponse(subscription)
	return &resp, nil
}

// Cancel flags the subscription to lapse at period end. The paid period
// stays usable until then.
func (s *SubscriptionServiceImpl) Cancel(userID string) error {
	subscription, err := s.subscriptionRepo.FindByUser(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if subscription.CancelAtPeriodEnd || subscription.Status == models.SubscriptionStatusCancelled {
		return apperrors.ErrSubscriptionCancelled
	}

	now := time.Now()
	subscription.CancelAtPeriodEnd = true
	subscription.CancelledAt = &now

	if err := s.subscriptionRepo.Update(subscription); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ExpireOverdue downgrades paid subscriptions whose period has lapsed.
// Called by the background worker.
func (s *SubscriptionServiceImpl) ExpireOverdue() (int64, error) {
	return s.subscriptionRepo.ExpireOverdue(time.Now())
}
