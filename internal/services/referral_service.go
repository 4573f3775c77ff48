package services

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/visipakalpojumi/backend/internal/cache"
	"github.com/visipakalpojumi/backend/internal/logger"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
	"github.com/visipakalpojumi/backend/internal/services/dto"
	"github.com/visipakalpojumi/backend/pkg/apperrors"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReferralOptions tunes the reward engine. Zero values fall back to the
// defaults below.
type ReferralOptions struct {
	CodeLength         int
	PremiumRewardDays  int
	MaxCodeGenAttempts int
}

func (o *ReferralOptions) applyDefaults() {
	if o.CodeLength == 0 {
		o.CodeLength = 8
	}
	if o.PremiumRewardDays == 0 {
		o.PremiumRewardDays = 30
	}
	if o.MaxCodeGenAttempts == 0 {
		o.MaxCodeGenAttempts = 10
	}
}

// rewardTypeByRole selects the reward minted into a new code from the
// referrer's role.
var rewardTypeByRole = map[models.UserRole]models.RewardType{
	models.UserRoleProvider: models.RewardTypeVisibilityBoost,
	models.UserRoleCustomer: models.RewardTypePremiumMonth,
	models.UserRoleAdmin:    models.RewardTypePremiumMonth,
}

type ReferralService interface {
	GenerateCode(referrerID string) (*dto.GenerateCodeResponse, error)
	ApplyCode(applicantID string, req *dto.ApplyCodeRequest) (*dto.ApplyCodeResponse, error)
	VerifyStep(applicantID string, req *dto.VerifyStepRequest) (*dto.VerifyStepResponse, error)
	Status(userID string) (*dto.ReferralStatusResponse, error)
}

type ReferralServiceImpl struct {
	referralRepo     repositories.ReferralRepository
	userRepo         repositories.UserRepository
	listingRepo      repositories.ListingRepository
	bookingRepo      repositories.BookingRepository
	reviewRepo       repositories.ReviewRepository
	subscriptionRepo repositories.SubscriptionRepository
	listingCache     cache.ListingCache
	notifier         Notifier
	opts             ReferralOptions
}

func NewReferralService(
	referralRepo repositories.ReferralRepository,
	userRepo repositories.UserRepository,
	listingRepo repositories.ListingRepository,
	bookingRepo repositories.BookingRepository,
	reviewRepo repositories.ReviewRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	listingCache cache.ListingCache,
	notifier Notifier,
	opts ReferralOptions,
) ReferralService {
	opts.applyDefaults()
	return &ReferralServiceImpl{
		referralRepo:     referralRepo,
		userRepo:         userRepo,
		listingRepo:      listingRepo,
		bookingRepo:      bookingRepo,
		reviewRepo:       reviewRepo,
		subscriptionRepo: subscriptionRepo,
		listingCache:     listingCache,
		notifier:         notifier,
		opts:             opts,
	}
}

// GenerateCode mints a referral code for the referrer. A still-unclaimed
// code is returned as-is, so repeated calls are idempotent until someone
// applies it.
func (s *ReferralServiceImpl) GenerateCode(referrerID string) (*dto.GenerateCodeResponse, error) {
	referrer, err := s.userRepo.FindByID(referrerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if existing, err := s.referralRepo.FindPendingByReferrer(referrerID); err == nil {
		return &dto.GenerateCodeResponse{
			ReferralCode: existing.Code,
			Status:       existing.Status,
		}, nil
	} else if !apperrors.Is(err, repositories.ErrReferralNotFound) {
		return nil, apperrors.InternalError(err)
	}

	code, err := s.mintUniqueCode()
	if err != nil {
		return nil, err
	}

	referral := &models.Referral{
		ReferrerID: referrerID,
		Code:       code,
		Status:     models.ReferralStatusPending,
		RewardType: rewardTypeByRole[referrer.Role],
	}

	if err := s.referralRepo.Create(referral); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.GenerateCodeResponse{
		ReferralCode: referral.Code,
		Status:       referral.Status,
	}, nil
}

// ApplyCode binds the applicant to the referral as the referred party and
// starts the verification phase. The claim is a conditional update, so two
// concurrent applications of the same code cannot both succeed.
func (s *ReferralServiceImpl) ApplyCode(applicantID string, req *dto.ApplyCodeRequest) (*dto.ApplyCodeResponse, error) {
	referral, err := s.referralRepo.FindByCode(req.ReferralCode)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReferralNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if referral.ReferrerID == applicantID {
		return nil, apperrors.ErrSelfReferral
	}

	if referral.Status != models.ReferralStatusPending {
		return nil, apperrors.ErrInvalidState("referral", "This referral code has already been claimed")
	}

	applicant, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	used, err := s.referralRepo.HasCompletedAsReferred(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if used {
		return nil, apperrors.ErrReferralAlreadyUsed
	}

	if err := s.referralRepo.ClaimPending(referral.ID, applicantID); err != nil {
		if apperrors.Is(err, repositories.ErrReferralConflict) {
			return nil, apperrors.ErrInvalidState("referral", "This referral code has already been claimed")
		}
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyReferralApplied(referral.ReferrerID, referral.Code)

	return &dto.ApplyCodeResponse{
		ReferralID:        referral.ID,
		VerificationSteps: models.RequiredVerificationSteps(applicant.Role),
	}, nil
}

// VerifyStep records one completed verification step. The step's
// precondition is re-checked against live state, never trusted from the
// payload. When the last required step lands, the referral completes and
// rewards are disbursed.
func (s *ReferralServiceImpl) VerifyStep(applicantID string, req *dto.VerifyStepRequest) (*dto.VerifyStepResponse, error) {
	if !models.ValidVerificationStep(req.StepType) {
		return nil, apperrors.NewBadRequestError("Unknown verification step")
	}

	referral, err := s.referralRepo.FindByID(req.ReferralID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReferralNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if referral.Status != models.ReferralStatusPendingVerification ||
		referral.ReferredID == nil || *referral.ReferredID != applicantID {
		return nil, apperrors.ErrNotFound(repositories.ErrReferralNotFound)
	}

	applicant, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if !stepRequired(applicant.Role, req.StepType) {
		return nil, apperrors.ErrVerificationFailed("This step is not part of your verification checklist")
	}

	verify, ok := s.stepVerifiers()[req.StepType]
	if !ok {
		return nil, apperrors.NewBadRequestError("Unknown verification step")
	}
	if err := verify(applicant, req.StepData); err != nil {
		return nil, err
	}

	if !referral.HasStep(req.StepType) {
		referral.AddStep(req.StepType)
		if err := s.referralRepo.SaveSteps(referral); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if referral.AllStepsCompleted(applicant.Role) {
		if err := s.completeReferral(referral, applicant); err != nil {
			return nil, err
		}
	}

	remaining := referral.RemainingSteps(applicant.Role)
	if remaining == nil {
		remaining = []models.VerificationStep{}
	}

	return &dto.VerifyStepResponse{
		Referral:          dto.ToReferralResponse(referral),
		AllStepsCompleted: len(remaining) == 0,
		RemainingSteps:    remaining,
	}, nil
}

// Status reports both sides of the program for one account: the referrals it
// issued (with per-status stats) and, if any, the verification it is itself
// working through as a referred party.
func (s *ReferralServiceImpl) Status(userID string) (*dto.ReferralStatusResponse, error) {
	referrals, total, err := s.referralRepo.FindByReferrer(userID, 100, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats := dto.ReferralStats{Total: total}
	responses := make([]dto.ReferralResponse, 0, len(referrals))
	for i := range referrals {
		responses = append(responses, dto.ToReferralResponse(&referrals[i]))
		switch referrals[i].Status {
		case models.ReferralStatusPending:
			stats.Pending++
		case models.ReferralStatusPendingVerification:
			stats.PendingVerification++
		case models.ReferralStatusCompleted:
			stats.Completed++
		}
	}

	resp := &dto.ReferralStatusResponse{
		Referrals: responses,
		Stats:     stats,
	}

	if active, err := s.referralRepo.FindActiveByReferred(userID); err == nil {
		activeResp := dto.ToReferralResponse(active)
		resp.ActiveReferral = &activeResp
	} else if !apperrors.Is(err, repositories.ErrReferralNotFound) {
		return nil, apperrors.InternalError(err)
	}

	return resp, nil
}

// stepVerifiers maps every step kind to its live precondition check, keyed
// by the closed step enum so a new step cannot be added without a verifier.
func (s *ReferralServiceImpl) stepVerifiers() map[models.VerificationStep]func(*models.User, map[string]string) error {
	return map[models.VerificationStep]func(*models.User, map[string]string) error{
		models.StepEmailVerification: func(u *models.User, _ map[string]string) error {
			if !u.IsVerified {
				return apperrors.ErrVerificationFailed("Email address is not verified yet")
			}
			return nil
		},
		models.StepPhoneVerification: func(u *models.User, data map[string]string) error {
			if u.Phone == "" || data["phone"] != u.Phone {
				return apperrors.ErrVerificationFailed("Phone number does not match the one on file")
			}
			return nil
		},
		models.StepProfileCompletion: func(u *models.User, _ map[string]string) error {
			if !u.HasCompleteProfile() {
				return apperrors.ErrVerificationFailed("Profile is missing name or phone")
			}
			return nil
		},
		models.StepServiceCreation: func(u *models.User, _ map[string]string) error {
			count, err := s.listingRepo.CountByProvider(u.ID)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if count == 0 {
				return apperrors.ErrVerificationFailed("No service listing has been created yet")
			}
			return nil
		},
		models.StepProfileVerification: func(u *models.User, _ map[string]string) error {
			if !u.IsProfileVerified {
				return apperrors.ErrVerificationFailed("Provider profile has not passed verification yet")
			}
			return nil
		},
		models.StepFirstBooking: func(u *models.User, _ map[string]string) error {
			exists, err := s.bookingRepo.ExistsCompletedInvolving(u.ID)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if !exists {
				return apperrors.ErrVerificationFailed("No completed booking found for this account")
			}
			return nil
		},
		models.StepReviewSubmission: func(u *models.User, _ map[string]string) error {
			exists, err := s.reviewRepo.ExistsByCustomer(u.ID)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if !exists {
				return apperrors.ErrVerificationFailed("No review has been submitted yet")
			}
			return nil
		},
	}
}

// completeReferral advances the referral to completed and disburses both
// rewards. The status change is a conditional update, so a concurrent
// completion loses the race and skips disbursement: rewards land at most
// once per referral.
func (s *ReferralServiceImpl) completeReferral(referral *models.Referral, referred *models.User) error {
	if err := s.referralRepo.MarkCompleted(referral.ID); err != nil {
		if apperrors.Is(err, repositories.ErrReferralConflict) {
			referral.Status = models.ReferralStatusCompleted
			return nil
		}
		return apperrors.InternalError(err)
	}

	now := time.Now()
	referral.Status = models.ReferralStatusCompleted
	referral.CompletedAt = &now

	if err := s.disburseReferredReward(referral); err != nil {
		return err
	}
	if err := s.disburseReferrerReward(referral.ReferrerID); err != nil {
		return err
	}

	s.notifier.NotifyReferralCompleted(referred.ID, referral.RewardType)
	s.notifier.NotifyReferralCompleted(referral.ReferrerID, referral.RewardType)

	logger.Info("referral completed",
		"referral_id", referral.ID,
		"referrer_id", referral.ReferrerID,
		"reward_type", referral.RewardType,
	)

	return nil
}

func (s *ReferralServiceImpl) disburseReferredReward(referral *models.Referral) error {
	switch referral.RewardType {
	case models.RewardTypePremiumMonth:
		if err := s.grantPremium(*referral.ReferredID); err != nil {
			return apperrors.InternalError(err)
		}
	case models.RewardTypeVisibilityBoost:
		if err := s.featureProviderListings(referral.ReferrerID); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *ReferralServiceImpl) disburseReferrerReward(referrerID string) error {
	referrer, err := s.userRepo.FindByID(referrerID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if referrer.Role == models.UserRoleProvider {
		if err := s.featureProviderListings(referrerID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	}

	if err := s.grantPremium(referrerID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// featureProviderListings applies the visibility boost and drops the cached
// detail entry of every listing it touched, so reads see the featured flag
// immediately.
func (s *ReferralServiceImpl) featureProviderListings(providerID string) error {
	ids, err := s.listingRepo.FeatureAllByProvider(providerID)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.listingCache.Invalidate(context.Background(), id); err != nil {
			logger.Warn("failed to invalidate listing cache", "error", err, "listing_id", id)
		}
	}
	return nil
}

func (s *ReferralServiceImpl) grantPremium(userID string) error {
	now := time.Now()
	return s.subscriptionRepo.Upsert(&models.Subscription{
		UserID:      userID,
		Plan:        models.PlanTierPremium,
		Status:      models.SubscriptionStatusActive,
		PeriodStart: now,
		PeriodEnd:   now.AddDate(0, 0, s.opts.PremiumRewardDays),
	})
}

func (s *ReferralServiceImpl) mintUniqueCode() (string, error) {
	for attempt := 0; attempt < s.opts.MaxCodeGenAttempts; attempt++ {
		code, err := s.mintCode()
		if err != nil {
			return "", apperrors.InternalError(err)
		}

		exists, err := s.referralRepo.CodeExists(code)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperrors.ErrConflict(nil, "referral", "Could not generate a unique referral code")
}

func (s *ReferralServiceImpl) mintCode() (string, error) {
	buf := make([]byte, s.opts.CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

func stepRequired(role models.UserRole, step models.VerificationStep) bool {
	for _, required := range models.RequiredVerificationSteps(role) {
		if required == step {
			return true
		}
	}
	return false
}
