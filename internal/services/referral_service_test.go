package services_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/services/dto"
	"github.com/visipakalpojumi/backend/pkg/apperrors"
)

type referralFixture struct {
	referralRepo     *MockReferralRepository
	userRepo         *MockUserRepository
	listingRepo      *MockListingRepository
	bookingRepo      *MockBookingRepository
	reviewRepo       *MockReviewRepository
	subscriptionRepo *MockSubscriptionRepository
	listingCache     *memoryListingCache
	notifier         *FakeNotifier
	service          services.ReferralService
}

func newReferralFixture() *referralFixture {
	f := &referralFixture{
		referralRepo:     new(MockReferralRepository),
		userRepo:         new(MockUserRepository),
		listingRepo:      new(MockListingRepository),
		bookingRepo:      new(MockBookingRepository),
		reviewRepo:       new(MockReviewRepository),
		subscriptionRepo: new(MockSubscriptionRepository),
		listingCache:     newMemoryListingCache(),
		notifier:         &FakeNotifier{},
	}
	f.service = services.NewReferralService(
		f.referralRepo,
		f.userRepo,
		f.listingRepo,
		f.bookingRepo,
		f.reviewRepo,
		f.subscriptionRepo,
		f.listingCache,
		f.notifier,
		services.ReferralOptions{},
	)
	return f
}

func appErrorCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	var appErr *apperrors.AppError
	if !assert.ErrorAs(t, err, &appErr) {
		return ""
	}
	return appErr.Code
}

func TestGenerateCode_ReturnsStillPendingCode(t *testing.T) {
	f := newReferralFixture()

	referrer := &models.User{
		BaseModel: models.BaseModel{ID: "referrer-1"},
		Role:      models.UserRoleCustomer,
	}
	existing := &models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		Code:       "AB12CD34",
		Status:     models.ReferralStatusPending,
		RewardType: models.RewardTypePremiumMonth,
	}

	f.userRepo.On("FindByID", "referrer-1").Return(referrer, nil)
	f.referralRepo.On("FindPendingByReferrer", "referrer-1").Return(existing, nil)

	first, err := f.service.GenerateCode("referrer-1")
	assert.NoError(t, err)
	second, err := f.service.GenerateCode("referrer-1")
	assert.NoError(t, err)

	assert.Equal(t, "AB12CD34", first.ReferralCode)
	assert.Equal(t, first.ReferralCode, second.ReferralCode)
	f.referralRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestGenerateCode_MintsRewardFromReferrerRole(t *testing.T) {
	cases := []struct {
		name       string
		role       models.UserRole
		wantReward models.RewardType
	}{
		{"provider referrer", models.UserRoleProvider, models.RewardTypeVisibilityBoost},
		{"customer referrer", models.UserRoleCustomer, models.RewardTypePremiumMonth},
	}

	codeFormat := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newReferralFixture()

			referrer := &models.User{
				BaseModel: models.BaseModel{ID: "referrer-1"},
				Role:      tc.role,
			}

			f.userRepo.On("FindByID", "referrer-1").Return(referrer, nil)
			f.referralRepo.On("FindPendingByReferrer", "referrer-1").
				Return(nil, repositories.ErrReferralNotFound)
			f.referralRepo.On("CodeExists", mock.AnythingOfType("string")).Return(false, nil)

			var created *models.Referral
			f.referralRepo.On("Create", mock.AnythingOfType("*models.Referral")).
				Run(func(args mock.Arguments) {
					created = args.Get(0).(*models.Referral)
				}).
				Return(nil)

			resp, err := f.service.GenerateCode("referrer-1")

			assert.NoError(t, err)
			assert.Regexp(t, codeFormat, resp.ReferralCode)
			assert.Equal(t, models.ReferralStatusPending, resp.Status)
			if assert.NotNil(t, created) {
				assert.Equal(t, tc.wantReward, created.RewardType)
				assert.Equal(t, "referrer-1", created.ReferrerID)
			}
		})
	}
}

func TestApplyCode_OwnCodeRejectedRegardlessOfStatus(t *testing.T) {
	for _, status := range []models.ReferralStatus{
		models.ReferralStatusPending,
		models.ReferralStatusPendingVerification,
		models.ReferralStatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newReferralFixture()

			f.referralRepo.On("FindByCode", "AB12CD34").Return(&models.Referral{
				BaseModel:  models.BaseModel{ID: "ref-1"},
				ReferrerID: "referrer-1",
				Code:       "AB12CD34",
				Status:     status,
			}, nil)

			_, err := f.service.ApplyCode("referrer-1", &dto.ApplyCodeRequest{ReferralCode: "AB12CD34"})

			assert.ErrorIs(t, err, apperrors.ErrSelfReferral)
			f.referralRepo.AssertNotCalled(t, "ClaimPending", mock.Anything, mock.Anything)
		})
	}
}

func TestApplyCode_AlreadyClaimedCode(t *testing.T) {
	f := newReferralFixture()

	f.referralRepo.On("FindByCode", "AB12CD34").Return(&models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		Code:       "AB12CD34",
		Status:     models.ReferralStatusPendingVerification,
	}, nil)

	_, err := f.service.ApplyCode("applicant-1", &dto.ApplyCodeRequest{ReferralCode: "AB12CD34"})

	assert.Equal(t, apperrors.CodeInvalidState, appErrorCode(t, err))
}

func TestApplyCode_AccountAlreadyRewarded(t *testing.T) {
	f := newReferralFixture()

	f.referralRepo.On("FindByCode", "AB12CD34").Return(&models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		Code:       "AB12CD34",
		Status:     models.ReferralStatusPending,
	}, nil)
	f.userRepo.On("FindByID", "applicant-1").Return(&models.User{
		BaseModel: models.BaseModel{ID: "applicant-1"},
		Role:      models.UserRoleCustomer,
	}, nil)
	f.referralRepo.On("HasCompletedAsReferred", "applicant-1").Return(true, nil)

	_, err := f.service.ApplyCode("applicant-1", &dto.ApplyCodeRequest{ReferralCode: "AB12CD34"})

	assert.ErrorIs(t, err, apperrors.ErrReferralAlreadyUsed)
	f.referralRepo.AssertNotCalled(t, "ClaimPending", mock.Anything, mock.Anything)
}

func TestApplyCode_LostClaimRace(t *testing.T) {
	f := newReferralFixture()

	f.referralRepo.On("FindByCode", "AB12CD34").Return(&models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		Code:       "AB12CD34",
		Status:     models.ReferralStatusPending,
	}, nil)
	f.userRepo.On("FindByID", "applicant-1").Return(&models.User{
		BaseModel: models.BaseModel{ID: "applicant-1"},
		Role:      models.UserRoleCustomer,
	}, nil)
	f.referralRepo.On("HasCompletedAsReferred", "applicant-1").Return(false, nil)
	f.referralRepo.On("ClaimPending", "ref-1", "applicant-1").
		Return(repositories.ErrReferralConflict)

	_, err := f.service.ApplyCode("applicant-1", &dto.ApplyCodeRequest{ReferralCode: "AB12CD34"})

	assert.Equal(t, apperrors.CodeInvalidState, appErrorCode(t, err))
	assert.Empty(t, f.notifier.ReferralApplied)
}

func TestApplyCode_ReturnsRoleChecklist(t *testing.T) {
	f := newReferralFixture()

	f.referralRepo.On("FindByCode", "AB12CD34").Return(&models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		Code:       "AB12CD34",
		Status:     models.ReferralStatusPending,
	}, nil)
	f.userRepo.On("FindByID", "applicant-1").Return(&models.User{
		BaseModel: models.BaseModel{ID: "applicant-1"},
		Role:      models.UserRoleCustomer,
	}, nil)
	f.referralRepo.On("HasCompletedAsReferred", "applicant-1").Return(false, nil)
	f.referralRepo.On("ClaimPending", "ref-1", "applicant-1").Return(nil)

	resp, err := f.service.ApplyCode("applicant-1", &dto.ApplyCodeRequest{ReferralCode: "AB12CD34"})

	assert.NoError(t, err)
	assert.Equal(t, "ref-1", resp.ReferralID)
	assert.Equal(t, []models.VerificationStep{
		models.StepEmailVerification,
		models.StepPhoneVerification,
		models.StepProfileCompletion,
		models.StepFirstBooking,
		models.StepReviewSubmission,
	}, resp.VerificationSteps)
	assert.Equal(t, []string{"referrer-1"}, f.notifier.ReferralApplied)
}

func TestVerifyStep_UnknownStepKind(t *testing.T) {
	f := newReferralFixture()

	_, err := f.service.VerifyStep("applicant-1", &dto.VerifyStepRequest{
		ReferralID: "ref-1",
		StepType:   models.VerificationStep("tiktok_follow"),
	})

	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))
}

func TestVerifyStep_ForeignReferralHidden(t *testing.T) {
	f := newReferralFixture()

	other := "someone-else"
	f.referralRepo.On("FindByID", "ref-1").Return(&models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		ReferredID: &other,
		Status:     models.ReferralStatusPendingVerification,
	}, nil)

	_, err := f.service.VerifyStep("applicant-1", &dto.VerifyStepRequest{
		ReferralID: "ref-1",
		StepType:   models.StepEmailVerification,
	})

	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))
}

func TestVerifyStep_StepOutsideRoleChecklist(t *testing.T) {
	f := newReferralFixture()

	applicantID := "applicant-1"
	f.referralRepo.On("FindByID", "ref-1").Return(&models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		ReferredID: &applicantID,
		Status:     models.ReferralStatusPendingVerification,
	}, nil)
	f.userRepo.On("FindByID", applicantID).Return(&models.User{
		BaseModel: models.BaseModel{ID: applicantID},
		Role:      models.UserRoleCustomer,
	}, nil)

	// service_creation belongs to the provider checklist only.
	_, err := f.service.VerifyStep(applicantID, &dto.VerifyStepRequest{
		ReferralID: "ref-1",
		StepType:   models.StepServiceCreation,
	})

	assert.Equal(t, apperrors.CodeVerificationFailed, appErrorCode(t, err))
	f.referralRepo.AssertNotCalled(t, "SaveSteps", mock.Anything)
}

func TestVerifyStep_LiveCheckFailure(t *testing.T) {
	f := newReferralFixture()

	applicantID := "applicant-1"
	f.referralRepo.On("FindByID", "ref-1").Return(&models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		ReferredID: &applicantID,
		Status:     models.ReferralStatusPendingVerification,
	}, nil)
	f.userRepo.On("FindByID", applicantID).Return(&models.User{
		BaseModel:  models.BaseModel{ID: applicantID},
		Role:       models.UserRoleCustomer,
		IsVerified: false,
	}, nil)

	_, err := f.service.VerifyStep(applicantID, &dto.VerifyStepRequest{
		ReferralID: "ref-1",
		StepType:   models.StepEmailVerification,
	})

	assert.Equal(t, apperrors.CodeVerificationFailed, appErrorCode(t, err))
	f.referralRepo.AssertNotCalled(t, "SaveSteps", mock.Anything)
}

func TestVerifyStep_RepeatedStepIsNoOp(t *testing.T) {
	f := newReferralFixture()

	applicantID := "applicant-1"
	referral := &models.Referral{
		BaseModel:      models.BaseModel{ID: "ref-1"},
		ReferrerID:     "referrer-1",
		ReferredID:     &applicantID,
		Status:         models.ReferralStatusPendingVerification,
		CompletedSteps: []models.VerificationStep{models.StepEmailVerification},
	}
	f.referralRepo.On("FindByID", "ref-1").Return(referral, nil)
	f.userRepo.On("FindByID", applicantID).Return(&models.User{
		BaseModel:  models.BaseModel{ID: applicantID},
		Role:       models.UserRoleCustomer,
		IsVerified: true,
	}, nil)

	resp, err := f.service.VerifyStep(applicantID, &dto.VerifyStepRequest{
		ReferralID: "ref-1",
		StepType:   models.StepEmailVerification,
	})

	assert.NoError(t, err)
	assert.Len(t, referral.CompletedSteps, 1)
	assert.False(t, resp.AllStepsCompleted)
	assert.Len(t, resp.RemainingSteps, 4)
	f.referralRepo.AssertNotCalled(t, "SaveSteps", mock.Anything)
}

// Walks a referred customer through the full five-step checklist and checks
// that the referral auto-completes on the last step with both rewards paid.
func TestVerifyStep_CustomerChecklistRoundTrip(t *testing.T) {
	f := newReferralFixture()

	applicantID := "applicant-1"
	referral := &models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		ReferredID: &applicantID,
		Code:       "AB12CD34",
		Status:     models.ReferralStatusPendingVerification,
		RewardType: models.RewardTypePremiumMonth,
	}
	applicant := &models.User{
		BaseModel:  models.BaseModel{ID: applicantID},
		Role:       models.UserRoleCustomer,
		FirstName:  "Liga",
		LastName:   "Ozola",
		Phone:      "+37120000000",
		IsVerified: true,
	}
	referrer := &models.User{
		BaseModel: models.BaseModel{ID: "referrer-1"},
		Role:      models.UserRoleCustomer,
	}

	f.referralRepo.On("FindByID", "ref-1").Return(referral, nil)
	f.userRepo.On("FindByID", applicantID).Return(applicant, nil)
	f.userRepo.On("FindByID", "referrer-1").Return(referrer, nil)
	f.bookingRepo.On("ExistsCompletedInvolving", applicantID).Return(true, nil)
	f.reviewRepo.On("ExistsByCustomer", applicantID).Return(true, nil)
	f.referralRepo.On("SaveSteps", referral).Return(nil)
	f.referralRepo.On("MarkCompleted", "ref-1").Return(nil)

	var granted []string
	f.subscriptionRepo.On("Upsert", mock.AnythingOfType("*models.Subscription")).
		Run(func(args mock.Arguments) {
			sub := args.Get(0).(*models.Subscription)
			granted = append(granted, sub.UserID)
			assert.Equal(t, models.PlanTierPremium, sub.Plan)
		}).
		Return(nil)

	steps := []struct {
		step models.VerificationStep
		data map[string]string
	}{
		{models.StepEmailVerification, nil},
		{models.StepPhoneVerification, map[string]string{"phone": "+37120000000"}},
		{models.StepProfileCompletion, nil},
		{models.StepFirstBooking, nil},
		{models.StepReviewSubmission, nil},
	}

	for i, s := range steps {
		resp, err := f.service.VerifyStep(applicantID, &dto.VerifyStepRequest{
			ReferralID: "ref-1",
			StepType:   s.step,
			StepData:   s.data,
		})
		assert.NoError(t, err)

		last := i == len(steps)-1
		assert.Equal(t, last, resp.AllStepsCompleted, "step %s", s.step)
		assert.Len(t, resp.RemainingSteps, len(steps)-i-1)
	}

	assert.Equal(t, models.ReferralStatusCompleted, referral.Status)
	assert.NotNil(t, referral.CompletedAt)
	// Both the referred account and the referrer get a premium month.
	assert.ElementsMatch(t, []string{applicantID, "referrer-1"}, granted)
	assert.ElementsMatch(t, []string{applicantID, "referrer-1"}, f.notifier.ReferralCompleted)
}

// A provider-minted code carries the visibility boost: completing the
// checklist features the referrer's listings, once for each reward leg.
func TestVerifyStep_ProviderCodeVisibilityBoost(t *testing.T) {
	f := newReferralFixture()

	applicantID := "applicant-1"
	referral := &models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		ReferredID: &applicantID,
		Status:     models.ReferralStatusPendingVerification,
		RewardType: models.RewardTypeVisibilityBoost,
		CompletedSteps: []models.VerificationStep{
			models.StepEmailVerification,
			models.StepPhoneVerification,
			models.StepProfileCompletion,
			models.StepFirstBooking,
		},
	}
	applicant := &models.User{
		BaseModel:  models.BaseModel{ID: applicantID},
		Role:       models.UserRoleCustomer,
		IsVerified: true,
	}
	referrer := &models.User{
		BaseModel: models.BaseModel{ID: "referrer-1"},
		Role:      models.UserRoleProvider,
	}

	f.referralRepo.On("FindByID", "ref-1").Return(referral, nil)
	f.userRepo.On("FindByID", applicantID).Return(applicant, nil)
	f.userRepo.On("FindByID", "referrer-1").Return(referrer, nil)
	f.reviewRepo.On("ExistsByCustomer", applicantID).Return(true, nil)
	f.referralRepo.On("SaveSteps", referral).Return(nil)
	f.referralRepo.On("MarkCompleted", "ref-1").Return(nil)
	f.listingRepo.On("FeatureAllByProvider", "referrer-1").
		Return([]string{"listing-7", "listing-8"}, nil)

	resp, err := f.service.VerifyStep(applicantID, &dto.VerifyStepRequest{
		ReferralID: "ref-1",
		StepType:   models.StepReviewSubmission,
	})

	assert.NoError(t, err)
	assert.True(t, resp.AllStepsCompleted)
	f.listingRepo.AssertNumberOfCalls(t, "FeatureAllByProvider", 2)
	f.subscriptionRepo.AssertNotCalled(t, "Upsert", mock.Anything)
	// Every featured listing's cached detail entry is dropped so reads see
	// the boost immediately.
	assert.Contains(t, f.listingCache.invalidated, "listing-7")
	assert.Contains(t, f.listingCache.invalidated, "listing-8")
}

// Completing the full provider checklist flips the referral to completed.
func TestVerifyStep_ProviderChecklistAutoCompletes(t *testing.T) {
	f := newReferralFixture()

	applicantID := "applicant-1"
	referral := &models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		ReferredID: &applicantID,
		Status:     models.ReferralStatusPendingVerification,
		RewardType: models.RewardTypePremiumMonth,
		CompletedSteps: []models.VerificationStep{
			models.StepEmailVerification,
			models.StepPhoneVerification,
			models.StepProfileCompletion,
			models.StepServiceCreation,
			models.StepProfileVerification,
		},
	}
	applicant := &models.User{
		BaseModel:  models.BaseModel{ID: applicantID},
		Role:       models.UserRoleProvider,
		IsVerified: true,
	}
	referrer := &models.User{
		BaseModel: models.BaseModel{ID: "referrer-1"},
		Role:      models.UserRoleCustomer,
	}

	f.referralRepo.On("FindByID", "ref-1").Return(referral, nil)
	f.userRepo.On("FindByID", applicantID).Return(applicant, nil)
	f.userRepo.On("FindByID", "referrer-1").Return(referrer, nil)
	f.bookingRepo.On("ExistsCompletedInvolving", applicantID).Return(true, nil)
	f.referralRepo.On("SaveSteps", referral).Return(nil)
	f.referralRepo.On("MarkCompleted", "ref-1").Return(nil)
	f.subscriptionRepo.On("Upsert", mock.AnythingOfType("*models.Subscription")).Return(nil)

	resp, err := f.service.VerifyStep(applicantID, &dto.VerifyStepRequest{
		ReferralID: "ref-1",
		StepType:   models.StepFirstBooking,
	})

	assert.NoError(t, err)
	assert.True(t, resp.AllStepsCompleted)
	assert.Equal(t, models.ReferralStatusCompleted, referral.Status)
	assert.NotNil(t, referral.CompletedAt)
	f.subscriptionRepo.AssertNumberOfCalls(t, "Upsert", 2)
}

// A lost completion race means another request already paid out. No second
// disbursement happens.
func TestVerifyStep_LostCompletionRaceSkipsRewards(t *testing.T) {
	f := newReferralFixture()

	applicantID := "applicant-1"
	referral := &models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-1"},
		ReferrerID: "referrer-1",
		ReferredID: &applicantID,
		Status:     models.ReferralStatusPendingVerification,
		RewardType: models.RewardTypePremiumMonth,
		CompletedSteps: []models.VerificationStep{
			models.StepEmailVerification,
			models.StepPhoneVerification,
			models.StepProfileCompletion,
			models.StepFirstBooking,
		},
	}
	applicant := &models.User{
		BaseModel:  models.BaseModel{ID: applicantID},
		Role:       models.UserRoleCustomer,
		IsVerified: true,
	}

	f.referralRepo.On("FindByID", "ref-1").Return(referral, nil)
	f.userRepo.On("FindByID", applicantID).Return(applicant, nil)
	f.reviewRepo.On("ExistsByCustomer", applicantID).Return(true, nil)
	f.referralRepo.On("SaveSteps", referral).Return(nil)
	f.referralRepo.On("MarkCompleted", "ref-1").Return(repositories.ErrReferralConflict)

	resp, err := f.service.VerifyStep(applicantID, &dto.VerifyStepRequest{
		ReferralID: "ref-1",
		StepType:   models.StepReviewSubmission,
	})

	assert.NoError(t, err)
	assert.True(t, resp.AllStepsCompleted)
	assert.Equal(t, models.ReferralStatusCompleted, referral.Status)
	f.subscriptionRepo.AssertNotCalled(t, "Upsert", mock.Anything)
	f.listingRepo.AssertNotCalled(t, "FeatureAllByProvider", mock.Anything)
	assert.Empty(t, f.notifier.ReferralCompleted)
}

func TestStatus_AggregatesByReferralStatus(t *testing.T) {
	f := newReferralFixture()

	f.referralRepo.On("FindByReferrer", "referrer-1", 100, 0).Return([]models.Referral{
		{BaseModel: models.BaseModel{ID: "r1"}, Status: models.ReferralStatusPending},
		{BaseModel: models.BaseModel{ID: "r2"}, Status: models.ReferralStatusPendingVerification},
		{BaseModel: models.BaseModel{ID: "r3"}, Status: models.ReferralStatusCompleted},
		{BaseModel: models.BaseModel{ID: "r4"}, Status: models.ReferralStatusCompleted},
	}, int64(4), nil)
	f.referralRepo.On("FindActiveByReferred", "referrer-1").
		Return(nil, repositories.ErrReferralNotFound)

	resp, err := f.service.Status("referrer-1")

	assert.NoError(t, err)
	assert.Len(t, resp.Referrals, 4)
	assert.Equal(t, int64(4), resp.Stats.Total)
	assert.Equal(t, int64(1), resp.Stats.Pending)
	assert.Equal(t, int64(1), resp.Stats.PendingVerification)
	assert.Equal(t, int64(2), resp.Stats.Completed)
	assert.Nil(t, resp.ActiveReferral)
}

func TestStatus_ReportsInFlightVerification(t *testing.T) {
	f := newReferralFixture()

	userID := "user-1"
	f.referralRepo.On("FindByReferrer", userID, 100, 0).
		Return([]models.Referral{}, int64(0), nil)
	f.referralRepo.On("FindActiveByReferred", userID).Return(&models.Referral{
		BaseModel:  models.BaseModel{ID: "ref-9"},
		ReferrerID: "referrer-1",
		ReferredID: &userID,
		Status:     models.ReferralStatusPendingVerification,
	}, nil)

	resp, err := f.service.Status(userID)

	assert.NoError(t, err)
	if assert.NotNil(t, resp.ActiveReferral) {
		assert.Equal(t, "ref-9", resp.ActiveReferral.ID)
		assert.Equal(t, models.ReferralStatusPendingVerification, resp.ActiveReferral.Status)
	}
}
