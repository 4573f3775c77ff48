package dto

import (
	"time"

	"github.com/visipakalpojumi/backend/internal/models"
)

type ApplyCodeRequest struct {
	ReferralCode string `json:"referralCode" binding:"required,referralcode"`
}

// VerifyStepRequest carries one verification-step claim. StepData is only a
// hint; every step is re-checked against live state before it counts.
type VerifyStepRequest struct {
	ReferralID string                  `json:"referralId" binding:"required,uuid"`
	StepType   models.VerificationStep `json:"stepType" binding:"required"`
	StepData   map[string]string       `json:"stepData"`
}

type GenerateCodeResponse struct {
	ReferralCode string                `json:"referralCode"`
	Status       models.ReferralStatus `json:"status"`
}

type ApplyCodeResponse struct {
	ReferralID        string                    `json:"referralId"`
	VerificationSteps []models.VerificationStep `json:"verificationSteps"`
}

type VerifyStepResponse struct {
	Referral          ReferralResponse          `json:"referral"`
	AllStepsCompleted bool                      `json:"allStepsCompleted"`
	RemainingSteps    []models.VerificationStep `json:"remainingSteps"`
}

type ReferralResponse struct {
	ID             string                    `json:"id"`
	ReferrerID     string                    `json:"referrerId"`
	ReferredID     *string                   `json:"referredId,omitempty"`
	Code           string                    `json:"code"`
	Status         models.ReferralStatus     `json:"status"`
	RewardType     models.RewardType         `json:"rewardType"`
	CompletedSteps []models.VerificationStep `json:"completedSteps"`
	CompletedAt    *time.Time                `json:"completedAt,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
}

func ToReferralResponse(referral *models.Referral) ReferralResponse {
	steps := referral.CompletedSteps
	if steps == nil {
		steps = []models.VerificationStep{}
	}
	return ReferralResponse{
		ID:             referral.ID,
		ReferrerID:     referral.ReferrerID,
		ReferredID:     referral.ReferredID,
		Code:           referral.Code,
		Status:         referral.Status,
		RewardType:     referral.RewardType,
		CompletedSteps: steps,
		CompletedAt:    referral.CompletedAt,
		CreatedAt:      referral.CreatedAt,
	}
}

type ReferralStats struct {
	Total               int64 `json:"total"`
	Pending             int64 `json:"pending"`
	PendingVerification int64 `json:"pendingVerification"`
	Completed           int64 `json:"completed"`
}

type ReferralStatusResponse struct {
	Referrals []ReferralResponse `json:"referrals"`
	Stats     ReferralStats      `json:"stats"`
	// ActiveReferral is the verification the caller is working through as a
	// referred party, when one is in flight.
	ActiveReferral *ReferralResponse `json:"activeReferral,omitempty"`
}
