package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/services/dto"
)

// All referral payload keys are camelCase, like the rest of the API.
func TestReferralResponse_FieldNames(t *testing.T) {
	referred := "referred-1"
	now := time.Now()
	resp := dto.ReferralStatusResponse{
		Referrals: []dto.ReferralResponse{{
			ID:             "ref-1",
			ReferrerID:     "referrer-1",
			ReferredID:     &referred,
			Code:           "AB12CD34",
			Status:         models.ReferralStatusCompleted,
			RewardType:     models.RewardTypePremiumMonth,
			CompletedSteps: []models.VerificationStep{models.StepEmailVerification},
			CompletedAt:    &now,
			CreatedAt:      now,
		}},
		Stats:          dto.ReferralStats{Total: 1, PendingVerification: 0, Completed: 1},
		ActiveReferral: &dto.ReferralResponse{ID: "ref-2"},
	}

	raw, err := json.Marshal(resp)
	assert.NoError(t, err)

	var decoded map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "referrals")
	assert.Contains(t, decoded, "stats")
	assert.Contains(t, decoded, "activeReferral")

	var referrals []map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(decoded["referrals"], &referrals))
	for _, key := range []string{
		"id", "referrerId", "referredId", "code", "status",
		"rewardType", "completedSteps", "completedAt", "createdAt",
	} {
		assert.Contains(t, referrals[0], key)
	}

	var stats map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(decoded["stats"], &stats))
	assert.Contains(t, stats, "pendingVerification")
}
