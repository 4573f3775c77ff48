package models

import "time"

type Referral struct {
	BaseModel
	ReferrerID string         `gorm:"not null;index"`
	ReferredID *string        `gorm:"index"` // set once, when the code is applied
	Code       string         `gorm:"type:varchar(16);uniqueIndex;not null"`
	Status     ReferralStatus `gorm:"type:varchar(30);default:'pending';index"`
	RewardType RewardType     `gorm:"type:varchar(30);not null"`
	// CompletedSteps is a typed set of the closed step enum, persisted as
	// a JSON array. Re-adding a present step is a no-op.
	CompletedSteps []VerificationStep `gorm:"serializer:json"`
	CompletedAt    *time.Time

	// Relations
	Referrer User  `gorm:"foreignKey:ReferrerID"`
	Referred *User `gorm:"foreignKey:ReferredID"`
}

// HasStep reports whether the step has already been completed.
func (r *Referral) HasStep(step VerificationStep) bool {
	for _, s := range r.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// AddStep records a completed step. Idempotent.
func (r *Referral) AddStep(step VerificationStep) {
	if !r.HasStep(step) {
		r.CompletedSteps = append(r.CompletedSteps, step)
	}
}

// RemainingSteps returns the required steps for role not yet completed,
// in checklist order.
func (r *Referral) RemainingSteps(role UserRole) []VerificationStep {
	var remaining []VerificationStep
	for _, step := range RequiredVerificationSteps(role) {
		if !r.HasStep(step) {
			remaining = append(remaining, step)
		}
	}
	return remaining
}

// AllStepsCompleted reports whether every required step for role is in the
// completed set.
func (r *Referral) AllStepsCompleted(role UserRole) bool {
	return len(r.RemainingSteps(role)) == 0
}
