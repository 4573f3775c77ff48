package models

type UserStatus string
type UserRole string
type BookingStatus string
type PriceType string
type ReferralStatus string
type RewardType string
type VerificationStep string
type PlanTier string
type SubscriptionStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleCustomer UserRole = "customer"
	UserRoleProvider UserRole = "provider"
	UserRoleAdmin    UserRole = "admin"

	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"

	PriceTypeFixed      PriceType = "fixed"
	PriceTypeHourly     PriceType = "hourly"
	PriceTypeNegotiable PriceType = "negotiable"

	ReferralStatusPending             ReferralStatus = "pending"
	ReferralStatusPendingVerification ReferralStatus = "pending_verification"
	ReferralStatusCompleted           ReferralStatus = "completed"

	RewardTypePremiumMonth    RewardType = "premium_month"
	RewardTypeVisibilityBoost RewardType = "visibility_boost"

	StepEmailVerification   VerificationStep = "email_verification"
	StepPhoneVerification   VerificationStep = "phone_verification"
	StepProfileCompletion   VerificationStep = "profile_completion"
	StepServiceCreation     VerificationStep = "service_creation"
	StepProfileVerification VerificationStep = "profile_verification"
	StepFirstBooking        VerificationStep = "first_booking"
	StepReviewSubmission    VerificationStep = "review_submission"

	PlanTierFree       PlanTier = "free"
	PlanTierBasic      PlanTier = "basic"
	PlanTierPremium    PlanTier = "premium"
	PlanTierEnterprise PlanTier = "enterprise"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// commonSteps are required of every referred account regardless of role.
var commonSteps = []VerificationStep{
	StepEmailVerification,
	StepPhoneVerification,
	StepProfileCompletion,
}

// roleSteps holds the extra role-specific steps, keyed by the closed role
// enum so the checklist stays exhaustive and statically checkable.
var roleSteps = map[UserRole][]VerificationStep{
	UserRoleProvider: {
		StepServiceCreation,
		StepProfileVerification,
		StepFirstBooking,
	},
	UserRoleCustomer: {
		StepFirstBooking,
		StepReviewSubmission,
	},
}

// RequiredVerificationSteps returns the ordered checklist a referred account
// of the given role must complete before the referral pays out.
func RequiredVerificationSteps(role UserRole) []VerificationStep {
	steps := make([]VerificationStep, 0, len(commonSteps)+3)
	steps = append(steps, commonSteps...)
	steps = append(steps, roleSteps[role]...)
	return steps
}

// ValidVerificationStep reports whether s is a known step kind.
func ValidVerificationStep(s VerificationStep) bool {
	switch s {
	case StepEmailVerification, StepPhoneVerification, StepProfileCompletion,
		StepServiceCreation, StepProfileVerification, StepFirstBooking, StepReviewSubmission:
		return true
	}
	return false
}
