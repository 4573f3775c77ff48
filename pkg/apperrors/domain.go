package apperrors

import (
	"net/http"
)

// Factories and predefined errors for the marketplace domain.

// ErrNotFound converts a repository not-found error into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidState is used when an operation is not valid for the entity's
// current state (e.g. applying a code to a non-pending referral).
func ErrInvalidState(domain, message string) *AppError {
	return New(CodeInvalidState, domain, message, http.StatusConflict)
}

// ErrInvalidTransition is used when a status change is not reachable from
// the current status.
func ErrInvalidTransition(domain, message string) *AppError {
	return New(CodeInvalidTransition, domain, message, http.StatusConflict)
}

// --- Referral program ---

var ErrSelfReferral = New(
	CodeSelfReferral,
	"referral",
	"You cannot use your own referral code",
	http.StatusBadRequest,
)

var ErrReferralAlreadyUsed = New(
	CodeReferralUsed,
	"referral",
	"A referral reward has already been claimed for this account",
	http.StatusConflict,
)

// ErrVerificationFailed is returned when the live re-check of a verification
// step's precondition does not pass.
func ErrVerificationFailed(message string) *AppError {
	return New(CodeVerificationFailed, "referral", message, http.StatusBadRequest)
}

// --- Bookings ---

var ErrListingUnavailable = New(
	CodeInvalidState,
	"booking",
	"This service is currently unavailable for booking",
	http.StatusConflict,
)

var ErrBookingAccessDenied = New(
	CodeForbidden,
	"booking",
	"You are not a party to this booking",
	http.StatusForbidden,
)

// --- Reviews ---

var ErrBookingNotCompleted = New(
	CodeInvalidState,
	"review",
	"Reviews can only be left for completed bookings",
	http.StatusConflict,
)

var ErrReviewAlreadyExists = New(
	CodeAlreadyExists,
	"review",
	"A review for this booking already exists",
	http.StatusConflict,
)

// --- Auth & accounts ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Use at least 8 characters including a letter and a digit.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidState,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Subscriptions ---

var ErrSubscriptionCancelled = New(
	CodeInvalidState,
	"subscription",
	"Subscription is already cancelled",
	http.StatusBadRequest,
)
