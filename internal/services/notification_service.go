package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/visipakalpojumi/backend/internal/logger"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
	"github.com/visipakalpojumi/backend/internal/services/dto"
	"github.com/visipakalpojumi/backend/pkg/apperrors"
)

// Notifier is the injected notification sink used by the booking and
// referral workflows. Delivery failures are logged, never propagated, so a
// broken sink cannot fail a business operation.
type Notifier interface {
	NotifyBookingCreated(providerID string, booking *models.Booking)
	NotifyBookingStatus(recipientID string, booking *models.Booking)
	NotifyReferralApplied(referrerID, code string)
	NotifyReferralCompleted(userID string, reward models.RewardType)
	NotifyReviewReceived(providerID string, review *models.Review)
}

type NotificationService interface {
	Notifier

	GetUserNotifications(userID string, unreadOnly bool, page, limit int) ([]dto.NotificationResponse, dto.Pagination, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) GetUserNotifications(userID string, unreadOnly bool, page, limit int) ([]dto.NotificationResponse, dto.Pagination, error) {
	offset := (page - 1) * limit

	notifications, total, err := s.notificationRepo.FindByUser(userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}

	return dto.ToNotificationResponses(notifications), dto.NewPagination(page, limit, total), nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	if err := s.notificationRepo.MarkRead(notificationID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// publish persists a notification row. Errors are logged and swallowed.
func (s *notificationService) publish(userID, notifType, title, message string, data map[string]interface{}) {
	var payload datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.Error("failed to encode notification payload", "error", err, "type", notifType)
			return
		}
		payload = datatypes.JSON(raw)
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    payload,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("failed to persist notification", "error", err, "user_id", userID, "type", notifType)
	}
}

func (s *notificationService) NotifyBookingCreated(providerID string, booking *models.Booking) {
	s.publish(providerID, models.NotificationTypeBookingCreated,
		"New booking request",
		"A customer has requested a booking for your service.",
		map[string]interface{}{
			"booking_id": booking.ID,
			"status":     booking.Status,
		})
}

func (s *notificationService) NotifyBookingStatus(recipientID string, booking *models.Booking) {
	s.publish(recipientID, models.NotificationTypeBookingStatus,
		"Booking status updated",
		"Your booking is now "+string(booking.Status)+".",
		map[string]interface{}{
			"booking_id": booking.ID,
			"status":     booking.Status,
		})
}

func (s *notificationService) NotifyReferralApplied(referrerID, code string) {
	s.publish(referrerID, models.NotificationTypeReferralApplied,
		"Your referral code was used",
		"Someone signed up with your referral code. The reward unlocks once they finish verification.",
		map[string]interface{}{
			"code": code,
		})
}

func (s *notificationService) NotifyReferralCompleted(userID string, reward models.RewardType) {
	s.publish(userID, models.NotificationTypeReferralCompleted,
		"Referral reward granted",
		"Your referral is complete and the reward has been applied to your account.",
		map[string]interface{}{
			"reward_type": reward,
		})
}

func (s *notificationService) NotifyReviewReceived(providerID string, review *models.Review) {
	s.publish(providerID, models.NotificationTypeReviewReceived,
		"New review received",
		"A customer left a review on one of your services.",
		map[string]interface{}{
			"review_id":  review.ID,
			"listing_id": review.ListingID,
			"rating":     review.Rating,
		})
}
