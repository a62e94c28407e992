package services

import (
	"errors"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
)

// NotificationService exposes a user's notification inbox
type NotificationService struct {
	notifications repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// ListNotifications returns a page of the user's notifications, optionally
// unread ones only
func (s *NotificationService) ListNotifications(userID uint, unreadOnly bool, page, limit int) ([]models.Notification, models.Pagination, error) {
	notifications, total, err := s.notifications.GetByRecipientID(userID, unreadOnly, page, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return notifications, models.NewPagination(page, limit, total), nil
}

// UnreadCount returns how many unread notifications the user has
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.notifications.GetUnreadCount(userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(notificationID, userID uint) error {
	if err := s.notifications.MarkAsRead(notificationID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.notifications.MarkAllAsRead(userID)
}
