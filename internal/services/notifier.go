package services

import (
	"log"
	"regexp"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions returns the de-duplicated handles mentioned in the text
// with the @ prefix stripped
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	handles := make([]string, 0, len(matches))
	for _, match := range matches {
		if !seen[match[1]] {
			seen[match[1]] = true
			handles = append(handles, match[1])
		}
	}
	return handles
}

// Notifier creates best-effort notifications. Every method swallows its
// failures after logging them: a notification that cannot be written must
// never fail the action that produced it. Callers dispatch on a goroutine.
type Notifier struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
}

// NewNotifier creates a new Notifier
func NewNotifier(notifications repositories.NotificationRepository, users repositories.UserRepository) *Notifier {
	return &Notifier{notifications: notifications, users: users}
}

var defaultMessages = map[string]string{
	models.NotificationLike:    "reacted to your post",
	models.NotificationComment: "commented on your post",
	models.NotificationFollow:  "started following you",
	models.NotificationMessage: "sent you a message",
	models.NotificationMention: "mentioned you",
	models.NotificationReply:   "replied to your comment",
}

// messageFor picks the human-readable message; like notifications name the
// reacted-to target
func messageFor(notifType, referenceType string) string {
	if notifType == models.NotificationLike && referenceType == models.TargetComment {
		return "reacted to your comment"
	}
	return defaultMessages[notifType]
}

// Notify records a single notification. Self-notifications are skipped.
func (n *Notifier) Notify(recipientID, actorID uint, notifType, referenceID, referenceType string) {
	if recipientID == 0 || recipientID == actorID {
		return
	}

	notification := &models.Notification{
		RecipientID:   recipientID,
		ActorID:       actorID,
		Type:          notifType,
		ReferenceID:   referenceID,
		ReferenceType: referenceType,
		Message:       messageFor(notifType, referenceType),
	}

	if err := n.notifications.CreateNotification(notification); err != nil {
		log.Printf("Failed to create %s notification for user %d: %v", notifType, recipientID, err)
	}
}

// NotifyMentions scans the text for @handles, resolves them to users and
// records a mention notification for each, excluding the actor. Unknown
// handles are silently dropped; resolution failures are logged and dropped.
func (n *Notifier) NotifyMentions(actorID uint, text, referenceID, referenceType string) {
	handles := ExtractMentions(text)
	if len(handles) == 0 {
		return
	}

	users, err := n.users.GetUsersByUsernames(handles)
	if err != nil {
		log.Printf("Failed to resolve mentioned users: %v", err)
		return
	}

	for _, user := range users {
		n.Notify(user.ID, actorID, models.NotificationMention, referenceID, referenceType)
	}
}
