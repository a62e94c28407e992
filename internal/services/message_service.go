package services

import (
	"context"
	"errors"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
)

// ConversationView is a conversation entry with the peer's compact profile
type ConversationView struct {
	models.Conversation
	Peer models.UserCompact `json:"peer"`
}

// MessageService implements direct messaging between users
type MessageService struct {
	messages repositories.MessageRepository
	users    repositories.UserRepository
	notifier *Notifier
}

// NewMessageService creates a new MessageService
func NewMessageService(messages repositories.MessageRepository, users repositories.UserRepository, notifier *Notifier) *MessageService {
	return &MessageService{messages: messages, users: users, notifier: notifier}
}

// SendMessage stores a direct message and fires a best-effort notification
// at the receiver
func (s *MessageService) SendMessage(ctx context.Context, senderID uint, req *models.SendMessageRequest) (*models.Message, error) {
	if senderID == req.ReceiverID {
		return nil, ErrSelfMessage
	}

	if _, err := s.users.GetUserByID(req.ReceiverID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := s.messages.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	go s.notifier.Notify(req.ReceiverID, senderID, models.NotificationMessage, message.ID.Hex(), "message")

	return message, nil
}

// GetConversations lists the user's conversations, one entry per peer with
// the latest message and unread count
func (s *MessageService) GetConversations(ctx context.Context, userID uint) ([]ConversationView, error) {
	conversations, err := s.messages.GetConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	peerIDs := make([]uint, len(conversations))
	for i, conv := range conversations {
		peerIDs[i] = conv.PeerID
	}
	peers, err := s.users.GetUsersByIDs(peerIDs)
	if err != nil {
		return nil, err
	}
	peerMap := make(map[uint]models.UserCompact, len(peers))
	for i := range peers {
		peerMap[peers[i].ID] = peers[i].ToCompact()
	}

	views := make([]ConversationView, len(conversations))
	for i, conv := range conversations {
		views[i] = ConversationView{Conversation: conv, Peer: peerMap[conv.PeerID]}
	}
	return views, nil
}

// GetConversation returns a page of the message thread with a peer and marks
// the peer's messages to the user as read
func (s *MessageService) GetConversation(ctx context.Context, userID, peerID uint, page, limit int) ([]models.Message, models.Pagination, error) {
	if _, err := s.users.GetUserByID(peerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.Pagination{}, ErrUserNotFound
		}
		return nil, models.Pagination{}, err
	}

	skip := int64((page - 1) * limit)
	messages, err := s.messages.ListBetween(ctx, userID, peerID, skip, int64(limit))
	if err != nil {
		return nil, models.Pagination{}, err
	}

	total, err := s.messages.CountBetween(ctx, userID, peerID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	if err := s.messages.MarkReadFrom(ctx, userID, peerID); err != nil {
		return nil, models.Pagination{}, err
	}

	return messages, models.NewPagination(page, limit, total), nil
}
