package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhnvjm07/v-social/internal/models"
)

func newMessageServiceFixture(users ...models.User) (*MessageService, *fakeMessageRepo) {
	messages := newFakeMessageRepo()
	userRepo := newFakeUserRepo(users...)
	notifier := NewNotifier(newFakeNotificationRepo(), userRepo)
	return NewMessageService(messages, userRepo, notifier), messages
}

func TestSendMessage(t *testing.T) {
	service, _ := newMessageServiceFixture(
		models.User{ID: 1, Username: "alice"},
		models.User{ID: 2, Username: "bob"},
	)
	ctx := context.Background()

	message, err := service.SendMessage(ctx, 1, &models.SendMessageRequest{ReceiverID: 2, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), message.SenderID)
	assert.Equal(t, uint(2), message.ReceiverID)
	assert.False(t, message.IsRead)
	assert.False(t, message.ID.IsZero())
}

func TestSendMessageErrors(t *testing.T) {
	service, _ := newMessageServiceFixture(models.User{ID: 1, Username: "alice"})
	ctx := context.Background()

	_, err := service.SendMessage(ctx, 1, &models.SendMessageRequest{ReceiverID: 1, Content: "hi"})
	assert.ErrorIs(t, err, ErrSelfMessage)

	_, err = service.SendMessage(ctx, 1, &models.SendMessageRequest{ReceiverID: 99, Content: "hi"})
	assert.ErrorIs(t, err, ErrReceiverNotFound)
}

func TestGetConversation(t *testing.T) {
	service, _ := newMessageServiceFixture(
		models.User{ID: 1, Username: "alice"},
		models.User{ID: 2, Username: "bob"},
	)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := service.SendMessage(ctx, 1, &models.SendMessageRequest{ReceiverID: 2, Content: fmt.Sprintf("from alice %d", i)})
		require.NoError(t, err)
		_, err = service.SendMessage(ctx, 2, &models.SendMessageRequest{ReceiverID: 1, Content: fmt.Sprintf("from bob %d", i)})
		require.NoError(t, err)
	}

	messages, pagination, err := service.GetConversation(ctx, 1, 2, 1, 4)
	require.NoError(t, err)
	assert.Len(t, messages, 4)
	assert.Equal(t, int64(6), pagination.Total)
	assert.Equal(t, "from bob 2", messages[0].Content, "newest first")

	_, _, err = service.GetConversation(ctx, 1, 99, 1, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetConversationMarksRead(t *testing.T) {
	service, messages := newMessageServiceFixture(
		models.User{ID: 1, Username: "alice"},
		models.User{ID: 2, Username: "bob"},
	)
	ctx := context.Background()

	_, err := service.SendMessage(ctx, 2, &models.SendMessageRequest{ReceiverID: 1, Content: "unread"})
	require.NoError(t, err)

	conversations, err := messages.GetConversations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, int64(1), conversations[0].UnreadCount)

	// Reading the thread clears the unread counter for its peer
	_, _, err = service.GetConversation(ctx, 1, 2, 1, 10)
	require.NoError(t, err)

	conversations, err = messages.GetConversations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, int64(0), conversations[0].UnreadCount)
}

func TestGetConversations(t *testing.T) {
	service, _ := newMessageServiceFixture(
		models.User{ID: 1, Username: "alice"},
		models.User{ID: 2, Username: "bob"},
		models.User{ID: 3, Username: "carol"},
	)
	ctx := context.Background()

	_, err := service.SendMessage(ctx, 1, &models.SendMessageRequest{ReceiverID: 2, Content: "to bob"})
	require.NoError(t, err)
	_, err = service.SendMessage(ctx, 3, &models.SendMessageRequest{ReceiverID: 1, Content: "from carol"})
	require.NoError(t, err)

	conversations, err := service.GetConversations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// Most recent conversation first, each with its peer profile resolved
	assert.Equal(t, uint(3), conversations[0].PeerID)
	assert.Equal(t, "carol", conversations[0].Peer.Username)
	assert.Equal(t, "from carol", conversations[0].LastMessage.Content)
	assert.Equal(t, int64(1), conversations[0].UnreadCount)

	assert.Equal(t, uint(2), conversations[1].PeerID)
	assert.Equal(t, "bob", conversations[1].Peer.Username)
	assert.Equal(t, int64(0), conversations[1].UnreadCount, "own sent messages are not unread")
}
