package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anhnvjm07/v-social/internal/models"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	ListBetween(ctx context.Context, userA, userB uint, skip, limit int64) ([]models.Message, error)
	CountBetween(ctx context.Context, userA, userB uint) (int64, error)
	MarkReadFrom(ctx context.Context, receiverID, senderID uint) error
	GetConversations(ctx context.Context, userID uint) ([]models.Conversation, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// EnsureIndexes creates the indexes conversation queries rely on
func (r *MongoMessageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "is_read", Value: 1}}},
	})
	return errors.Wrap(err, "create message indexes")
}

// CreateMessage inserts a new direct message
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	message.UpdatedAt = message.CreatedAt
	_, err := r.collection.InsertOne(ctx, message)
	return errors.Wrap(err, "insert message")
}

// ListBetween retrieves a page of the conversation between two users, newest
// first
func (r *MongoMessageRepository) ListBetween(ctx context.Context, userA, userB uint, skip, limit int64) ([]models.Message, error) {
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, betweenQuery(userA, userB), findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find messages")
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, errors.Wrap(err, "decode messages")
	}
	return messages, nil
}

// CountBetween counts the messages exchanged between two users
func (r *MongoMessageRepository) CountBetween(ctx context.Context, userA, userB uint) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, betweenQuery(userA, userB))
	return count, errors.Wrap(err, "count messages")
}

// MarkReadFrom marks every unread message from a sender to a receiver as read
func (r *MongoMessageRepository) MarkReadFrom(ctx context.Context, receiverID, senderID uint) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"receiver_id": receiverID, "sender_id": senderID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "updated_at": time.Now()}},
	)
	return errors.Wrap(err, "mark messages read")
}

// GetConversations aggregates the user's messages into one entry per peer
// with the latest message and an unread counter
func (r *MongoMessageRepository) GetConversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"sender_id": userID},
			bson.M{"receiver_id": userID},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$sender_id", userID}},
				"$receiver_id",
				"$sender_id",
			}},
			"last_message": bson.M{"$first": "$$ROOT"},
			"unread_count": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$receiver_id", userID}},
					bson.M{"$eq": bson.A{"$is_read", false}},
				}},
				1,
				0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_message.created_at", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate conversations")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		PeerID      uint           `bson:"_id"`
		LastMessage models.Message `bson:"last_message"`
		UnreadCount int64          `bson:"unread_count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode conversations")
	}

	conversations := make([]models.Conversation, len(rows))
	for i, row := range rows {
		conversations[i] = models.Conversation{
			PeerID:      row.PeerID,
			LastMessage: row.LastMessage,
			UnreadCount: row.UnreadCount,
		}
	}
	return conversations, nil
}

func betweenQuery(userA, userB uint) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"sender_id": userA, "receiver_id": userB},
		bson.M{"sender_id": userB, "receiver_id": userA},
	}}
}
