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

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	CreateReaction(ctx context.Context, reaction *models.Reaction) error
	GetByUserAndTarget(ctx context.Context, userID uint, targetType string, targetID primitive.ObjectID) (*models.Reaction, error)
	UpdateKind(ctx context.Context, id primitive.ObjectID, kind string) error
	DeleteReaction(ctx context.Context, id primitive.ObjectID) error
	ListByTarget(ctx context.Context, targetType string, targetID primitive.ObjectID, skip, limit int64) ([]models.Reaction, error)
	CountByTarget(ctx context.Context, targetType string, targetID primitive.ObjectID) (int64, error)
	SummarizeByTarget(ctx context.Context, targetType string, targetID primitive.ObjectID) (map[string]int, error)
}

// MongoReactionRepository implements ReactionRepository for MongoDB
type MongoReactionRepository struct {
	collection *mongo.Collection
}

// NewMongoReactionRepository creates a new MongoReactionRepository
func NewMongoReactionRepository(db *mongo.Database) *MongoReactionRepository {
	return &MongoReactionRepository{collection: db.Collection("reactions")}
}

// EnsureIndexes creates the unique (user, target) index. That index is what
// turns two racing reaction inserts into a store-level conflict instead of a
// double count.
func (r *MongoReactionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "target_type", Value: 1},
				{Key: "target_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "target_type", Value: 1}, {Key: "target_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return errors.Wrap(err, "create reaction indexes")
}

// CreateReaction inserts a new reaction. A duplicate key violation surfaces
// as ErrDuplicateKey.
func (r *MongoReactionRepository) CreateReaction(ctx context.Context, reaction *models.Reaction) error {
	reaction.ID = primitive.NewObjectID()
	reaction.CreatedAt = time.Now()
	reaction.UpdatedAt = reaction.CreatedAt
	_, err := r.collection.InsertOne(ctx, reaction)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "insert reaction")
	}
	return nil
}

// GetByUserAndTarget retrieves a user's reaction on a target, if any
func (r *MongoReactionRepository) GetByUserAndTarget(ctx context.Context, userID uint, targetType string, targetID primitive.ObjectID) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.collection.FindOne(ctx, bson.M{
		"user_id":     userID,
		"target_type": targetType,
		"target_id":   targetID,
	}).Decode(&reaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find reaction")
	}
	return &reaction, nil
}

// UpdateKind changes the kind of an existing reaction in place
func (r *MongoReactionRepository) UpdateKind(ctx context.Context, id primitive.ObjectID, kind string) error {
	update := bson.M{"$set": bson.M{"kind": kind, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return errors.Wrap(err, "update reaction kind")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReaction removes a reaction by ID
func (r *MongoReactionRepository) DeleteReaction(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete reaction")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByTarget retrieves a page of reactions on a target, newest first
func (r *MongoReactionRepository) ListByTarget(ctx context.Context, targetType string, targetID primitive.ObjectID, skip, limit int64) ([]models.Reaction, error) {
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"target_type": targetType, "target_id": targetID}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find reactions")
	}
	defer cursor.Close(ctx)

	reactions := []models.Reaction{}
	if err = cursor.All(ctx, &reactions); err != nil {
		return nil, errors.Wrap(err, "decode reactions")
	}
	return reactions, nil
}

// CountByTarget counts the reactions on a target
func (r *MongoReactionRepository) CountByTarget(ctx context.Context, targetType string, targetID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"target_type": targetType, "target_id": targetID})
	return count, errors.Wrap(err, "count reactions")
}

// SummarizeByTarget groups the reactions on a target by kind
func (r *MongoReactionRepository) SummarizeByTarget(ctx context.Context, targetType string, targetID primitive.ObjectID) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"target_type": targetType, "target_id": targetID}}},
		{{Key: "$group", Value: bson.M{"_id": "$kind", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate reactions")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Kind  string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode reaction summary")
	}

	summary := make(map[string]int, len(rows))
	for _, row := range rows {
		summary[row.Kind] = row.Count
	}
	return summary, nil
}
