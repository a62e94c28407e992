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

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	ListTopLevel(ctx context.Context, postID primitive.ObjectID, skip, limit int64) ([]models.Comment, error)
	CountTopLevel(ctx context.Context, postID primitive.ObjectID) (int64, error)
	ListReplies(ctx context.Context, parentID primitive.ObjectID, skip, limit int64) ([]models.Comment, error)
	CountReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	DeleteReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error)
	AdjustLikesCount(ctx context.Context, id primitive.ObjectID, delta int) error
	AdjustRepliesCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// EnsureIndexes creates the indexes used by threaded listing
func (r *MongoCommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "parent_comment_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	})
	return errors.Wrap(err, "create comment indexes")
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	_, err := r.collection.InsertOne(ctx, comment)
	return errors.Wrap(err, "insert comment")
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find comment")
	}
	return &comment, nil
}

// ListTopLevel retrieves a page of top-level comments on a post, newest first
func (r *MongoCommentRepository) ListTopLevel(ctx context.Context, postID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	return r.list(ctx, bson.M{"post_id": postID, "parent_comment_id": nil}, skip, limit)
}

// CountTopLevel counts the top-level comments on a post
func (r *MongoCommentRepository) CountTopLevel(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"post_id": postID, "parent_comment_id": nil})
	return count, errors.Wrap(err, "count comments")
}

// ListReplies retrieves a page of direct replies to a comment, newest first
func (r *MongoCommentRepository) ListReplies(ctx context.Context, parentID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	return r.list(ctx, bson.M{"parent_comment_id": parentID}, skip, limit)
}

// CountReplies counts the direct replies to a comment
func (r *MongoCommentRepository) CountReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"parent_comment_id": parentID})
	return count, errors.Wrap(err, "count replies")
}

// UpdateContent updates a comment's text
func (r *MongoCommentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error {
	update := bson.M{"$set": bson.M{"content": content, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return errors.Wrap(err, "update comment")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment deletes a comment by ID from MongoDB
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete comment")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReplies deletes all direct replies to a comment and reports how many
// were removed so the post counter can be adjusted by the same amount
func (r *MongoCommentRepository) DeleteReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"parent_comment_id": parentID})
	if err != nil {
		return 0, errors.Wrap(err, "delete replies")
	}
	return res.DeletedCount, nil
}

// AdjustLikesCount applies an atomic delta to a comment's likes counter
func (r *MongoCommentRepository) AdjustLikesCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes_count": delta}})
	return errors.Wrap(err, "adjust comment likes count")
}

// AdjustRepliesCount applies an atomic delta to a comment's replies counter
func (r *MongoCommentRepository) AdjustRepliesCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"replies_count": delta}})
	return errors.Wrap(err, "adjust comment replies count")
}

func (r *MongoCommentRepository) list(ctx context.Context, query bson.M, skip, limit int64) ([]models.Comment, error) {
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find comments")
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, errors.Wrap(err, "decode comments")
	}
	return comments, nil
}
