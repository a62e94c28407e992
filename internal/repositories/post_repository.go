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

// VisibilityScope identifies the viewer for storage-level visibility
// filtering. A nil scope means an anonymous request. FollowingIDs must be the
// viewer's full following set, resolved once per request.
type VisibilityScope struct {
	ViewerID     uint
	FollowingIDs []uint
}

// PostFilter narrows post listings. The Scope field pushes the visibility
// predicate into the store query so pages come back already filtered.
type PostFilter struct {
	AuthorID     *uint
	Scope        *VisibilityScope
	ContentMatch string // case-insensitive regex on content
	DateFrom     *time.Time
	DateTo       *time.Time
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter, skip, limit int64) ([]models.Post, error)
	CountPosts(ctx context.Context, filter PostFilter) (int64, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	AdjustLikesCount(ctx context.Context, id primitive.ObjectID, delta int) error
	AdjustCommentsCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// EnsureIndexes creates the indexes the listing queries rely on
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "visibility", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return errors.Wrap(err, "create post indexes")
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	_, err := r.collection.InsertOne(ctx, post)
	return errors.Wrap(err, "insert post")
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find post")
	}
	return &post, nil
}

// ListPosts retrieves a page of posts matching the filter, newest first with
// _id as the tiebreak so pagination stays stable across requests
func (r *MongoPostRepository) ListPosts(ctx context.Context, filter PostFilter, skip, limit int64) ([]models.Post, error) {
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, buildPostQuery(filter), findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode posts")
	}
	return posts, nil
}

// CountPosts counts the posts matching the filter. Using the same query as
// ListPosts keeps pagination totals equal to what the viewer can see.
func (r *MongoPostRepository) CountPosts(ctx context.Context, filter PostFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, buildPostQuery(filter))
	return count, errors.Wrap(err, "count posts")
}

// UpdatePost persists content, media and visibility changes to a post
func (r *MongoPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"content":    post.Content,
			"media":      post.Media,
			"visibility": post.Visibility,
			"updated_at": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return errors.Wrap(err, "update post")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete post")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustLikesCount applies an atomic delta to a post's likes counter
func (r *MongoPostRepository) AdjustLikesCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes_count": delta}})
	return errors.Wrap(err, "adjust post likes count")
}

// AdjustCommentsCount applies an atomic delta to a post's comments counter
func (r *MongoPostRepository) AdjustCommentsCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"comments_count": delta}})
	return errors.Wrap(err, "adjust post comments count")
}

// buildPostQuery translates a PostFilter into a MongoDB query. The visibility
// branch mirrors the single-item evaluator: public, own, or followers-tier by
// an author the viewer follows.
func buildPostQuery(filter PostFilter) bson.M {
	query := bson.M{}

	if filter.AuthorID != nil {
		query["author_id"] = *filter.AuthorID
	}

	if filter.ContentMatch != "" {
		query["content"] = bson.M{"$regex": filter.ContentMatch, "$options": "i"}
	}

	if filter.DateFrom != nil || filter.DateTo != nil {
		created := bson.M{}
		if filter.DateFrom != nil {
			created["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			created["$lte"] = *filter.DateTo
		}
		query["created_at"] = created
	}

	if filter.Scope == nil || filter.Scope.ViewerID == 0 {
		query["visibility"] = models.VisibilityPublic
		return query
	}

	followed := filter.Scope.FollowingIDs
	if followed == nil {
		followed = []uint{}
	}
	query["$or"] = bson.A{
		bson.M{"visibility": models.VisibilityPublic},
		bson.M{"author_id": filter.Scope.ViewerID},
		bson.M{
			"visibility": models.VisibilityFollowers,
			"author_id":  bson.M{"$in": followed},
		},
	}
	return query
}
