package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post visibility tiers
const (
	VisibilityPublic    = "public"
	VisibilityPrivate   = "private"
	VisibilityFollowers = "followers"
)

// Media kinds
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// MediaItem is a single media attachment on a post. ObjectID is the
// identifier inside the external object store, used only for cleanup.
type MediaItem struct {
	URL      string `json:"url" bson:"url"`
	Kind     string `json:"kind" bson:"kind"` // "image" or "video"
	ObjectID string `json:"object_id,omitempty" bson:"object_id,omitempty"`
}

// Post represents a social media post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID      uint               `json:"author_id" bson:"author_id"`
	Content       string             `json:"content" bson:"content"`
	Media         []MediaItem        `json:"media,omitempty" bson:"media,omitempty"`
	Visibility    string             `json:"visibility" bson:"visibility"`
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content    string       `json:"content" validate:"required,min=1,max=2000"`
	Media      []MediaInput `json:"media,omitempty" validate:"omitempty,dive"`
	Visibility string       `json:"visibility,omitempty" validate:"omitempty,oneof=public private followers"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content    *string      `json:"content,omitempty" validate:"omitempty,min=1,max=2000"`
	Media      []MediaInput `json:"media,omitempty" validate:"omitempty,dive"`
	Visibility string       `json:"visibility,omitempty" validate:"omitempty,oneof=public private followers"`
}

// MediaInput is an already-uploaded media attachment supplied by the client
type MediaInput struct {
	URL      string `json:"url" validate:"required,url"`
	Kind     string `json:"kind" validate:"required,oneof=image video"`
	ObjectID string `json:"object_id,omitempty"`
}
