package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reaction target types
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Reaction kinds
const (
	ReactionLike  = "like"
	ReactionLove  = "love"
	ReactionHaha  = "haha"
	ReactionWow   = "wow"
	ReactionSad   = "sad"
	ReactionAngry = "angry"
)

// Reaction is a single user's reaction on a post or comment, stored in
// MongoDB. A unique compound index on (user_id, target_type, target_id)
// enforces at most one reaction per user per target.
type Reaction struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     uint               `json:"user_id" bson:"user_id"`
	TargetType string             `json:"target_type" bson:"target_type"`
	TargetID   primitive.ObjectID `json:"target_id" bson:"target_id"`
	Kind       string             `json:"kind" bson:"kind"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// ToggleReactionRequest defines the request body for toggling a reaction
type ToggleReactionRequest struct {
	Kind string `json:"kind" validate:"required,oneof=like love haha wow sad angry"`
}

// Toggle outcomes
const (
	ReactionCreated = "created"
	ReactionUpdated = "updated"
	ReactionDeleted = "deleted"
)

// ReactionSummary groups reactions on a target by kind
type ReactionSummary struct {
	Reactions    []Reaction     `json:"reactions"`
	Summary      map[string]int `json:"summary"`
	UserReaction *Reaction      `json:"user_reaction,omitempty"`
	Pagination   Pagination     `json:"pagination"`
}
