package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
)

// ReactionService implements the single-reaction-per-user toggle and the
// reaction listing/summary
type ReactionService struct {
	reactions  repositories.ReactionRepository
	posts      repositories.PostRepository
	comments   repositories.CommentRepository
	visibility *VisibilityEvaluator
	notifier   *Notifier
}

// NewReactionService creates a new ReactionService
func NewReactionService(
	reactions repositories.ReactionRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	visibility *VisibilityEvaluator,
	notifier *Notifier,
) *ReactionService {
	return &ReactionService{
		reactions:  reactions,
		posts:      posts,
		comments:   comments,
		visibility: visibility,
		notifier:   notifier,
	}
}

// ToggleReaction applies the toggle state machine for (user, target):
//
//	no reaction yet            -> create, counter +1
//	same kind submitted again  -> delete, counter -1
//	different kind submitted   -> change kind in place, counter unchanged
//
// Counter updates are atomic single-document increments; two racing creates
// collide on the unique index and the loser gets a conflict.
func (s *ReactionService) ToggleReaction(ctx context.Context, userID uint, targetType, targetID, kind string) (*models.Reaction, string, error) {
	target, err := s.resolveTarget(ctx, userID, targetType, targetID)
	if err != nil {
		return nil, "", err
	}

	existing, err := s.reactions.GetByUserAndTarget(ctx, userID, targetType, target.id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", err
	}

	if existing != nil {
		if existing.Kind == kind {
			// Resubmitting the same kind undoes the reaction. A concurrent
			// undo can remove the row between the read and the delete; the
			// loser must not decrement again.
			if err := s.reactions.DeleteReaction(ctx, existing.ID); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return nil, "", ErrReactionNotFound
				}
				return nil, "", err
			}
			if err := s.adjustLikesCount(ctx, targetType, target.id, -1); err != nil {
				return nil, "", err
			}
			return nil, models.ReactionDeleted, nil
		}

		// Kind change: still exactly one reaction row, so no count change
		if err := s.reactions.UpdateKind(ctx, existing.ID, kind); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, "", ErrReactionNotFound
			}
			return nil, "", err
		}
		existing.Kind = kind
		return existing, models.ReactionUpdated, nil
	}

	reaction := &models.Reaction{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   target.id,
		Kind:       kind,
	}
	if err := s.reactions.CreateReaction(ctx, reaction); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, "", ErrAlreadyReacted
		}
		return nil, "", err
	}
	if err := s.adjustLikesCount(ctx, targetType, target.id, 1); err != nil {
		return nil, "", err
	}

	go s.notifier.Notify(target.authorID, userID, models.NotificationLike, targetID, targetType)

	return reaction, models.ReactionCreated, nil
}

// GetReactions returns a page of reactions on a target with per-kind totals
// and, for signed-in viewers, their own reaction
func (s *ReactionService) GetReactions(ctx context.Context, targetType, targetID string, viewerID uint, page, limit int) (*models.ReactionSummary, error) {
	target, err := s.resolveTarget(ctx, viewerID, targetType, targetID)
	if err != nil {
		return nil, err
	}

	skip := int64((page - 1) * limit)
	reactions, err := s.reactions.ListByTarget(ctx, targetType, target.id, skip, int64(limit))
	if err != nil {
		return nil, err
	}

	summary, err := s.reactions.SummarizeByTarget(ctx, targetType, target.id)
	if err != nil {
		return nil, err
	}

	total, err := s.reactions.CountByTarget(ctx, targetType, target.id)
	if err != nil {
		return nil, err
	}

	result := &models.ReactionSummary{
		Reactions:  reactions,
		Summary:    summary,
		Pagination: models.NewPagination(page, limit, total),
	}

	if viewerID != 0 {
		own, err := s.reactions.GetByUserAndTarget(ctx, viewerID, targetType, target.id)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		result.UserReaction = own
	}
	return result, nil
}

type reactionTarget struct {
	id       primitive.ObjectID
	authorID uint
}

// resolveTarget loads the reacted-to post or comment and applies the
// visibility gate, so reacting cannot probe for invisible content
func (s *ReactionService) resolveTarget(ctx context.Context, viewerID uint, targetType, targetID string) (*reactionTarget, error) {
	switch targetType {
	case models.TargetPost:
		id, err := primitive.ObjectIDFromHex(targetID)
		if err != nil {
			return nil, ErrPostNotFound
		}
		post, err := s.posts.GetPostByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrPostNotFound
			}
			return nil, err
		}
		if err := s.gate(post, viewerID, ErrPostNotFound); err != nil {
			return nil, err
		}
		return &reactionTarget{id: post.ID, authorID: post.AuthorID}, nil

	case models.TargetComment:
		id, err := primitive.ObjectIDFromHex(targetID)
		if err != nil {
			return nil, ErrCommentNotFound
		}
		comment, err := s.comments.GetCommentByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		post, err := s.posts.GetPostByID(ctx, comment.PostID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		if err := s.gate(post, viewerID, ErrCommentNotFound); err != nil {
			return nil, err
		}
		return &reactionTarget{id: comment.ID, authorID: comment.AuthorID}, nil

	default:
		return nil, ErrInvalidTarget
	}
}

func (s *ReactionService) gate(post *models.Post, viewerID uint, notFound error) error {
	canView, err := s.visibility.CanViewPost(post, viewerID)
	if err != nil {
		return err
	}
	if !canView {
		return notFound
	}
	return nil
}

func (s *ReactionService) adjustLikesCount(ctx context.Context, targetType string, targetID primitive.ObjectID, delta int) error {
	if targetType == models.TargetPost {
		return s.posts.AdjustLikesCount(ctx, targetID, delta)
	}
	return s.comments.AdjustLikesCount(ctx, targetID, delta)
}
