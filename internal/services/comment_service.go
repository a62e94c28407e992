package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
)

// inlineReplies is how many recent replies ride along with each top-level
// comment in a listing
const inlineReplies = 3

// CommentWithReplies is a top-level comment with its most recent replies
// inlined
type CommentWithReplies struct {
	models.Comment
	Replies []models.Comment `json:"replies"`
}

// CommentService implements threaded comments and keeps the denormalized
// comment counters in step with the rows they count
type CommentService struct {
	comments   repositories.CommentRepository
	posts      repositories.PostRepository
	visibility *VisibilityEvaluator
	notifier   *Notifier
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, visibility *VisibilityEvaluator, notifier *Notifier) *CommentService {
	return &CommentService{
		comments:   comments,
		posts:      posts,
		visibility: visibility,
		notifier:   notifier,
	}
}

// CreateComment creates a comment or reply on a post the author can see. The
// post comment counter increments synchronously; notifications are
// best-effort.
func (s *CommentService) CreateComment(ctx context.Context, postID string, authorID uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.visiblePost(ctx, postID, authorID)
	if err != nil {
		return nil, err
	}

	var parent *models.Comment
	if req.ParentCommentID != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentCommentID)
		if err != nil {
			return nil, ErrParentNotFound
		}
		parent, err = s.comments.GetCommentByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		// A reply's parent must belong to the same post
		if parent.PostID != post.ID {
			return nil, ErrParentMismatch
		}
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	// Counter updates are core correctness, not side effects, so they run
	// synchronously. There is no transaction around them; a crash between the
	// insert and the increment can leave the counter behind by one.
	if err := s.posts.AdjustCommentsCount(ctx, post.ID, 1); err != nil {
		return nil, err
	}
	if parent != nil {
		if err := s.comments.AdjustRepliesCount(ctx, parent.ID, 1); err != nil {
			return nil, err
		}
	}

	commentID := comment.ID.Hex()
	go func() {
		if parent != nil {
			s.notifier.Notify(parent.AuthorID, authorID, models.NotificationReply, commentID, models.TargetComment)
		}
		s.notifier.Notify(post.AuthorID, authorID, models.NotificationComment, commentID, models.TargetComment)
		s.notifier.NotifyMentions(authorID, comment.Content, commentID, models.TargetComment)
	}()

	return comment, nil
}

// GetComments returns a page of top-level comments on a post the viewer can
// see, each carrying up to three recent replies
func (s *CommentService) GetComments(ctx context.Context, postID string, viewerID uint, page, limit int) ([]CommentWithReplies, models.Pagination, error) {
	post, err := s.visiblePost(ctx, postID, viewerID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	skip := int64((page - 1) * limit)
	comments, err := s.comments.ListTopLevel(ctx, post.ID, skip, int64(limit))
	if err != nil {
		return nil, models.Pagination{}, err
	}

	withReplies := make([]CommentWithReplies, len(comments))
	for i, comment := range comments {
		replies, err := s.comments.ListReplies(ctx, comment.ID, 0, inlineReplies)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		withReplies[i] = CommentWithReplies{Comment: comment, Replies: replies}
	}

	total, err := s.comments.CountTopLevel(ctx, post.ID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return withReplies, models.NewPagination(page, limit, total), nil
}

// GetCommentReplies returns a page of direct replies to a comment, gated by
// the parent post's visibility
func (s *CommentService) GetCommentReplies(ctx context.Context, commentID string, viewerID uint, page, limit int) ([]models.Comment, models.Pagination, error) {
	comment, err := s.visibleComment(ctx, commentID, viewerID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	skip := int64((page - 1) * limit)
	replies, err := s.comments.ListReplies(ctx, comment.ID, skip, int64(limit))
	if err != nil {
		return nil, models.Pagination{}, err
	}

	total, err := s.comments.CountReplies(ctx, comment.ID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return replies, models.NewPagination(page, limit, total), nil
}

// UpdateComment updates a comment's text; only the author may do so
func (s *CommentService) UpdateComment(ctx context.Context, commentID string, userID uint, req *models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.visibleComment(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, ErrNotCommentOwner
	}

	if err := s.comments.UpdateContent(ctx, comment.ID, req.Content); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	comment.Content = req.Content
	return comment, nil
}

// DeleteComment deletes a comment, cascades to its direct replies and brings
// the affected counters back in line with the remaining rows. The steps are
// not wrapped in a transaction: a crash part-way through can leave counters
// inconsistent, which is an accepted limitation of the single-document
// atomicity model.
func (s *CommentService) DeleteComment(ctx context.Context, commentID string, userID uint) error {
	comment, err := s.visibleComment(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return ErrNotCommentOwner
	}

	deletedReplies, err := s.comments.DeleteReplies(ctx, comment.ID)
	if err != nil {
		return err
	}

	if err := s.comments.DeleteComment(ctx, comment.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	// The post counter covers replies too, so it drops by the whole subtree
	if err := s.posts.AdjustCommentsCount(ctx, comment.PostID, -int(1+deletedReplies)); err != nil {
		return err
	}
	if comment.ParentCommentID != nil {
		if err := s.comments.AdjustRepliesCount(ctx, *comment.ParentCommentID, -1); err != nil {
			return err
		}
	}
	return nil
}

func (s *CommentService) visiblePost(ctx context.Context, postID string, viewerID uint) (*models.Post, error) {
	id, err := primitive.ObjectIDFromHex(postID)
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

	canView, err := s.visibility.CanViewPost(post, viewerID)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// visibleComment loads a comment and gates it behind its post's visibility
func (s *CommentService) visibleComment(ctx context.Context, commentID string, viewerID uint) (*models.Comment, error) {
	id, err := primitive.ObjectIDFromHex(commentID)
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

	if _, err := s.visiblePost(ctx, comment.PostID.Hex(), viewerID); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
