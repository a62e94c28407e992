package services

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
	"github.com/anhnvjm07/v-social/pkg/media"
)

// PostService implements post lifecycle operations and the visibility-aware
// post listing
type PostService struct {
	posts      repositories.PostRepository
	visibility *VisibilityEvaluator
	storage    media.Storage
	notifier   *Notifier
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, visibility *VisibilityEvaluator, storage media.Storage, notifier *Notifier) *PostService {
	return &PostService{
		posts:      posts,
		visibility: visibility,
		storage:    storage,
		notifier:   notifier,
	}
}

// CreatePost creates a post and fires mention notifications for its content
func (s *PostService) CreatePost(ctx context.Context, authorID uint, req *models.CreatePostRequest) (*models.Post, error) {
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	post := &models.Post{
		AuthorID:   authorID,
		Content:    req.Content,
		Media:      mediaItems(req.Media),
		Visibility: visibility,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	go s.notifier.NotifyMentions(authorID, post.Content, post.ID.Hex(), models.TargetPost)

	return post, nil
}

// GetPost retrieves a single post. A post the viewer is not allowed to see is
// reported exactly like a post that does not exist.
func (s *PostService) GetPost(ctx context.Context, postID string, viewerID uint) (*models.Post, error) {
	post, err := s.getVisiblePost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns a page of posts the viewer can see, optionally restricted
// to one author. The visibility predicate runs inside the store query, so the
// page holds exactly limit items whenever that many are visible and the total
// is the true visible count.
func (s *PostService) ListPosts(ctx context.Context, authorID *uint, viewerID uint, page, limit int) ([]models.Post, models.Pagination, error) {
	scope, err := s.visibility.Scope(viewerID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	filter := repositories.PostFilter{AuthorID: authorID, Scope: scope}
	skip := int64((page - 1) * limit)

	posts, err := s.posts.ListPosts(ctx, filter, skip, int64(limit))
	if err != nil {
		return nil, models.Pagination{}, err
	}

	total, err := s.posts.CountPosts(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return posts, models.NewPagination(page, limit, total), nil
}

// UpdatePost applies content, media and visibility changes. Only the author
// may update; replaced media is cleaned out of the object store best-effort.
func (s *PostService) UpdatePost(ctx context.Context, postID string, userID uint, req *models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.getVisiblePost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ErrNotPostOwner
	}

	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Media != nil {
		s.removeMedia(post.Media)
		post.Media = mediaItems(req.Media)
	}
	if req.Visibility != "" {
		post.Visibility = req.Visibility
	}

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and cleans its media out of the object store.
// The media cleanup is best-effort and runs after the delete.
func (s *PostService) DeletePost(ctx context.Context, postID string, userID uint) error {
	post, err := s.getVisiblePost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrNotPostOwner
	}

	if err := s.posts.DeletePost(ctx, post.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	s.removeMedia(post.Media)
	return nil
}

// getVisiblePost loads a post and applies the visibility evaluator. Invalid
// IDs, absent posts and invisible posts are indistinguishable to the caller.
func (s *PostService) getVisiblePost(ctx context.Context, postID string, viewerID uint) (*models.Post, error) {
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

// removeMedia deletes stored objects for the given media items, logging and
// swallowing failures
func (s *PostService) removeMedia(items []models.MediaItem) {
	for _, item := range items {
		if item.ObjectID == "" {
			continue
		}
		if err := s.storage.Remove(context.Background(), item.ObjectID); err != nil {
			log.Printf("Failed to remove media object %s: %v", item.ObjectID, err)
		}
	}
}

func mediaItems(inputs []models.MediaInput) []models.MediaItem {
	if len(inputs) == 0 {
		return nil
	}
	items := make([]models.MediaItem, len(inputs))
	for i, input := range inputs {
		items[i] = models.MediaItem{
			URL:      input.URL,
			Kind:     input.Kind,
			ObjectID: input.ObjectID,
		}
	}
	return items
}
