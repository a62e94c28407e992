package services

import (
	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
)

// VisibilityEvaluator decides whether a viewer may read a piece of content.
// Single-item fetches call CanViewPost directly; listings and search push the
// equivalent predicate into the store query via Scope, built from the same
// follow facts, so the three call sites cannot drift apart.
type VisibilityEvaluator struct {
	follows repositories.FollowRepository
}

// NewVisibilityEvaluator creates a new VisibilityEvaluator
func NewVisibilityEvaluator(follows repositories.FollowRepository) *VisibilityEvaluator {
	return &VisibilityEvaluator{follows: follows}
}

// CanViewPost reports whether the viewer may read the post. A viewerID of 0
// means an anonymous request.
//
//	public    -> always
//	private   -> author only
//	followers -> author, or a follow edge viewer -> author exists
func (e *VisibilityEvaluator) CanViewPost(post *models.Post, viewerID uint) (bool, error) {
	switch post.Visibility {
	case models.VisibilityPublic:
		return true, nil
	case models.VisibilityPrivate:
		return viewerID != 0 && viewerID == post.AuthorID, nil
	case models.VisibilityFollowers:
		if viewerID == 0 {
			return false, nil
		}
		if viewerID == post.AuthorID {
			return true, nil
		}
		return e.follows.IsFollowing(viewerID, post.AuthorID)
	default:
		return false, nil
	}
}

// Scope resolves the viewer's visibility scope for storage-level filtering.
// Returns nil for anonymous viewers, which restricts queries to public posts.
func (e *VisibilityEvaluator) Scope(viewerID uint) (*repositories.VisibilityScope, error) {
	if viewerID == 0 {
		return nil, nil
	}
	followingIDs, err := e.follows.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}
	return &repositories.VisibilityScope{
		ViewerID:     viewerID,
		FollowingIDs: followingIDs,
	}, nil
}
