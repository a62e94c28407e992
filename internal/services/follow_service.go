package services

import (
	"errors"
	"strconv"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
)

// FollowService manages the directed follow edges visibility is built on
type FollowService struct {
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	notifier *Notifier
}

// NewFollowService creates a new FollowService
func NewFollowService(follows repositories.FollowRepository, users repositories.UserRepository, notifier *Notifier) *FollowService {
	return &FollowService{follows: follows, users: users, notifier: notifier}
}

// FollowUser creates a follow edge. A concurrent duplicate loses against the
// unique pair index and surfaces as a conflict, never a generic failure.
func (s *FollowService) FollowUser(followerID, followingID uint) (*models.Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	if _, err := s.users.GetUserByID(followingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := s.follows.CreateFollow(follow); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	go s.notifier.Notify(followingID, followerID, models.NotificationFollow, strconv.FormatUint(uint64(followerID), 10), "user")

	return follow, nil
}

// UnfollowUser removes a follow edge
func (s *FollowService) UnfollowUser(followerID, followingID uint) error {
	if err := s.follows.DeleteFollow(followerID, followingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFollowing
		}
		return err
	}
	return nil
}

// GetFollowers returns a page of the user's followers
func (s *FollowService) GetFollowers(userID uint, page, limit int) ([]models.UserCompact, models.Pagination, error) {
	return s.page(userID, page, limit, s.follows.GetFollowers, s.follows.GetFollowersCount)
}

// GetFollowing returns a page of the users this user follows
func (s *FollowService) GetFollowing(userID uint, page, limit int) ([]models.UserCompact, models.Pagination, error) {
	return s.page(userID, page, limit, s.follows.GetFollowing, s.follows.GetFollowingCount)
}

// IsFollowing reports whether a follow edge follower -> following exists
func (s *FollowService) IsFollowing(followerID, followingID uint) (bool, error) {
	return s.follows.IsFollowing(followerID, followingID)
}

// GetFollowStats returns follower and following totals for a user
func (s *FollowService) GetFollowStats(userID uint) (*models.FollowStats, error) {
	followers, err := s.follows.GetFollowersCount(userID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.GetFollowingCount(userID)
	if err != nil {
		return nil, err
	}
	return &models.FollowStats{Followers: followers, Following: following}, nil
}

func (s *FollowService) page(
	userID uint,
	page, limit int,
	list func(uint, int, int) ([]models.User, error),
	count func(uint) (int64, error),
) ([]models.UserCompact, models.Pagination, error) {
	if _, err := s.users.GetUserByID(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.Pagination{}, ErrUserNotFound
		}
		return nil, models.Pagination{}, err
	}

	offset := (page - 1) * limit
	users, err := list(userID, offset, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	total, err := count(userID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}
	return compact, models.NewPagination(page, limit, total), nil
}
