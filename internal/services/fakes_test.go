package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
)

// In-memory repository fakes backing the service tests. They mirror the
// store semantics the Mongo/Postgres implementations provide: visibility
// filtering inside the post query, unique-key conflicts, newest-first
// ordering with the ID as tiebreak.

var fakeClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byName := make(map[string]models.User, len(r.users))
	for _, u := range r.users {
		byName[u.Username] = u
	}
	var out []models.User
	for _, name := range usernames {
		if u, ok := byName[name]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SearchUsers(query string, offset, limit int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	var matched []models.User
	for _, u := range r.users {
		if pattern.MatchString(u.Username) || pattern.MatchString(u.FirstName) || pattern.MatchString(u.LastName) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeUserRepo) CountSearchUsers(query string) (int64, error) {
	users, err := r.SearchUsers(query, 0, len(r.users))
	return int64(len(users)), err
}

type followEdge struct {
	followerID  uint
	followingID uint
}

type fakeFollowRepo struct {
	mu    sync.Mutex
	edges []followEdge
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{}
}

func (r *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.followerID == follow.FollowerID && e.followingID == follow.FollowingID {
			return repositories.ErrDuplicateKey
		}
	}
	r.edges = append(r.edges, followEdge{follow.FollowerID, follow.FollowingID})
	follow.ID = uint(len(r.edges))
	follow.CreatedAt = fakeClock
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.edges {
		if e.followerID == followerID && e.followingID == followingID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.followerID == followerID && e.followingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) GetFollowers(userID uint, offset, limit int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, e := range r.edges {
		if e.followingID == userID {
			out = append(out, models.User{ID: e.followerID, Username: fmt.Sprintf("user%d", e.followerID)})
		}
	}
	return pageUsers(out, offset, limit), nil
}

func (r *fakeFollowRepo) GetFollowing(userID uint, offset, limit int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, e := range r.edges {
		if e.followerID == userID {
			out = append(out, models.User{ID: e.followingID, Username: fmt.Sprintf("user%d", e.followingID)})
		}
	}
	return pageUsers(out, offset, limit), nil
}

func (r *fakeFollowRepo) GetFollowersCount(userID uint) (int64, error) {
	users, _ := r.GetFollowers(userID, 0, len(r.edges))
	return int64(len(users)), nil
}

func (r *fakeFollowRepo) GetFollowingCount(userID uint) (int64, error) {
	users, _ := r.GetFollowing(userID, 0, len(r.edges))
	return int64(len(users)), nil
}

func (r *fakeFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint
	for _, e := range r.edges {
		if e.followerID == userID {
			ids = append(ids, e.followingID)
		}
	}
	return ids, nil
}

func pageUsers(users []models.User, offset, limit int) []models.User {
	if offset >= len(users) {
		return nil
	}
	users = users[offset:]
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts []models.Post
	seq   int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = fakeClock.Add(time.Duration(r.seq) * time.Second)
	post.UpdatedAt = post.CreatedAt
	r.seq++
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == id {
			p := r.posts[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePostRepo) ListPosts(_ context.Context, filter repositories.PostFilter, skip, limit int64) ([]models.Post, error) {
	matched := r.match(filter)
	if skip >= int64(len(matched)) {
		return []models.Post{}, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakePostRepo) CountPosts(_ context.Context, filter repositories.PostFilter) (int64, error) {
	return int64(len(r.match(filter))), nil
}

func (r *fakePostRepo) UpdatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == post.ID {
			post.UpdatedAt = fakeClock.Add(time.Duration(r.seq) * time.Second)
			r.seq++
			counters := r.posts[i]
			r.posts[i] = *post
			r.posts[i].LikesCount = counters.LikesCount
			r.posts[i].CommentsCount = counters.CommentsCount
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakePostRepo) DeletePost(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakePostRepo) AdjustLikesCount(_ context.Context, id primitive.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == id {
			r.posts[i].LikesCount += delta
			return nil
		}
	}
	return nil
}

func (r *fakePostRepo) AdjustCommentsCount(_ context.Context, id primitive.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == id {
			r.posts[i].CommentsCount += delta
			return nil
		}
	}
	return nil
}

// match applies the same predicate buildPostQuery pushes into MongoDB
func (r *fakePostRepo) match(filter repositories.PostFilter) []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()

	var contentPattern *regexp.Regexp
	if filter.ContentMatch != "" {
		contentPattern = regexp.MustCompile("(?i)" + filter.ContentMatch)
	}

	var matched []models.Post
	for _, p := range r.posts {
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if contentPattern != nil && !contentPattern.MatchString(p.Content) {
			continue
		}
		if filter.DateFrom != nil && p.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && p.CreatedAt.After(*filter.DateTo) {
			continue
		}
		if !scopeAllows(filter.Scope, p) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})
	return matched
}

func scopeAllows(scope *repositories.VisibilityScope, p models.Post) bool {
	if scope == nil || scope.ViewerID == 0 {
		return p.Visibility == models.VisibilityPublic
	}
	if p.Visibility == models.VisibilityPublic || p.AuthorID == scope.ViewerID {
		return true
	}
	if p.Visibility == models.VisibilityFollowers {
		for _, id := range scope.FollowingIDs {
			if id == p.AuthorID {
				return true
			}
		}
	}
	return false
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []models.Comment
	seq      int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = fakeClock.Add(time.Duration(r.seq) * time.Second)
	comment.UpdatedAt = comment.CreatedAt
	r.seq++
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			c := r.comments[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCommentRepo) ListTopLevel(_ context.Context, postID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	return r.list(func(c models.Comment) bool {
		return c.PostID == postID && c.ParentCommentID == nil
	}, skip, limit), nil
}

func (r *fakeCommentRepo) CountTopLevel(_ context.Context, postID primitive.ObjectID) (int64, error) {
	return int64(len(r.list(func(c models.Comment) bool {
		return c.PostID == postID && c.ParentCommentID == nil
	}, 0, int64(len(r.comments))))), nil
}

func (r *fakeCommentRepo) ListReplies(_ context.Context, parentID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	return r.list(func(c models.Comment) bool {
		return c.ParentCommentID != nil && *c.ParentCommentID == parentID
	}, skip, limit), nil
}

func (r *fakeCommentRepo) CountReplies(_ context.Context, parentID primitive.ObjectID) (int64, error) {
	return int64(len(r.list(func(c models.Comment) bool {
		return c.ParentCommentID != nil && *c.ParentCommentID == parentID
	}, 0, int64(len(r.comments))))), nil
}

func (r *fakeCommentRepo) UpdateContent(_ context.Context, id primitive.ObjectID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].Content = content
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeCommentRepo) DeleteComment(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeCommentRepo) DeleteReplies(_ context.Context, parentID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.Comment
	var deleted int64
	for _, c := range r.comments {
		if c.ParentCommentID != nil && *c.ParentCommentID == parentID {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.comments = kept
	return deleted, nil
}

func (r *fakeCommentRepo) AdjustLikesCount(_ context.Context, id primitive.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].LikesCount += delta
			return nil
		}
	}
	return nil
}

func (r *fakeCommentRepo) AdjustRepliesCount(_ context.Context, id primitive.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].RepliesCount += delta
			return nil
		}
	}
	return nil
}

func (r *fakeCommentRepo) list(pred func(models.Comment) bool, skip, limit int64) []models.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Comment
	for _, c := range r.comments {
		if pred(c) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})
	if skip >= int64(len(matched)) {
		return []models.Comment{}
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched
}

type fakeReactionRepo struct {
	mu        sync.Mutex
	reactions []models.Reaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{}
}

func (r *fakeReactionRepo) CreateReaction(_ context.Context, reaction *models.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reactions {
		if existing.UserID == reaction.UserID &&
			existing.TargetType == reaction.TargetType &&
			existing.TargetID == reaction.TargetID {
			return repositories.ErrDuplicateKey
		}
	}
	reaction.ID = primitive.NewObjectID()
	reaction.CreatedAt = fakeClock
	reaction.UpdatedAt = fakeClock
	r.reactions = append(r.reactions, *reaction)
	return nil
}

func (r *fakeReactionRepo) GetByUserAndTarget(_ context.Context, userID uint, targetType string, targetID primitive.ObjectID) (*models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reactions {
		if r.reactions[i].UserID == userID &&
			r.reactions[i].TargetType == targetType &&
			r.reactions[i].TargetID == targetID {
			re := r.reactions[i]
			return &re, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeReactionRepo) UpdateKind(_ context.Context, id primitive.ObjectID, kind string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reactions {
		if r.reactions[i].ID == id {
			r.reactions[i].Kind = kind
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeReactionRepo) DeleteReaction(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reactions {
		if r.reactions[i].ID == id {
			r.reactions = append(r.reactions[:i], r.reactions[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeReactionRepo) ListByTarget(_ context.Context, targetType string, targetID primitive.ObjectID, skip, limit int64) ([]models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Reaction
	for _, re := range r.reactions {
		if re.TargetType == targetType && re.TargetID == targetID {
			matched = append(matched, re)
		}
	}
	if skip >= int64(len(matched)) {
		return []models.Reaction{}, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeReactionRepo) CountByTarget(_ context.Context, targetType string, targetID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, re := range r.reactions {
		if re.TargetType == targetType && re.TargetID == targetID {
			count++
		}
	}
	return count, nil
}

func (r *fakeReactionRepo) SummarizeByTarget(_ context.Context, targetType string, targetID primitive.ObjectID) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := make(map[string]int)
	for _, re := range r.reactions {
		if re.TargetType == targetType && re.TargetID == targetID {
			summary[re.Kind]++
		}
	}
	return summary, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	failCreate    error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	notification.ID = uint(len(r.notifications) + 1)
	notification.CreatedAt = fakeClock
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID uint, unreadOnly bool, page, limit int) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		matched = append(matched, n)
	}
	total := int64(len(matched))
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID, recipientID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []models.Message
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) CreateMessage(_ context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = primitive.NewObjectID()
	message.CreatedAt = fakeClock.Add(time.Duration(r.seq) * time.Second)
	message.UpdatedAt = message.CreatedAt
	r.seq++
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) ListBetween(_ context.Context, userA, userB uint, skip, limit int64) ([]models.Message, error) {
	matched := r.between(userA, userB)
	if skip >= int64(len(matched)) {
		return []models.Message{}, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeMessageRepo) CountBetween(_ context.Context, userA, userB uint) (int64, error) {
	return int64(len(r.between(userA, userB))), nil
}

func (r *fakeMessageRepo) MarkReadFrom(_ context.Context, receiverID, senderID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].ReceiverID == receiverID && r.messages[i].SenderID == senderID {
			r.messages[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeMessageRepo) GetConversations(_ context.Context, userID uint) ([]models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byPeer := make(map[uint]*models.Conversation)
	for _, m := range r.messages {
		var peer uint
		switch userID {
		case m.SenderID:
			peer = m.ReceiverID
		case m.ReceiverID:
			peer = m.SenderID
		default:
			continue
		}
		conv, ok := byPeer[peer]
		if !ok {
			conv = &models.Conversation{PeerID: peer}
			byPeer[peer] = conv
		}
		if m.CreatedAt.After(conv.LastMessage.CreatedAt) {
			conv.LastMessage = m
		}
		if m.ReceiverID == userID && !m.IsRead {
			conv.UnreadCount++
		}
	}
	var out []models.Conversation
	for _, conv := range byPeer {
		out = append(out, *conv)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out, nil
}

func (r *fakeMessageRepo) between(userA, userB uint) []models.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Message
	for _, m := range r.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			matched = append(matched, m)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

// fakeStorage records removed object IDs
type fakeStorage struct {
	mu      sync.Mutex
	removed []string
}

func (s *fakeStorage) Remove(_ context.Context, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, objectID)
	return nil
}

func (s *fakeStorage) removedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.removed))
	copy(out, s.removed)
	return out
}
