package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
)

// Search types
const (
	SearchUsers    = "users"
	SearchPosts    = "posts"
	SearchHashtags = "hashtags"
	SearchAll      = "all"
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

// SearchFilters narrows a post search
type SearchFilters struct {
	AuthorID *uint
	DateFrom *time.Time
	DateTo   *time.Time
}

// HashtagResult is one aggregated hashtag with the visible posts that carry it
type HashtagResult struct {
	Tag   string        `json:"tag"`
	Count int           `json:"count"`
	Posts []models.Post `json:"posts"`
}

// SearchResults groups results by type
type SearchResults struct {
	Users    []models.UserCompact `json:"users,omitempty"`
	Posts    []models.Post        `json:"posts,omitempty"`
	Hashtags []HashtagResult      `json:"hashtags,omitempty"`
}

// SearchService implements user, post and hashtag search. Post and hashtag
// results are restricted to what the viewer can see using the same store
// scope as the post listing.
type SearchService struct {
	users      repositories.UserRepository
	posts      repositories.PostRepository
	visibility *VisibilityEvaluator
}

// NewSearchService creates a new SearchService
func NewSearchService(users repositories.UserRepository, posts repositories.PostRepository, visibility *VisibilityEvaluator) *SearchService {
	return &SearchService{users: users, posts: posts, visibility: visibility}
}

// Search runs the requested search types and returns grouped results. User
// and post totals come from store counts over the same query as the page, so
// pagination reflects everything the viewer could page through; hashtags
// count what the bounded window produced.
func (s *SearchService) Search(ctx context.Context, query, searchType string, filters SearchFilters, viewerID uint, page, limit int) (*SearchResults, models.Pagination, error) {
	query = strings.TrimSpace(query)
	results := &SearchResults{}
	var total int64

	if searchType == SearchUsers || searchType == SearchAll {
		users, userTotal, err := s.searchUsers(query, page, limit)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		results.Users = users
		total += userTotal
	}

	if searchType == SearchPosts || searchType == SearchAll {
		posts, postTotal, err := s.searchPosts(ctx, query, filters, viewerID, page, limit)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		results.Posts = posts
		total += postTotal
	}

	if searchType == SearchHashtags || searchType == SearchAll {
		hashtags, err := s.searchHashtags(ctx, query, viewerID, page, limit)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		results.Hashtags = hashtags
		total += int64(len(hashtags))
	}

	return results, models.NewPagination(page, limit, total), nil
}

func (s *SearchService) searchUsers(query string, page, limit int) ([]models.UserCompact, int64, error) {
	offset := (page - 1) * limit
	users, err := s.users.SearchUsers(query, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.users.CountSearchUsers(query)
	if err != nil {
		return nil, 0, err
	}

	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}
	return compact, total, nil
}

func (s *SearchService) searchPosts(ctx context.Context, query string, filters SearchFilters, viewerID uint, page, limit int) ([]models.Post, int64, error) {
	scope, err := s.visibility.Scope(viewerID)
	if err != nil {
		return nil, 0, err
	}

	filter := repositories.PostFilter{
		Scope:        scope,
		ContentMatch: regexp.QuoteMeta(query),
		AuthorID:     filters.AuthorID,
		DateFrom:     filters.DateFrom,
		DateTo:       filters.DateTo,
	}

	skip := int64((page - 1) * limit)
	posts, err := s.posts.ListPosts(ctx, filter, skip, int64(limit))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.posts.CountPosts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// searchHashtags aggregates #tags in-memory over a bounded window of
// visibility-filtered posts. This is deliberately not a full-corpus index.
func (s *SearchService) searchHashtags(ctx context.Context, query string, viewerID uint, page, limit int) ([]HashtagResult, error) {
	tag := strings.ToLower(strings.TrimPrefix(query, "#"))

	scope, err := s.visibility.Scope(viewerID)
	if err != nil {
		return nil, err
	}

	filter := repositories.PostFilter{
		Scope:        scope,
		ContentMatch: `#` + regexp.QuoteMeta(tag) + `\b`,
	}

	skip := int64((page - 1) * limit)
	posts, err := s.posts.ListPosts(ctx, filter, skip, int64(limit))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	postsByTag := make(map[string][]models.Post)
	for _, post := range posts {
		seen := make(map[string]bool)
		for _, raw := range hashtagPattern.FindAllString(post.Content, -1) {
			normalized := strings.ToLower(raw)
			if !strings.Contains(normalized, tag) {
				continue
			}
			counts[normalized]++
			if !seen[normalized] {
				seen[normalized] = true
				postsByTag[normalized] = append(postsByTag[normalized], post)
			}
		}
	}

	results := make([]HashtagResult, 0, len(counts))
	for normalized, count := range counts {
		results = append(results, HashtagResult{
			Tag:   normalized,
			Count: count,
			Posts: postsByTag[normalized],
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Tag < results[j].Tag
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
