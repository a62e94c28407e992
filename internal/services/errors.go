package services

import (
	"errors"
	"net/http"
)

// Domain errors. Absent and present-but-invisible content both surface as
// the *NotFound errors so responses never leak the existence of private
// content.
var (
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrReceiverNotFound     = errors.New("receiver not found")
	ErrParentNotFound       = errors.New("parent comment not found")
	ErrNotFollowing         = errors.New("not following this user")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrReactionNotFound     = errors.New("reaction not found")

	ErrNotPostOwner    = errors.New("you can only modify your own posts")
	ErrNotCommentOwner = errors.New("you can only modify your own comments")

	ErrAlreadyFollowing = errors.New("already following this user")
	ErrAlreadyReacted   = errors.New("reaction already exists")

	ErrSelfFollow     = errors.New("cannot follow yourself")
	ErrSelfMessage    = errors.New("cannot send a message to yourself")
	ErrParentMismatch = errors.New("parent comment does not belong to this post")
	ErrInvalidTarget  = errors.New("invalid reaction target type")
)

// ErrorStatus maps domain errors to HTTP status codes. Anything not listed
// here is an unexpected store failure and stays a 500.
var ErrorStatus = map[error]int{
	ErrPostNotFound:         http.StatusNotFound,
	ErrCommentNotFound:      http.StatusNotFound,
	ErrUserNotFound:         http.StatusNotFound,
	ErrReceiverNotFound:     http.StatusNotFound,
	ErrParentNotFound:       http.StatusNotFound,
	ErrNotFollowing:         http.StatusNotFound,
	ErrNotificationNotFound: http.StatusNotFound,
	ErrReactionNotFound:     http.StatusNotFound,
	ErrNotPostOwner:         http.StatusForbidden,
	ErrNotCommentOwner:      http.StatusForbidden,
	ErrAlreadyFollowing:     http.StatusConflict,
	ErrAlreadyReacted:       http.StatusConflict,
	ErrSelfFollow:           http.StatusBadRequest,
	ErrSelfMessage:          http.StatusBadRequest,
	ErrParentMismatch:       http.StatusBadRequest,
	ErrInvalidTarget:        http.StatusBadRequest,
}

// StatusOf resolves the HTTP status for a domain error, defaulting to 500
func StatusOf(err error) int {
	for domainErr, status := range ErrorStatus {
		if errors.Is(err, domainErr) {
			return status
		}
	}
	return http.StatusInternalServerError
}
