// Package services defines the business logic for users, tweets, likes, and
// media. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// User-related errors.
var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyName is returned when a request to create a user carries a
	// blank display name.
	ErrEmptyName = errors.New("name is empty")

	// ErrEmptyAPIKey is returned when a request to create a user carries a
	// blank api key.
	ErrEmptyAPIKey = errors.New("api key is empty")

	// ErrDuplicateAPIKey is returned when the requested api key is already
	// registered to another user.
	ErrDuplicateAPIKey = errors.New("api key already registered")

	// ErrSelfFollow is returned when a user attempts to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrAlreadyFollowing is returned when the follow edge already exists.
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrNotFollowing is returned when removing a follow edge that does not
	// exist.
	ErrNotFollowing = errors.New("not following this user")
)

// Tweet-related errors.
var (
	// ErrTweetNotFound indicates that the requested tweet does not exist.
	ErrTweetNotFound = errors.New("tweet not found")

	// ErrEmptyTweet is returned when a request to post a tweet contains no
	// text.
	ErrEmptyTweet = errors.New("tweet text is empty")

	// ErrTweetTooLong is returned when a tweet exceeds the maximum
	// configured length limit.
	ErrTweetTooLong = errors.New("tweet text too long")

	// ErrNotTweetOwner is returned when a user attempts to delete a tweet
	// they did not author.
	ErrNotTweetOwner = errors.New("tweet belongs to another user")

	// ErrDuplicateLike is returned when a user attempts to like a tweet
	// they have already liked.
	ErrDuplicateLike = errors.New("like already exists")

	// ErrLikeNotFound is returned when removing a like that does not exist.
	ErrLikeNotFound = errors.New("like not found")
)

// Media-related errors.
var (
	// ErrMediaNotFound indicates that the requested media row does not
	// exist.
	ErrMediaNotFound = errors.New("media not found")

	// ErrEmptyUpload is returned when an uploaded file has no content.
	ErrEmptyUpload = errors.New("uploaded file is empty")

	// ErrUploadTooLarge is returned when an uploaded file exceeds the
	// configured size cap.
	ErrUploadTooLarge = errors.New("uploaded file too large")
)
