// Handler wiring and shared view types.
//
// This file declares the service contracts the HTTP layer consumes, the
// Handlers aggregate that binds them, and the JSON view types shared across
// endpoints. Handlers are transport-thin: they validate input, call
// application services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-twitter-backend/internal/domain"
	"github.com/tbourn/go-twitter-backend/internal/http/middleware"
	"github.com/tbourn/go-twitter-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// TweetService defines tweet lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type TweetService interface {
	// Feed returns all tweets with author, likes, and media eager-loaded.
	Feed(ctx context.Context) ([]domain.Tweet, error)
	// FeedPage returns a page of the feed and the total tweet count.
	FeedPage(ctx context.Context, page, pageSize int) ([]domain.Tweet, int64, error)
	// Post creates a tweet for authorID and claims the given media rows.
	Post(ctx context.Context, authorID uint, text string, mediaIDs []uint) (*domain.Tweet, error)
	// Delete removes a tweet owned by userID.
	Delete(ctx context.Context, userID, tweetID uint) error
	// Like records that userID liked tweetID.
	Like(ctx context.Context, userID, tweetID uint) (*domain.Like, error)
	// Unlike removes userID's like from tweetID.
	Unlike(ctx context.Context, userID, tweetID uint) error
}

// UserService defines account and follow-graph operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type UserService interface {
	// Create registers a new user with a display name and api key.
	Create(ctx context.Context, name, apiKey string) (*domain.User, error)
	// List returns all users ordered by id.
	List(ctx context.Context) ([]domain.User, error)
	// Profile fetches a user with followers and following eager-loaded.
	Profile(ctx context.Context, id uint) (*domain.User, error)
	// Follow creates the edge "followerID follows accountID".
	Follow(ctx context.Context, followerID, accountID uint) error
	// Unfollow removes the edge "followerID follows accountID".
	Unfollow(ctx context.Context, followerID, accountID uint) error
}

// MediaService defines binary attachment storage operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MediaService interface {
	// Upload persists a new, unattached media row.
	Upload(ctx context.Context, fileName string, data []byte) (*domain.Media, error)
	// Get fetches a media row by id.
	Get(ctx context.Context, id uint) (*domain.Media, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for tweets, users, and media. It depends
// on abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	tweetSvc TweetService
	userSvc  UserService
	mediaSvc MediaService

	// mediaBase prefixes attachment links in feed responses, e.g. "/api/media".
	mediaBase string

	// idemTTL bounds how long a stored Idempotency-Key result stays replayable.
	idemTTL time.Duration
}

// New constructs a Handlers instance bound to the given services. mediaBase
// is the public URL prefix under which media blobs are served; idemTTL is the
// replay window for Idempotency-Key records (non-positive falls back to 24h).
func New(tweetSvc TweetService, userSvc UserService, mediaSvc MediaService, mediaBase string, idemTTL time.Duration) *Handlers {
	if mediaBase == "" {
		mediaBase = "/api/media"
	}
	if idemTTL <= 0 {
		idemTTL = 24 * time.Hour
	}
	return &Handlers{tweetSvc: tweetSvc, userSvc: userSvc, mediaSvc: mediaSvc, mediaBase: mediaBase, idemTTL: idemTTL}
}

// currentUserID extracts the authenticated user's id from the Gin context
// (set by middleware.RequireAPIKey). The flag is false on unauthenticated
// routes; handlers behind RequireAPIKey can rely on it being true.
func currentUserID(c *gin.Context) (uint, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return 0, false
	}
	return u.ID, true
}

//
// Shared view types
//

// UserRef is the compact user reference embedded in tweets and profiles.
type UserRef struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Dan"`
}

// LikeView names a user who liked a tweet.
type LikeView struct {
	UserID uint   `json:"user_id" example:"2"`
	Name   string `json:"name" example:"Alice"`
}

// TweetView is the feed representation of a tweet: content, author,
// attachment links, and the users who liked it.
type TweetView struct {
	ID          uint       `json:"id" example:"42"`
	Content     string     `json:"content" example:"hello world"`
	Attachments []string   `json:"attachments"`
	Author      UserRef    `json:"author"`
	Likes       []LikeView `json:"likes"`
}

// ProfileView is the detailed user representation returned by the profile
// endpoints, including both directions of the follow graph.
type ProfileView struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"Dan"`
	Followers []UserRef `json:"followers"`
	Following []UserRef `json:"following"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

//
// View mapping
//

// tweetView projects a domain tweet (with its fetch plan loaded) into the
// public feed shape. Attachment links point at the media download endpoint.
func (h *Handlers) tweetView(t *domain.Tweet) TweetView {
	v := TweetView{
		ID:          t.ID,
		Content:     t.Text,
		Attachments: make([]string, 0, len(t.Media)),
		Likes:       make([]LikeView, 0, len(t.Likes)),
	}
	if t.Author != nil {
		v.Author = UserRef{ID: t.Author.ID, Name: t.Author.Name}
	}
	for _, m := range t.Media {
		v.Attachments = append(v.Attachments, fmt.Sprintf("%s/%d", h.mediaBase, m.ID))
	}
	for _, l := range t.Likes {
		lv := LikeView{UserID: l.UserID}
		if l.User != nil {
			lv.Name = l.User.Name
		}
		v.Likes = append(v.Likes, lv)
	}
	return v
}

// profileView projects a domain user (with follow edges loaded) into the
// public profile shape.
func profileView(u *domain.User) ProfileView {
	v := ProfileView{
		ID:        u.ID,
		Name:      u.Name,
		Followers: make([]UserRef, 0, len(u.Followers)),
		Following: make([]UserRef, 0, len(u.Following)),
	}
	for _, f := range u.Followers {
		v.Followers = append(v.Followers, UserRef{ID: f.ID, Name: f.Name})
	}
	for _, f := range u.Following {
		v.Following = append(v.Following, UserRef{ID: f.ID, Name: f.Name})
	}
	return v
}

//
// Shared helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// pathID parses the numeric :id path parameter. The flag is false for
// anything that is not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	return utils.ParseUint(c.Param("id"))
}
