// Tweet HTTP handlers.
//
// This file exposes REST endpoints for the tweet feed and the like edges:
//   - GET    /tweets             (feed, paginated, ETag support)
//   - POST   /tweets             (post, claims uploaded media, idempotent retries)
//   - DELETE /tweets/{id}        (owner-only removal)
//   - POST   /tweets/{id}/likes  (like)
//   - DELETE /tweets/{id}/likes  (unlike)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses (including conditional
// responses and idempotency replays).
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// post exists for (user, route, key), the handler returns the recorded tweet
// id and sets `Idempotency-Replayed: true` instead of creating a duplicate.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/http/middleware"
	"github.com/tbourn/go-twitter-backend/internal/repo"
	"github.com/tbourn/go-twitter-backend/internal/services"
)

//
// DTOs
//

// PostTweetRequest is the JSON payload for posting a tweet. Media ids refer
// to previously uploaded, not-yet-attached media rows; unknown or claimed
// ids are silently skipped.
type PostTweetRequest struct {
	// TweetData is the tweet text. It must be non-empty after trimming.
	TweetData string `json:"tweet_data" binding:"required,min=1" example:"hello world"`
	// TweetMediaIDs lists uploaded media ids to attach to this tweet.
	TweetMediaIDs []uint `json:"tweet_media_ids" example:"1,2"`
}

// PostTweetResponse is the envelope for a successfully created tweet.
type PostTweetResponse struct {
	Result  bool `json:"result" example:"true"`
	TweetID uint `json:"tweet_id" example:"42"`
}

// ListTweetsResponse wraps a page of the feed and pagination information.
type ListTweetsResponse struct {
	Result     bool        `json:"result" example:"true"`
	Tweets     []TweetView `json:"tweets"`
	Pagination Pagination  `json:"pagination"`
}

// feedDB exposes the concrete database handle behind the tweet service for
// best-effort work (ETag stats, idempotency records). Returns nil when the
// service is not the concrete implementation (e.g. a test double).
func (h *Handlers) feedDB() *gorm.DB {
	if svc, ok := h.tweetSvc.(*services.TweetService); ok {
		return svc.DB
	}
	return nil
}

//
// Handlers
//

// ListTweets godoc
// @ID          listTweets
// @Summary     Get the tweet feed
// @Description Returns a page of all tweets with authors, likes, and attachment links. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Tweets
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"feed:3:1724832000\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListTweetsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tweets [get]
func (h *Handlers) ListTweets(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if db := h.feedDB(); db != nil {
		count, maxTS, err := repo.FeedStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"feed:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.tweetSvc.FeedPage(ctx, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	views := make([]TweetView, 0, len(items))
	for i := range items {
		views = append(views, h.tweetView(&items[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListTweetsResponse{
		Result: true,
		Tweets: views,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// PostTweet godoc
// @ID          postTweet
// @Summary     Post a tweet
// @Description Creates a tweet for the authenticated user and attaches previously uploaded media.
// @Description Supports idempotency via the Idempotency-Key header (same key → same tweet id).
// @Tags        Tweets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"
// @Param       body             body    handlers.PostTweetRequest  true  "Tweet payload"
//
// @Success     201  {object}  handlers.PostTweetResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse "Invalid api key"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /tweets [post]
func (h *Handlers) PostTweet(c *gin.Context) {
	ctx := c.Request.Context()
	uid, okAuth := currentUserID(c)
	if !okAuth {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid api key")
		return
	}

	var req PostTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tweet_data required")
		return
	}

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	scope := c.FullPath()
	if idemKey != "" {
		if db := h.feedDB(); db != nil {
			if rec, err := repo.GetIdempotency(ctx, db, uid, scope, idemKey, time.Now().UTC()); err == nil && rec != nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, rec.Status, PostTweetResponse{Result: true, TweetID: rec.ResourceID})
				return
			}
		}
	}

	t, err := h.tweetSvc.Post(ctx, uid, req.TweetData, req.TweetMediaIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTweet):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tweet_data required")
		case errors.Is(err, services.ErrTweetTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tweet_data too long")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" {
		if db := h.feedDB(); db != nil {
			_, _ = repo.CreateIdempotency(ctx, db, uid, scope, idemKey, t.ID, http.StatusCreated, h.idemTTL)
		}
	}

	ok(c, http.StatusCreated, PostTweetResponse{Result: true, TweetID: t.ID})
}

// DeleteTweet godoc
// @ID          deleteTweet
// @Summary     Delete a tweet
// @Description Removes a tweet owned by the authenticated user, including its likes and attachments.
// @Tags        Tweets
// @Produce     json
// @Security    ApiKeyAuth
//
// @Param       id  path  int  true  "Tweet ID"  minimum(1)
//
// @Success     200  {object} handlers.ResultResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Invalid api key"
// @Failure     404  {object} handlers.ErrorResponse "Tweet not found or not owned"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tweets/{id} [delete]
func (h *Handlers) DeleteTweet(c *gin.Context) {
	uid, okAuth := currentUserID(c)
	if !okAuth {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid api key")
		return
	}
	id, okID := pathID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tweet id must be a positive integer")
		return
	}

	if err := h.tweetSvc.Delete(c.Request.Context(), uid, id); err != nil {
		switch {
		case errors.Is(err, services.ErrTweetNotFound), errors.Is(err, services.ErrNotTweetOwner):
			// Foreign tweets are reported as absent, not as forbidden; the
			// row itself stays in place.
			fail(c, http.StatusNotFound, ErrCodeNotFound, "tweet not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, ResultResponse{Result: true})
}

// LikeTweet godoc
// @ID          likeTweet
// @Summary     Like a tweet
// @Description Records a like by the authenticated user. Liking the same tweet twice is a conflict.
// @Tags        Likes
// @Produce     json
// @Security    ApiKeyAuth
//
// @Param       id  path  int  true  "Tweet ID"  minimum(1)
//
// @Success     201  {object} handlers.ResultResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Invalid api key"
// @Failure     404  {object} handlers.ErrorResponse "Tweet not found"
// @Failure     409  {object} handlers.ErrorResponse "Already liked"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tweets/{id}/likes [post]
func (h *Handlers) LikeTweet(c *gin.Context) {
	uid, okAuth := currentUserID(c)
	if !okAuth {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid api key")
		return
	}
	id, okID := pathID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tweet id must be a positive integer")
		return
	}

	if _, err := h.tweetSvc.Like(c.Request.Context(), uid, id); err != nil {
		switch {
		case errors.Is(err, services.ErrTweetNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "tweet not found")
		case errors.Is(err, services.ErrDuplicateLike):
			fail(c, http.StatusConflict, ErrCodeConflict, "tweet already liked")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, ResultResponse{Result: true})
}

// UnlikeTweet godoc
// @ID          unlikeTweet
// @Summary     Remove a like
// @Description Removes the authenticated user's like from a tweet.
// @Tags        Likes
// @Produce     json
// @Security    ApiKeyAuth
//
// @Param       id  path  int  true  "Tweet ID"  minimum(1)
//
// @Success     200  {object} handlers.ResultResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Invalid api key"
// @Failure     404  {object} handlers.ErrorResponse "Like not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tweets/{id}/likes [delete]
func (h *Handlers) UnlikeTweet(c *gin.Context) {
	uid, okAuth := currentUserID(c)
	if !okAuth {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid api key")
		return
	}
	id, okID := pathID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tweet id must be a positive integer")
		return
	}

	if err := h.tweetSvc.Unlike(c.Request.Context(), uid, id); err != nil {
		switch {
		case errors.Is(err, services.ErrLikeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "like not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, ResultResponse{Result: true})
}
