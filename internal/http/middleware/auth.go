// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file gates mutating endpoints behind the Api-Key header. It delegates
// credential resolution to the auth package and stashes the authenticated
// user in the Gin context for handlers, the access logger, and the rate
// limiter (which keys buckets by user when available).
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/auth"
	"github.com/tbourn/go-twitter-backend/internal/domain"
)

// HeaderAPIKey is the request header carrying the opaque user credential.
const HeaderAPIKey = "Api-Key"

// ctxKeyCurrentUser is the Gin context key for the authenticated user.
const ctxKeyCurrentUser = "currentUser"

// RequireAPIKey returns a Gin middleware that resolves the Api-Key header to
// a user and aborts with 403 when the credential is missing or unknown.
// Authentication failure is deliberately a "forbidden", not a "not found":
// the two are distinguished at this boundary per the API contract.
//
// On success the user is stored in the context (see CurrentUser) and the
// user id is exposed under "userID" for logging and rate limiting.
func RequireAPIKey(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := db
		if ses, ok := SessionFrom(c); ok {
			handle = ses
		}

		user, err := auth.Resolve(c.Request.Context(), handle, c.GetHeader(HeaderAPIKey))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "forbidden",
				"message":    "invalid api key",
			})
			return
		}

		c.Set(ctxKeyCurrentUser, user)
		c.Set("userID", strconv.FormatUint(uint64(user.ID), 10))
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAPIKey. The
// second return value reports presence; handlers behind the middleware can
// rely on it being true.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ctxKeyCurrentUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}
