// User HTTP handlers.
//
// This file exposes REST endpoints for accounts and the follow graph:
//   - POST   /add_user            (register)
//   - GET    /all_users           (list)
//   - GET    /users/me            (authenticated profile)
//   - GET    /users/{id}          (public profile)
//   - POST   /users/{id}/follow   (follow)
//   - DELETE /users/{id}/follow   (unfollow)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-twitter-backend/internal/auth"
	"github.com/tbourn/go-twitter-backend/internal/http/middleware"
	"github.com/tbourn/go-twitter-backend/internal/services"
)

//
// DTOs
//

// CreateUserRequest is the JSON payload for registering an account.
type CreateUserRequest struct {
	// Name is the display name (1–50 chars).
	Name string `json:"name" binding:"required,min=1,max=50" example:"Dan"`
	// APIKey is the opaque credential the user will authenticate with.
	APIKey string `json:"api_key" binding:"required,min=1,max=128" example:"test"`
}

// CreateUserResponse is the envelope for a newly registered account.
type CreateUserResponse struct {
	Result bool    `json:"result" example:"true"`
	User   UserRef `json:"user"`
}

// ProfileResponse wraps a single user profile.
type ProfileResponse struct {
	Result bool        `json:"result" example:"true"`
	User   ProfileView `json:"user"`
}

// ListUsersResponse wraps the full user listing.
type ListUsersResponse struct {
	Result bool      `json:"result" example:"true"`
	Users  []UserRef `json:"users"`
}

//
// Handlers
//

// CreateUser godoc
// @ID          createUser
// @Summary     Register a user
// @Description Creates an account with a display name and api key. The key must be unique.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateUserRequest  true  "Registration payload"
//
// @Success     201  {object} handlers.CreateUserResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     409  {object} handlers.ErrorResponse "Api key already registered"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /add_user [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and api_key required")
		return
	}

	u, err := h.userSvc.Create(c.Request.Context(), strings.TrimSpace(req.Name), req.APIKey)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName), errors.Is(err, services.ErrEmptyAPIKey):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and api_key required")
		case errors.Is(err, services.ErrDuplicateAPIKey):
			fail(c, http.StatusConflict, ErrCodeConflict, "api key already registered")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, CreateUserResponse{Result: true, User: UserRef{ID: u.ID, Name: u.Name}})
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List all users
// @Description Returns every registered account as a compact reference.
// @Tags        Users
// @Produce     json
//
// @Success     200  {object} handlers.ListUsersResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /all_users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	refs := make([]UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, UserRef{ID: u.ID, Name: u.Name})
	}
	ok(c, http.StatusOK, ListUsersResponse{Result: true, Users: refs})
}

// Me godoc
// @ID          getMe
// @Summary     Get own profile
// @Description Returns the authenticated user's profile with followers and following.
// @Tags        Users
// @Produce     json
// @Security    ApiKeyAuth
//
// @Success     200  {object} handlers.ProfileResponse
// @Failure     403  {object} handlers.ErrorResponse "Invalid api key"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, okAuth := middleware.CurrentUser(c)
	if !okAuth {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid api key")
		return
	}

	// The auth middleware resolves the user without follow edges; resolve the
	// credential again with both directions of the graph eager-loaded.
	if db, okSes := middleware.SessionFrom(c); okSes {
		profile, err := auth.ResolveCurrentUser(c.Request.Context(), db, c.GetHeader(middleware.HeaderAPIKey))
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid api key")
		case err != nil:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		default:
			ok(c, http.StatusOK, ProfileResponse{Result: true, User: profileView(profile)})
		}
		return
	}

	// No request-scoped session (service doubles); fall back to the profile
	// lookup by the already-resolved id.
	profile, err := h.userSvc.Profile(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ProfileResponse{Result: true, User: profileView(profile)})
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user profile
// @Description Returns a public profile with followers and following.
// @Tags        Users
// @Produce     json
//
// @Param       id  path  int  true  "User ID"  minimum(1)
//
// @Success     200  {object} handlers.ProfileResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a positive integer")
		return
	}

	u, err := h.userSvc.Profile(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, ProfileResponse{Result: true, User: profileView(u)})
}

// FollowUser godoc
// @ID          followUser
// @Summary     Follow a user
// @Description Creates a follow edge from the authenticated user to the target account.
// @Tags        Follows
// @Produce     json
// @Security    ApiKeyAuth
//
// @Param       id  path  int  true  "Target user ID"  minimum(1)
//
// @Success     201  {object} handlers.ResultResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request or self-follow"
// @Failure     403  {object} handlers.ErrorResponse "Invalid api key"
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Failure     409  {object} handlers.ErrorResponse "Already following"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/follow [post]
func (h *Handlers) FollowUser(c *gin.Context) {
	uid, okAuth := currentUserID(c)
	if !okAuth {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid api key")
		return
	}
	id, okID := pathID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a positive integer")
		return
	}

	if err := h.userSvc.Follow(c.Request.Context(), uid, id); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cannot follow yourself")
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case errors.Is(err, services.ErrAlreadyFollowing):
			fail(c, http.StatusConflict, ErrCodeConflict, "already following")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, ResultResponse{Result: true})
}

// UnfollowUser godoc
// @ID          unfollowUser
// @Summary     Unfollow a user
// @Description Removes the follow edge from the authenticated user to the target account.
// @Tags        Follows
// @Produce     json
// @Security    ApiKeyAuth
//
// @Param       id  path  int  true  "Target user ID"  minimum(1)
//
// @Success     200  {object} handlers.ResultResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Invalid api key"
// @Failure     404  {object} handlers.ErrorResponse "Edge not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/follow [delete]
func (h *Handlers) UnfollowUser(c *gin.Context) {
	uid, okAuth := currentUserID(c)
	if !okAuth {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid api key")
		return
	}
	id, okID := pathID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a positive integer")
		return
	}

	if err := h.userSvc.Unfollow(c.Request.Context(), uid, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFollowing):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "not following this user")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, ResultResponse{Result: true})
}
