// Package services – UserService
//
// This file implements the UserService, which governs account creation,
// profile retrieval, and the follow graph. It enforces business rules
// (credential uniqueness, self-follow rejection, duplicate-edge semantics)
// on top of the generic repository. Service-level errors (e.g.
// ErrUserNotFound, ErrAlreadyFollowing) are returned for predictable cases
// so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/domain"
	"github.com/tbourn/go-twitter-backend/internal/repo"
)

// UserService implements the use-cases around accounts and follow edges.
// It validates each operation and persists through the generic repository
// using the provided GORM handle. The service is context-aware and opens its
// own transaction for multi-step mutations.
type UserService struct {
	// DB is the database handle used for all user operations.
	// The handle may be a plain *gorm.DB or a transaction-bound handle.
	DB *gorm.DB
}

// Create registers a new user with the given display name and api key. The
// name is NFC-normalized before persisting so visually identical names
// compare equal. A blank name or key is rejected; a key already registered
// to another account yields ErrDuplicateAPIKey.
func (s *UserService) Create(ctx context.Context, name, apiKey string) (*domain.User, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	apiKey = strings.TrimSpace(apiKey)
	if name == "" {
		return nil, ErrEmptyName
	}
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	u, err := repo.Insert(ctx, s.DB, &domain.User{Name: name, APIKey: apiKey})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrDuplicateAPIKey
	}
	return u, err
}

// List returns all users ordered by id.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return repo.FindAll[domain.User](ctx, s.DB, nil, repo.WithOrder("id"))
}

// Profile fetches a user by id with followers and following eager-loaded.
// Returns ErrUserNotFound when no such user exists.
func (s *UserService) Profile(ctx context.Context, id uint) (*domain.User, error) {
	u, err := repo.FindByID[domain.User](ctx, s.DB, id, "Followers", "Following")
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// Follow creates the edge "followerID follows accountID".
//
// Semantics and validation:
//   - followerID == accountID is rejected with ErrSelfFollow.
//   - accountID must exist; otherwise ErrUserNotFound.
//   - A duplicate edge yields ErrAlreadyFollowing. The duplicate check is
//     the composite-key constraint on the followers table, so two identical
//     concurrent requests cannot both succeed.
//
// The existence check and the insert run in one transaction.
func (s *UserService) Follow(ctx context.Context, followerID, accountID uint) error {
	if followerID == accountID {
		return ErrSelfFollow
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.FindByID[domain.User](ctx, tx, accountID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := repo.AddFollowEdge(ctx, tx, accountID, followerID); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrAlreadyFollowing
			}
			return err
		}
		return nil
	})
}

// Unfollow removes the edge "followerID follows accountID". Removing an
// edge that does not exist yields ErrNotFollowing; a second unfollow is not
// a silent success.
func (s *UserService) Unfollow(ctx context.Context, followerID, accountID uint) error {
	err := repo.RemoveFollowEdge(ctx, s.DB, accountID, followerID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFollowing
	}
	return err
}
