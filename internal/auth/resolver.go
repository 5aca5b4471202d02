// Package auth implements the authorization resolver: it translates the
// opaque Api-Key credential carried in a request header into an
// authenticated User.
//
// The resolver is a pure, stateless lookup per call: no session store, no
// token expiry, no revocation. Absence of a match is an authentication
// failure (ErrUnauthenticated), distinguished from a missing-user condition
// (ErrUserNotFound) so the HTTP boundary can map them to 403 and 404
// respectively. The caller supplies the database handle, which lets the
// credential check share a transaction with the operation it gates.
package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/domain"
	"github.com/tbourn/go-twitter-backend/internal/repo"
)

// ErrUnauthenticated is returned when no user owns the presented api key.
var ErrUnauthenticated = errors.New("invalid api key")

// ErrUserNotFound is returned by ResolveCurrentUser when the credential
// resolves to no user; callers surface it instead of rendering an empty
// profile.
var ErrUserNotFound = errors.New("user not found")

// Resolve looks up exactly one User by exact api-key match. It returns
// ErrUnauthenticated when the key is empty or unknown. An ambiguous match
// would indicate a broken unique constraint and is propagated raw.
func Resolve(ctx context.Context, db *gorm.DB, apiKey string) (*domain.User, error) {
	if apiKey == "" {
		return nil, ErrUnauthenticated
	}
	u, err := repo.FindOne[domain.User](ctx, db, repo.Filter{"api_key": apiKey})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ResolveCurrentUser resolves the credential like Resolve and additionally
// eager-loads the follow relationships needed by profile rendering. A
// credential that resolves to no user yields ErrUserNotFound.
func ResolveCurrentUser(ctx context.Context, db *gorm.DB, apiKey string) (*domain.User, error) {
	if apiKey == "" {
		return nil, ErrUserNotFound
	}
	u, err := repo.FindOne[domain.User](ctx, db, repo.Filter{"api_key": apiKey}, "Followers", "Following")
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
