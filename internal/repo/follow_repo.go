// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the specialized helpers for follow
// edges, the one entity whose identity is a composite key rather than an
// autoincrement id.
//
// The duplicate check relies on the composite primary key of the followers
// table instead of a separate existence query, so two concurrent inserts for
// the same pair cannot both succeed: the database serializes them and the
// loser surfaces as ErrDuplicate.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/domain"
)

// AddFollowEdge inserts the directed edge (accountID ← followerID). A
// redundant insert fails with ErrDuplicate via the composite-key constraint;
// a missing referenced user fails with the raw FK violation.
func AddFollowEdge(ctx context.Context, db *gorm.DB, accountID, followerID uint) error {
	edge := &domain.Follow{AccountID: accountID, FollowerID: followerID}
	if err := db.WithContext(ctx).Create(edge).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// RemoveFollowEdge deletes the directed edge (accountID ← followerID).
// Removing an edge that does not exist returns ErrNotFound; a second
// removal must never masquerade as success.
func RemoveFollowEdge(ctx context.Context, db *gorm.DB, accountID, followerID uint) error {
	res := db.WithContext(ctx).
		Where("account_id = ? AND follower_id = ?", accountID, followerID).
		Delete(&domain.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasFollowEdge reports whether followerID currently follows accountID.
func HasFollowEdge(ctx context.Context, db *gorm.DB, accountID, followerID uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("account_id = ? AND follower_id = ?", accountID, followerID).
		Count(&n).Error
	return n > 0, err
}
