// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/domain"
)

// FeedStats returns aggregate metadata for the global tweet feed: the total
// number of rows and the maximum Timestamp among them.
//
// When there are no tweets, the returned count is 0 and maxTimestamp is nil.
//
// Return values:
//   - count:        total tweets
//   - maxTimestamp: pointer to the greatest Timestamp, or nil if no rows
//   - err:          database error, if any
func FeedStats(ctx context.Context, db *gorm.DB) (count int64, maxTimestamp *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Tweet{})

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest timestamp (avoid MAX() -> TEXT in SQLite)
	var row struct {
		Timestamp time.Time
	}
	if err = q.Select("timestamp").Order("timestamp DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.Timestamp, nil
}

// UserTweetsStats returns aggregate metadata for tweets authored by userID:
// the total number of rows and the maximum Timestamp among those rows.
//
// When the user has no tweets, the returned count is 0 and maxTimestamp is
// nil.
func UserTweetsStats(ctx context.Context, db *gorm.DB, userID uint) (count int64, maxTimestamp *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Tweet{}).Where("author_id = ?", userID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		Timestamp time.Time
	}
	if err = q.Select("timestamp").Order("timestamp DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.Timestamp, nil
}
