// Package services – TweetService
//
// This file implements the TweetService, which manages the tweet lifecycle:
// the public feed, posting (with media claiming), deletion (owner-only, with
// cascading cleanup of likes and attachments), and like/unlike semantics.
// Service-level errors (e.g. ErrTweetNotFound, ErrNotTweetOwner,
// ErrDuplicateLike) are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/domain"
	"github.com/tbourn/go-twitter-backend/internal/repo"
)

// feedPlan is the fetch plan for feed queries: author, likes with their
// users, and media attachments, loaded eagerly so serialization never
// triggers a query after the request session is gone.
var feedPlan = []string{"Author", "Likes", "Likes.User", "Media"}

// TweetService implements the use-cases around tweets and likes. It is
// context-aware and opens its own transaction for multi-step mutations.
type TweetService struct {
	// DB is the database handle used for all tweet operations.
	DB *gorm.DB

	// MaxTextRunes caps tweet text by rune length. Zero disables the cap.
	MaxTextRunes int
}

// Feed returns every tweet with author, likes (and liking users), and media
// eager-loaded, ordered by id.
func (s *TweetService) Feed(ctx context.Context) ([]domain.Tweet, error) {
	return repo.FindAll[domain.Tweet](ctx, s.DB, nil,
		repo.WithOrder("id"),
		repo.WithPreload(feedPlan...),
	)
}

// FeedPage returns one page of the feed plus the total tweet count for
// pagination metadata. Page and pageSize are normalized to sane values.
func (s *TweetService) FeedPage(ctx context.Context, page, pageSize int) ([]domain.Tweet, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	total, err := repo.Count[domain.Tweet](ctx, s.DB, nil)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Tweet{}, 0, nil
	}
	items, err := repo.FindAll[domain.Tweet](ctx, s.DB, nil,
		repo.WithOrder("id"),
		repo.WithPreload(feedPlan...),
		repo.WithLimit(pageSize),
		repo.WithOffset((page-1)*pageSize),
	)
	return items, total, err
}

// Post creates a tweet authored by authorID and claims the given media rows
// for it.
//
// Semantics and validation:
//   - Text is NFC-normalized; blank text is rejected with ErrEmptyTweet and
//     over-long text with ErrTweetTooLong.
//   - Each media id that exists and is not yet attached to a tweet gets its
//     tweet_id set to the new tweet. Unknown ids and already-claimed rows
//     are skipped, matching the tolerant upload-then-attach flow.
//   - The insert and the media claims run in one transaction, so a failed
//     claim leaves no half-created tweet behind.
func (s *TweetService) Post(ctx context.Context, authorID uint, text string, mediaIDs []uint) (*domain.Tweet, error) {
	text = norm.NFC.String(text)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTweet
	}
	if s.MaxTextRunes > 0 && utf8.RuneCountInString(text) > s.MaxTextRunes {
		return nil, ErrTweetTooLong
	}

	var created *domain.Tweet
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := repo.Insert(ctx, tx, &domain.Tweet{Text: text, AuthorID: authorID})
		if err != nil {
			return err
		}
		for _, mid := range mediaIDs {
			m, err := repo.FindByID[domain.Media](ctx, tx, mid)
			if errors.Is(err, repo.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if m.TweetID != nil {
				continue
			}
			if err := repo.Update(ctx, tx, m, map[string]any{"tweet_id": t.ID}); err != nil {
				return err
			}
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes a tweet on behalf of userID.
//
// Semantics and validation:
//   - The tweet must exist; otherwise ErrTweetNotFound.
//   - Only the author may delete it; otherwise ErrNotTweetOwner and the row
//     stays in place.
//   - Likes and media attached to the tweet are removed in the same
//     transaction. The schema declares ON DELETE CASCADE as well, the
//     explicit deletes keep the behavior driver-independent.
func (s *TweetService) Delete(ctx context.Context, userID, tweetID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := repo.FindByID[domain.Tweet](ctx, tx, tweetID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTweetNotFound
		}
		if err != nil {
			return err
		}
		if t.AuthorID != userID {
			return ErrNotTweetOwner
		}
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&domain.Media{}).Error; err != nil {
			return err
		}
		return repo.Delete(ctx, tx, t)
	})
}

// Like records that userID liked tweetID.
//
// Semantics and validation:
//   - The tweet must exist; otherwise ErrTweetNotFound.
//   - A user can like a tweet at most once; the unique index on
//     (tweet_id, user_id) turns a duplicate into ErrDuplicateLike.
//
// The existence check and the insert run in one transaction.
func (s *TweetService) Like(ctx context.Context, userID, tweetID uint) (*domain.Like, error) {
	var created *domain.Like
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.FindByID[domain.Tweet](ctx, tx, tweetID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrTweetNotFound
			}
			return err
		}
		l, err := repo.Insert(ctx, tx, &domain.Like{TweetID: tweetID, UserID: userID})
		if err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrDuplicateLike
			}
			return err
		}
		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Unlike removes userID's like from tweetID. Removing a like that does not
// exist yields ErrLikeNotFound.
func (s *TweetService) Unlike(ctx context.Context, userID, tweetID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := repo.FindOne[domain.Like](ctx, tx, repo.Filter{
			"tweet_id": tweetID,
			"user_id":  userID,
		})
		if errors.Is(err, repo.ErrNotFound) {
			return ErrLikeNotFound
		}
		if err != nil {
			return err
		}
		return repo.Delete(ctx, tx, l)
	})
}
