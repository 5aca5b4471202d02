package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tbourn/go-twitter-backend/internal/domain"
	"github.com/tbourn/go-twitter-backend/internal/repo"
)

func TestTweetPost_Validation(t *testing.T) {
	svc := &TweetService{DB: newSvcDB(t), MaxTextRunes: 280}
	ctx := context.Background()

	if _, err := svc.Post(ctx, 1, "   ", nil); !errors.Is(err, ErrEmptyTweet) {
		t.Fatalf("blank text: got %v", err)
	}
	if _, err := svc.Post(ctx, 1, strings.Repeat("x", 281), nil); !errors.Is(err, ErrTweetTooLong) {
		t.Fatalf("over-long text: got %v", err)
	}
	// Runes, not bytes: 280 multi-byte characters are fine.
	db := svc.DB
	u := mustUser(t, db, "Dan", "test")
	if _, err := svc.Post(ctx, u.ID, strings.Repeat("é", 280), nil); err != nil {
		t.Fatalf("280 runes should pass: %v", err)
	}
}

func TestTweetPost_ClaimsUnattachedMedia(t *testing.T) {
	db := newSvcDB(t)
	tweets := &TweetService{DB: db, MaxTextRunes: 280}
	media := &MediaService{DB: db, MaxUploadBytes: 1 << 20}
	ctx := context.Background()

	u := mustUser(t, db, "Dan", "test")

	free, err := media.Upload(ctx, "a.png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	claimed, err := media.Upload(ctx, "b.png", []byte{4, 5, 6})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	other, err := tweets.Post(ctx, u.ID, "takes b", []uint{claimed.ID})
	if err != nil {
		t.Fatalf("post claiming b: %v", err)
	}

	// Unknown ids and already-claimed rows are skipped, free rows attach.
	tw, err := tweets.Post(ctx, u.ID, "hello", []uint{free.ID, claimed.ID, 9999})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	gotFree, err := repo.FindByID[domain.Media](ctx, db, free.ID)
	if err != nil || gotFree.TweetID == nil || *gotFree.TweetID != tw.ID {
		t.Fatalf("free media not claimed: %+v err=%v", gotFree, err)
	}
	gotClaimed, err := repo.FindByID[domain.Media](ctx, db, claimed.ID)
	if err != nil || gotClaimed.TweetID == nil || *gotClaimed.TweetID != other.ID {
		t.Fatalf("claimed media must keep its owner: %+v err=%v", gotClaimed, err)
	}
}

func TestTweetDelete_OwnerOnly(t *testing.T) {
	db := newSvcDB(t)
	svc := &TweetService{DB: db}
	ctx := context.Background()

	owner := mustUser(t, db, "Owner", "ko")
	other := mustUser(t, db, "Other", "kx")

	tw, err := svc.Post(ctx, owner.ID, "keep out", nil)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	if err := svc.Delete(ctx, other.ID, tw.ID); !errors.Is(err, ErrNotTweetOwner) {
		t.Fatalf("foreign delete: got %v", err)
	}
	// The row must survive the rejected attempt.
	if _, err := repo.FindByID[domain.Tweet](ctx, db, tw.ID); err != nil {
		t.Fatalf("tweet vanished after rejected delete: %v", err)
	}

	if err := svc.Delete(ctx, owner.ID, tw.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(ctx, owner.ID, tw.ID); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestTweetDelete_RemovesLikesAndMedia(t *testing.T) {
	db := newSvcDB(t)
	tweets := &TweetService{DB: db}
	media := &MediaService{DB: db}
	ctx := context.Background()

	owner := mustUser(t, db, "Owner", "ko")
	fan := mustUser(t, db, "Fan", "kf")

	m, err := media.Upload(ctx, "pic.png", []byte{9})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	tw, err := tweets.Post(ctx, owner.ID, "with attachment", []uint{m.ID})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if _, err := tweets.Like(ctx, fan.ID, tw.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}

	if err := tweets.Delete(ctx, owner.ID, tw.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if n, err := repo.Count[domain.Like](ctx, db, repo.Filter{"tweet_id": tw.ID}); err != nil || n != 0 {
		t.Fatalf("likes left behind: n=%d err=%v", n, err)
	}
	if n, err := repo.Count[domain.Media](ctx, db, repo.Filter{"tweet_id": tw.ID}); err != nil || n != 0 {
		t.Fatalf("media left behind: n=%d err=%v", n, err)
	}
}

func TestLikeUnlike_Semantics(t *testing.T) {
	db := newSvcDB(t)
	svc := &TweetService{DB: db}
	ctx := context.Background()

	author := mustUser(t, db, "Author", "ka")
	fan := mustUser(t, db, "Fan", "kf")
	tw, err := svc.Post(ctx, author.ID, "likeable", nil)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	if _, err := svc.Like(ctx, fan.ID, 9999); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("like missing tweet: got %v", err)
	}
	if _, err := svc.Like(ctx, fan.ID, tw.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if _, err := svc.Like(ctx, fan.ID, tw.ID); !errors.Is(err, ErrDuplicateLike) {
		t.Fatalf("duplicate like: got %v", err)
	}

	if err := svc.Unlike(ctx, fan.ID, tw.ID); err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	if err := svc.Unlike(ctx, fan.ID, tw.ID); !errors.Is(err, ErrLikeNotFound) {
		t.Fatalf("second unlike: got %v", err)
	}
}

func TestFeed_EagerLoadsAndOrders(t *testing.T) {
	db := newSvcDB(t)
	tweets := &TweetService{DB: db}
	ctx := context.Background()

	author := mustUser(t, db, "Author", "ka")
	fan := mustUser(t, db, "Fan", "kf")

	first, err := tweets.Post(ctx, author.ID, "first", nil)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if _, err := tweets.Post(ctx, author.ID, "second", nil); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if _, err := tweets.Like(ctx, fan.ID, first.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}

	feed, err := tweets.Feed(ctx)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(feed) != 2 || feed[0].Text != "first" || feed[1].Text != "second" {
		t.Fatalf("unexpected feed order: %+v", feed)
	}
	if feed[0].Author == nil || feed[0].Author.Name != "Author" {
		t.Fatalf("author not eager-loaded: %+v", feed[0].Author)
	}
	if len(feed[0].Likes) != 1 || feed[0].Likes[0].User == nil || feed[0].Likes[0].User.Name != "Fan" {
		t.Fatalf("likes not eager-loaded: %+v", feed[0].Likes)
	}
}

func TestFeedPage_Windowing(t *testing.T) {
	db := newSvcDB(t)
	svc := &TweetService{DB: db}
	ctx := context.Background()

	u := mustUser(t, db, "Dan", "test")
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		if _, err := svc.Post(ctx, u.ID, text, nil); err != nil {
			t.Fatalf("Post %s: %v", text, err)
		}
	}

	items, total, err := svc.FeedPage(ctx, 2, 2)
	if err != nil {
		t.Fatalf("FeedPage: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d; want 5", total)
	}
	if len(items) != 2 || items[0].Text != "c" || items[1].Text != "d" {
		t.Fatalf("unexpected page: %+v", items)
	}

	// Out-of-range inputs normalize instead of failing.
	items, total, err = svc.FeedPage(ctx, 0, -1)
	if err != nil || total != 5 || len(items) != 5 {
		t.Fatalf("normalized page: len=%d total=%d err=%v", len(items), total, err)
	}
}

func TestFeedPage_Empty(t *testing.T) {
	svc := &TweetService{DB: newSvcDB(t)}

	items, total, err := svc.FeedPage(context.Background(), 1, 20)
	if err != nil || total != 0 || len(items) != 0 {
		t.Fatalf("empty feed: len=%d total=%d err=%v", len(items), total, err)
	}
}
