package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-twitter-backend/internal/domain"
)

func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, key string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, APIKey: key}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func seedTweet(t *testing.T, db *gorm.DB, authorID uint, text string) *domain.Tweet {
	t.Helper()
	tw := &domain.Tweet{Text: text, AuthorID: authorID}
	if err := db.Create(tw).Error; err != nil {
		t.Fatalf("seed tweet: %v", err)
	}
	return tw
}

func TestInsert_RoundTripAssignsPK(t *testing.T) {
	db := newRepoDB(t)

	u, err := Insert(context.Background(), db, &domain.User{Name: "Dan", APIKey: "test"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected generated PK, got zero")
	}

	got, err := FindByID[domain.User](context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Dan" || got.APIKey != "test" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestInsert_DuplicateUniqueKey(t *testing.T) {
	db := newRepoDB(t)
	seedUser(t, db, "Dan", "test")

	_, err := Insert(context.Background(), db, &domain.User{Name: "Imposter", APIKey: "test"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	db := newRepoDB(t)

	_, err := FindByID[domain.User](context.Background(), db, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByID_UnknownPlanEntry(t *testing.T) {
	db := newRepoDB(t)
	u := seedUser(t, db, "Dan", "test")

	_, err := FindByID[domain.User](context.Background(), db, u.ID, "Nonsense")
	if !errors.Is(err, ErrUnknownRelationship) {
		t.Fatalf("expected ErrUnknownRelationship, got %v", err)
	}
}

func TestFindByID_PlanLoadsRelationship(t *testing.T) {
	db := newRepoDB(t)
	u := seedUser(t, db, "Dan", "test")
	tw := seedTweet(t, db, u.ID, "hello")
	liker := seedUser(t, db, "Alice", "alice-key")
	if err := db.Create(&domain.Like{TweetID: tw.ID, UserID: liker.ID}).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}

	got, err := FindByID[domain.Tweet](context.Background(), db, tw.ID, "Author", "Likes", "Likes.User")
	if err != nil {
		t.Fatalf("FindByID with plan: %v", err)
	}
	if got.Author == nil || got.Author.Name != "Dan" {
		t.Fatalf("author not loaded: %+v", got.Author)
	}
	if len(got.Likes) != 1 || got.Likes[0].User == nil || got.Likes[0].User.Name != "Alice" {
		t.Fatalf("likes / liking users not loaded: %+v", got.Likes)
	}
}

func TestFindOne_ZeroOneMany(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	// Zero matches.
	if _, err := FindOne[domain.User](ctx, db, Filter{"name": "nobody"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for zero matches, got %v", err)
	}

	// Exactly one.
	seedUser(t, db, "Dan", "test")
	got, err := FindOne[domain.User](ctx, db, Filter{"api_key": "test"})
	if err != nil {
		t.Fatalf("FindOne single: %v", err)
	}
	if got.Name != "Dan" {
		t.Fatalf("unexpected row: %+v", got)
	}

	// More than one: names are not unique.
	seedUser(t, db, "Dan", "other-key")
	if _, err := FindOne[domain.User](ctx, db, Filter{"name": "Dan"}); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous for two matches, got %v", err)
	}
}

func TestFindOne_UnknownFilterColumn(t *testing.T) {
	db := newRepoDB(t)

	_, err := FindOne[domain.User](context.Background(), db, Filter{"password": "x"})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestFindAll_SliceFilterBecomesIN(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	a := seedUser(t, db, "A", "ka")
	seedUser(t, db, "B", "kb")
	c := seedUser(t, db, "C", "kc")

	rows, err := FindAll[domain.User](ctx, db, Filter{"id": []uint{a.ID, c.ID}}, WithOrder("id"))
	if err != nil {
		t.Fatalf("FindAll IN: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "A" || rows[1].Name != "C" {
		t.Fatalf("unexpected IN result: %+v", rows)
	}
}

func TestFindAll_OrderLimitOffset(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "Dan", "test")
	for i := 0; i < 5; i++ {
		seedTweet(t, db, u.ID, fmt.Sprintf("t%d", i))
	}

	rows, err := FindAll[domain.Tweet](ctx, db, nil, WithOrder("id"), WithLimit(2), WithOffset(2))
	if err != nil {
		t.Fatalf("FindAll window: %v", err)
	}
	if len(rows) != 2 || rows[0].Text != "t2" || rows[1].Text != "t3" {
		t.Fatalf("unexpected window: %+v", rows)
	}
}

func TestFindAll_EmptyResultIsNotError(t *testing.T) {
	db := newRepoDB(t)

	rows, err := FindAll[domain.Tweet](context.Background(), db, nil)
	if err != nil {
		t.Fatalf("FindAll on empty table: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty slice, got %#v", rows)
	}
}

func TestFindAll_JoinSingleAssociation(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	dan := seedUser(t, db, "Dan", "test")
	alice := seedUser(t, db, "Alice", "alice-key")
	tw := seedTweet(t, db, dan.ID, "joined")
	for _, likerID := range []uint{dan.ID, alice.ID} {
		if _, err := Insert(ctx, db, &domain.Like{TweetID: tw.ID, UserID: likerID}); err != nil {
			t.Fatalf("Insert like: %v", err)
		}
	}

	// Two likes on the tweet must not fan the row out through the join.
	rows, err := FindAll[domain.Tweet](ctx, db, nil, WithJoin("Author"))
	if err != nil {
		t.Fatalf("FindAll with join: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Author == nil || rows[0].Author.Name != "Dan" {
		t.Fatalf("joined author not loaded: %+v", rows[0].Author)
	}
}

func TestFindAll_JoinRejectsCollections(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	for _, rel := range []string{"Likes", "Media", "Likes.User"} {
		_, err := FindAll[domain.Tweet](ctx, db, nil, WithJoin(rel))
		if !errors.Is(err, ErrUnknownRelationship) {
			t.Fatalf("WithJoin(%q): expected ErrUnknownRelationship, got %v", rel, err)
		}
	}
	if _, err := FindAll[domain.User](ctx, db, nil, WithJoin("Followers")); !errors.Is(err, ErrUnknownRelationship) {
		t.Fatalf("expected ErrUnknownRelationship for many2many join, got %v", err)
	}
}

func TestFindAll_UnknownOrderColumn(t *testing.T) {
	db := newRepoDB(t)

	_, err := FindAll[domain.Tweet](context.Background(), db, nil, WithOrder("sneaky; DROP TABLE tweets"))
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn for bogus order, got %v", err)
	}
}

func TestCount_WithAndWithoutFilter(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u1 := seedUser(t, db, "A", "ka")
	u2 := seedUser(t, db, "B", "kb")
	seedTweet(t, db, u1.ID, "x")
	seedTweet(t, db, u1.ID, "y")
	seedTweet(t, db, u2.ID, "z")

	all, err := Count[domain.Tweet](ctx, db, nil)
	if err != nil || all != 3 {
		t.Fatalf("Count all = %d, err=%v; want 3", all, err)
	}
	mine, err := Count[domain.Tweet](ctx, db, Filter{"author_id": u1.ID})
	if err != nil || mine != 2 {
		t.Fatalf("Count filtered = %d, err=%v; want 2", mine, err)
	}
}

func TestUpdate_PartialAndMissing(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "Dan", "test")
	tw := seedTweet(t, db, u.ID, "before")

	if err := Update(ctx, db, tw, map[string]any{"text": "after"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := FindByID[domain.Tweet](ctx, db, tw.ID)
	if err != nil || got.Text != "after" {
		t.Fatalf("update not persisted: %+v err=%v", got, err)
	}

	// Unknown column is rejected before SQL.
	if err := Update(ctx, db, tw, map[string]any{"nope": 1}); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}

	// Zero rows affected -> ErrNotFound.
	missing := &domain.Tweet{ID: 4242}
	if err := Update(ctx, db, missing, map[string]any{"text": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing row, got %v", err)
	}
}

func TestDelete_MissingRowIsNotFound(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "Dan", "test")
	tw := seedTweet(t, db, u.ID, "bye")

	if err := Delete(ctx, db, tw); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Second delete of the same row must not look like success.
	if err := Delete(ctx, db, tw); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
