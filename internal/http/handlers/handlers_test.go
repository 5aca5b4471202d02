package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-twitter-backend/internal/domain"
)

func ctxWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/tweets?"+rawQuery, nil)
	return c
}

func TestClampPagination(t *testing.T) {
	cases := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 20},
		{"page=3&page_size=50", 3, 50},
		{"page=0&page_size=0", 1, 1},
		{"page=-2&page_size=101", 1, 100},
		{"page=abc&page_size=xyz", 1, 20},
	}
	for _, tc := range cases {
		page, pageSize := clampPagination(ctxWithQuery(t, tc.query))
		if page != tc.page || pageSize != tc.pageSize {
			t.Errorf("clampPagination(%q) = (%d, %d); want (%d, %d)",
				tc.query, page, pageSize, tc.page, tc.pageSize)
		}
	}
}

func TestTweetView_Projection(t *testing.T) {
	h := New(nil, nil, nil, "/api/media", time.Hour)

	tid := uint(7)
	tweet := &domain.Tweet{
		ID:     7,
		Text:   "hello",
		Author: &domain.User{ID: 1, Name: "Dan"},
		Likes: []domain.Like{
			{UserID: 2, User: &domain.User{ID: 2, Name: "Alice"}},
			{UserID: 3}, // liking user not loaded
		},
		Media: []domain.Media{{ID: 9, TweetID: &tid}},
	}

	v := h.tweetView(tweet)
	if v.ID != 7 || v.Content != "hello" {
		t.Fatalf("basic fields: %+v", v)
	}
	if v.Author.Name != "Dan" {
		t.Fatalf("author: %+v", v.Author)
	}
	if len(v.Attachments) != 1 || v.Attachments[0] != "/api/media/9" {
		t.Fatalf("attachments: %v", v.Attachments)
	}
	if len(v.Likes) != 2 || v.Likes[0].Name != "Alice" || v.Likes[1].Name != "" {
		t.Fatalf("likes: %+v", v.Likes)
	}
}

func TestProfileView_EmptyEdgesAreArrays(t *testing.T) {
	v := profileView(&domain.User{ID: 1, Name: "Dan"})
	if v.Followers == nil || v.Following == nil {
		t.Fatalf("edges must serialize as [] not null: %+v", v)
	}
}

func TestNew_Fallbacks(t *testing.T) {
	h := New(nil, nil, nil, "", 0)
	if h.mediaBase != "/api/media" {
		t.Fatalf("mediaBase = %q", h.mediaBase)
	}
	if h.idemTTL != 24*time.Hour {
		t.Fatalf("idemTTL = %v", h.idemTTL)
	}

	h = New(nil, nil, nil, "/m", time.Minute)
	if h.idemTTL != time.Minute {
		t.Fatalf("idemTTL = %v; want configured value", h.idemTTL)
	}
}
