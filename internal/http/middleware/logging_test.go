package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("no request id generated")
	}
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if rid := w.Header().Get("X-Request-ID"); rid != "client-supplied" {
		t.Fatalf("request id = %q", rid)
	}
}

func TestRecovery_PanicBecomesJSON500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaput") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	if body["code"] != "internal_error" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["request_id"] == "" {
		t.Fatalf("request id lost across panic")
	}
}

func TestLoggerFrom_FallbackWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if lg := LoggerFrom(c); lg == nil {
		t.Fatalf("expected fallback logger")
	}
}

func TestLogger_AttachesRequestScopedLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/", func(c *gin.Context) {
		if _, ok := c.Get("logger"); !ok {
			c.String(http.StatusInternalServerError, "no logger")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("abcdef", 3); !strings.HasPrefix(got, "abc") || len(got) <= 3 {
		t.Errorf("truncate long = %q", got)
	}
	if got := truncate("anything", 0); got != "anything" {
		t.Errorf("truncate disabled = %q", got)
	}
}

func TestAsString(t *testing.T) {
	if asString("x") != "x" {
		t.Errorf("string passthrough failed")
	}
	if asString(nil) != "" || asString(42) != "" {
		t.Errorf("non-strings must map to empty")
	}
}
