package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newSecurityEngine(opt SecurityOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(opt))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	r := newSecurityEngine(SecurityOptions{EnablePolicy: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	h := w.Header()
	if h.Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("nosniff missing")
	}
	if h.Get("X-Frame-Options") != "DENY" {
		t.Errorf("frame options missing")
	}
	if h.Get("Referrer-Policy") != "no-referrer" {
		t.Errorf("referrer policy missing")
	}
	if !strings.Contains(h.Get("Permissions-Policy"), "geolocation=()") {
		t.Errorf("permissions policy missing")
	}
	if h.Get("Cache-Control") != "" {
		t.Errorf("no-store must be opt-in")
	}
}

func TestSecurityHeaders_HSTSOnlyOverHTTPS(t *testing.T) {
	r := newSecurityEngine(SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour})

	// Plain HTTP: no HSTS.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must not be sent over HTTP")
	}

	// Behind a TLS-terminating proxy.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	got := w.Header().Get("Strict-Transport-Security")
	if !strings.HasPrefix(got, "max-age=3600") {
		t.Fatalf("HSTS = %q", got)
	}
}

func TestSecurityHeaders_NoStore(t *testing.T) {
	r := newSecurityEngine(SecurityOptions{NoStore: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("Cache-Control") != "no-store" || w.Header().Get("Pragma") != "no-cache" {
		t.Fatalf("cache controls missing: %v", w.Header())
	}
}

func TestSecurityHeaders_ExposesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), SecurityHeaders(SecurityOptions{}))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(w.Header().Get("Access-Control-Expose-Headers"), "X-Request-ID") {
		t.Fatalf("X-Request-ID not exposed: %v", w.Header())
	}
}
