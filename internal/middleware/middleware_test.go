package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMemoryStoreRefills(t *testing.T) {
	store := NewMemoryStore(2, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := store.Allow(ctx, "10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if ok, _ := store.Allow(ctx, "10.0.0.1"); ok {
		t.Fatal("third request should be limited")
	}
	if ok, _ := store.Allow(ctx, "10.0.0.2"); !ok {
		t.Fatal("other IPs have their own bucket")
	}

	now = now.Add(time.Minute)
	if ok, _ := store.Allow(ctx, "10.0.0.1"); !ok {
		t.Fatal("bucket should refill after one interval")
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	store := NewMemoryStore(1, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	store.lastCleanup = now

	_, _ = store.Allow(context.Background(), "10.0.0.1")
	now = now.Add(5 * time.Minute)
	_, _ = store.Allow(context.Background(), "10.0.0.2")

	if _, ok := store.visitors["10.0.0.1"]; ok {
		t.Error("idle visitor should have been removed")
	}
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(nil, 1, time.Hour, zerolog.Nop())
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") != "1" {
		t.Errorf("X-RateLimit-Limit = %q", w.Header().Get("X-RateLimit-Limit"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error == nil || body.Error.Code != response.ErrRateLimitExceeded {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	rl := &RateLimiter{store: failingStore{}, rate: 1, log: zerolog.Nop()}
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when the store fails", w.Code)
	}
}

func brotliRouter(payload string) *gin.Engine {
	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{MinLength: 64, Skipper: SkipPathSuffixes("/export")}))
	handler := func(c *gin.Context) { c.String(http.StatusOK, payload) }
	r.GET("/data", handler)
	r.GET("/export", handler)
	return r
}

func TestBrotliCompressesLargeBodies(t *testing.T) {
	payload := strings.Repeat("Informatique Bloc A ", 50)
	r := brotliRouter(payload)

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Content-Encoding") != "br" {
		t.Fatalf("Content-Encoding = %q, want br", w.Header().Get("Content-Encoding"))
	}
	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != payload {
		t.Error("decoded body differs from payload")
	}
}

func TestBrotliLeavesSmallAndSkippedBodies(t *testing.T) {
	small := brotliRouter("tiny")
	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	req.Header.Set("Accept-Encoding", "br")
	w := httptest.NewRecorder()
	small.ServeHTTP(w, req)
	if w.Header().Get("Content-Encoding") != "" || w.Body.String() != "tiny" {
		t.Errorf("small body should pass through, got %q %q", w.Header().Get("Content-Encoding"), w.Body.String())
	}

	large := brotliRouter(strings.Repeat("x", 500))
	req = httptest.NewRequest(http.MethodGet, "/export", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = httptest.NewRecorder()
	large.ServeHTTP(w, req)
	if w.Header().Get("Content-Encoding") != "" {
		t.Error("skipped path should not be compressed")
	}

	req = httptest.NewRequest(http.MethodGet, "/data", nil)
	w = httptest.NewRecorder()
	large.ServeHTTP(w, req)
	if w.Header().Get("Content-Encoding") != "" || w.Body.Len() != 500 {
		t.Error("clients without br support get identity encoding")
	}
}

func TestRequestLoggerAndNoStore(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(response.RequestIDMiddleware(), RequestLogger(log), NoStore())
	r.GET("/departments/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/departments/9?x=1", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["level"] != "warn" || entry["path"] != "/departments/9" || entry["request_id"] != "abc" {
		t.Errorf("unexpected log entry %v", entry)
	}
	if entry["status"] != float64(http.StatusNotFound) || entry["query"] != "x=1" {
		t.Errorf("unexpected log entry %v", entry)
	}
}
