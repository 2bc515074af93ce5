package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.GET("/ping", ok)
	r.POST("/items", ok)
	return r
}

func do(r http.Handler, method, path, body string) int {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(2, time.Hour))

	if code := do(r, http.MethodGet, "/ping", ""); code != http.StatusNoContent {
		t.Fatalf("first = %d", code)
	}
	if code := do(r, http.MethodGet, "/ping", ""); code != http.StatusNoContent {
		t.Fatalf("second = %d", code)
	}
	if code := do(r, http.MethodGet, "/ping", ""); code != http.StatusTooManyRequests {
		t.Fatalf("third = %d, want 429", code)
	}
}

func TestRateLimitPerClient(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	if !rl.Allow("a") || rl.Allow("a") {
		t.Fatal("client a should get exactly one request")
	}
	if !rl.Allow("b") {
		t.Fatal("client b has its own bucket")
	}
}

func TestDeduplication(t *testing.T) {
	r := newEngine(Deduplication(time.Minute))

	if code := do(r, http.MethodPost, "/items", `{"a":1}`); code != http.StatusNoContent {
		t.Fatalf("first = %d", code)
	}
	if code := do(r, http.MethodPost, "/items", `{"a":1}`); code != http.StatusTooManyRequests {
		t.Fatalf("duplicate = %d, want 429", code)
	}
	if code := do(r, http.MethodPost, "/items", `{"a":2}`); code != http.StatusNoContent {
		t.Fatalf("different body = %d", code)
	}
	for i := 0; i < 3; i++ {
		if code := do(r, http.MethodGet, "/ping", ""); code != http.StatusNoContent {
			t.Fatalf("GET should never be deduplicated, got %d", code)
		}
	}
}

func TestDedupCacheWindow(t *testing.T) {
	d := &dedupCache{requests: make(map[string]time.Time), window: time.Second}
	now := time.Now()
	if d.seen("k", now) {
		t.Fatal("first sighting")
	}
	if !d.seen("k", now.Add(500*time.Millisecond)) {
		t.Fatal("inside window")
	}
	if d.seen("k", now.Add(2*time.Second)) {
		t.Fatal("outside window")
	}
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(8))
	if code := do(r, http.MethodPost, "/items", "0123456789"); code != http.StatusRequestEntityTooLarge {
		t.Fatalf("code = %d, want 413", code)
	}
	if code := do(r, http.MethodPost, "/items", "0123"); code != http.StatusNoContent {
		t.Fatalf("code = %d", code)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	if code := do(r, http.MethodGet, "/boom", ""); code != http.StatusInternalServerError {
		t.Fatalf("code = %d", code)
	}
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if code := do(r, http.MethodGet, "/slow", ""); code != http.StatusGatewayTimeout {
		t.Fatalf("slow = %d, want 504", code)
	}
	if code := do(r, http.MethodGet, "/fast", ""); code != http.StatusNoContent {
		t.Fatalf("fast = %d", code)
	}
}
