package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func postFrom(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/save_annotation", nil)
	req.RemoteAddr = remoteAddr
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(10)(okHandler())

	for i := 0; i < 10; i++ {
		rec := postFrom(handler, "1.2.3.4:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(5)(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, postFrom(handler, "1.2.3.4:1234").Code)
	}

	rec := postFrom(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "13", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"status":"error","message":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_PortsShareBucket(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(2)(okHandler())

	assert.Equal(t, http.StatusOK, postFrom(handler, "5.5.5.5:1000").Code)
	assert.Equal(t, http.StatusOK, postFrom(handler, "5.5.5.5:1001").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(handler, "5.5.5.5:1002").Code)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(2)(okHandler())

	for i := 0; i < 2; i++ {
		postFrom(handler, "1.1.1.1:1234")
	}

	assert.Equal(t, http.StatusOK, postFrom(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(0)(okHandler())

	for i := 0; i < 100; i++ {
		assert.Equal(t, http.StatusOK, postFrom(handler, "9.9.9.9:1").Code)
	}
}

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	rl.now = clock.now

	// 60 per minute = 1 per second
	handler := rl.Limit(60)(okHandler())

	for i := 0; i < 60; i++ {
		postFrom(handler, "3.3.3.3:1234")
	}
	assert.Equal(t, http.StatusTooManyRequests, postFrom(handler, "3.3.3.3:1234").Code)

	clock.advance(1100 * time.Millisecond)
	assert.Equal(t, http.StatusOK, postFrom(handler, "3.3.3.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_RefillCappedAtOneMinute(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	rl.now = clock.now

	handler := rl.Limit(3)(okHandler())

	postFrom(handler, "6.6.6.6:1")
	clock.advance(time.Hour)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, postFrom(handler, "6.6.6.6:1").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, postFrom(handler, "6.6.6.6:1").Code)
}

func TestRateLimiter_ForgetIdle(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Stop()

	start := time.Now()
	rl.now = func() time.Time { return start }
	rl.take("4.4.4.4", 10)
	rl.take("7.7.7.7", 10)

	rl.now = func() time.Time { return start.Add(idleClientTTL) }
	rl.take("7.7.7.7", 10)

	rl.forgetIdle(start.Add(idleClientTTL + time.Second))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "4.4.4.4", "idle client should be forgotten")
	assert.Contains(t, rl.clients, "7.7.7.7")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimiter_ZeroCleanupInterval(t *testing.T) {
	var rl *RateLimiter
	require.NotPanics(t, func() { rl = NewRateLimiter(0) })
	defer rl.Stop()

	handler := rl.Limit(1)(okHandler())
	assert.Equal(t, http.StatusOK, postFrom(handler, "8.8.8.8:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(handler, "8.8.8.8:1").Code)
}
